package live

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tether-ui/tether"
	"github.com/tether-ui/tether/pkg/dom"
	"github.com/tether-ui/tether/pkg/metrics"
)

// Builder constructs the page's element tree. It runs once per session
// inside a fresh mount, so signals, effects, and refs created in it belong
// to that session alone.
type Builder func() *dom.Element

// ServerConfig configures the HTTP and WebSocket surface.
type ServerConfig struct {
	// Addr is the listen address. Default ":8080".
	Addr string

	// Title is the HTML document title.
	Title string

	// Session holds the per-connection tuning.
	Session SessionConfig

	// CheckOrigin overrides the upgrader's origin check. nil means
	// same-origin only, the gorilla default.
	CheckOrigin func(*http.Request) bool
}

// DefaultServerConfig returns the server defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:    ":8080",
		Title:   "Tether",
		Session: DefaultSessionConfig(),
	}
}

// Server renders the page over plain HTTP and upgrades /live connections
// into sessions. Every connection mounts its own root from the builder.
type Server struct {
	config   ServerConfig
	build    Builder
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*Session]struct{}
	httpSrv  *http.Server
}

// NewServer creates a server that serves the page built by build.
func NewServer(build Builder, config ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config: config,
		build:  build,
		logger: logger.With("component", "server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		sessions: make(map[*Session]struct{}),
	}
}

// Handler returns the chi router: the page at /, the WebSocket wire at
// /live, Prometheus metrics at /metrics, and a liveness probe at /healthz.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/live", s.handleLive)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// handlePage renders a throwaway mount of the page. The mount that a
// session actually drives is created at upgrade time; this one exists only
// to produce the initial HTML and is closed before the response ends.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc := dom.NewDocument()
	root := tether.Mount(doc, s.build)
	defer tether.CleanupGoroutineContext()
	defer root.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>%s</title></head>\n", s.config.Title)
	fmt.Fprint(w, dom.Render(doc.Body()))
	fmt.Fprint(w, "\n</html>\n")
}

// handleLive upgrades the connection and runs a session until it drops.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		metrics.RecordWebSocketError("upgrade")
		return
	}

	doc := dom.NewDocument()
	root := tether.Mount(doc, s.build)
	sess := NewSession(root, conn, s.config.Session, s.logger)

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	metrics.RecordSessionOpen()
	s.logger.Info("session opened", "remote", conn.RemoteAddr())

	sess.ReadLoop(r.Context())

	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
}

// ListenAndServe runs the server until ctx is canceled, then drains open
// sessions and shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.closeSessions()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()

	for _, sess := range open {
		sess.Close()
	}
}
