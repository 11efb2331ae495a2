package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tether-ui/tether"
	"github.com/tether-ui/tether/pkg/dom"
	"github.com/tether-ui/tether/pkg/metrics"
	"github.com/tether-ui/tether/pkg/protocol"
)

// Session errors.
var (
	ErrUnknownNode   = errors.New("live: event targets unknown node")
	ErrSessionClosed = errors.New("live: session closed")
)

// SessionConfig holds per-connection tuning.
type SessionConfig struct {
	// ReadTimeout is the maximum idle time between client frames.
	// The client pings well inside this window.
	ReadTimeout time.Duration

	// WriteTimeout bounds each outgoing frame write.
	WriteTimeout time.Duration
}

// DefaultSessionConfig returns the session defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Session ties one WebSocket connection to one mounted root. Events are
// processed one at a time on the read loop goroutine, which is what keeps
// dispatch synchronous end to end: the patch frame for an event is written
// before the next event is read.
type Session struct {
	root   *tether.Root
	conn   *websocket.Conn
	config SessionConfig
	logger *slog.Logger
	tracer trace.Tracer

	writeMu sync.Mutex
	seq     uint64
	lastAck uint64

	closeOnce sync.Once
	closed    chan struct{}
}

// NewSession creates a session for an upgraded connection. conn may be nil
// for a detached session that is driven through HandleEvent directly.
func NewSession(root *tether.Root, conn *websocket.Conn, config SessionConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	// The initial render already reflects everything the mount journaled,
	// so the session starts with a clean slate.
	root.Document().TakeMutations()
	root.Document().TakeNavigations()
	return &Session{
		root:   root,
		conn:   conn,
		config: config,
		logger: logger.With("component", "session"),
		tracer: otel.Tracer("tether/live"),
		closed: make(chan struct{}),
	}
}

// Root returns the mounted root this session drives.
func (s *Session) Root() *tether.Root { return s.root }

// LastAck returns the last patch sequence the client acknowledged.
func (s *Session) LastAck() uint64 {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.lastAck
}

// HandleEvent lands one decoded client event on the document and returns
// the patches it produced. User input (value, checked, option choice) is
// applied to the target before dispatch, so listeners and the dirtiness
// rules see exactly what the client already shows. Patches are collected
// even when dispatch fails: work done before the failing update is real
// and the client needs it.
func (s *Session) HandleEvent(pe *protocol.Event) (*protocol.PatchSet, error) {
	doc := s.root.Document()
	target := doc.ByID(pe.Node)
	if target == nil {
		return nil, ErrUnknownNode
	}

	switch pe.Type {
	case protocol.EventInput, protocol.EventChange:
		switch {
		case target.Tag() == "select":
			target.SetUserSelected(pe.Value)
		case isCheckable(target):
			target.SetUserChecked(pe.Checked)
		default:
			target.SetUserValue(pe.Value)
		}
	}

	err := s.root.Dispatch(dom.NewEvent(pe.Type.String(), target))
	return s.collectPatches(doc), err
}

func isCheckable(e *dom.Element) bool {
	if e.Tag() != "input" {
		return false
	}
	t, _ := e.Attribute("type")
	return t == "checkbox" || t == "radio"
}

// collectPatches drains the document's journal and pending navigations
// into a sequenced patch set.
func (s *Session) collectPatches(doc *dom.Document) *protocol.PatchSet {
	muts := doc.TakeMutations()
	navs := doc.TakeNavigations()

	s.writeMu.Lock()
	s.seq++
	ps := &protocol.PatchSet{Seq: s.seq}
	s.writeMu.Unlock()

	for _, m := range muts {
		p := protocol.Patch{Node: m.Node, Name: m.Name, Value: m.Value}
		switch m.Op {
		case dom.OpSetAttr:
			p.Op = protocol.PatchSetAttr
		case dom.OpRemoveAttr:
			p.Op = protocol.PatchRemoveAttr
		case dom.OpSetProp:
			p.Op = protocol.PatchSetProp
		case dom.OpSetText:
			p.Op = protocol.PatchSetText
		case dom.OpAppend:
			p.Op = protocol.PatchAppend
		case dom.OpRemove:
			p.Op = protocol.PatchRemove
		default:
			continue
		}
		ps.Patches = append(ps.Patches, p)
	}
	for _, url := range navs {
		ps.Patches = append(ps.Patches, protocol.Patch{Op: protocol.PatchNavigate, Value: url})
	}
	return ps
}

// ReadLoop reads frames until the connection drops or the session closes.
// It blocks; run it on its own goroutine per connection.
func (s *Session) ReadLoop(ctx context.Context) {
	defer s.Close()
	// Every dispatch ran on this goroutine, so its tracking entry must be
	// dropped here or it outlives the session.
	defer tether.CleanupGoroutineContext()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		default:
		}

		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				metrics.RecordWebSocketError("read")
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			metrics.RecordWebSocketError("decode")
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(ctx, frame.Payload)
		case protocol.FrameControl:
			s.handleControlFrame(frame.Payload)
		case protocol.FrameAck:
			s.handleAckFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

func (s *Session) handleEventFrame(ctx context.Context, payload []byte) {
	pe, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Error("event decode error", "error", err)
		metrics.RecordWebSocketError("decode")
		return
	}

	_, span := s.tracer.Start(ctx, "tether.dispatch",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("tether.event", pe.Type.String()),
			attribute.Int64("tether.node", int64(pe.Node)),
		),
	)
	start := time.Now()
	ps, err := s.HandleEvent(pe)
	metrics.RecordDispatch(pe.Type.String(), err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("dispatch failed", "event", pe.Type.String(), "node", pe.Node, "error", err)
	}
	span.End()

	if ps != nil && len(ps.Patches) > 0 {
		if werr := s.sendPatchSet(ps); werr != nil {
			s.logger.Error("patch write failed", "error", werr)
			metrics.RecordWebSocketError("write")
			s.Close()
		}
	}
}

func (s *Session) handleControlFrame(payload []byte) {
	c, err := protocol.DecodeControl(payload)
	if err != nil {
		s.logger.Error("control decode error", "error", err)
		return
	}

	switch c.Type {
	case protocol.ControlPing:
		pong := protocol.EncodeControl(&protocol.Control{Type: protocol.ControlPong, Token: c.Token})
		if err := s.writeFrame(protocol.NewFrame(protocol.FrameControl, pong)); err != nil {
			s.logger.Error("pong write failed", "error", err)
		}
	case protocol.ControlPong:
		s.logger.Debug("pong", "token", c.Token)
	case protocol.ControlShutdown:
		s.Close()
	}
}

func (s *Session) handleAckFrame(payload []byte) {
	ack, err := protocol.DecodeAck(payload)
	if err != nil {
		s.logger.Error("ack decode error", "error", err)
		return
	}
	s.writeMu.Lock()
	if ack.LastSeq > s.lastAck {
		s.lastAck = ack.LastSeq
	}
	s.writeMu.Unlock()
}

func (s *Session) sendPatchSet(ps *protocol.PatchSet) error {
	metrics.RecordPatches(len(ps.Patches))
	return s.writeFrame(protocol.NewFrame(protocol.FramePatches, protocol.EncodePatchSet(ps)))
}

func (s *Session) writeFrame(f *protocol.Frame) error {
	if s.conn == nil {
		return ErrSessionClosed
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, f.Encode())
}

// Close tears the session down: the connection is closed and the root's
// owner scope disposed, releasing every signal, effect, and ref it holds.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.conn != nil {
			shutdown := protocol.EncodeControl(&protocol.Control{Type: protocol.ControlShutdown})
			s.writeFrame(protocol.NewFrame(protocol.FrameControl, shutdown))
			s.conn.Close()
		}
		s.root.Close()
		metrics.RecordSessionClose()
		s.logger.Info("session closed")
	})
}
