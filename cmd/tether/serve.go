package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tether-ui/tether"
	"github.com/tether-ui/tether/el"
	"github.com/tether-ui/tether/pkg/dom"
	"github.com/tether-ui/tether/pkg/live"
	"github.com/tether-ui/tether/pkg/metrics"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		logLevel  string
		anyOrigin bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo form application",
		Long: `Serve a demo page exercising every binding kind: a controlled text
input, a checkbox, a textarea, a select, and an uncontrolled input
read through a ref on submit.

Examples:
  tether serve
  tether serve --addr=:3000 --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, logLevel, anyOrigin)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&anyOrigin, "allow-any-origin", false, "Disable the WebSocket origin check")

	return cmd
}

func runServe(addr, logLevel string, anyOrigin bool) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	metrics.Init()

	config := live.DefaultServerConfig()
	config.Addr = addr
	config.Title = "Tether demo"
	if anyOrigin {
		config.CheckOrigin = func(*http.Request) bool { return true }
	}

	printBanner()
	logger.Info("starting demo server", "addr", addr)

	srv := live.NewServer(demoPage, config, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := srv.ListenAndServe(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// demoPage builds one page worth of state and markup. It runs per
// session, so every connection gets its own signals.
func demoPage() *dom.Element {
	name := tether.NewSignal("")
	agreed := tether.NewSignal(false)
	notes := tether.NewSignal("")
	flavor := tether.NewSignal("vanilla")
	submitted := tether.NewSignal("")

	free := tether.NewRef[*dom.Element]()

	echo := el.Text("")
	tether.CreateEffect(func() tether.Cleanup {
		echo.SetText("hello " + name.Get())
		return nil
	})

	result := el.Text("")
	tether.CreateEffect(func() tether.Cleanup {
		result.SetText(submitted.Get())
		return nil
	})

	return el.Div(
		el.H1("Tether demo"),

		el.Label(el.For("name"), "Name "),
		el.Input(el.ID("name"), el.Type("text"), el.Placeholder("type here"), el.BindValue(name)),
		el.P(echo),

		el.Label(el.For("agree"), "Agree "),
		el.Input(el.ID("agree"), el.Type("checkbox"), el.BindChecked(agreed)),

		el.Label(el.For("notes"), "Notes "),
		el.Textarea(el.ID("notes"), el.Rows(4), el.Cols(40), el.BindValue(notes)),

		el.Label(el.For("flavor"), "Flavor "),
		el.Select(el.ID("flavor"),
			el.Option(el.Value("vanilla"), "Vanilla"),
			el.Option(el.Value("chocolate"), "Chocolate"),
			el.Option(el.Value("mint"), "Mint"),
			el.BindValue(flavor),
		),

		el.Form(el.Action("/submitted"),
			el.Input(el.Type("text"), el.Value("edit me"), el.Ref(free)),
			el.Button(el.Type("submit"), "Submit"),
			el.OnSubmit(func(ev *dom.Event) {
				ev.PreventDefault()
				if input, ok := free.Current(); ok {
					submitted.Set("submitted: " + input.Value())
				}
			}),
		),
		el.P(result),
	)
}
