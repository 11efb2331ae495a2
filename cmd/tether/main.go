package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┌─┐┌┬┐┬ ┬┌─┐┬─┐
   ║ ├┤  │ ├─┤├┤ ├┬┘
   ╩ └─┘ ┴ ┴ ┴└─┘┴└─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "tether",
		Short: "Reactive signal-to-DOM bindings served from Go",
		Long: `Tether binds Go signals to live DOM properties over a WebSocket wire.

Signals hold state on the server; bindings keep attributes and
properties converged in every connected browser:

  • Synchronous effects, no render scheduler
  • Controlled and uncontrolled form inputs
  • One-shot attribute and live property bindings
  • Compact binary patch protocol`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Tether ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}
