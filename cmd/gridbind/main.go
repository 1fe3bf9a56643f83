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
  ┌─┐┬─┐┬┌┬┐┌┐ ┬┌┐┌┌┬┐
  │ ┬├┬┘│ ││├┴┐││││ ││
  └─┘┴└─┴─┴┘└─┘┴┘└┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridbind",
		Short: "Snapshot diffing for sectioned collection views",
		Long: `Gridbind keeps sectioned collection views in sync with immutable
data snapshots. Each update is diffed per section and applied as a
minimal batch of row insertions and removals.

The gridbind binary runs a demo server that streams batched edits
to websocket clients.`,
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

// printBanner prints the gridbind ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
