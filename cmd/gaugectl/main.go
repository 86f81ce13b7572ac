// gaugectl is an operator CLI over the river-conditions domain: list the
// station registry, classify readings offline, and run one-shot USGS
// fetches with optional local snapshots.
package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagBaseURL string
	flagTimeout time.Duration
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gaugectl",
	Short: "Inspect Missouri river gauges and water-level classifications",
	Long: `gaugectl works against the same station registry and classifier the
river-conditions service uses. The stations and classify commands run
entirely offline; fetch calls the USGS Instantaneous Values API.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url",
		"https://waterservices.usgs.gov/nwis/iv/", "USGS Instantaneous Values endpoint")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout",
		10*time.Second, "USGS request timeout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log client activity to stderr")
}

// cliLogger returns a text logger on stderr, silenced unless --verbose.
func cliLogger() *slog.Logger {
	if flagVerbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
