// Package main provides the CLI entry point for anneprof, a tool for
// recording and inspecting scope timing profiles.
package main

import (
	"fmt"
	"log/slog"
	"os"

	charmlog "charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/anne-lang/profiler/version"
)

func main() {
	logLevel := "info"

	rootCmd := &cobra.Command{
		Use:   "anneprof",
		Short: "Record and inspect scope timing profiles",
		Long: `anneprof works with scope timing profiles in Chrome Trace Event Format.

The demo subcommand records a synthetic workload to a profile file; the
report subcommand summarizes a recorded profile per scope name.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level, one of: debug, info, warn, error")

	rootCmd.AddCommand(newReportCmd(), newDemoCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs a charm log handler as the slog default.
func setupLogging(level string) error {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})

	slog.SetDefault(slog.New(logger))

	return nil
}
