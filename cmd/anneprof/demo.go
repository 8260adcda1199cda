package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/anne-lang/profiler"
	"github.com/anne-lang/profiler/rtprof"
)

func newDemoCmd() *cobra.Command {
	var (
		cfg        = profiler.NewConfig()
		rt         = rtprof.NewConfig()
		configFile string
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "demo [flags]",
		Short: "Record a synthetic workload to a profile file",
		Long: `demo runs a small synthetic workload under the profiler and writes the
recorded scopes to the configured output. Runtime (pprof) profiles can be
captured alongside via the *-profile flags.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDemo(cfg, rt, configFile, iterations)
		},
	}

	cfg.RegisterFlags(cmd.Flags())
	rt.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&configFile, "config", "",
		"YAML file with profiler output configuration")
	cmd.Flags().IntVar(&iterations, "iterations", 10,
		"workload iterations to record")

	err := cfg.RegisterCompletions(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runDemo(cfg *profiler.Config, rt *rtprof.Config, configFile string, iterations int) error {
	if configFile != "" {
		err := cfg.LoadFile(configFile)
		if err != nil {
			return err
		}
	}

	session, err := rt.Start()
	if err != nil {
		return err
	}

	p := profiler.New(profiler.WithLogger(slog.Default()))

	runWorkload(p, iterations)

	err = p.Close()
	if err != nil {
		return fmt.Errorf("closing profiler: %w", err)
	}

	err = cfg.Write(p)
	if err != nil {
		return err
	}

	slog.Info("profile written",
		"path", cfg.Output,
		"format", cfg.Format,
		"records", len(p.Records()))

	return session.Stop()
}

func runWorkload(p *profiler.Profiler, iterations int) {
	for range iterations {
		scope := p.StartScope("fib")
		fib(24)
		scope.End()

		scope = p.StartScope("sort")
		slices.Sort(rand.Perm(1 << 14))
		scope.End()
	}
}

func fib(n int) int {
	if n < 2 {
		return n
	}

	return fib(n-1) + fib(n-2)
}
