// Package rtprof captures Go runtime (pprof) profiles alongside scope
// timing.
//
// A [Config] selects which profiles to write; [Config.Start] begins CPU
// profiling and returns a [Session] whose Stop writes all enabled
// snapshot profiles. Profiles with an empty output path are disabled.
package rtprof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for runtime profile configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	CPU           string
	Heap          string
	Goroutine     string
	Block         string
	Mutex         string
	BlockRate     string
	MutexFraction string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config selects the runtime profiles to capture. An empty path disables
// that profile; the zero value captures nothing.
type Config struct {
	Flags Flags

	// Output paths (empty = disabled).
	CPU       string
	Heap      string
	Goroutine string
	Block     string
	Mutex     string

	// BlockRate is the block profile rate in nanoseconds, applied only
	// when the block profile is enabled.
	BlockRate int
	// MutexFraction is the 1/N mutex event sampling fraction, applied
	// only when the mutex profile is enabled.
	MutexFraction int
}

// NewConfig creates a new [Config] with default flag names and all
// profiles disabled.
func NewConfig() *Config {
	f := Flags{
		CPU:           "cpu-profile",
		Heap:          "heap-profile",
		Goroutine:     "goroutine-profile",
		Block:         "block-profile",
		Mutex:         "mutex-profile",
		BlockRate:     "block-profile-rate",
		MutexFraction: "mutex-profile-fraction",
	}

	return f.NewConfig()
}

// RegisterFlags adds runtime profile flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPU, c.Flags.CPU, "", "write CPU profile to file")
	flags.StringVar(&c.Heap, c.Flags.Heap, "", "write heap profile to file")
	flags.StringVar(&c.Goroutine, c.Flags.Goroutine, "", "write goroutine profile to file")
	flags.StringVar(&c.Block, c.Flags.Block, "", "write block profile to file")
	flags.StringVar(&c.Mutex, c.Flags.Mutex, "", "write mutex profile to file")

	flags.IntVar(&c.BlockRate, c.Flags.BlockRate, 1, "block profile rate (nanoseconds)")
	flags.IntVar(&c.MutexFraction, c.Flags.MutexFraction, 1, "mutex profile fraction (1/N sampling)")
}

// Enabled reports whether any profile output is configured.
func (c *Config) Enabled() bool {
	return c.CPU != "" || c.Heap != "" || c.Goroutine != "" || c.Block != "" || c.Mutex != ""
}

// Start applies sampling rates and begins CPU profiling if enabled. Call
// [Session.Stop] when done to write the snapshot profiles.
func (c *Config) Start() (*Session, error) {
	if c.Block != "" {
		runtime.SetBlockProfileRate(c.BlockRate)
	}

	if c.Mutex != "" {
		runtime.SetMutexProfileFraction(c.MutexFraction)
	}

	s := &Session{cfg: *c}

	if c.CPU != "" {
		f, err := os.Create(c.CPU)
		if err != nil {
			return nil, fmt.Errorf("creating CPU profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			_ = f.Close()

			return nil, fmt.Errorf("starting CPU profile: %w", err)
		}

		s.cpuFile = f
	}

	return s, nil
}

// Session is an in-progress runtime profile capture started by
// [Config.Start].
type Session struct {
	cfg     Config
	cpuFile *os.File
}

// Stop ends CPU profiling and writes all enabled snapshot profiles.
func (s *Session) Stop() error {
	if s.cpuFile != nil {
		pprof.StopCPUProfile()

		err := s.cpuFile.Close()
		if err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}

		s.cpuFile = nil
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", s.cfg.Heap},
		{"goroutine", s.cfg.Goroutine},
		{"block", s.cfg.Block},
		{"mutex", s.cfg.Mutex},
	}

	for _, snap := range snapshots {
		if snap.path == "" {
			continue
		}

		err := writeSnapshot(snap.name, snap.path)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeSnapshot(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("writing %s profile: %w", name, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("closing %s profile: %w", name, err)
	}

	return nil
}
