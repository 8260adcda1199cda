package rtprof_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anne-lang/profiler/rtprof"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := rtprof.NewConfig()

	assert.Empty(t, cfg.CPU)
	assert.Empty(t, cfg.Heap)
	assert.Empty(t, cfg.Goroutine)
	assert.Empty(t, cfg.Block)
	assert.Empty(t, cfg.Mutex)
	assert.False(t, cfg.Enabled())
}

func TestConfig_RegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := rtprof.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	wantFlags := []string{
		"cpu-profile",
		"heap-profile",
		"goroutine-profile",
		"block-profile",
		"mutex-profile",
		"block-profile-rate",
		"mutex-profile-fraction",
	}

	for _, name := range wantFlags {
		require.NotNil(t, flags.Lookup(name), "flag %s should be registered", name)
	}
}

func TestConfig_RegisterFlags_Parsing(t *testing.T) {
	t.Parallel()

	cfg := rtprof.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{
		"--cpu-profile=cpu.prof",
		"--heap-profile=heap.prof",
		"--block-profile-rate=100",
		"--mutex-profile-fraction=10",
	}))

	assert.Equal(t, "cpu.prof", cfg.CPU)
	assert.Equal(t, "heap.prof", cfg.Heap)
	assert.Equal(t, 100, cfg.BlockRate)
	assert.Equal(t, 10, cfg.MutexFraction)
	assert.True(t, cfg.Enabled())
}

func TestConfig_StartStop_Disabled(t *testing.T) {
	t.Parallel()

	s, err := rtprof.NewConfig().Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}

func TestConfig_StartStop_Snapshots(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg := rtprof.NewConfig()
	cfg.Heap = filepath.Join(dir, "heap.prof")
	cfg.Goroutine = filepath.Join(dir, "goroutine.prof")

	s, err := cfg.Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	for _, path := range []string{cfg.Heap, cfg.Goroutine} {
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Positive(t, info.Size())
	}
}

func TestConfig_Start_CPU(t *testing.T) {
	// CPU profiling is process-global, so no t.Parallel.
	cfg := rtprof.NewConfig()
	cfg.CPU = filepath.Join(t.TempDir(), "cpu.prof")

	s, err := cfg.Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	info, err := os.Stat(cfg.CPU)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConfig_Start_BadCPUPath(t *testing.T) {
	t.Parallel()

	cfg := rtprof.NewConfig()
	cfg.CPU = filepath.Join(t.TempDir(), "missing", "cpu.prof")

	_, err := cfg.Start()
	require.Error(t, err)
	assert.ErrorContains(t, err, "creating CPU profile")
}
