package profiler

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Output formats accepted by [Config].
const (
	// FormatTrace writes Chrome Trace Event Format JSON.
	FormatTrace = "trace"
	// FormatCSV writes one CSV row per record.
	FormatCSV = "csv"
)

// ErrUnknownFormat indicates an unrecognized output format string.
var ErrUnknownFormat = errors.New("unknown output format")

// Flags holds CLI flag names for profiler output configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Output string
	Format string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds profiler output configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags], or populate from a YAML file with
// [Config.LoadFile]. Use [Config.Write] to persist a session in the
// configured format.
type Config struct {
	Flags Flags `yaml:"-"`

	// Output is the file the session is written to.
	Output string `yaml:"output"`
	// Format is the output format, [FormatTrace] or [FormatCSV].
	Format string `yaml:"format"`
}

// NewConfig creates a new [Config] with default flag names, writing a
// trace file to profile.trace.json.
func NewConfig() *Config {
	f := Flags{
		Output: "output",
		Format: "format",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiler output flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "profile.trace.json",
		"profile output file path")
	flags.StringVar(&c.Format, c.Flags.Format, FormatTrace,
		fmt.Sprintf("profile output format, one of: %s, %s", FormatTrace, FormatCSV))
}

// RegisterCompletions registers shell completions for profiler output
// flags on cmd. The format flag completes to the known formats; the
// output flag keeps default file completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions([]string{FormatTrace, FormatCSV}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// LoadFile populates c from a YAML file. Fields absent from the file keep
// their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	err = yaml.Unmarshal(data, c)
	if err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// Write persists the session's records to [Config.Output] in
// [Config.Format]. It returns [ErrUnknownFormat] for an unrecognized
// format.
func (c *Config) Write(p *Profiler) error {
	switch c.Format {
	case FormatTrace:
		return p.Save(c.Output)
	case FormatCSV:
		return p.ExportCSV(c.Output)
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
}
