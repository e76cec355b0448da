package termlog

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for log configuration, allowing host
// applications to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Level       string
	LevelOutput string
	Time        string
	Target      string
	Source      string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Level:       LevelTrace.String(),
		LevelOutput: LevelOutputShort.String(),
		Flags:       f,
	}
}

// Config holds flag values a host can register on its own command line to
// feed a [Builder]. It is a convenience for host wiring: this module ships
// no command of its own, and a Builder is fully usable without it.
//
// Create instances with [NewConfig] and register flags with
// [Config.RegisterFlags]. Use [Config.NewBuilder] to obtain a
// pre-configured [Builder].
type Config struct {
	Level       string
	LevelOutput string
	Time        bool
	Target      bool
	Source      bool
	Flags       Flags
}

// NewConfig returns a new [Config] with default flag names.
// Use [Config.RegisterFlags] to add flags, or set values directly.
func NewConfig() *Config {
	f := Flags{
		Level:       "log-level",
		LevelOutput: "log-level-output",
		Time:        "log-time",
		Target:      "log-target",
		Source:      "log-source",
	}

	return f.NewConfig()
}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		fmt.Sprintf("minimum log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.LevelOutput, c.Flags.LevelOutput, c.LevelOutput,
		fmt.Sprintf("log level label style, one of: %s", GetAllLevelOutputStrings()))
	flags.BoolVar(&c.Time, c.Flags.Time, false,
		"prefix log lines with the event timestamp")
	flags.BoolVar(&c.Target, c.Flags.Target, false,
		"include the emitting package in log lines")
	flags.BoolVar(&c.Source, c.Flags.Source, false,
		"include source file and line number in log lines")
}

// RegisterCompletions registers shell completions for the enumerated log
// flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(GetAllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.LevelOutput,
		cobra.FixedCompletions(GetAllLevelOutputStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.LevelOutput, err)
	}

	return nil
}

// NewBuilder translates the stored flag values into a pre-configured
// [Builder]. The caller may chain further setters before building.
func (c *Config) NewBuilder() (*Builder, error) {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	out, err := ParseLevelOutput(c.LevelOutput)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewBuilder().
		WithMinLevel(lvl).
		WithFormatLevel(out).
		WithTime(c.Time).
		WithTarget(c.Target).
		WithFile(c.Source).
		WithLineNumber(c.Source), nil
}
