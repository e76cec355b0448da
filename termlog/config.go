package termlog

const (
	// DefaultTimeFormat is the timestamp layout used when none is set.
	DefaultTimeFormat = "15:04:05.000"
	// DefaultSeparator separates rendered segments.
	DefaultSeparator = " "
)

// FormatConfig aggregates every formatting choice for a [Writer]. It is a
// passive value: build one with [NewBuilder] (or fill it directly) and pass
// it to [NewWriter], which snapshots it. Changing the appearance of an
// installed Writer requires building and registering a new one.
type FormatConfig struct {
	// ShowTime prefixes each line with the event timestamp.
	ShowTime bool
	// TimeFormat is the [time.Time.Format] layout for timestamps. An
	// unrecognized layout renders literally; empty falls back to
	// [DefaultTimeFormat].
	TimeFormat string
	// ShowLevel renders the severity label.
	ShowLevel bool
	// LevelOutput selects short or long severity labels.
	LevelOutput LevelOutput
	// ShowTarget renders the emitting package path.
	ShowTarget bool
	// ShowFile renders the source file base name.
	ShowFile bool
	// ShowLineNumber renders the source line number.
	ShowLineNumber bool
	// MinLevel is the static level floor, gated independently of the
	// runtime-controlled floor.
	MinLevel Level
	// Separator is placed between segments; empty falls back to
	// [DefaultSeparator].
	Separator string
	// Styles controls the appearance of each segment.
	Styles Styles
}

// DefaultFormatConfig returns the default configuration: timestamps off,
// short level label on, target and source location off, minimum level
// [LevelTrace], default styles.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		ShowTime:    false,
		TimeFormat:  DefaultTimeFormat,
		ShowLevel:   true,
		LevelOutput: LevelOutputShort,
		MinLevel:    LevelTrace,
		Separator:   DefaultSeparator,
		Styles:      DefaultStyles(),
	}
}
