package termlog

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Builder accumulates formatting options and produces a bound [Writer].
// All options have safe defaults (see [DefaultFormatConfig]), so
// [Builder.Build] never fails. A Builder owns no runtime state; building
// has no effect on any [ControlState].
//
// Setters return the receiver for chaining:
//
//	w := termlog.NewBuilder().
//		WithTime(true).
//		WithFormatLevel(termlog.LevelOutputLong).
//		WithMinLevel(termlog.LevelDebug).
//		Build()
type Builder struct {
	cfg  FormatConfig
	opts []WriterOption
}

// NewBuilder returns a Builder starting from [DefaultFormatConfig].
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultFormatConfig()}
}

// WithTime toggles the timestamp segment.
func (b *Builder) WithTime(show bool) *Builder {
	b.cfg.ShowTime = show

	return b
}

// WithTimestampFormat sets the [time.Time.Format] layout for timestamps.
// The layout is not validated; an unrecognized pattern renders literally
// at emit time.
func (b *Builder) WithTimestampFormat(layout string) *Builder {
	b.cfg.TimeFormat = layout

	return b
}

// WithLevel toggles the severity label segment.
func (b *Builder) WithLevel(show bool) *Builder {
	b.cfg.ShowLevel = show

	return b
}

// WithTarget toggles the emitting package path segment.
func (b *Builder) WithTarget(show bool) *Builder {
	b.cfg.ShowTarget = show

	return b
}

// WithFile toggles the source file segment.
func (b *Builder) WithFile(show bool) *Builder {
	b.cfg.ShowFile = show

	return b
}

// WithLineNumber toggles the source line number segment.
func (b *Builder) WithLineNumber(show bool) *Builder {
	b.cfg.ShowLineNumber = show

	return b
}

// WithMinLevel sets the static level floor of the built Writer. The floor
// gates independently of the runtime-controlled level, so pausing or
// re-leveling at runtime never requires rebuilding.
func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l

	return b
}

// WithFormatLevel selects short or long severity labels.
func (b *Builder) WithFormatLevel(o LevelOutput) *Builder {
	b.cfg.LevelOutput = o

	return b
}

// WithSeparator sets the string placed between segments.
func (b *Builder) WithSeparator(sep string) *Builder {
	b.cfg.Separator = sep

	return b
}

// WithDefaultStyle sets the style for plain text (separators, punctuation,
// and message text without a per-level override).
func (b *Builder) WithDefaultStyle(st lipgloss.Style) *Builder {
	b.cfg.Styles.Default = st

	return b
}

// WithDateTimeStyle sets the timestamp style.
func (b *Builder) WithDateTimeStyle(st lipgloss.Style) *Builder {
	b.cfg.Styles.Timestamp = st

	return b
}

// WithLevelStyle sets the label style for one severity level.
func (b *Builder) WithLevelStyle(l Level, st lipgloss.Style) *Builder {
	if b.cfg.Styles.Levels == nil {
		b.cfg.Styles.Levels = make(map[Level]lipgloss.Style)
	}

	b.cfg.Styles.Levels[l] = st

	return b
}

// WithMessageStyle overrides the message text style for events at one
// severity level.
func (b *Builder) WithMessageStyle(l Level, st lipgloss.Style) *Builder {
	if b.cfg.Styles.Messages == nil {
		b.cfg.Styles.Messages = make(map[Level]lipgloss.Style)
	}

	b.cfg.Styles.Messages[l] = st

	return b
}

// WithOutput sets the destination stream. The default is [os.Stderr]. The
// stream is assumed to serialize concurrent writes itself; the Writer
// issues one Write call per rendered line.
func (b *Builder) WithOutput(w io.Writer) *Builder {
	b.opts = append(b.opts, WithSink(w))

	return b
}

// WithColor forces styling on or off. Without it, styling is enabled only
// when the destination is a terminal and NO_COLOR is unset.
func (b *Builder) WithColor(enabled bool) *Builder {
	b.opts = append(b.opts, WithColorMode(enabled))

	return b
}

// WithControlState binds the built Writer to a private [ControlState]
// instead of the shared process-wide one.
func (b *Builder) WithControlState(s *ControlState) *Builder {
	b.opts = append(b.opts, WithState(s))

	return b
}

// Build freezes the accumulated configuration into a ready-to-install
// [Writer]. The Builder may be discarded afterwards; further setter calls
// do not affect the built Writer.
func (b *Builder) Build() *Writer {
	return NewWriter(b.cfg, b.opts...)
}
