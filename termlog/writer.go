package termlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Writer renders log events as styled terminal lines. It implements
// [slog.Handler], so it composes into any slog pipeline; conventionally it
// is installed once as the process-wide terminal renderer:
//
//	slog.SetDefault(slog.New(termlog.NewBuilder().Build()))
//
// Each event is gated twice before rendering: against the bound
// [ControlState] (the runtime floor and the enabled flag, re-read on every
// event) and against the static [FormatConfig.MinLevel] floor frozen at
// build time. A Writer holds no other mutable state and is safe for
// concurrent use; every passed event becomes exactly one Write call of one
// newline-terminated line.
type Writer struct {
	cfg      FormatConfig
	state    *ControlState
	out      io.Writer
	color    bool
	colorSet bool
	bound    []boundField
	groups   []string
}

// WriterOption configures a [Writer] beyond its [FormatConfig].
type WriterOption func(*Writer)

// WithSink sets the destination stream. The default is [os.Stderr].
func WithSink(w io.Writer) WriterOption {
	return func(wr *Writer) {
		wr.out = w
	}
}

// WithColorMode forces styling on or off, overriding terminal detection.
func WithColorMode(enabled bool) WriterOption {
	return func(wr *Writer) {
		wr.color = enabled
		wr.colorSet = true
	}
}

// WithState binds the Writer to a private [ControlState] instead of the
// shared process-wide one.
func WithState(s *ControlState) WriterOption {
	return func(wr *Writer) {
		wr.state = s
	}
}

// NewWriter freezes cfg into a ready-to-install [Writer]. Zero-value
// TimeFormat and Separator fall back to the package defaults; style maps
// are deep-copied so later mutation of cfg cannot affect the Writer.
func NewWriter(cfg FormatConfig, opts ...WriterOption) *Writer {
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = DefaultTimeFormat
	}

	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}

	cfg.Styles = cfg.Styles.clone()

	w := &Writer{
		cfg:   cfg,
		state: SharedControlState(),
		out:   os.Stderr,
	}

	for _, opt := range opts {
		opt(w)
	}

	if !w.colorSet {
		w.color = detectColor(w.out)
	}

	return w
}

// detectColor reports whether styled output is appropriate for the sink.
func detectColor(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := out.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// Enabled implements [slog.Handler]. It consults the runtime control state
// and the static floor, so slog skips argument processing for gated events.
func (w *Writer) Enabled(_ context.Context, level slog.Level) bool {
	lvl := LevelFromSlog(level)
	if !w.cfg.MinLevel.Enables(lvl) || !w.state.MinLevel().Enables(lvl) {
		return false
	}

	return w.state.active()
}

// Handle implements [slog.Handler]. Gated events are dropped silently; a
// sink write failure is returned to slog, never raised as a panic.
func (w *Writer) Handle(_ context.Context, r slog.Record) error {
	lvl := LevelFromSlog(r.Level)
	if !w.cfg.MinLevel.Enables(lvl) || !w.state.MinLevel().Enables(lvl) {
		return nil
	}

	if !w.state.active() {
		return nil
	}

	_, err := io.WriteString(w.out, w.render(lvl, r))
	if err != nil {
		return fmt.Errorf("writing log line: %w", err)
	}

	return nil
}

// WithAttrs implements [slog.Handler]. Bound attributes render after the
// message of every subsequent line, in binding order.
func (w *Writer) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return w
	}

	nw := w.clone()
	for _, a := range attrs {
		nw.bound = appendAttr(nw.bound, nw.groups, a)
	}

	// Clip so concurrent Handle calls never append into shared capacity.
	nw.bound = slices.Clip(nw.bound)

	return nw
}

// WithGroup implements [slog.Handler]. Subsequent attribute keys are
// qualified with the group name, joined by dots.
func (w *Writer) WithGroup(name string) slog.Handler {
	if name == "" {
		return w
	}

	nw := w.clone()
	nw.groups = append(nw.groups, name)

	return nw
}

func (w *Writer) clone() *Writer {
	nw := *w
	nw.bound = slices.Clip(slices.Clone(w.bound))
	nw.groups = slices.Clip(slices.Clone(w.groups))

	return &nw
}

// boundField is a rendered key=value pair.
type boundField struct {
	key string
	val string
}

// appendAttr resolves a and appends its rendered fields to dst, qualifying
// keys with the group path. Groups flatten recursively; empty attrs and
// empty groups are elided, following slog handler conventions.
func appendAttr(dst []boundField, groups []string, a slog.Attr) []boundField {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		gs := groups
		if a.Key != "" {
			gs = append(slices.Clip(slices.Clone(groups)), a.Key)
		}

		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, gs, ga)
		}

		return dst
	}

	if a.Key == "" {
		return dst
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	return append(dst, boundField{key: key, val: a.Value.String()})
}

// render composes the full output line for one event. Segment order is
// fixed: timestamp, level label, target, source location, message, fields.
func (w *Writer) render(lvl Level, r slog.Record) string {
	var sb strings.Builder

	sep := w.cfg.Separator

	if w.cfg.ShowTime && !r.Time.IsZero() {
		sb.WriteString(w.paint(w.cfg.Styles.Timestamp, r.Time.Format(w.cfg.TimeFormat)))
		sb.WriteString(w.paint(w.cfg.Styles.Default, sep))
	}

	if w.cfg.ShowLevel {
		sb.WriteString(w.paint(w.cfg.Styles.level(lvl), lvl.label(w.cfg.LevelOutput)))
		sb.WriteString(w.paint(w.cfg.Styles.Default, sep))
	}

	w.renderSource(&sb, r.PC)

	sb.WriteString(w.paint(w.cfg.Styles.message(lvl), r.Message))

	fields := w.bound
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, w.groups, a)

		return true
	})

	for _, f := range fields {
		sb.WriteString(w.paint(w.cfg.Styles.Default, sep))
		sb.WriteString(w.paint(w.cfg.Styles.Default, f.key+"="+f.val))
	}

	sb.WriteByte('\n')

	return sb.String()
}

// renderSource writes the target and source location segments, closed by
// ": " whenever any of them rendered.
func (w *Writer) renderSource(sb *strings.Builder, pc uintptr) {
	if !w.cfg.ShowTarget && !w.cfg.ShowFile && !w.cfg.ShowLineNumber {
		return
	}

	target, file, line := sourceInfo(pc)

	var wroteTarget, wroteFile, wroteLine bool

	if w.cfg.ShowTarget {
		sb.WriteString(w.paint(w.cfg.Styles.Default, target))

		wroteTarget = true
	}

	if w.cfg.ShowFile {
		if wroteTarget {
			sb.WriteString(w.paint(w.cfg.Styles.Default, w.cfg.Separator))
		}

		sb.WriteString(w.paint(w.cfg.Styles.Default, "<"))
		sb.WriteString(w.paint(w.cfg.Styles.Default, file))

		wroteFile = true
	}

	if w.cfg.ShowLineNumber {
		if wroteFile {
			sb.WriteString(w.paint(w.cfg.Styles.Default, ":"))
		}

		sb.WriteString(w.paint(w.cfg.Styles.Default, strconv.Itoa(line)))
		sb.WriteString(w.paint(w.cfg.Styles.Default, ">"))

		wroteLine = true
	}

	if wroteFile && !wroteLine {
		sb.WriteString(w.paint(w.cfg.Styles.Default, ">"))
	}

	sb.WriteString(w.paint(w.cfg.Styles.Default, ": "))
}

// sourceInfo resolves the emitting package path, file base name, and line
// number from a record PC. Records without a PC yield "?" placeholders.
func sourceInfo(pc uintptr) (target, file string, line int) {
	if pc == 0 {
		return "?", "?", 0
	}

	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.Function == "" {
		return "?", "?", 0
	}

	target = frame.Function

	// Trim the function name down to its package path: everything before
	// the first dot after the final slash.
	slash := strings.LastIndexByte(target, '/')
	if dot := strings.IndexByte(target[slash+1:], '.'); dot >= 0 {
		target = target[:slash+1+dot]
	}

	file = "?"
	if frame.File != "" {
		file = filepath.Base(frame.File)
	}

	return target, file, frame.Line
}

// paint styles s when color is enabled; otherwise text passes through
// untouched, keeping output byte-deterministic.
func (w *Writer) paint(st lipgloss.Style, s string) string {
	if !w.color || s == "" {
		return s
	}

	return st.Render(s)
}
