package termlog_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sephiroth74/logging-subscriber/termlog"
)

// newTestWriter builds a Writer rendering plain text into buf, bound to a
// private control state so tests never touch the process-wide one.
func newTestWriter(buf io.Writer, state *termlog.ControlState, b *termlog.Builder) *termlog.Writer {
	return b.
		WithOutput(buf).
		WithColor(false).
		WithControlState(state).
		Build()
}

func TestWriterRendering(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		builder *termlog.Builder
		logFunc func(*slog.Logger)
		want    string
	}{
		"default short label": {
			builder: termlog.NewBuilder(),
			logFunc: func(l *slog.Logger) { l.Info("hello") },
			want:    " I  hello\n",
		},
		"long label": {
			builder: termlog.NewBuilder().WithFormatLevel(termlog.LevelOutputLong),
			logFunc: func(l *slog.Logger) { l.Warn("disk low") },
			want:    "WARN disk low\n",
		},
		"label off": {
			builder: termlog.NewBuilder().WithLevel(false),
			logFunc: func(l *slog.Logger) { l.Info("bare") },
			want:    "bare\n",
		},
		"custom separator": {
			builder: termlog.NewBuilder().WithSeparator("|"),
			logFunc: func(l *slog.Logger) { l.Error("oops") },
			want:    " E |oops\n",
		},
		"fields after message": {
			builder: termlog.NewBuilder(),
			logFunc: func(l *slog.Logger) { l.Info("mounted", "disk", "sda1", "free", 42) },
			want:    " I  mounted disk=sda1 free=42\n",
		},
		"trace via slog level": {
			builder: termlog.NewBuilder().WithFormatLevel(termlog.LevelOutputLong),
			logFunc: func(l *slog.Logger) {
				l.Log(context.Background(), termlog.LevelTrace.Slog(), "wire byte")
			},
			want: "TRACE wire byte\n",
		},
	}

	for name, tc := range tcs {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			w := newTestWriter(&buf, termlog.NewControlState(), tc.builder)
			tc.logFunc(slog.New(w))

			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriterLevelGates(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		staticMin  termlog.Level
		runtimeMin termlog.Level
		logFunc    func(*slog.Logger)
		wantOutput bool
	}{
		"static floor blocks": {
			staticMin:  termlog.LevelWarn,
			runtimeMin: termlog.LevelTrace,
			logFunc:    func(l *slog.Logger) { l.Info("nope") },
			wantOutput: false,
		},
		"static floor admits": {
			staticMin:  termlog.LevelWarn,
			runtimeMin: termlog.LevelTrace,
			logFunc:    func(l *slog.Logger) { l.Warn("yes") },
			wantOutput: true,
		},
		"runtime floor blocks": {
			staticMin:  termlog.LevelTrace,
			runtimeMin: termlog.LevelError,
			logFunc:    func(l *slog.Logger) { l.Warn("nope") },
			wantOutput: false,
		},
		"runtime floor admits": {
			staticMin:  termlog.LevelTrace,
			runtimeMin: termlog.LevelError,
			logFunc:    func(l *slog.Logger) { l.Error("yes") },
			wantOutput: true,
		},
		"runtime off suppresses everything": {
			staticMin:  termlog.LevelTrace,
			runtimeMin: termlog.LevelOff,
			logFunc:    func(l *slog.Logger) { l.Error("nope") },
			wantOutput: false,
		},
	}

	for name, tc := range tcs {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			state := termlog.NewControlState()
			require.NoError(t, state.SetMinLevel(tc.runtimeMin))

			w := newTestWriter(&buf, state, termlog.NewBuilder().WithMinLevel(tc.staticMin))
			tc.logFunc(slog.New(w))

			if tc.wantOutput {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestWriterEnabledGate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	state := termlog.NewControlState()
	logger := slog.New(newTestWriter(&buf, state, termlog.NewBuilder()))

	state.Pause()
	logger.Error("suppressed regardless of level")
	assert.Empty(t, buf.String())

	state.Resume()
	logger.Info("visible")
	assert.Equal(t, " I  visible\n", buf.String())
}

func TestWriterTimestamp(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 2, 3, 4, 5, 678_000_000, time.UTC)

	tcs := map[string]struct {
		layout string
		want   string
	}{
		"default layout": {
			layout: "",
			want:   "03:04:05.678  I  tick\n",
		},
		"custom layout": {
			layout: "2006-01-02",
			want:   "2026-01-02  I  tick\n",
		},
		"unrecognized layout renders literally": {
			layout: "[time]",
			want:   "[time]  I  tick\n",
		},
	}

	for name, tc := range tcs {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			b := termlog.NewBuilder().WithTime(true)
			if tc.layout != "" {
				b = b.WithTimestampFormat(tc.layout)
			}

			w := newTestWriter(&buf, termlog.NewControlState(), b)

			rec := slog.NewRecord(at, slog.LevelInfo, "tick", 0)
			require.NoError(t, w.Handle(context.Background(), rec))

			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriterSourceSegments(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	w := newTestWriter(&buf, termlog.NewControlState(),
		termlog.NewBuilder().
			WithTarget(true).
			WithFile(true).
			WithLineNumber(true))

	slog.New(w).Info("here")

	got := buf.String()
	assert.Contains(t, got, "logging-subscriber/termlog_test")
	assert.Contains(t, got, "<writer_test.go:")
	assert.Contains(t, got, ">: here")
}

func TestWriterMissingSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	w := newTestWriter(&buf, termlog.NewControlState(),
		termlog.NewBuilder().WithLevel(false).WithTarget(true).WithFile(true))

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "orphan", 0)
	require.NoError(t, w.Handle(context.Background(), rec))

	assert.Equal(t, "? <?>: orphan\n", buf.String())
}

func TestWriterWithAttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	w := newTestWriter(&buf, termlog.NewControlState(), termlog.NewBuilder())

	h := w.WithAttrs([]slog.Attr{slog.String("app", "demo")}).WithGroup("req")
	slog.New(h).Info("served", "id", 7)

	assert.Equal(t, " I  served app=demo req.id=7\n", buf.String())
}

func TestWriterDeterministicRendering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	w := newTestWriter(&buf, termlog.NewControlState(),
		termlog.NewBuilder().WithTime(true).WithFormatLevel(termlog.LevelOutputLong))

	rec := slog.NewRecord(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC), slog.LevelWarn, "again", 0)
	rec.AddAttrs(slog.Int("n", 1), slog.String("s", "x"))

	require.NoError(t, w.Handle(context.Background(), rec))
	first := buf.String()

	buf.Reset()
	require.NoError(t, w.Handle(context.Background(), rec))

	assert.Equal(t, first, buf.String())
}

// failWriter fails every write.
type failWriter struct{}

var errSinkClosed = errors.New("sink closed")

func (failWriter) Write([]byte) (int, error) {
	return 0, errSinkClosed
}

func TestWriterSinkFailure(t *testing.T) {
	t.Parallel()

	w := termlog.NewBuilder().
		WithOutput(failWriter{}).
		WithColor(false).
		WithControlState(termlog.NewControlState()).
		Build()

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "lost", 0)

	err := w.Handle(context.Background(), rec)
	require.Error(t, err)
	require.ErrorIs(t, err, errSinkClosed)
}

// syncBuffer serializes concurrent writes, standing in for the sink's own
// write serialization.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestWriterConcurrentControlAndEmit(t *testing.T) {
	t.Parallel()

	out := &syncBuffer{}
	state := termlog.NewControlState()
	logger := slog.New(newTestWriter(out, state, termlog.NewBuilder()))

	var wg sync.WaitGroup

	// Togglers flip the enabled flag and the runtime floor.
	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				if i%2 == 0 {
					state.Pause()
				} else {
					state.Resume()
				}

				lvl := termlog.LevelTrace
				if i%3 == 0 {
					lvl = termlog.LevelWarn
				}

				//nolint:errcheck // Guards cannot be poisoned here.
				state.SetMinLevel(lvl)
			}
		}()
	}

	// Emitters log concurrently with the control churn.
	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 250; n++ {
				logger.Info("tick")
			}
		}()
	}

	wg.Wait()

	// Eventual consistency: the final control calls win.
	state.Resume()
	require.NoError(t, state.SetMinLevel(termlog.LevelTrace))

	enabled, err := state.IsEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	logger.Info("tick")

	// Every emitted line must be intact; no partial interleaving.
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.NotEmpty(t, lines)

	for _, line := range lines {
		assert.Equal(t, " I  tick", line)
	}
}
