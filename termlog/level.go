package termlog

import (
	"errors"
	"log/slog"
	"strings"
)

// Level is a severity filter ordered from most to least restrictive:
// [LevelOff] admits no events, [LevelTrace] admits everything.
// "Minimum level L" means events at levels up to and including L render.
type Level int8

const (
	// LevelOff suppresses all output.
	LevelOff Level = iota
	// LevelError admits only errors.
	LevelError
	// LevelWarn admits warnings and errors.
	LevelWarn
	// LevelInfo admits informational messages and above.
	LevelInfo
	// LevelDebug admits debug messages and above.
	LevelDebug
	// LevelTrace admits everything.
	LevelTrace
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLevelOutput indicates an unrecognized level output string.
	ErrUnknownLevelOutput = errors.New("unknown level output")
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	}

	return "off"
}

// Slog converts the level to its [log/slog] equivalent. [LevelTrace] maps to
// slog.Level(-8), below [slog.LevelDebug]; [LevelOff] maps to a threshold
// above every standard level so that a [slog.LevelVar] set to it silences
// its logger.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelTrace:
		return slog.Level(-8)
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}

	return slog.Level(16)
}

// LevelFromSlog maps a [slog.Level] to the [Level] used for gating. Levels
// between the standard values round down toward the more verbose bucket,
// mirroring slog's own threshold semantics.
func LevelFromSlog(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarn
	case l >= slog.LevelInfo:
		return LevelInfo
	case l >= slog.LevelDebug:
		return LevelDebug
	}

	return LevelTrace
}

// Enables reports whether an event at the given level passes a minimum
// level of l. [LevelOff] events never pass.
func (l Level) Enables(event Level) bool {
	return event != LevelOff && event <= l
}

// ParseLevel parses a log level string and returns the corresponding
// [Level].
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	}

	return LevelOff, ErrUnknownLogLevel
}

// GetAllLevelStrings returns the canonical level names, most restrictive
// first.
func GetAllLevelStrings() []string {
	return []string{"off", "error", "warn", "info", "debug", "trace"}
}

// LevelOutput selects how severity labels are rendered.
type LevelOutput uint8

const (
	// LevelOutputShort renders a single-letter label centered in a
	// three-column cell, e.g. " W ".
	LevelOutputShort LevelOutput = iota
	// LevelOutputLong renders the full label, e.g. "WARN".
	LevelOutputLong
)

// String returns the lowercase name of the output mode.
func (o LevelOutput) String() string {
	if o == LevelOutputLong {
		return "long"
	}

	return "short"
}

// ParseLevelOutput parses a level output string and returns the
// corresponding [LevelOutput].
func ParseLevelOutput(output string) (LevelOutput, error) {
	switch strings.ToLower(output) {
	case "short", "abbreviated":
		return LevelOutputShort, nil
	case "long":
		return LevelOutputLong, nil
	}

	return LevelOutputShort, ErrUnknownLevelOutput
}

// GetAllLevelOutputStrings returns the canonical level output names.
func GetAllLevelOutputStrings() []string {
	return []string{"short", "long"}
}

// label returns the rendered severity label for the given output mode.
func (l Level) label(o LevelOutput) string {
	if o == LevelOutputLong {
		switch l {
		case LevelError:
			return "ERROR"
		case LevelWarn:
			return "WARN"
		case LevelInfo:
			return "INFO"
		case LevelDebug:
			return "DEBUG"
		case LevelTrace:
			return "TRACE"
		}

		return "OFF"
	}

	switch l {
	case LevelError:
		return " E "
	case LevelWarn:
		return " W "
	case LevelInfo:
		return " I "
	case LevelDebug:
		return " D "
	case LevelTrace:
		return " T "
	}

	return " ? "
}
