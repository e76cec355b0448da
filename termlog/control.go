package termlog

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// ControlState is the runtime control state consulted by a [Writer] on
// every event: an enabled flag and the current minimum level. The two
// fields are independently guarded, so toggling one never blocks readers
// of the other. All methods are safe for concurrent use.
//
// Most hosts use the process-wide instance via the package-level control
// functions ([PauseLogging], [SetMinLevel], ...). Create private instances
// with [NewControlState] for tests or for writers that must not share the
// process state.
type ControlState struct {
	enabled   guarded[bool]
	minLevel  guarded[Level]
	companion atomic.Pointer[slog.LevelVar]
}

// NewControlState returns a state with logging enabled and the minimum
// level at [LevelTrace] (most permissive).
func NewControlState() *ControlState {
	s := &ControlState{}
	s.enabled.value = true
	s.minLevel.value = LevelTrace

	return s
}

// SetEnabled unconditionally overwrites the enabled flag. It returns
// [ErrPoisoned] if the flag's guard was poisoned.
func (s *ControlState) SetEnabled(v bool) error {
	return s.enabled.set(v)
}

// IsEnabled returns the current enabled flag, or [ErrPoisoned].
func (s *ControlState) IsEnabled() (bool, error) {
	return s.enabled.get()
}

// active is the Writer-side read of the enabled flag: a poisoned guard
// reads as disabled (fail closed).
func (s *ControlState) active() bool {
	v, err := s.enabled.get()

	return err == nil && v
}

// Pause disables output. It is best-effort: a poisoned guard is ignored,
// since logging must never destabilize the host. If a companion
// [slog.LevelVar] is registered it is raised to the off threshold.
func (s *ControlState) Pause() {
	_ = s.enabled.set(false)

	if lv := s.companion.Load(); lv != nil {
		lv.Set(LevelOff.Slog())
	}
}

// Resume re-enables output. Best-effort, like [ControlState.Pause]. A
// registered companion [slog.LevelVar] is lowered to the trace threshold.
func (s *ControlState) Resume() {
	_ = s.enabled.set(true)

	if lv := s.companion.Load(); lv != nil {
		lv.Set(LevelTrace.Slog())
	}
}

// SetMinLevel overwrites the current minimum level. It returns
// [ErrPoisoned] if the level's guard was poisoned.
func (s *ControlState) SetMinLevel(l Level) error {
	return s.minLevel.set(l)
}

// MinLevel returns the current minimum level. A poisoned guard reads as
// [LevelOff], so a corrupted lock suppresses output rather than letting
// everything through.
func (s *ControlState) MinLevel() Level {
	l, err := s.minLevel.get()
	if err != nil {
		return LevelOff
	}

	return l
}

// Verbose reports whether the current minimum level is [LevelTrace].
func (s *ControlState) Verbose() bool {
	return s.MinLevel() == LevelTrace
}

// SetCompanionLevelVar registers the level variable of a collaborating
// logger. Once registered, [ControlState.Pause] drives it to the off
// threshold and [ControlState.Resume] back to trace, so both renderers
// mute together. Pass nil to unregister.
func (s *ControlState) SetCompanionLevelVar(lv *slog.LevelVar) {
	s.companion.Store(lv)
}

// sharedState is the process-wide control state, created on first use and
// alive for the process lifetime.
var sharedState = sync.OnceValue(NewControlState)

// SharedControlState returns the process-wide [ControlState] used by every
// Writer that was not given a private one.
func SharedControlState() *ControlState {
	return sharedState()
}

// SetEnabled overwrites the enabled flag of the shared control state.
func SetEnabled(v bool) error {
	return sharedState().SetEnabled(v)
}

// IsEnabled returns the enabled flag of the shared control state.
func IsEnabled() (bool, error) {
	return sharedState().IsEnabled()
}

// PauseLogging disables output process-wide. Safe to call from any
// goroutine; events already dispatched on other goroutines may still
// render.
func PauseLogging() {
	sharedState().Pause()
}

// ResumeLogging re-enables output process-wide.
func ResumeLogging() {
	sharedState().Resume()
}

// SetMinLevel overwrites the minimum level of the shared control state.
func SetMinLevel(l Level) error {
	return sharedState().SetMinLevel(l)
}

// GetLoggingLevel returns the minimum level of the shared control state,
// [LevelOff] if its guard was poisoned.
func GetLoggingLevel() Level {
	return sharedState().MinLevel()
}

// IsLoggingVerbose reports whether the shared minimum level is
// [LevelTrace].
func IsLoggingVerbose() bool {
	return sharedState().Verbose()
}

// SetCompanionLevelVar registers a collaborating logger's level variable
// on the shared control state. See [ControlState.SetCompanionLevelVar].
func SetCompanionLevelVar(lv *slog.LevelVar) {
	sharedState().SetCompanionLevelVar(lv)
}
