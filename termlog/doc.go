// Package termlog provides a runtime-controllable, styled terminal log
// renderer for [log/slog] pipelines.
//
// A [Writer] is an [slog.Handler] whose appearance (colors, timestamp
// layout, level labels, source location) is frozen at build time, and whose
// activity (enabled/paused, minimum level) can be toggled at runtime from
// any goroutine without rebuilding. Assemble one with [NewBuilder]:
//
//	w := termlog.NewBuilder().
//		WithTime(true).
//		WithFormatLevel(termlog.LevelOutputLong).
//		WithMinLevel(termlog.LevelDebug).
//		Build()
//	slog.SetDefault(slog.New(w))
//
// Trace-level events use [Level.Slog]:
//
//	slog.Log(ctx, termlog.LevelTrace.Slog(), "handshake byte", "b", b)
//
// # Runtime control
//
// Every Writer consults a [ControlState] on each event. Writers share the
// process-wide state by default, so any collaborator can steer all of them:
//
//	termlog.PauseLogging()              // drop everything
//	termlog.ResumeLogging()             // render again
//	termlog.SetMinLevel(termlog.LevelWarn)
//
// Control reads fail closed: if a guard was poisoned by a panicking holder,
// [GetLoggingLevel] reports [LevelOff] and the Writer renders nothing,
// while [PauseLogging] and [ResumeLogging] stay best-effort and never
// propagate the failure. A collaborating logger's [slog.LevelVar] can be
// registered with [SetCompanionLevelVar] so pause and resume mute both
// renderers together.
//
// # Mirroring the stream
//
// A [Publisher] fans rendered lines out to subscribers, which is useful for
// displaying logs inside a TUI while still writing to stderr:
//
//	pub := termlog.NewPublisher(termlog.WithPlainText())
//	w := termlog.NewBuilder().
//		WithOutput(io.MultiWriter(os.Stderr, pub)).
//		Build()
//
//	sub := pub.Subscribe()
//	go func() {
//		for line := range sub.C() {
//			// Deliver line to the viewer.
//		}
//	}()
//
// # Host flags
//
// Hosts that expose logging options on their command line can register a
// [Config] with [github.com/spf13/pflag] and shell completion support via
// [github.com/spf13/cobra]:
//
//	cfg := termlog.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	b, err := cfg.NewBuilder()
package termlog
