package termlog_test

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sephiroth74/logging-subscriber/termlog"
)

func Example() {
	w := termlog.NewBuilder().
		WithFormatLevel(termlog.LevelOutputLong).
		WithMinLevel(termlog.LevelWarn).
		WithOutput(os.Stdout).
		WithColor(false).
		WithControlState(termlog.NewControlState()).
		Build()

	logger := slog.New(w)

	logger.Info("below the floor")
	logger.Warn("disk low")

	// Output:
	// WARN disk low
}

func Example_pauseResume() {
	state := termlog.NewControlState()

	w := termlog.NewBuilder().
		WithFormatLevel(termlog.LevelOutputLong).
		WithOutput(os.Stdout).
		WithColor(false).
		WithControlState(state).
		Build()

	logger := slog.New(w)

	state.Pause()
	logger.Error("suppressed")

	state.Resume()
	logger.Warn("visible")

	// Output:
	// WARN visible
}

func ExamplePublisher() {
	pub := termlog.NewPublisher(termlog.WithPlainText())
	defer pub.Close() //nolint:errcheck // Close always returns nil.

	sub := pub.Subscribe()

	w := termlog.NewBuilder().
		WithFormatLevel(termlog.LevelOutputLong).
		WithOutput(pub).
		WithColor(false).
		WithControlState(termlog.NewControlState()).
		Build()

	slog.New(w).Warn("disk low")

	fmt.Print(<-sub.C())

	// Output:
	// WARN disk low
}
