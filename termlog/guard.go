package termlog

import (
	"errors"
	"sync"
)

// ErrPoisoned reports that a guarded value was abandoned by a holder that
// panicked inside its critical section. Readers must treat the value as
// unavailable; see [ControlState] for the fail-closed policy.
var ErrPoisoned = errors.New("termlog: control state guard poisoned")

// guarded is a mutex-protected value whose exclusive-access operations fail
// once a prior holder panicked while holding the lock. The guard stays
// usable for error reporting; it never wedges callers.
type guarded[T any] struct {
	mu       sync.Mutex
	poisoned bool
	value    T
}

// get returns the current value, or [ErrPoisoned].
func (g *guarded[T]) get() (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.poisoned {
		var zero T

		return zero, ErrPoisoned
	}

	return g.value, nil
}

// set replaces the value, or returns [ErrPoisoned].
func (g *guarded[T]) set(v T) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.poisoned {
		return ErrPoisoned
	}

	g.value = v

	return nil
}

// update runs fn with exclusive access to the value. A panic inside fn
// poisons the guard before propagating to the caller.
func (g *guarded[T]) update(fn func(*T)) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.poisoned {
		return ErrPoisoned
	}

	defer func() {
		if r := recover(); r != nil {
			g.poisoned = true

			panic(r)
		}
	}()

	fn(&g.value)

	return nil
}
