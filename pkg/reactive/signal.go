package reactive

import (
	"sync"
)

// debugLog is set by the host process
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// WatchFunc observes a committed change
type WatchFunc[T any] func(prev, next T)

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Watch(fn WatchFunc[T]) (cancel func())
}

// State represents a reactive state value
type State[T any] struct {
	value T
	mu    sync.RWMutex

	// Watchers notified after every committed change
	watchers  map[uint64]WatchFunc[T]
	nextWatch uint64
	watchMu   sync.RWMutex
}

// NewState creates a new reactive state
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value:    initial,
		watchers: make(map[uint64]WatchFunc[T]),
	}
}

// Get returns the current value
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies watchers
func (s *State[T]) Set(value T) {
	s.Mutate(func(T) (T, bool) { return value, true })
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) {
	s.Mutate(func(v T) (T, bool) { return fn(v), true })
}

// Mutate is Update with an escape hatch: when fn reports false the value
// is left untouched and no watcher runs. It reports whether fn committed.
func (s *State[T]) Mutate(fn func(T) (T, bool)) bool {
	s.mu.Lock()
	prev := s.value
	next, ok := fn(prev)
	if ok {
		s.value = next
	}
	s.mu.Unlock()

	if !ok {
		return false
	}

	if debugLog != nil {
		debugLog("[State] committed, old:", prev, "new:", next)
	}

	// Notify outside the value lock so watchers may read or mutate again
	for _, w := range s.snapshotWatchers() {
		w(prev, next)
	}
	return true
}

// Watch registers fn and returns a function that removes it
func (s *State[T]) Watch(fn WatchFunc[T]) (cancel func()) {
	s.watchMu.Lock()
	s.nextWatch++
	id := s.nextWatch
	s.watchers[id] = fn
	s.watchMu.Unlock()

	return func() {
		s.watchMu.Lock()
		delete(s.watchers, id)
		s.watchMu.Unlock()
	}
}

// snapshotWatchers returns the watchers in registration order
func (s *State[T]) snapshotWatchers() []WatchFunc[T] {
	s.watchMu.RLock()
	defer s.watchMu.RUnlock()

	out := make([]WatchFunc[T], 0, len(s.watchers))
	for id := uint64(1); id <= s.nextWatch; id++ {
		if w, ok := s.watchers[id]; ok {
			out = append(out, w)
		}
	}
	return out
}

// Computed represents a memoized value derived from a source signal
type Computed[S, T any] struct {
	source  Signal[S]
	compute func(S) T
	value   T
	valid   bool
	mu      sync.Mutex
	cancel  func()
}

// NewComputed derives a value from source, recomputing lazily after
// every change of source
func NewComputed[S, T any](source Signal[S], compute func(S) T) *Computed[S, T] {
	c := &Computed[S, T]{
		source:  source,
		compute: compute,
	}
	c.cancel = source.Watch(func(_, _ S) { c.Invalidate() })
	return c
}

// Get returns the computed value, recalculating if necessary
func (c *Computed[S, T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid {
		c.value = c.compute(c.source.Get())
		c.valid = true
	}
	return c.value
}

// Invalidate marks the computed value as needing recalculation
func (c *Computed[S, T]) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// Dispose detaches the computed value from its source
func (c *Computed[S, T]) Dispose() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
