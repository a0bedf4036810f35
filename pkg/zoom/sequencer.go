package zoom

import (
	"sync"
	"time"

	"github.com/recera/mission-control/internal/clock"
)

// Phase of the transition lifecycle
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseAnimating Phase = "animating"
	PhaseRevealing Phase = "revealing"
)

// Timing holds the phase durations
type Timing struct {
	// Motion is the length of the animating phase
	Motion time.Duration
	// Reveal follows Motion before the transition completes
	Reveal time.Duration
	// Detail is the delay after which detail content may show
	Detail time.Duration
}

// DefaultTiming returns the reference durations: 300ms of motion, 150ms
// of reveal and detail content after 350ms
func DefaultTiming() Timing {
	return Timing{
		Motion: 300 * time.Millisecond,
		Reveal: 150 * time.Millisecond,
		Detail: 350 * time.Millisecond,
	}
}

// Total is the time from transition start to completion
func (t Timing) Total() time.Duration {
	return t.Motion + t.Reveal
}

// SequencerOption configures a Sequencer or RevealGate
type SequencerOption func(*sequencerConfig)

type sequencerConfig struct {
	clock  clock.Clock
	post   func(func())
	timing Timing
}

// WithClock sets the clock timers are scheduled on
func WithClock(c clock.Clock) SequencerOption {
	return func(cfg *sequencerConfig) { cfg.clock = c }
}

// WithPost sets the function timer callbacks are handed to, typically the
// Go method of the session's scheduler loop. Without it callbacks run on
// the timer goroutine.
func WithPost(post func(func())) SequencerOption {
	return func(cfg *sequencerConfig) { cfg.post = post }
}

// WithTiming overrides the phase durations
func WithTiming(t Timing) SequencerOption {
	return func(cfg *sequencerConfig) { cfg.timing = t }
}

func newSequencerConfig(opts []SequencerOption) sequencerConfig {
	cfg := sequencerConfig{
		clock:  clock.Real(),
		post:   func(f func()) { f() },
		timing: DefaultTiming(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Sequencer drives one transition at a time through
// animating -> revealing -> idle and calls complete exactly once at the
// end. Starting a new transition cancels the pending one.
type Sequencer struct {
	cfg      sequencerConfig
	complete func()

	mu        sync.Mutex
	phase     Phase
	direction Direction
	gen       uint64
	timer     *clock.Timer
	listeners []func(Presentation)
}

// NewSequencer creates an idle sequencer that calls complete when a
// transition finishes
func NewSequencer(complete func(), opts ...SequencerOption) *Sequencer {
	return &Sequencer{
		cfg:       newSequencerConfig(opts),
		complete:  complete,
		phase:     PhaseIdle,
		direction: DirectionNone,
	}
}

// Start begins a transition in direction dir, restarting if one is
// already under way
func (s *Sequencer) Start(dir Direction) {
	s.mu.Lock()
	s.gen++
	s.timer.Stop()
	s.phase = PhaseAnimating
	s.direction = dir
	s.timer = s.schedule(s.gen, s.cfg.timing.Motion)
	p := s.presentationLocked()
	s.mu.Unlock()

	s.notify(p)
}

// Cancel abandons the pending transition without completing it
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	if s.phase == PhaseIdle {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.timer.Stop()
	s.timer = nil
	s.phase = PhaseIdle
	s.direction = DirectionNone
	p := s.presentationLocked()
	s.mu.Unlock()

	s.notify(p)
}

// Phase returns the current phase
func (s *Sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Presentation returns how content should be shown right now
func (s *Sequencer) Presentation() Presentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presentationLocked()
}

// OnChange registers fn to run after every phase change
func (s *Sequencer) OnChange(fn func(Presentation)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Sequencer) schedule(gen uint64, d time.Duration) *clock.Timer {
	return s.cfg.clock.AfterFunc(d, func() {
		s.cfg.post(func() { s.advance(gen) })
	})
}

// advance moves to the next phase unless gen has been superseded. A
// callback can be queued on the loop before Stop runs, so the timer
// alone does not guard against stale cycles.
func (s *Sequencer) advance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}

	finished := false
	switch s.phase {
	case PhaseAnimating:
		s.phase = PhaseRevealing
		s.timer = s.schedule(gen, s.cfg.timing.Reveal)
	case PhaseRevealing:
		s.phase = PhaseIdle
		s.direction = DirectionNone
		s.timer = nil
		s.gen++
		finished = true
	default:
		s.mu.Unlock()
		return
	}
	p := s.presentationLocked()
	s.mu.Unlock()

	s.notify(p)
	if finished && s.complete != nil {
		s.complete()
	}
}

func (s *Sequencer) presentationLocked() Presentation {
	return present(s.phase, s.direction)
}

func (s *Sequencer) notify(p Presentation) {
	s.mu.Lock()
	listeners := make([]func(Presentation), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
}
