package zoom

import "sync"

// Snapshot is everything a view needs to render one frame
type Snapshot struct {
	State        State        `json:"state"`
	Presentation Presentation `json:"presentation"`
	Breadcrumbs  []Crumb      `json:"breadcrumbs"`
	Revealed     bool         `json:"revealed"`
}

// Navigator is a Controller whose transitions are played out by a
// Sequencer and a RevealGate sharing the same clock and loop
type Navigator struct {
	*Controller

	seq    *Sequencer
	gate   *RevealGate
	cancel func()

	mu        sync.Mutex
	listeners []func(Snapshot)
}

// NewNavigator creates a navigator at the initial state
func NewNavigator(opts ...SequencerOption) *Navigator {
	n := &Navigator{
		Controller: NewController(),
		gate:       NewRevealGate(opts...),
	}
	n.seq = NewSequencer(func() { n.CompleteTransition() }, opts...)

	n.cancel = n.Watch(func(prev, next State) {
		if next.Transitioning {
			// Start emits through the sequencer listener
			n.gate.Hide()
			n.seq.Start(next.Direction)
			return
		}
		if prev.Transitioning {
			// No-op when the sequencer itself completed
			n.seq.Cancel()
		}
		n.emit()
	})
	n.seq.OnChange(func(Presentation) { n.emit() })
	n.gate.OnReveal(n.emit)
	return n
}

// Presentation returns the current presentation
func (n *Navigator) Presentation() Presentation {
	return n.seq.Presentation()
}

// Revealed reports whether detail content may be shown. Content is never
// revealed while the motion phase runs.
func (n *Navigator) Revealed() bool {
	return n.gate.Revealed() && n.seq.Phase() != PhaseAnimating
}

// Snapshot captures the current frame
func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{
		State:        n.State(),
		Presentation: n.Presentation(),
		Breadcrumbs:  n.VisibleBreadcrumbs(),
		Revealed:     n.Revealed(),
	}
}

// OnChange registers fn to receive a snapshot after every state change,
// phase change and reveal
func (n *Navigator) OnChange(fn func(Snapshot)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

// Close detaches the sequencer from the controller and drops pending timers
func (n *Navigator) Close() {
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.seq.Cancel()
	n.gate.Cancel()
}

func (n *Navigator) emit() {
	n.mu.Lock()
	listeners := make([]func(Snapshot), len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	if len(listeners) == 0 {
		return
	}
	snap := n.Snapshot()
	for _, fn := range listeners {
		fn(snap)
	}
}
