package zoom

import (
	"fmt"
	"sync"

	"github.com/recera/mission-control/internal/clock"
)

// Presentation is the visual state content is rendered at
type Presentation struct {
	Phase     Phase     `json:"phase"`
	Direction Direction `json:"direction"`

	// Settled is false only while animating
	Settled bool    `json:"settled"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
	Easing  string  `json:"easing,omitempty"`
}

// Transform returns the CSS transform for p
func (p Presentation) Transform() string {
	return fmt.Sprintf("scale(%g)", p.Scale)
}

func present(phase Phase, dir Direction) Presentation {
	p := Presentation{
		Phase:     phase,
		Direction: dir,
		Settled:   true,
		Scale:     1,
		Opacity:   1,
	}
	if phase != PhaseAnimating {
		return p
	}

	switch dir {
	case DirectionEntering:
		p.Settled = false
		p.Scale = 0.95
		p.Opacity = 0.8
		p.Easing = "ease-out"
	case DirectionExiting:
		p.Settled = false
		p.Scale = 1.05
		p.Opacity = 0.8
		p.Easing = "ease-in"
	}
	return p
}

// RevealGate withholds detail content from the start of a transition
// until the detail delay has passed
type RevealGate struct {
	cfg sequencerConfig

	mu       sync.Mutex
	revealed bool
	gen      uint64
	timer    *clock.Timer
	onReveal func()
}

// NewRevealGate creates a gate that starts revealed
func NewRevealGate(opts ...SequencerOption) *RevealGate {
	return &RevealGate{
		cfg:      newSequencerConfig(opts),
		revealed: true,
	}
}

// OnReveal sets a callback run each time content becomes visible
func (g *RevealGate) OnReveal(fn func()) {
	g.mu.Lock()
	g.onReveal = fn
	g.mu.Unlock()
}

// Hide conceals content and schedules the reveal, cancelling any
// earlier one
func (g *RevealGate) Hide() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.gen++
	gen := g.gen
	g.timer.Stop()
	g.revealed = false
	g.timer = g.cfg.clock.AfterFunc(g.cfg.timing.Detail, func() {
		g.cfg.post(func() { g.reveal(gen) })
	})
}

// Cancel drops a pending reveal. Content hidden by an earlier Hide stays
// hidden.
func (g *RevealGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.gen++
	g.timer.Stop()
	g.timer = nil
}

// Revealed reports whether detail content may be shown
func (g *RevealGate) Revealed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.revealed
}

func (g *RevealGate) reveal(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || g.revealed {
		g.mu.Unlock()
		return
	}
	g.revealed = true
	g.timer = nil
	fn := g.onReveal
	g.mu.Unlock()

	if fn != nil {
		fn()
	}
}
