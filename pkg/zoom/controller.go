package zoom

import (
	"slices"

	"github.com/recera/mission-control/pkg/reactive"
)

// Controller owns the navigation state of one session. Operations are
// applied atomically; rejected operations leave the state untouched and
// notify nobody.
type Controller struct {
	state  *reactive.State[State]
	crumbs *reactive.Computed[State, []Crumb]
}

// NewController creates a controller at the initial state
func NewController() *Controller {
	state := reactive.NewState(Initial())
	return &Controller{
		state: state,
		crumbs: reactive.NewComputed[State, []Crumb](state, func(s State) []Crumb {
			return VisibleBreadcrumbs(s.Stack, MaxVisibleCrumbs)
		}),
	}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	return c.state.Get().Clone()
}

// EnterSector drills into sector, optionally targeting an entity.
// An empty label defaults to the sector name.
func (c *Controller) EnterSector(sector, targetID, targetType, label string) Result {
	return c.apply(func(s State) (State, Result) {
		return EnterSector(s, sector, targetID, targetType, label)
	})
}

// ExitLevel goes back one level
func (c *Controller) ExitLevel() Result {
	return c.apply(ExitLevel)
}

// JumpToStackIndex truncates the path to index
func (c *Controller) JumpToStackIndex(index int) Result {
	return c.apply(func(s State) (State, Result) {
		return JumpToStackIndex(s, index)
	})
}

// JumpToElement navigates straight to an element inside sector
func (c *Controller) JumpToElement(sector, elementID, elementType, label string) Result {
	return c.apply(func(s State) (State, Result) {
		return JumpToElement(s, sector, elementID, elementType, label)
	})
}

// CompleteTransition clears the transition flags. Calling it while idle is
// harmless.
func (c *Controller) CompleteTransition() Result {
	return c.apply(CompleteTransition)
}

// Breadcrumbs returns a copy of the full stack
func (c *Controller) Breadcrumbs() []StackEntry {
	return slices.Clone(c.state.Get().Stack)
}

// VisibleBreadcrumbs returns the display trail for the current stack
func (c *Controller) VisibleBreadcrumbs() []Crumb {
	return slices.Clone(c.crumbs.Get())
}

// Watch registers fn to run after each applied operation. Watchers receive
// their own copies of the states.
func (c *Controller) Watch(fn func(prev, next State)) (cancel func()) {
	return c.state.Watch(func(prev, next State) {
		fn(prev.Clone(), next.Clone())
	})
}

func (c *Controller) apply(op func(State) (State, Result)) Result {
	var res Result
	c.state.Mutate(func(s State) (State, bool) {
		next, r := op(s)
		res = r
		return next, r.Applied
	})
	return res
}
