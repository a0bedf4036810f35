package zoom

// MaxVisibleCrumbs is the longest trail shown without collapsing
const MaxVisibleCrumbs = 4

// Crumb is one item of a rendered breadcrumb trail
type Crumb struct {
	Entry StackEntry `json:"entry"`

	// Index is the position of Entry in the full stack, for JumpToStackIndex.
	// It is -1 for the ellipsis.
	Index int `json:"index"`

	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Clickable reports whether the crumb may trigger a jump
func (c Crumb) Clickable(transitioning bool) bool {
	return !c.Ellipsis && !c.Current && !transitioning
}

// VisibleBreadcrumbs derives the trail for stack. Nothing is shown at the
// root level. Stacks longer than maxVisible collapse to the first entry,
// an ellipsis and the last three entries.
func VisibleBreadcrumbs(stack []StackEntry, maxVisible int) []Crumb {
	if len(stack) <= 1 {
		return nil
	}
	if maxVisible < 4 {
		maxVisible = 4
	}

	var crumbs []Crumb
	if len(stack) > maxVisible {
		crumbs = append(crumbs,
			Crumb{Entry: stack[0], Index: 0},
			Crumb{Index: -1, Ellipsis: true},
		)
		for i := len(stack) - 3; i < len(stack); i++ {
			crumbs = append(crumbs, Crumb{Entry: stack[i], Index: i})
		}
	} else {
		crumbs = make([]Crumb, len(stack))
		for i, e := range stack {
			crumbs[i] = Crumb{Entry: e, Index: i}
		}
	}

	crumbs[len(crumbs)-1].Current = true
	return crumbs
}
