package zoom

import (
	"reflect"
	"testing"
)

// enterAndSettle performs EnterSector followed by the completion the
// sequencer would deliver
func enterAndSettle(t *testing.T, c *Controller, sector, targetID, targetType, label string) {
	t.Helper()
	if res := c.EnterSector(sector, targetID, targetType, label); !res.Applied {
		t.Fatalf("EnterSector(%q) rejected: %s", sector, res.Reason)
	}
	c.CompleteTransition()
}

func TestController_InitialState(t *testing.T) {
	c := NewController()
	s := c.State()

	if s.CurrentLevel != 1 {
		t.Errorf("Expected level 1, got %d", s.CurrentLevel)
	}
	if s.CurrentSector != "" || s.CurrentTarget != "" {
		t.Errorf("Expected no sector or target, got %q/%q", s.CurrentSector, s.CurrentTarget)
	}
	if len(s.Stack) != 1 || !s.Stack[0].IsRoot() {
		t.Fatalf("Expected only the root entry, got %+v", s.Stack)
	}
	if s.Stack[0].Label != "Cockpit" {
		t.Errorf("Expected root label Cockpit, got %q", s.Stack[0].Label)
	}
	if s.Transitioning || s.Direction != DirectionNone {
		t.Errorf("Expected idle state, got transitioning=%v direction=%s", s.Transitioning, s.Direction)
	}
}

func TestController_EnterSector(t *testing.T) {
	c := NewController()
	res := c.EnterSector("ORGANIZATION", "", "", "")

	if !res.Applied {
		t.Fatalf("Expected enter to apply, got %s", res.Reason)
	}

	s := c.State()
	if s.CurrentLevel != 2 || s.CurrentSector != "ORGANIZATION" {
		t.Errorf("Expected level 2 in ORGANIZATION, got %d in %q", s.CurrentLevel, s.CurrentSector)
	}
	if !s.Transitioning || s.Direction != DirectionEntering {
		t.Errorf("Expected entering transition, got transitioning=%v direction=%s", s.Transitioning, s.Direction)
	}

	want := StackEntry{Level: 2, Sector: "ORGANIZATION", Label: "ORGANIZATION"}
	if s.Top() != want {
		t.Errorf("Expected top %+v, got %+v", want, s.Top())
	}
}

func TestController_RootInvariant(t *testing.T) {
	c := NewController()
	check := func(step string) {
		t.Helper()
		s := c.State()
		if len(s.Stack) == 0 || !s.Stack[0].IsRoot() {
			t.Fatalf("%s: root entry lost, stack %+v", step, s.Stack)
		}
	}

	enterAndSettle(t, c, "OPERATIONS", "", "", "")
	check("enter")
	c.ExitLevel()
	c.CompleteTransition()
	check("exit")
	c.JumpToElement("FINANCE", "budget", "ledger", "Budget")
	c.CompleteTransition()
	check("element")
	c.JumpToStackIndex(0)
	c.CompleteTransition()
	check("jump")
	c.ExitLevel()
	check("exit at root")
}

func TestController_MonotonicStack(t *testing.T) {
	c := NewController()
	sectors := []string{"ORGANIZATION", "dept-eng", "agent-1"}

	for i, sector := range sectors {
		enterAndSettle(t, c, sector, "", "", "")
		s := c.State()

		if len(s.Stack) != s.CurrentLevel {
			t.Errorf("After %d enters: stack length %d, level %d", i+1, len(s.Stack), s.CurrentLevel)
		}
		for j, e := range s.Stack {
			if e.Level != j+1 {
				t.Errorf("Entry %d has level %d", j, e.Level)
			}
		}
	}
}

func TestController_ExitFromRootRejected(t *testing.T) {
	c := NewController()

	notified := 0
	c.Watch(func(_, _ State) { notified++ })

	before := c.State()
	res := c.ExitLevel()

	if res.Applied || res.Reason != ReasonAtRoot {
		t.Errorf("Expected at-root rejection, got %+v", res)
	}
	if !reflect.DeepEqual(before, c.State()) {
		t.Errorf("State changed on rejected exit")
	}
	if notified != 0 {
		t.Errorf("Expected no notification on rejection, got %d", notified)
	}
}

func TestController_MutualExclusion(t *testing.T) {
	c := NewController()
	c.EnterSector("ORGANIZATION", "", "", "")
	during := c.State()

	results := map[string]Result{
		"enter":   c.EnterSector("OPERATIONS", "", "", ""),
		"exit":    c.ExitLevel(),
		"jump":    c.JumpToStackIndex(0),
		"element": c.JumpToElement("FINANCE", "x", "y", "z"),
	}
	for op, res := range results {
		if res.Applied || res.Reason != ReasonTransitioning {
			t.Errorf("%s: expected transitioning rejection, got %+v", op, res)
		}
	}

	if !reflect.DeepEqual(during, c.State()) {
		t.Errorf("State changed while transitioning")
	}
}

func TestController_LevelClamp(t *testing.T) {
	c := NewController()
	for i := 0; i < 5; i++ {
		enterAndSettle(t, c, "COMMAND", "", "", "")
	}

	s := c.State()
	if s.CurrentLevel != MaxLevel {
		t.Errorf("Expected level clamped to %d, got %d", MaxLevel, s.CurrentLevel)
	}

	// Entries keep accumulating at the clamped level
	if len(s.Stack) != 6 {
		t.Fatalf("Expected 6 stack entries, got %d", len(s.Stack))
	}
	wantLevels := []int{1, 2, 3, 4, 4, 4}
	for i, e := range s.Stack {
		if e.Level != wantLevels[i] {
			t.Errorf("Entry %d: expected level %d, got %d", i, wantLevels[i], e.Level)
		}
	}

	// Exit from a clamped entry lands on another level-4 entry
	c.ExitLevel()
	c.CompleteTransition()
	s = c.State()
	if s.CurrentLevel != 4 || len(s.Stack) != 5 {
		t.Errorf("Expected level 4 with 5 entries, got level %d with %d", s.CurrentLevel, len(s.Stack))
	}
}

func TestEnterSector_SafetyCeiling(t *testing.T) {
	s := Initial()
	s.CurrentLevel = SafetyCeiling

	next, res := EnterSector(s, "COMMAND", "", "", "")
	if res.Applied || res.Reason != ReasonDepthCeiling {
		t.Errorf("Expected depth-ceiling rejection, got %+v", res)
	}
	if !reflect.DeepEqual(s, next) {
		t.Errorf("Expected state unchanged at ceiling")
	}
}

func TestController_JumpToElement(t *testing.T) {
	c := NewController()
	enterAndSettle(t, c, "COMMAND", "", "", "")
	enterAndSettle(t, c, "COMMAND", "a", "b", "c")
	enterAndSettle(t, c, "COMMAND", "d", "e", "f")

	res := c.JumpToElement("ORGANIZATION", "agent-7", "agent", "Agent Seven")
	if !res.Applied {
		t.Fatalf("Expected jump to apply, got %s", res.Reason)
	}

	s := c.State()
	want := []StackEntry{
		RootEntry(),
		{Level: 2, Sector: "ORGANIZATION", Label: "ORGANIZATION"},
		{Level: 3, Sector: "ORGANIZATION", TargetID: "agent-7", TargetType: "agent", Label: "Agent Seven"},
	}
	if !reflect.DeepEqual(s.Stack, want) {
		t.Errorf("Unexpected stack:\n got %+v\nwant %+v", s.Stack, want)
	}
	if s.CurrentLevel != 3 || s.CurrentSector != "ORGANIZATION" || s.CurrentTarget != "agent-7" {
		t.Errorf("Unexpected current fields: %+v", s)
	}
	if s.Direction != DirectionEntering {
		t.Errorf("Expected entering, got %s", s.Direction)
	}
}

func TestController_JumpToStackIndex(t *testing.T) {
	tests := []struct {
		name      string
		entries   int
		index     int
		wantLen   int
		wantDir   Direction
		wantLevel int
	}{
		{"root", 3, 0, 1, DirectionExiting, 1},
		{"parent", 3, 1, 2, DirectionExiting, 2},
		{"current", 3, 2, 3, DirectionEntering, 3},
		{"two levels up", 4, 1, 2, DirectionExiting, 2},
		{"one level up", 4, 2, 3, DirectionExiting, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			enterAndSettle(t, c, "ORGANIZATION", "", "", "")
			enterAndSettle(t, c, "ORGANIZATION", "dept-eng", "department", "Engineering")
			if tt.entries == 4 {
				enterAndSettle(t, c, "ORGANIZATION", "agent-eng-mgr", "agent", "Alex Chen")
			}
			if got := len(c.State().Stack); got != tt.entries {
				t.Fatalf("Expected %d entries before the jump, got %d", tt.entries, got)
			}

			res := c.JumpToStackIndex(tt.index)
			if !res.Applied {
				t.Fatalf("Expected jump to apply, got %s", res.Reason)
			}

			s := c.State()
			if len(s.Stack) != tt.wantLen {
				t.Errorf("Expected %d entries, got %d", tt.wantLen, len(s.Stack))
			}
			if s.Direction != tt.wantDir {
				t.Errorf("Expected direction %s, got %s", tt.wantDir, s.Direction)
			}
			if s.CurrentLevel != tt.wantLevel {
				t.Errorf("Expected level %d, got %d", tt.wantLevel, s.CurrentLevel)
			}
		})
	}
}

func TestController_JumpOutOfRange(t *testing.T) {
	c := NewController()
	enterAndSettle(t, c, "ORGANIZATION", "", "", "")

	for _, idx := range []int{-1, 2, 10} {
		res := c.JumpToStackIndex(idx)
		if res.Applied || res.Reason != ReasonIndexOutOfRange {
			t.Errorf("index %d: expected out-of-range rejection, got %+v", idx, res)
		}
	}
	if s := c.State(); s.Transitioning || len(s.Stack) != 2 {
		t.Errorf("State changed on rejected jump: %+v", s)
	}
}

func TestController_CompleteTransitionIdempotent(t *testing.T) {
	c := NewController()
	c.EnterSector("METRICS", "", "", "")

	c.CompleteTransition()
	first := c.State()
	res := c.CompleteTransition()
	second := c.State()

	if !res.Applied {
		t.Errorf("Expected CompleteTransition to always apply")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Second completion changed state")
	}
	if first.Transitioning || first.Direction != DirectionNone {
		t.Errorf("Expected idle after completion, got %+v", first)
	}
}

func TestController_EndToEnd(t *testing.T) {
	c := NewController()

	c.EnterSector("ORGANIZATION", "", "", "")
	c.CompleteTransition()
	c.EnterSector("ORGANIZATION", "dept-eng", "department", "Engineering")
	c.CompleteTransition()

	s := c.State()
	want := State{
		CurrentLevel:  3,
		CurrentSector: "ORGANIZATION",
		CurrentTarget: "dept-eng",
		Stack: []StackEntry{
			RootEntry(),
			{Level: 2, Sector: "ORGANIZATION", Label: "ORGANIZATION"},
			{Level: 3, Sector: "ORGANIZATION", TargetID: "dept-eng", TargetType: "department", Label: "Engineering"},
		},
		Direction: DirectionNone,
	}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("Unexpected state at level 3:\n got %+v\nwant %+v", s, want)
	}

	c.ExitLevel()
	c.CompleteTransition()

	s = c.State()
	if s.CurrentLevel != 2 || s.CurrentSector != "ORGANIZATION" || s.CurrentTarget != "" {
		t.Errorf("Expected level-2 ORGANIZATION entry, got %+v", s)
	}
	if len(s.Stack) != 2 {
		t.Errorf("Expected stack truncated to 2, got %d", len(s.Stack))
	}
}

func TestController_StateIsACopy(t *testing.T) {
	c := NewController()
	enterAndSettle(t, c, "ORGANIZATION", "", "", "")

	s := c.State()
	s.Stack[1].Label = "mutated"
	crumbs := c.Breadcrumbs()
	crumbs[0].Label = "mutated"

	if got := c.State().Stack[1].Label; got != "ORGANIZATION" {
		t.Errorf("Controller state leaked through State(), got %q", got)
	}
	if got := c.State().Stack[0].Label; got != RootLabel {
		t.Errorf("Controller state leaked through Breadcrumbs(), got %q", got)
	}
}

func TestReducers_DoNotAliasInput(t *testing.T) {
	s := Initial()
	s.Stack = make([]StackEntry, 1, 8)
	s.Stack[0] = RootEntry()

	a, _ := EnterSector(s, "A", "", "", "")
	b, _ := EnterSector(s, "B", "", "", "")

	if a.Stack[1].Sector != "A" || b.Stack[1].Sector != "B" {
		t.Errorf("Reducers share backing arrays: %+v / %+v", a.Stack, b.Stack)
	}
	if len(s.Stack) != 1 {
		t.Errorf("Input stack modified")
	}
}

func TestController_WatchSeesTransitions(t *testing.T) {
	c := NewController()

	var dirs []Direction
	c.Watch(func(prev, next State) {
		dirs = append(dirs, next.Direction)
	})

	enterAndSettle(t, c, "ORGANIZATION", "", "", "")
	c.ExitLevel()

	want := []Direction{DirectionEntering, DirectionNone, DirectionExiting}
	if !reflect.DeepEqual(dirs, want) {
		t.Errorf("Expected %v, got %v", want, dirs)
	}
}

func TestController_VisibleBreadcrumbsTrackState(t *testing.T) {
	c := NewController()
	if crumbs := c.VisibleBreadcrumbs(); crumbs != nil {
		t.Errorf("Expected no crumbs at root, got %+v", crumbs)
	}

	enterAndSettle(t, c, "ORGANIZATION", "", "", "")
	crumbs := c.VisibleBreadcrumbs()
	if len(crumbs) != 2 || !crumbs[1].Current {
		t.Errorf("Expected two crumbs ending at current, got %+v", crumbs)
	}
}
