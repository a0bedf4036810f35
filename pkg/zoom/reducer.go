package zoom

// The reducers below never modify their input. Each returns the next state
// and a Result; on rejection the input is returned as is.

// EnterSector drills one level deeper. The level is clamped to MaxLevel
// but the entry is still pushed, so past the clamp the stack keeps
// growing while CurrentLevel stays at MaxLevel.
func EnterSector(s State, sector, targetID, targetType, label string) (State, Result) {
	if s.Transitioning {
		return s, rejected(ReasonTransitioning)
	}
	if s.CurrentLevel >= SafetyCeiling {
		return s, rejected(ReasonDepthCeiling)
	}

	level := min(s.CurrentLevel+1, MaxLevel)
	if label == "" {
		label = sector
	}
	entry := StackEntry{
		Level:      level,
		Sector:     sector,
		TargetID:   targetID,
		TargetType: targetType,
		Label:      label,
	}

	stack := make([]StackEntry, 0, len(s.Stack)+1)
	stack = append(stack, s.Stack...)
	stack = append(stack, entry)

	return settleOn(stack, DirectionEntering), applied
}

// ExitLevel pops the top entry
func ExitLevel(s State) (State, Result) {
	if s.Transitioning {
		return s, rejected(ReasonTransitioning)
	}
	if s.CurrentLevel <= RootLevel || len(s.Stack) <= 1 {
		return s, rejected(ReasonAtRoot)
	}

	stack := make([]StackEntry, len(s.Stack)-1)
	copy(stack, s.Stack)

	return settleOn(stack, DirectionExiting), applied
}

// JumpToStackIndex truncates the stack so that index becomes the top.
// Jumping to the current top is allowed and replays an entering transition.
func JumpToStackIndex(s State, index int) (State, Result) {
	if s.Transitioning {
		return s, rejected(ReasonTransitioning)
	}
	if index < 0 || index >= len(s.Stack) {
		return s, rejected(ReasonIndexOutOfRange)
	}

	stack := make([]StackEntry, index+1)
	copy(stack, s.Stack[:index+1])

	dir := DirectionEntering
	if index < s.CurrentLevel-1 {
		dir = DirectionExiting
	}
	return settleOn(stack, dir), applied
}

// JumpToElement replaces the whole stack with the canonical three-level
// path root > sector > element, whatever the current depth.
func JumpToElement(s State, sector, elementID, elementType, label string) (State, Result) {
	if s.Transitioning {
		return s, rejected(ReasonTransitioning)
	}

	stack := []StackEntry{
		RootEntry(),
		{Level: 2, Sector: sector, Label: sector},
		{Level: 3, Sector: sector, TargetID: elementID, TargetType: elementType, Label: label},
	}
	return settleOn(stack, DirectionEntering), applied
}

// CompleteTransition ends the in-flight transition. It always applies.
func CompleteTransition(s State) (State, Result) {
	s = s.Clone()
	s.Transitioning = false
	s.Direction = DirectionNone
	return s, applied
}

// settleOn builds a transitioning state whose current fields mirror the
// top of stack
func settleOn(stack []StackEntry, dir Direction) State {
	top := stack[len(stack)-1]
	return State{
		CurrentLevel:  top.Level,
		CurrentSector: top.Sector,
		CurrentTarget: top.TargetID,
		Stack:         stack,
		Transitioning: true,
		Direction:     dir,
	}
}
