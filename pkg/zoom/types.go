// Package zoom implements cockpit zoom navigation: a stack of view levels
// from the global cockpit down to a single entity, and the timed two-phase
// transition that plays whenever the stack changes.
//
// State changes are pure reducers over State. Controller applies them to
// a reactive cell, Sequencer turns each transition into an
// animating/revealing/idle lifecycle, and Navigator wires the two
// together for a single session.
package zoom

import "slices"

// Level bounds
const (
	RootLevel = 1
	MaxLevel  = 4

	// SafetyCeiling is checked independently of MaxLevel and rejects
	// further entering once reached
	SafetyCeiling = 10
)

// RootLabel is the breadcrumb text of the root entry
const RootLabel = "Cockpit"

// Direction of an in-flight transition
type Direction string

const (
	DirectionNone     Direction = "none"
	DirectionEntering Direction = "entering"
	DirectionExiting  Direction = "exiting"
)

// StackEntry is one node of the navigation path
type StackEntry struct {
	Level      int    `json:"level"`
	Sector     string `json:"sector,omitempty"`
	TargetID   string `json:"targetId,omitempty"`
	TargetType string `json:"targetType,omitempty"`
	Label      string `json:"label"`
}

// IsRoot reports whether e is the root entry
func (e StackEntry) IsRoot() bool {
	return e == RootEntry()
}

// RootEntry returns the fixed bottom of every stack
func RootEntry() StackEntry {
	return StackEntry{Level: RootLevel, Label: RootLabel}
}

// State is the navigation state of one session
type State struct {
	CurrentLevel  int          `json:"currentLevel"`
	CurrentSector string       `json:"currentSector,omitempty"`
	CurrentTarget string       `json:"currentTarget,omitempty"`
	Stack         []StackEntry `json:"stack"`
	Transitioning bool         `json:"transitioning"`
	Direction     Direction    `json:"direction"`
}

// Initial returns the state every session starts from
func Initial() State {
	return State{
		CurrentLevel: RootLevel,
		Stack:        []StackEntry{RootEntry()},
		Direction:    DirectionNone,
	}
}

// Clone returns a copy of s that shares no memory with it
func (s State) Clone() State {
	s.Stack = slices.Clone(s.Stack)
	return s
}

// Top returns the last stack entry
func (s State) Top() StackEntry {
	if len(s.Stack) == 0 {
		return RootEntry()
	}
	return s.Stack[len(s.Stack)-1]
}

// RejectReason explains why an operation left the state unchanged
type RejectReason string

const (
	ReasonNone            RejectReason = ""
	ReasonTransitioning   RejectReason = "transitioning"
	ReasonAtRoot          RejectReason = "at-root"
	ReasonIndexOutOfRange RejectReason = "index-out-of-range"
	ReasonDepthCeiling    RejectReason = "depth-ceiling"
)

// Result reports the outcome of an operation. Rejections are not errors;
// callers that only care about state may ignore it.
type Result struct {
	Applied bool         `json:"applied"`
	Reason  RejectReason `json:"reason,omitempty"`
}

var applied = Result{Applied: true}

func rejected(reason RejectReason) Result {
	return Result{Reason: reason}
}
