package live

import (
	"errors"

	"github.com/recera/mission-control/pkg/zoom"
)

var (
	// ErrSessionNotFound is returned for an unknown or expired session id
	ErrSessionNotFound = errors.New("live: session not found")

	// ErrUnknownOp is returned for an intent with an unrecognized op
	ErrUnknownOp = errors.New("live: unknown op")
)

// Op names a navigation intent
type Op string

const (
	OpEnter   Op = "enter"
	OpExit    Op = "exit"
	OpJump    Op = "jump"
	OpElement Op = "element"
)

// Intent is a client to server frame
type Intent struct {
	Op Op `json:"op"`

	// enter
	Sector     string `json:"sector,omitempty"`
	TargetID   string `json:"targetId,omitempty"`
	TargetType string `json:"targetType,omitempty"`
	Label      string `json:"label,omitempty"`

	// element
	ElementID   string `json:"elementId,omitempty"`
	ElementType string `json:"elementType,omitempty"`

	// jump
	Index *int `json:"index,omitempty"`
}

// Frame types sent by the server
const (
	FrameState    = "state"
	FrameRejected = "rejected"
	FrameError    = "error"
)

// StateFrame carries a snapshot and the rendered cockpit
type StateFrame struct {
	Type         string            `json:"type"`
	State        zoom.State        `json:"state"`
	Presentation zoom.Presentation `json:"presentation"`
	Breadcrumbs  []zoom.Crumb      `json:"breadcrumbs"`
	Revealed     bool              `json:"revealed"`
	HTML         string            `json:"html"`
}

// RejectedFrame reports an intent the controller refused
type RejectedFrame struct {
	Type   string            `json:"type"`
	Op     Op                `json:"op"`
	Reason zoom.RejectReason `json:"reason"`
}

// ErrorFrame reports a frame that could not be decoded
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
