package live

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/recera/mission-control/pkg/zoom"
)

// DecodeIntent parses and checks a client frame
func DecodeIntent(data []byte) (Intent, error) {
	var in Intent
	if err := json.Unmarshal(data, &in); err != nil {
		return Intent{}, fmt.Errorf("decode intent: %w", err)
	}
	if err := in.Validate(); err != nil {
		return Intent{}, err
	}
	return in, nil
}

// Validate checks that in carries the fields its op needs
func (in Intent) Validate() error {
	switch in.Op {
	case OpExit:
	case OpEnter:
		if in.Sector == "" {
			return errors.New("enter: sector is required")
		}
	case OpElement:
		if in.Sector == "" || in.ElementID == "" {
			return errors.New("element: sector and elementId are required")
		}
	case OpJump:
		if in.Index == nil {
			return errors.New("jump: index is required")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, in.Op)
	}
	return nil
}

// Apply runs the intent against c
func (in Intent) Apply(c *zoom.Controller) (zoom.Result, error) {
	switch in.Op {
	case OpEnter:
		return c.EnterSector(in.Sector, in.TargetID, in.TargetType, in.Label), nil
	case OpExit:
		return c.ExitLevel(), nil
	case OpJump:
		if in.Index == nil {
			return zoom.Result{}, errors.New("jump: index is required")
		}
		return c.JumpToStackIndex(*in.Index), nil
	case OpElement:
		return c.JumpToElement(in.Sector, in.ElementID, in.ElementType, in.Label), nil
	}
	return zoom.Result{}, fmt.Errorf("%w: %q", ErrUnknownOp, in.Op)
}

func encodeState(snap zoom.Snapshot, html string) ([]byte, error) {
	return json.Marshal(StateFrame{
		Type:         FrameState,
		State:        snap.State,
		Presentation: snap.Presentation,
		Breadcrumbs:  snap.Breadcrumbs,
		Revealed:     snap.Revealed,
		HTML:         html,
	})
}

func encodeRejected(op Op, reason zoom.RejectReason) ([]byte, error) {
	return json.Marshal(RejectedFrame{Type: FrameRejected, Op: op, Reason: reason})
}

func encodeError(err error) ([]byte, error) {
	return json.Marshal(ErrorFrame{Type: FrameError, Message: err.Error()})
}
