package ritual

import (
	"errors"
	"fmt"
)

// PhaseError reports the phase an action stopped in and whether it was
// rejected before any mutation or aborted and rolled back.
type PhaseError struct {
	Phase   Phase
	Outcome Outcome
	Err     error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf(ErrMsgPhase, e.Outcome, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func rejected(err error) error {
	return &PhaseError{Phase: PhaseValidating, Outcome: OutcomeRejected, Err: err}
}

func aborted(phase Phase, err error) error {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return err
	}
	return &PhaseError{Phase: phase, Outcome: OutcomeAborted, Err: err}
}

// OutcomeOf returns the outcome carried by err, or "" when err is not a PhaseError.
func OutcomeOf(err error) Outcome {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe.Outcome
	}
	return ""
}

// IsRejected reports whether err is a validation rejection.
func IsRejected(err error) bool {
	return OutcomeOf(err) == OutcomeRejected
}

// IsAborted reports whether err aborted an action after validation.
func IsAborted(err error) bool {
	return OutcomeOf(err) == OutcomeAborted
}
