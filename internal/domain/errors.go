package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPlan is returned when a plan id is not in the catalog
	ErrUnknownPlan = errors.New("unknown plan")
	// ErrInvalidOptionState flags an option whose dependent designation contradicts its plans
	ErrInvalidOptionState = errors.New("invalid option state")
	// ErrInvalidScenario flags out-of-range scenario inputs
	ErrInvalidScenario = errors.New("invalid scenario")
)

// UnknownPlanError carries the offending plan id
type UnknownPlanError struct {
	PlanID string
}

func (e *UnknownPlanError) Error() string {
	return fmt.Sprintf("unknown plan %q", e.PlanID)
}

func (e *UnknownPlanError) Is(target error) bool {
	return target == ErrUnknownPlan
}

// InvalidOptionStateError describes an option that the enumerator should never build
type InvalidOptionStateError struct {
	Option string
	Reason string
}

func (e *InvalidOptionStateError) Error() string {
	return fmt.Sprintf("invalid option state for %s: %s", e.Option, e.Reason)
}

func (e *InvalidOptionStateError) Is(target error) bool {
	return target == ErrInvalidOptionState
}
