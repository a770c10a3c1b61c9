package transform

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/domain"
)

// ScenarioTransform is a composable what-if change to a scenario
type ScenarioTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.Scenario) (domain.Scenario, error)

	// Name returns a short identifier, e.g. "adjust_expenses".
	Name() string

	// Description returns a human-readable description of the change.
	Description() string

	// Validate checks the transform's parameters against base without applying it.
	Validate(base domain.Scenario) error
}

// ApplyTransforms applies transforms in order, each receiving the output of the
// previous one. The result is validated as a scenario.
func ApplyTransforms(base domain.Scenario, transforms []ScenarioTransform) (domain.Scenario, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.Scenario{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.Scenario{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	if err := current.Validate(); err != nil {
		return domain.Scenario{}, err
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
