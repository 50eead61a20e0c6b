package alarm

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("invalid alarm time")
	// ErrSelectionRequired is returned when an operation needs a selected
	// entry and none was given.
	ErrSelectionRequired = errors.New("selection required")
)

// ValidationError reports a rejected hour, minute or second.
// Parse failures and range failures are the same kind of error.
type ValidationError struct {
	// Field is the name of the offending input ("hour", "minute", "second").
	Field string
	// Value is the raw input as the user supplied it.
	Value string
	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", ErrValidation, e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// newValidationError builds a ValidationError for the given field.
func newValidationError(field, value, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}
