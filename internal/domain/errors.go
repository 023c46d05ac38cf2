package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every ValidationError through errors.Is.
	ErrValidation = errors.New("invalid transaction facts")
	// ErrFactConsistency matches every FactConsistencyError through errors.Is.
	ErrFactConsistency = errors.New("inconsistent transaction facts")
)

// ValidationError reports a malformed or missing fact field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Message)
	}
	return fmt.Sprintf("validation: %s (%s)", e.Message, e.Field)
}

func (e ValidationError) Is(target error) bool { return target == ErrValidation }

// FactConsistencyError reports facts that are individually well formed but
// cannot hold together.
type FactConsistencyError struct {
	Field   string
	Message string
}

func NewFactConsistencyError(field, message string) error {
	return FactConsistencyError{Field: field, Message: message}
}

func (e FactConsistencyError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("consistency: %s", e.Message)
	}
	return fmt.Sprintf("consistency: %s (%s)", e.Message, e.Field)
}

func (e FactConsistencyError) Is(target error) bool { return target == ErrFactConsistency }
