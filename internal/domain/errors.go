package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every validation failure raised by the engine.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError carries the offending field and a human-readable reason
// the caller can show when re-prompting the user.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
