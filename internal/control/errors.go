package control

import (
	"errors"
	"fmt"
)

// ErrNotTravelling is returned when an operation needs a running traveller.
var ErrNotTravelling = errors.New("not travelling")

// ValidationError represents user-facing validation issues.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a new validation error.
func NewValidationError(format string, args ...any) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}
