package types

import (
	"errors"
	"fmt"
)

var (
	// ErrStockNotFound is returned when a referenced stock id does not exist.
	ErrStockNotFound = errors.New("stock not found")
	// ErrUserNotFound is returned when a referenced user id does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError reports a rejected request: non-positive quantity, unknown
// order type, or a sell that exceeds the caller's holdings. It maps to a 400
// response at the transport layer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
