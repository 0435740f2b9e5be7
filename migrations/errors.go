package migrations

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownModel is returned when a model has no table in the project state.
	ErrUnknownModel = errors.New("unknown model")
	// ErrUnknownOperation is returned when deserializing an operation with an unregistered name.
	ErrUnknownOperation = errors.New("unknown operation")
)

// ErrInvalidOperation is returned when an operation is missing required arguments.
type ErrInvalidOperation struct {
	// Operation is the operation name
	Operation string
	// Reason describes what is wrong
	Reason string
}

// Error implements error.
func (err ErrInvalidOperation) Error() string {
	return fmt.Sprintf("invalid %s operation: %s", err.Operation, err.Reason)
}
