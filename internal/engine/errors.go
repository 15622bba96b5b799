package engine

import (
	"errors"
	"fmt"
)

// CommandErrorCode categorizes rejected commands.
type CommandErrorCode string

const (
	// ErrCodeInvalidRun indicates a RUN command with a value outside {1,2,3,4,6}.
	ErrCodeInvalidRun CommandErrorCode = "INVALID_RUN"

	// ErrCodeUnknownCommand indicates text that is not a command.
	ErrCodeUnknownCommand CommandErrorCode = "UNKNOWN_COMMAND"
)

// CommandError is returned when a command is rejected before it reaches the
// controller. A rejected command never changes state.
type CommandError struct {
	Code  CommandErrorCode
	Input string
	Err   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Code, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Code, e.Input)
}

// Unwrap returns the underlying event error, if any.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsInvalidRun reports whether err is a rejected run value.
// Uses errors.As to handle wrapped errors.
func IsInvalidRun(err error) bool {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeInvalidRun
	}
	return false
}

// IsUnknownCommand reports whether err is an unrecognized command.
func IsUnknownCommand(err error) bool {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnknownCommand
	}
	return false
}
