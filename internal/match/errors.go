package match

import (
	"errors"
	"fmt"
)

// EventErrorCode categorizes rejected ball events.
type EventErrorCode string

const (
	// ErrCodeInvalidRun indicates a run value outside {1,2,3,4,6}.
	ErrCodeInvalidRun EventErrorCode = "INVALID_RUN"

	// ErrCodeUnknownEvent indicates text that is not a ball event.
	ErrCodeUnknownEvent EventErrorCode = "UNKNOWN_EVENT"
)

// EventError is returned when a ball event is rejected at the boundary.
// Rejected events never reach Apply.
type EventError struct {
	Code  EventErrorCode
	Input string
}

func (e *EventError) Error() string {
	switch e.Code {
	case ErrCodeInvalidRun:
		return fmt.Sprintf("%s: run value %s is not one of 1, 2, 3, 4, 6", e.Code, e.Input)
	default:
		return fmt.Sprintf("%s: %q is not a ball event", e.Code, e.Input)
	}
}

// IsInvalidRun reports whether err is an invalid run value error.
func IsInvalidRun(err error) bool {
	var ee *EventError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeInvalidRun
	}
	return false
}

// IsUnknownEvent reports whether err is an unparseable event error.
func IsUnknownEvent(err error) bool {
	var ee *EventError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeUnknownEvent
	}
	return false
}
