package match

import (
	"strconv"
	"strings"
)

// EventKind distinguishes ball event kinds.
type EventKind int

const (
	// KindNone is the zero value, used for "no event yet".
	KindNone EventKind = iota
	// KindRun is a scoring ball.
	KindRun
	// KindWicket is a dismissal.
	KindWicket
)

// BallEvent is one delivery outcome. Construct it with Run or Wicket;
// the zero value means "no event" and is never applied.
type BallEvent struct {
	Kind EventKind
	Runs int
}

// ValidRuns lists the run values a scoring ball can carry.
// A dot ball is not representable.
var ValidRuns = []int{1, 2, 3, 4, 6}

// Run returns a scoring event worth n runs.
func Run(n int) (BallEvent, error) {
	if !isValidRun(n) {
		return BallEvent{}, &EventError{Code: ErrCodeInvalidRun, Input: strconv.Itoa(n)}
	}
	return BallEvent{Kind: KindRun, Runs: n}, nil
}

// MustRun is like Run but panics on an invalid value.
// Use only in tests or with constants.
func MustRun(n int) BallEvent {
	ev, err := Run(n)
	if err != nil {
		panic(err)
	}
	return ev
}

// Wicket returns a dismissal event.
func Wicket() BallEvent {
	return BallEvent{Kind: KindWicket}
}

// Valid reports whether the event can be applied.
func (e BallEvent) Valid() bool {
	switch e.Kind {
	case KindRun:
		return isValidRun(e.Runs)
	case KindWicket:
		return e.Runs == 0
	default:
		return false
	}
}

// IsNone reports whether e is the zero "no event" value.
func (e BallEvent) IsNone() bool {
	return e.Kind == KindNone
}

// String returns the command form: "RUN 4", "WICKET", or "" for none.
func (e BallEvent) String() string {
	switch e.Kind {
	case KindRun:
		return "RUN " + strconv.Itoa(e.Runs)
	case KindWicket:
		return "WICKET"
	default:
		return ""
	}
}

// Label returns the scoreboard caption shown for the last event.
func (e BallEvent) Label() string {
	switch e.Kind {
	case KindWicket:
		return "OUT!"
	case KindRun:
		switch e.Runs {
		case 1:
			return "1 Run"
		case 4:
			return "FOUR!"
		case 6:
			return "SIX!!!"
		default:
			return strconv.Itoa(e.Runs) + " Runs"
		}
	default:
		return ""
	}
}

// ParseEvent parses the textual form of a ball event.
//
// Accepted forms (case-insensitive): "RUN n", "n", "FOUR", "SIX",
// "WICKET", "W", "OUT". Run values outside ValidRuns are rejected with
// ErrCodeInvalidRun.
func ParseEvent(s string) (BallEvent, error) {
	fields := strings.Fields(strings.ToUpper(s))
	switch len(fields) {
	case 1:
		switch fields[0] {
		case "WICKET", "W", "OUT":
			return Wicket(), nil
		case "FOUR":
			return Run(4)
		case "SIX":
			return Run(6)
		}
		if n, err := strconv.Atoi(fields[0]); err == nil {
			if !isValidRun(n) {
				return BallEvent{}, &EventError{Code: ErrCodeInvalidRun, Input: fields[0]}
			}
			return Run(n)
		}
	case 2:
		if fields[0] == "RUN" || fields[0] == "RUNS" {
			n, err := strconv.Atoi(fields[1])
			if err != nil || !isValidRun(n) {
				return BallEvent{}, &EventError{Code: ErrCodeInvalidRun, Input: fields[1]}
			}
			return Run(n)
		}
	}
	return BallEvent{}, &EventError{Code: ErrCodeUnknownEvent, Input: s}
}

func isValidRun(n int) bool {
	for _, v := range ValidRuns {
		if v == n {
			return true
		}
	}
	return false
}
