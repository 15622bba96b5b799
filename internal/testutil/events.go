package testutil

import (
	"testing"

	"github.com/roach88/crease/internal/match"
)

// Events parses each string with match.ParseEvent and fails the test on
// the first error.
func Events(t testing.TB, lines ...string) []match.BallEvent {
	t.Helper()
	out := make([]match.BallEvent, 0, len(lines))
	for _, line := range lines {
		ev, err := match.ParseEvent(line)
		if err != nil {
			t.Fatalf("parse event %q: %v", line, err)
		}
		out = append(out, ev)
	}
	return out
}

// Singles returns n one-run events.
func Singles(n int) []match.BallEvent {
	out := make([]match.BallEvent, n)
	for i := range out {
		out[i] = match.MustRun(1)
	}
	return out
}
