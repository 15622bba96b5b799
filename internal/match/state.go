package match

import (
	"fmt"

	"github.com/roach88/crease/internal/digest"
)

const (
	// BallsPerOver is the number of deliveries in a complete over.
	BallsPerOver = 6

	// MaxWickets ends the innings when reached.
	MaxWickets = 10
)

// MatchState is the authoritative snapshot of one innings.
//
// INVARIANTS (checked by Validate):
//   - 0 <= BallsInCurrentOver < BallsPerOver
//   - 0 <= Wickets <= MaxWickets
//   - Wickets == MaxWickets implies !IsActive
type MatchState struct {
	Runs               int
	Wickets            int
	OversCompleted     int
	BallsInCurrentOver int
	LastEvent          BallEvent
	IsActive           bool
}

// NewInnings returns the initial state of a fresh innings.
func NewInnings() MatchState {
	return MatchState{IsActive: true}
}

// Validate checks the structural invariants of s.
func (s MatchState) Validate() error {
	if s.Runs < 0 {
		return fmt.Errorf("runs must be non-negative, got %d", s.Runs)
	}
	if s.Wickets < 0 || s.Wickets > MaxWickets {
		return fmt.Errorf("wickets must be in [0, %d], got %d", MaxWickets, s.Wickets)
	}
	if s.OversCompleted < 0 {
		return fmt.Errorf("overs completed must be non-negative, got %d", s.OversCompleted)
	}
	if s.BallsInCurrentOver < 0 || s.BallsInCurrentOver >= BallsPerOver {
		return fmt.Errorf("balls in current over must be in [0, %d], got %d", BallsPerOver-1, s.BallsInCurrentOver)
	}
	if s.Wickets == MaxWickets && s.IsActive {
		return fmt.Errorf("innings with %d wickets must not be active", MaxWickets)
	}
	if !s.LastEvent.IsNone() && !s.LastEvent.Valid() {
		return fmt.Errorf("last event %+v is not a valid ball event", s.LastEvent)
	}
	return nil
}

// Fields returns the state as a canonical field map.
// Derived statistics are not included.
func (s MatchState) Fields() map[string]any {
	return map[string]any{
		"runs":                  s.Runs,
		"wickets":               s.Wickets,
		"overs_completed":       s.OversCompleted,
		"balls_in_current_over": s.BallsInCurrentOver,
		"last_event":            s.LastEvent.String(),
		"is_active":             s.IsActive,
	}
}

// Digest returns the content-addressed hash of s.
// Equal states always have equal digests.
func (s MatchState) Digest() string {
	h, err := digest.Hash(digest.DomainState, s.Fields())
	if err != nil {
		// Fields only holds ints, strings and bools.
		panic(err)
	}
	return h
}
