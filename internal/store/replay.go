package store

import (
	"context"
	"fmt"

	"github.com/roach88/crease/internal/match"
)

// Mismatch records a journaled ball whose state digest differs from the
// digest obtained by replaying the events up to and including that ball.
type Mismatch struct {
	Seq      int64
	Event    string
	Recorded string
	Replayed string
}

// Verification is the result of replaying one journaled innings.
type Verification struct {
	Innings       InningsRecord
	Balls         int
	Final         match.MatchState
	Mismatches    []Mismatch
	Problems      []string
	Deterministic bool
}

// VerifyInnings replays the recorded balls of an innings from a fresh state
// and checks every recorded state digest against the replayed one.
//
// The replay uses match.Apply directly, the same transition the controller
// used when the balls were recorded; there is no separate replay mode.
// An innings closed as all_out must also replay to ten wickets.
func (s *Store) VerifyInnings(ctx context.Context, id string) (Verification, error) {
	rec, err := s.ReadInnings(ctx, id)
	if err != nil {
		return Verification{}, fmt.Errorf("verify innings: %w", err)
	}

	balls, err := s.ReadBalls(ctx, id)
	if err != nil {
		return Verification{}, fmt.Errorf("verify innings: %w", err)
	}

	v := Verification{
		Innings:    rec,
		Balls:      len(balls),
		Mismatches: []Mismatch{},
		Problems:   []string{},
	}

	state := match.NewInnings()
	for _, b := range balls {
		ev, err := match.ParseEvent(b.Event)
		if err != nil {
			v.Problems = append(v.Problems, fmt.Sprintf("seq %d: %v", b.Seq, err))
			continue
		}
		if !state.IsActive {
			v.Problems = append(v.Problems, fmt.Sprintf("seq %d: ball recorded after the innings ended", b.Seq))
		}
		state = match.Apply(state, ev)

		if got := state.Digest(); got != b.StateHash {
			v.Mismatches = append(v.Mismatches, Mismatch{
				Seq:      b.Seq,
				Event:    b.Event,
				Recorded: b.StateHash,
				Replayed: got,
			})
		}
	}

	if rec.EndReason == EndReasonAllOut && state.Wickets != match.MaxWickets {
		v.Problems = append(v.Problems, fmt.Sprintf("innings closed %s but replay has %d wickets", EndReasonAllOut, state.Wickets))
	}
	if !rec.IsOpen() {
		state.IsActive = false
	}

	v.Final = state
	v.Deterministic = len(v.Mismatches) == 0 && len(v.Problems) == 0
	return v, nil
}
