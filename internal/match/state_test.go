package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInnings(t *testing.T) {
	s := NewInnings()
	assert.Equal(t, MatchState{IsActive: true}, s)
	assert.True(t, s.LastEvent.IsNone())
	require.NoError(t, s.Validate())
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name  string
		state MatchState
		want  string
	}{
		{"negative runs", MatchState{Runs: -1, IsActive: true}, "runs must be non-negative"},
		{"too many wickets", MatchState{Wickets: 11}, "wickets must be in [0, 10]"},
		{"negative overs", MatchState{OversCompleted: -1, IsActive: true}, "overs completed"},
		{"six balls in over", MatchState{BallsInCurrentOver: 6, IsActive: true}, "balls in current over"},
		{"all out but active", MatchState{Wickets: 10, IsActive: true}, "must not be active"},
		{"bad last event", MatchState{LastEvent: BallEvent{Kind: KindRun, Runs: 5}, IsActive: true}, "not a valid ball event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDigest_DistinguishesStates(t *testing.T) {
	a := Apply(NewInnings(), MustRun(4))
	b := Apply(NewInnings(), MustRun(6))
	c := Apply(NewInnings(), MustRun(4))

	assert.Equal(t, a.Digest(), c.Digest())
	assert.NotEqual(t, a.Digest(), b.Digest())
	assert.NotEqual(t, NewInnings().Digest(), a.Digest())
}

func TestDigest_IncludesActiveFlag(t *testing.T) {
	active := NewInnings()
	stopped := active
	stopped.IsActive = false
	assert.NotEqual(t, active.Digest(), stopped.Digest())
}
