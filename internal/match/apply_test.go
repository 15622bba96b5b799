package match

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAll(s MatchState, events ...BallEvent) MatchState {
	for _, ev := range events {
		s = Apply(s, ev)
	}
	return s
}

func randomEvent(r *rand.Rand) BallEvent {
	// Roughly one wicket in seven balls.
	if r.Intn(7) == 0 {
		return Wicket()
	}
	return MustRun(ValidRuns[r.Intn(len(ValidRuns))])
}

func TestApply_Run(t *testing.T) {
	s := Apply(NewInnings(), MustRun(4))

	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, 0, s.Wickets)
	assert.Equal(t, 0, s.OversCompleted)
	assert.Equal(t, 1, s.BallsInCurrentOver)
	assert.Equal(t, MustRun(4), s.LastEvent)
	assert.True(t, s.IsActive)
}

func TestApply_Wicket(t *testing.T) {
	s := Apply(NewInnings(), Wicket())

	assert.Equal(t, 0, s.Runs)
	assert.Equal(t, 1, s.Wickets)
	assert.Equal(t, 1, s.BallsInCurrentOver)
	assert.Equal(t, Wicket(), s.LastEvent)
	assert.True(t, s.IsActive)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := NewInnings()
	_ = Apply(before, MustRun(6))
	assert.Equal(t, NewInnings(), before)
}

func TestApply_InvalidEventIgnored(t *testing.T) {
	s := applyAll(NewInnings(), MustRun(2))
	assert.Equal(t, s, Apply(s, BallEvent{Kind: KindRun, Runs: 5}))
	assert.Equal(t, s, Apply(s, BallEvent{}))
}

func TestApply_ScenarioA(t *testing.T) {
	s := applyAll(NewInnings(),
		MustRun(4), MustRun(6), Wicket(), MustRun(1), MustRun(2), MustRun(3))

	assert.Equal(t, 16, s.Runs)
	assert.Equal(t, 1, s.Wickets)
	assert.Equal(t, 1, s.OversCompleted)
	assert.Equal(t, 0, s.BallsInCurrentOver)
	assert.True(t, s.IsActive)
}

func TestApply_ScenarioB_AllOut(t *testing.T) {
	s := NewInnings()
	for i := 0; i < 10; i++ {
		require.True(t, s.IsActive, "innings ended early at wicket %d", i)
		s = Apply(s, Wicket())
	}

	assert.Equal(t, 10, s.Wickets)
	assert.Equal(t, 1, s.OversCompleted)
	assert.Equal(t, 4, s.BallsInCurrentOver)
	assert.False(t, s.IsActive)
	assert.Equal(t, 0, s.Runs)

	assert.Equal(t, s, Apply(s, Wicket()), "eleventh wicket must be ignored")
}

func TestApply_NinthWicketKeepsInningsAlive(t *testing.T) {
	s := NewInnings()
	for i := 0; i < 9; i++ {
		s = Apply(s, Wicket())
	}
	assert.True(t, s.IsActive)

	s = Apply(s, MustRun(4))
	assert.Equal(t, 4, s.Runs, "runs still count with nine down")
}

func TestApply_InactiveIgnoresEverything(t *testing.T) {
	s := NewInnings()
	s = applyAll(s, MustRun(3), Wicket())
	s.IsActive = false

	for _, ev := range []BallEvent{MustRun(1), MustRun(2), MustRun(3), MustRun(4), MustRun(6), Wicket()} {
		assert.Equal(t, s, Apply(s, ev), "event %s", ev)
	}
}

func TestApply_OverRollover(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s := applyAll(NewInnings(), MustRun(1), MustRun(1), MustRun(1), MustRun(1), MustRun(1), MustRun(1))
	require.Equal(t, 0, s.BallsInCurrentOver)

	for over := 0; over < 5; over++ {
		start := s.OversCompleted
		for i := 0; i < BallsPerOver; i++ {
			ev := randomEvent(r)
			if ev.Kind == KindWicket && s.Wickets == MaxWickets-1 {
				ev = MustRun(1)
			}
			s = Apply(s, ev)
		}
		assert.Equal(t, 0, s.BallsInCurrentOver)
		assert.Equal(t, start+1, s.OversCompleted)
	}
}

func TestApply_SumLaw(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := NewInnings()
	total := 0
	for i := 0; i < 500; i++ {
		n := ValidRuns[r.Intn(len(ValidRuns))]
		total += n
		s = Apply(s, MustRun(n))
	}
	assert.Equal(t, total, s.Runs)
	assert.Equal(t, 500, BallsFaced(s))
}

func TestApply_InvariantsHoldOverRandomSequences(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		s := NewInnings()
		applied := 0
		for i := 0; i < 120; i++ {
			prev := s
			s = Apply(s, randomEvent(r))

			require.NoError(t, s.Validate(), "trial %d ball %d", trial, i)
			if prev.IsActive {
				applied++
				assert.GreaterOrEqual(t, s.Runs, prev.Runs)
				assert.Equal(t, BallsFaced(prev)+1, BallsFaced(s), "each applied ball counts once")
			} else {
				assert.Equal(t, prev, s, "inactive state must not change")
			}
		}
		assert.Equal(t, applied, BallsFaced(s))
	}
}

func TestReplay_Deterministic(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	events := make([]BallEvent, 80)
	for i := range events {
		events[i] = randomEvent(r)
	}

	first := Replay(events)
	second := Replay(events)
	assert.Equal(t, first, second)
	assert.Equal(t, first.Digest(), second.Digest())
	assert.Equal(t, applyAll(NewInnings(), events...), first)
}

func TestReplay_Empty(t *testing.T) {
	assert.Equal(t, NewInnings(), Replay(nil))
}

func TestEnd(t *testing.T) {
	s := applyAll(NewInnings(), MustRun(4), Wicket())
	ended := End(s)

	assert.False(t, ended.IsActive)
	assert.Equal(t, s.Runs, ended.Runs)
	assert.Equal(t, s.BallsInCurrentOver, ended.BallsInCurrentOver)
	assert.True(t, s.IsActive, "input is not modified")
	assert.Equal(t, ended, Apply(ended, MustRun(6)))
	assert.Equal(t, ended, End(ended))
}
