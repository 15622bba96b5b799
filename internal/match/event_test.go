package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ValidValues(t *testing.T) {
	for _, n := range ValidRuns {
		ev, err := Run(n)
		require.NoError(t, err, "run %d", n)
		assert.Equal(t, KindRun, ev.Kind)
		assert.Equal(t, n, ev.Runs)
		assert.True(t, ev.Valid())
	}
}

func TestRun_InvalidValues(t *testing.T) {
	for _, n := range []int{-1, 0, 5, 7, 100} {
		_, err := Run(n)
		require.Error(t, err, "run %d", n)
		assert.True(t, IsInvalidRun(err))
	}
}

func TestBallEvent_Valid(t *testing.T) {
	assert.True(t, Wicket().Valid())
	assert.False(t, BallEvent{}.Valid(), "zero value is not applicable")
	assert.False(t, BallEvent{Kind: KindRun, Runs: 5}.Valid())
	assert.False(t, BallEvent{Kind: KindWicket, Runs: 2}.Valid())
}

func TestBallEvent_StringAndLabel(t *testing.T) {
	tests := []struct {
		ev    BallEvent
		str   string
		label string
	}{
		{MustRun(1), "RUN 1", "1 Run"},
		{MustRun(2), "RUN 2", "2 Runs"},
		{MustRun(3), "RUN 3", "3 Runs"},
		{MustRun(4), "RUN 4", "FOUR!"},
		{MustRun(6), "RUN 6", "SIX!!!"},
		{Wicket(), "WICKET", "OUT!"},
		{BallEvent{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.ev.String())
			assert.Equal(t, tt.label, tt.ev.Label())
		})
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		input string
		want  BallEvent
	}{
		{"RUN 4", MustRun(4)},
		{"run 2", MustRun(2)},
		{"  RUNS   3 ", MustRun(3)},
		{"1", MustRun(1)},
		{"6", MustRun(6)},
		{"four", MustRun(4)},
		{"SIX", MustRun(6)},
		{"WICKET", Wicket()},
		{"w", Wicket()},
		{"Out", Wicket()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEvent(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEvent_RoundTripsString(t *testing.T) {
	events := []BallEvent{MustRun(1), MustRun(2), MustRun(3), MustRun(4), MustRun(6), Wicket()}
	for _, ev := range events {
		got, err := ParseEvent(ev.String())
		require.NoError(t, err)
		assert.Equal(t, ev, got)
	}
}

func TestParseEvent_InvalidRun(t *testing.T) {
	for _, input := range []string{"RUN 5", "RUN 0", "5", "0", "RUN x", "RUN -1"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseEvent(input)
			require.Error(t, err)
			assert.True(t, IsInvalidRun(err), "got %v", err)
		})
	}
}

func TestParseEvent_Unknown(t *testing.T) {
	for _, input := range []string{"", "BOUNCER", "NO BALL", "RUN 4 6"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseEvent(input)
			require.Error(t, err)
			assert.True(t, IsUnknownEvent(err), "got %v", err)
			assert.False(t, IsInvalidRun(err))
		})
	}
}

func TestEventError_Message(t *testing.T) {
	_, err := Run(5)
	assert.Equal(t, "INVALID_RUN: run value 5 is not one of 1, 2, 3, 4, 6", err.Error())

	_, err = ParseEvent("bouncer")
	assert.Equal(t, `UNKNOWN_EVENT: "bouncer" is not a ball event`, err.Error())
}
