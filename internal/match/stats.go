package match

import "strconv"

// Stats are presentation values derived from a MatchState.
type Stats struct {
	BallsFaced       int
	RunRate          float64
	WicketsRemaining int
	Overs            string
}

// Compute derives all statistics from s.
func Compute(s MatchState) Stats {
	return Stats{
		BallsFaced:       BallsFaced(s),
		RunRate:          RunRate(s),
		WicketsRemaining: WicketsRemaining(s),
		Overs:            OversDisplay(s),
	}
}

// BallsFaced counts every ball bowled in the innings.
func BallsFaced(s MatchState) int {
	return s.OversCompleted*BallsPerOver + s.BallsInCurrentOver
}

// RunRate is runs per over. It is 0 before the first ball.
func RunRate(s MatchState) float64 {
	balls := BallsFaced(s)
	if balls == 0 {
		return 0
	}
	return float64(s.Runs*BallsPerOver) / float64(balls)
}

// FormatRunRate renders a run rate with two decimals.
func FormatRunRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64)
}

// WicketsRemaining is the number of batters not yet dismissed.
func WicketsRemaining(s MatchState) int {
	return MaxWickets - s.Wickets
}

// OversDisplay renders overs as "completed.balls", e.g. "1.4".
func OversDisplay(s MatchState) string {
	return strconv.Itoa(s.OversCompleted) + "." + strconv.Itoa(s.BallsInCurrentOver)
}
