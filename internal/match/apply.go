package match

// Apply returns the state that results from bowling one ball.
//
// Apply never modifies its input. An inactive state, or an event that is not
// Valid, is returned unchanged. The innings ends on the ball that takes the
// tenth wicket; that ball still counts toward the over.
func Apply(s MatchState, ev BallEvent) MatchState {
	if !s.IsActive || !ev.Valid() {
		return s
	}

	next := s
	switch ev.Kind {
	case KindRun:
		next.Runs += ev.Runs
	case KindWicket:
		next.Wickets++
	}
	next.LastEvent = ev
	next = advanceBall(next)

	if next.Wickets >= MaxWickets {
		next.IsActive = false
	}
	return next
}

func advanceBall(s MatchState) MatchState {
	s.BallsInCurrentOver++
	if s.BallsInCurrentOver == BallsPerOver {
		s.BallsInCurrentOver = 0
		s.OversCompleted++
	}
	return s
}

// Replay folds events over a fresh innings, left to right.
func Replay(events []BallEvent) MatchState {
	s := NewInnings()
	for _, ev := range events {
		s = Apply(s, ev)
	}
	return s
}

// End returns s closed to further events. It is how an innings is stopped
// from outside before the tenth wicket; an already inactive state is
// returned unchanged.
func End(s MatchState) MatchState {
	s.IsActive = false
	return s
}
