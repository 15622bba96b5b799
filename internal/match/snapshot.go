package match

// Snapshot is the read model handed to presentation layers.
type Snapshot struct {
	Runs             int    `json:"runs"`
	Wickets          int    `json:"wickets"`
	Overs            string `json:"overs"`
	LastEvent        string `json:"last_event"`
	IsActive         bool   `json:"is_active"`
	RunRate          string `json:"run_rate"`
	BallsFaced       int    `json:"balls_faced"`
	WicketsRemaining int    `json:"wickets_remaining"`
}

// NewSnapshot captures s together with its derived statistics.
func NewSnapshot(s MatchState) Snapshot {
	st := Compute(s)
	return Snapshot{
		Runs:             s.Runs,
		Wickets:          s.Wickets,
		Overs:            st.Overs,
		LastEvent:        s.LastEvent.Label(),
		IsActive:         s.IsActive,
		RunRate:          FormatRunRate(st.RunRate),
		BallsFaced:       st.BallsFaced,
		WicketsRemaining: st.WicketsRemaining,
	}
}

// Fields returns the snapshot keyed by its JSON names.
// Used for canonical serialization and subset assertions.
func (s Snapshot) Fields() map[string]any {
	return map[string]any{
		"runs":              s.Runs,
		"wickets":           s.Wickets,
		"overs":             s.Overs,
		"last_event":        s.LastEvent,
		"is_active":         s.IsActive,
		"run_rate":          s.RunRate,
		"balls_faced":       s.BallsFaced,
		"wickets_remaining": s.WicketsRemaining,
	}
}
