package store

import "errors"

// End reasons recorded when an innings closes.
const (
	EndReasonAllOut    = "all_out"
	EndReasonStopped   = "stopped"
	EndReasonAbandoned = "abandoned"
)

// ErrNotFound is returned when a requested innings does not exist.
var ErrNotFound = errors.New("not found")

// InningsRecord is one journaled innings.
// EndedSeq is 0 while the innings is open.
type InningsRecord struct {
	ID         string
	StartedSeq int64
	EndedSeq   int64
	EndReason  string
}

// IsOpen reports whether the innings has not been closed.
func (r InningsRecord) IsOpen() bool {
	return r.EndedSeq == 0
}

// BallRecord is one journaled ball.
// Event holds the command form ("RUN 4", "WICKET"); StateHash is the digest
// of the state after the ball was applied.
type BallRecord struct {
	ID        string
	InningsID string
	Seq       int64
	Event     string
	StateHash string
}
