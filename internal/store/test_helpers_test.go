package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/crease/internal/digest"
	"github.com/roach88/crease/internal/match"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// recordInnings journals an innings the way the controller does: one row for
// the start, then one ball per event with the digest of the resulting state.
// Seqs start at startSeq. Returns the seq of the last ball.
func recordInnings(t *testing.T, s *Store, id string, startSeq int64, events ...match.BallEvent) int64 {
	t.Helper()
	ctx := context.Background()

	if err := s.WriteInnings(ctx, InningsRecord{ID: id, StartedSeq: startSeq}); err != nil {
		t.Fatalf("WriteInnings() failed: %v", err)
	}

	seq := startSeq
	state := match.NewInnings()
	for _, ev := range events {
		seq++
		state = match.Apply(state, ev)
		rec := BallRecord{
			ID:        digest.BallID(id, seq, ev.String()),
			InningsID: id,
			Seq:       seq,
			Event:     ev.String(),
			StateHash: state.Digest(),
		}
		if err := s.WriteBall(ctx, rec); err != nil {
			t.Fatalf("WriteBall() failed: %v", err)
		}
	}
	return seq
}
