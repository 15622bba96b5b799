package store

import (
	"context"
	"fmt"
)

// WriteInnings inserts an innings record.
// Duplicate IDs are silently ignored.
func (s *Store) WriteInnings(ctx context.Context, rec InningsRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO innings (id, started_seq)
		VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, rec.ID, rec.StartedSeq)
	if err != nil {
		return fmt.Errorf("write innings: %w", err)
	}
	return nil
}

// EndInnings closes an open innings. Closing an already closed innings is a
// no-op, so the first recorded end reason wins.
func (s *Store) EndInnings(ctx context.Context, id string, seq int64, reason string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE innings SET ended_seq = ?, end_reason = ?
		WHERE id = ? AND ended_seq IS NULL
	`, seq, reason, id)
	if err != nil {
		return fmt.Errorf("end innings: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("end innings: %w", err)
	}
	if n == 0 {
		if _, err := s.ReadInnings(ctx, id); err != nil {
			return fmt.Errorf("end innings %s: %w", id, err)
		}
	}
	return nil
}

// WriteBall appends a ball to an innings.
// Uses ON CONFLICT DO NOTHING so rewriting the same ball is idempotent.
// The innings must exist (foreign key constraint).
func (s *Store) WriteBall(ctx context.Context, rec BallRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO balls (id, innings_id, seq, event, state_hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, rec.ID, rec.InningsID, rec.Seq, rec.Event, rec.StateHash)
	if err != nil {
		return fmt.Errorf("write ball: %w", err)
	}
	return nil
}
