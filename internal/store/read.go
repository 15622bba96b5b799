package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReadInnings returns one innings by ID, or ErrNotFound.
func (s *Store) ReadInnings(ctx context.Context, id string) (InningsRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_seq, ended_seq, end_reason
		FROM innings
		WHERE id = ?
	`, id)

	rec, err := scanInnings(row)
	if errors.Is(err, sql.ErrNoRows) {
		return InningsRecord{}, fmt.Errorf("innings %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return InningsRecord{}, fmt.Errorf("read innings: %w", err)
	}
	return rec, nil
}

// ListInnings returns every innings in start order.
// Returns an empty slice (not nil) for an empty journal.
func (s *Store) ListInnings(ctx context.Context) ([]InningsRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_seq, ended_seq, end_reason
		FROM innings
		ORDER BY started_seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query innings: %w", err)
	}
	defer rows.Close()

	list := []InningsRecord{}
	for rows.Next() {
		rec, err := scanInnings(rows)
		if err != nil {
			return nil, fmt.Errorf("scan innings: %w", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate innings: %w", err)
	}
	return list, nil
}

// ReadBalls returns the balls of an innings in bowling order.
// Returns an empty slice (not nil) if none were recorded.
func (s *Store) ReadBalls(ctx context.Context, inningsID string) ([]BallRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, innings_id, seq, event, state_hash
		FROM balls
		WHERE innings_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, inningsID)
	if err != nil {
		return nil, fmt.Errorf("query balls: %w", err)
	}
	defer rows.Close()

	balls := []BallRecord{}
	for rows.Next() {
		var b BallRecord
		if err := rows.Scan(&b.ID, &b.InningsID, &b.Seq, &b.Event, &b.StateHash); err != nil {
			return nil, fmt.Errorf("scan ball: %w", err)
		}
		balls = append(balls, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balls: %w", err)
	}
	return balls, nil
}

// LastSeq returns the highest seq recorded anywhere in the journal, or 0.
// A controller reusing a journal resumes its clock from here so seq values
// stay unique across runs.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(
			COALESCE((SELECT MAX(started_seq) FROM innings), 0),
			COALESCE((SELECT MAX(ended_seq) FROM innings), 0),
			COALESCE((SELECT MAX(seq) FROM balls), 0)
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInnings(row rowScanner) (InningsRecord, error) {
	var rec InningsRecord
	var ended sql.NullInt64
	if err := row.Scan(&rec.ID, &rec.StartedSeq, &ended, &rec.EndReason); err != nil {
		return InningsRecord{}, err
	}
	if ended.Valid {
		rec.EndedSeq = ended.Int64
	}
	return rec, nil
}
