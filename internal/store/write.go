package store

import (
	"context"
	"fmt"
)

// WriteSnapshot stores snap and returns it with ID, LineHash and Seq filled
// in. A missing ID is generated and a missing LineHash is computed from the
// line text. Seq is always assigned by the store.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing an ID that
// already exists returns the stored snapshot and inserted=false.
func (s *Store) WriteSnapshot(ctx context.Context, snap Snapshot) (stored Snapshot, inserted bool, err error) {
	if snap.ID == "" {
		snap.ID = s.ids.Generate()
	}
	if snap.LineHash == "" {
		snap.LineHash = LineHash(snap.Line.Text)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM snapshots WHERE line_hash = ?
	`, snap.LineHash).Scan(&snap.Seq); err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: next seq: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots
		(id, line_hash, seq, line_text, line_start_ms, line_end_ms, karaoke_text, tag_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		snap.ID,
		snap.LineHash,
		snap.Seq,
		snap.Line.Text,
		toMillis(snap.Line.Start),
		toMillis(snap.Line.End),
		snap.Text,
		snap.TagType,
	)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: rows affected: %w", err)
	}
	if rows == 0 {
		// Release the connection before reading outside the tx.
		tx.Rollback()
		existing, err := s.ReadSnapshot(ctx, snap.ID)
		if err != nil {
			return Snapshot{}, false, fmt.Errorf("write snapshot: read existing: %w", err)
		}
		return existing, false, nil
	}

	for i, syl := range snap.Syllables {
		overrides, err := marshalOverrides(syl.Overrides)
		if err != nil {
			return Snapshot{}, false, fmt.Errorf("write snapshot: syllable %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO syllables
			(snapshot_id, idx, start_ms, duration_ms, tag_type, text, overrides)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			snap.ID,
			i,
			toMillis(syl.Start),
			toMillis(syl.Duration),
			syl.TagType,
			syl.Text,
			overrides,
		); err != nil {
			return Snapshot{}, false, fmt.Errorf("write snapshot: syllable %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: commit: %w", err)
	}

	return snap, true, nil
}

// DeleteSnapshot removes a snapshot and its syllables. Deleting a missing
// ID returns ErrNotFound.
func (s *Store) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete snapshot %s: %w", id, ErrNotFound)
	}
	return nil
}
