package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/asstags/internal/karaoke"
)

const snapshotColumns = `id, line_hash, seq, line_text, line_start_ms, line_end_ms, karaoke_text, tag_type`

// ReadSnapshot retrieves a snapshot and its syllables by ID.
// Returns ErrNotFound if there is none.
func (s *Store) ReadSnapshot(ctx context.Context, id string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots
		WHERE id = ?
	`, id)

	snap, err := scanSnapshot(row)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", id, err)
	}
	if snap.Syllables, err = s.readSyllables(ctx, snap.ID); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ListSnapshots returns every snapshot of a line, oldest first.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the line has no history.
func (s *Store) ListSnapshots(ctx context.Context, lineHash string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots
		WHERE line_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, lineHash)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}

	snaps := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	// Close before the syllable queries; the pool has a single connection.
	rows.Close()

	for i := range snaps {
		if snaps[i].Syllables, err = s.readSyllables(ctx, snaps[i].ID); err != nil {
			return nil, err
		}
	}
	return snaps, nil
}

// LatestSnapshot returns the highest-seq snapshot of a line.
// Returns ErrNotFound if the line has no history.
func (s *Store) LatestSnapshot(ctx context.Context, lineHash string) (Snapshot, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM snapshots
		WHERE line_hash = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, lineHash).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("latest snapshot: %w", ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return s.ReadSnapshot(ctx, id)
}

func (s *Store) readSyllables(ctx context.Context, snapshotID string) ([]karaoke.Syllable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_ms, duration_ms, tag_type, text, overrides
		FROM syllables
		WHERE snapshot_id = ?
		ORDER BY idx ASC
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query syllables: %w", err)
	}
	defer rows.Close()

	syls := []karaoke.Syllable{}
	for rows.Next() {
		var (
			startMs, durMs int64
			overrides      string
			syl            karaoke.Syllable
		)
		if err := rows.Scan(&startMs, &durMs, &syl.TagType, &syl.Text, &overrides); err != nil {
			return nil, fmt.Errorf("scan syllable: %w", err)
		}
		syl.Start = fromMillis(startMs)
		syl.Duration = fromMillis(durMs)
		if syl.Overrides, err = unmarshalOverrides(overrides); err != nil {
			return nil, err
		}
		syls = append(syls, syl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate syllables: %w", err)
	}
	return syls, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var (
		snap           Snapshot
		startMs, endMs int64
	)
	err := row.Scan(
		&snap.ID,
		&snap.LineHash,
		&snap.Seq,
		&snap.Line.Text,
		&startMs,
		&endMs,
		&snap.Text,
		&snap.TagType,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}
	snap.Line.Start = fromMillis(startMs)
	snap.Line.End = fromMillis(endMs)
	return snap, nil
}
