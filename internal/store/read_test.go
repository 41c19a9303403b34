package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/asstags/internal/event"
	"github.com/roach88/asstags/internal/karaoke"
)

func TestReadSnapshotRestoresTimeline(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	line := &event.Event{Start: 1500 * time.Millisecond, End: 4 * time.Second, Text: `{\k10\b1}Hi{x} {\kf20}there`}
	k := karaoke.New()
	k.SetLine(line, false, false)

	stored, _, err := s.WriteSnapshot(ctx, NewSnapshot(line, k))
	require.NoError(t, err)

	got, err := s.ReadSnapshot(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, *line, got.Line)
	assert.Equal(t, k.Text(), got.Text)
	assert.Equal(t, k.TagType(), got.TagType)
	assert.Equal(t, k.Syllables(), got.Syllables)

	assert.Equal(t, k.Text(), got.Karaoke().Text())
}

func TestReadSnapshotNotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSnapshotsOrdered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	text := `{\k10}Hi {\k10}there`
	for range 3 {
		_, _, err := s.WriteSnapshot(ctx, createTestSnapshot(text))
		require.NoError(t, err)
	}
	_, _, err := s.WriteSnapshot(ctx, createTestSnapshot(`{\k10}other`))
	require.NoError(t, err)

	list, err := s.ListSnapshots(ctx, LineHash(text))
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, snap := range list {
		assert.Equal(t, int64(i+1), snap.Seq)
		assert.Len(t, snap.Syllables, 2)
	}
	assert.Equal(t, []string{"snap-0001", "snap-0002", "snap-0003"},
		[]string{list[0].ID, list[1].ID, list[2].ID})
}

func TestListSnapshotsEmpty(t *testing.T) {
	s := createTestStore(t)

	list, err := s.ListSnapshots(context.Background(), LineHash("nothing"))
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestLatestSnapshot(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	text := `{\k20}HelloWorld`
	_, _, err := s.WriteSnapshot(ctx, createTestSnapshot(text))
	require.NoError(t, err)

	line := event.New(text)
	k := karaoke.New()
	k.SetLine(line, false, false)
	k.AddSplit(0, 5)
	_, _, err = s.WriteSnapshot(ctx, NewSnapshot(line, k))
	require.NoError(t, err)

	latest, err := s.LatestSnapshot(ctx, LineHash(text))
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest.Seq)
	assert.Equal(t, `{\k10}Hello{\k10}World`, latest.Text)

	_, err = s.LatestSnapshot(ctx, LineHash("none"))
	assert.ErrorIs(t, err, ErrNotFound)
}
