package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/asstags/internal/event"
	"github.com/roach88/asstags/internal/karaoke"
	"github.com/roach88/asstags/internal/testutil"
)

// createTestStore opens a file-backed store in a temp dir with sequential IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialGenerator("snap")))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSnapshot builds a snapshot from karaoke line text.
func createTestSnapshot(text string) Snapshot {
	line := event.New(text)
	k := karaoke.New()
	k.SetLine(line, false, false)
	return NewSnapshot(line, k)
}
