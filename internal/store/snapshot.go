package store

import (
	"errors"

	"github.com/roach88/asstags/internal/event"
	"github.com/roach88/asstags/internal/karaoke"
)

// ErrNotFound is returned when no snapshot matches a lookup.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored karaoke timeline.
type Snapshot struct {
	ID       string
	LineHash string
	// Seq numbers the snapshots of one line from 1. Assigned on write.
	Seq       int64
	Line      event.Event
	Text      string
	TagType   string
	Syllables []karaoke.Syllable
}

// NewSnapshot captures k as a snapshot of line.
func NewSnapshot(line *event.Event, k *karaoke.Karaoke) Snapshot {
	return Snapshot{
		LineHash:  LineHash(line.Text),
		Line:      *line,
		Text:      k.Text(),
		TagType:   k.TagType(),
		Syllables: k.Syllables(),
	}
}

// Karaoke rebuilds the stored timeline.
func (s Snapshot) Karaoke(opts ...karaoke.Option) *karaoke.Karaoke {
	k := karaoke.New(opts...)
	k.Load(s.Syllables)
	return k
}
