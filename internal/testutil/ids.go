package testutil

import (
	"fmt"
	"sync"
)

// FixedGenerator returns predetermined IDs in order.
//
// Panics once every ID has been handed out, so a test that writes more
// snapshots than it planned for fails loudly.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// SequentialGenerator returns prefix-0001, prefix-0002, and so on.
type SequentialGenerator struct {
	prefix string
	clock  Counter
}

// NewSequentialGenerator creates a generator numbering from 1. An empty
// prefix becomes "id".
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next ID in sequence.
func (g *SequentialGenerator) Generate() string {
	return fmt.Sprintf("%s-%04d", g.prefix, g.clock.Next())
}

// Reset restarts numbering at 1.
func (g *SequentialGenerator) Reset() {
	g.clock.Reset()
}
