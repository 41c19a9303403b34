// Package store persists karaoke timelines in SQLite.
//
// Each snapshot records one line (text, start, end), the karaoke text it
// produced, and its syllables in order. Snapshots are keyed by a hash of the
// NFC-normalized line text, so the same lyric typed with composed or
// decomposed characters shares one history.
//
// # Ordering
//
// Snapshots of a line are numbered by seq, assigned as max+1 inside the
// write transaction. Every listing uses ORDER BY seq ASC, id ASC so results
// are identical across runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Syllable rows are removed with their snapshot
package store
