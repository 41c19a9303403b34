// Package testutil provides deterministic ID sources for tests that write
// karaoke snapshots, so stored IDs and golden output are stable across runs.
package testutil
