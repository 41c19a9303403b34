// Package karaoke decomposes a dialogue line into timed syllables and keeps
// them consistent under split, merge and retime edits.
//
// Syllables are contiguous: each starts where the previous one ends, and the
// first is pinned to the line start. Durations are held in milliseconds and
// serialized in centiseconds, rounding half up. Character offsets count runes.
//
// Edits never fail. Out-of-range indexes and times are ignored, since
// subtitle data is often hand-edited.
package karaoke
