// Package harness runs karaoke editing scenarios described in YAML.
//
// A scenario loads one line, applies a list of edits, and checks the
// outcome:
//
//	name: split_and_merge
//	description: "Splitting then merging restores the line"
//	line:
//	  text: '{\k20}HelloWorld'
//	  start: "0:00:00.00"
//	  end: "0:00:05.00"
//	steps:
//	  - op: add_split
//	    index: 0
//	    position: 5
//	  - op: remove_split
//	    index: 1
//	assertions:
//	  - type: text
//	    expect: '{\k20}HelloWorld'
//
// # Steps
//
//   - set_line: replace the line (line: {text, start, end, auto_split, normalize})
//   - add_split: index, position
//   - remove_split: index
//   - set_start_time: index, time_ms
//   - set_line_times: start_ms, end_ms
//   - set_tag_type: tag
//   - reparse: rebuild the syllables from the current karaoke text
//   - snapshot: store the timeline in the scenario's store
//   - restore: load the latest stored timeline of the current line
//
// # Assertion Types
//
//   - text: karaoke text equals expect
//   - tag_type: first syllable's tag equals expect
//   - syllable_count: number of syllables equals count
//   - syllable: fields of syllable index match (text, start_ms, duration_ms, tag_type)
//   - total_duration: summed duration equals duration_ms
//   - snapshot_count: stored snapshots of the current line equal count
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory SQLite store with sequential snapshot
// IDs, so traces are identical across runs and can be compared against
// golden files with RunWithGolden.
package harness
