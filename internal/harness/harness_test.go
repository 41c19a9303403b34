package harness

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRunScenarioFiles(t *testing.T) {
	files, err := FindScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(s.Steps)+1)
		})
	}
}

func TestRunReportsFailedAssertions(t *testing.T) {
	s := &Scenario{
		Name:        "failing",
		Description: "every assertion is wrong",
		Line:        LineSpec{Text: `{\k10}a{\k20}b`},
		Assertions: []Assertion{
			{Type: AssertText, Expect: ptr(`{\k99}a`)},
			{Type: AssertSyllableCount, Count: ptr(5)},
			{Type: AssertSyllable, Index: ptr(7), Text: ptr("x")},
			{Type: AssertSyllable, Index: ptr(1), DurationMs: ptr(int64(1))},
			{Type: AssertTotalDuration, DurationMs: ptr(int64(1))},
			{Type: AssertTagType, Expect: ptr(`\ko`)},
			{Type: AssertSnapshotCount, Count: ptr(1)},
			{Type: AssertSyllable, Index: ptr(0), Text: ptr("a")},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 7)
	assert.Contains(t, result.Errors[0], "assertions[0] text: expected")
	assert.Contains(t, result.Errors[1], "expected 5, got 2")
	assert.Contains(t, result.Errors[2], "expected syllable 7, got 2 syllables")
	assert.Contains(t, result.Errors[3], "expected duration_ms 1, got 200")
	assert.Contains(t, result.Errors[4], "expected 1ms, got 300ms")
	assert.Contains(t, result.Errors[5], "assertions[5] tag_type")
	assert.Contains(t, result.Errors[6], "expected 1, got 0")
}

func TestRunSetLineStep(t *testing.T) {
	s := &Scenario{
		Name:        "set_line",
		Description: "replaces the line mid-scenario",
		Line:        LineSpec{Text: `{\k10}a`},
		Steps: []Step{
			{Op: OpSetLine, Line: &LineSpec{Text: `{\k30}one two`, AutoSplit: true}},
		},
		Assertions: []Assertion{
			{Type: AssertText, Expect: ptr(`{\k17}one {\k13}two`)},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "start=0:00:00.00 end=0:00:05.00 auto_split", result.Trace[1].Detail)
}

func TestRunRestoreWithoutSnapshot(t *testing.T) {
	s := &Scenario{
		Name:        "restore",
		Description: "nothing stored yet",
		Line:        LineSpec{Text: `{\k10}a`},
		Steps:       []Step{{Op: OpRestore}},
		Assertions:  []Assertion{{Type: AssertSyllableCount, Count: ptr(1)}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no snapshot to restore")
}

func TestRunSnapshotsAreSequential(t *testing.T) {
	s := &Scenario{
		Name:        "snapshots",
		Description: "each snapshot gets the next seq",
		Line:        LineSpec{Text: `{\k10}a{\k10}b`},
		Steps: []Step{
			{Op: OpSnapshot},
			{Op: OpRemoveSplit, Index: ptr(1)},
			{Op: OpSnapshot},
		},
		Assertions: []Assertion{{Type: AssertSnapshotCount, Count: ptr(2)}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "id=snap-0001 seq=1", result.Trace[1].Detail)
	assert.Equal(t, "id=snap-0002 seq=2", result.Trace[3].Detail)
}

func TestRunWithCatalogExtension(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "ext.cue", `tags: blink: {kind: "toggle", params: [{type: "bool"}]}`)
	path := writeScenario(t, dir, "ext.yaml", `
name: ext
description: "extension tags become syllable overrides"
catalog: ext.cue
line:
  text: '{\k10\blink1}a'
assertions:
  - type: text
    expect: '{\k10}{\blink1}a'
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "retime.yaml"))
	require.NoError(t, err)

	_, err = Run(s, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "scenario step applied")
	assert.Contains(t, buf.String(), "scenario finished")
}
