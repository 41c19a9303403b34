package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "split_and_merge.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "split_and_merge", s.Name)
	assert.Equal(t, `{\k20}HelloWorld`, s.Line.Text)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, OpAddSplit, s.Steps[0].Op)
	assert.Equal(t, 0, *s.Steps[0].Index)
	assert.Equal(t, 5, *s.Steps[0].Position)
	assert.Equal(t, "kf", s.Steps[4].Tag)
	require.Len(t, s.Assertions, 5)
	assert.Equal(t, `{\kf10}Hello{\kf10}World`, *s.Assertions[0].Expect)
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", `
name: typo
description: "misspelled key"
line:
  text: '{\k10}a'
assertion:
  - type: text
    expect: '{\k10}a'
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioResolvesCatalog(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "ext.cue", `tags: blink: {kind: "toggle", params: [{type: "bool"}]}`)
	path := writeScenario(t, dir, "ext.yaml", `
name: ext
description: "uses an extension"
catalog: ext.cue
line:
  text: '{\k10\blink1}a'
assertions:
  - type: syllable_count
    count: 1
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ext.cue"), s.Catalog)
}

func TestValidateScenario(t *testing.T) {
	idx := func(i int) *int { return &i }
	ms := func(v int64) *int64 { return &v }
	str := func(s string) *string { return &s }

	valid := func() Scenario {
		return Scenario{
			Name:        "ok",
			Description: "valid",
			Line:        LineSpec{Text: `{\k10}a`},
			Assertions:  []Assertion{{Type: AssertText, Expect: str(`{\k10}a`)}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Scenario)
		errMsg string
	}{
		{"missing name", func(s *Scenario) { s.Name = "" }, "name is required"},
		{"missing description", func(s *Scenario) { s.Description = "" }, "description is required"},
		{"no assertions", func(s *Scenario) { s.Assertions = nil }, "assertions list is required"},
		{"bad start", func(s *Scenario) { s.Line.Start = "x:y" }, "line start"},
		{"end before start", func(s *Scenario) { s.Line.Start, s.Line.End = "0:00:02.00", "0:00:01.00" }, "is before start"},
		{"missing catalog", func(s *Scenario) { s.Catalog = "/nonexistent/ext.cue" }, "catalog file not found"},
		{"empty op", func(s *Scenario) { s.Steps = []Step{{}} }, "steps[0]: op is required"},
		{"unknown op", func(s *Scenario) { s.Steps = []Step{{Op: "shuffle"}} }, `unknown op "shuffle"`},
		{"split without position", func(s *Scenario) {
			s.Steps = []Step{{Op: OpAddSplit, Index: idx(0)}}
		}, "add_split requires position"},
		{"merge without index", func(s *Scenario) { s.Steps = []Step{{Op: OpRemoveSplit}} }, "remove_split requires index"},
		{"retime without time", func(s *Scenario) {
			s.Steps = []Step{{Op: OpSetStartTime, Index: idx(1)}}
		}, "set_start_time requires time_ms"},
		{"line times without end", func(s *Scenario) {
			s.Steps = []Step{{Op: OpSetLineTimes, StartMs: ms(0)}}
		}, "set_line_times requires end_ms"},
		{"tag type without tag", func(s *Scenario) { s.Steps = []Step{{Op: OpSetTagType}} }, "set_tag_type requires tag"},
		{"set_line without line", func(s *Scenario) { s.Steps = []Step{{Op: OpSetLine}} }, "set_line requires line"},
		{"assertion without type", func(s *Scenario) { s.Assertions = []Assertion{{}} }, "assertions[0]: type is required"},
		{"unknown assertion", func(s *Scenario) { s.Assertions = []Assertion{{Type: "vibes"}} }, `unknown assertion type "vibes"`},
		{"text without expect", func(s *Scenario) { s.Assertions = []Assertion{{Type: AssertText}} }, "text requires expect"},
		{"count without count", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertSyllableCount}}
		}, "syllable_count requires count"},
		{"negative count", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertSnapshotCount, Count: idx(-1)}}
		}, "count must be non-negative"},
		{"syllable without fields", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertSyllable, Index: idx(0)}}
		}, "syllable requires at least one of"},
		{"total without duration", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertTotalDuration}}
		}, "total_duration requires duration_ms"},
	}

	ok := valid()
	require.NoError(t, validateScenario(&ok))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := validateScenario(&s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLineSpecEvent(t *testing.T) {
	ev, err := LineSpec{Text: "x"}.Event()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), ev.Start)
	assert.Equal(t, 5*time.Second, ev.End)

	ev, err = LineSpec{Text: "x", Start: "0:00:10.00"}.Event()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, ev.End)

	ev, err = LineSpec{Text: "x", Start: "0:00:01.00", End: "0:00:02.50"}.Event()
	require.NoError(t, err)
	assert.Equal(t, time.Second, ev.Start)
	assert.Equal(t, 2500*time.Millisecond, ev.End)
}

func TestFindScenarios(t *testing.T) {
	files, err := FindScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "scenarios", "auto_split.yaml"),
		filepath.Join("testdata", "scenarios", "retime.yaml"),
		filepath.Join("testdata", "scenarios", "split_and_merge.yaml"),
	}, files)
}
