package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const splitScenario = `name: split_hello
description: "Splitting a timed word halves its duration"
line:
  text: '{\k20}HelloWorld'
steps:
  - op: add_split
    index: 0
    position: 5
assertions:
  - type: text
    expect: '{\k10}Hello{\k10}World'
  - type: syllable_count
    count: 2
`

const failingScenario = `name: wrong_count
description: "Expects a syllable count the line does not have"
line:
  text: '{\k20}HelloWorld'
assertions:
  - type: syllable_count
    count: 3
`

const splitTrace = `scenario: split_hello
0 set_line start=0:00:00.00 end=0:00:05.00 => {\k20}HelloWorld
1 add_split index=0 position=5 => {\k10}Hello{\k10}World
syllables:
  0 \k start=0 dur=100 "Hello"
  1 \k start=100 dur=100 "World"
pass: true
`

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScenarioCommandPasses(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "split.yaml", splitScenario)

	out, _, err := execute(t, "scenario", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ split_hello\n")
	assert.Contains(t, out, "Scenario Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestScenarioCommandFailure(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "split.yaml", splitScenario)
	writeScenario(t, dir, "wrong.yaml", failingScenario)

	out, _, err := execute(t, "scenario", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 scenario(s) failed")
	assert.Contains(t, out, "✗ wrong_count\n")
	assert.Contains(t, out, "assertions[0] syllable_count")
}

func TestScenarioCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "split.yaml", splitScenario)
	writeScenario(t, dir, "wrong.yaml", failingScenario)

	out, _, err := execute(t, "scenario", "--filter", "sp*", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestScenarioCommandTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "split.yaml", splitScenario)

	out, _, err := execute(t, "scenario", "--trace", path)
	require.NoError(t, err)
	assert.Contains(t, out, "    1 add_split index=0 position=5 => {\\k10}Hello{\\k10}World\n")
}

func TestScenarioCommandGolden(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "split.yaml", splitScenario)

	out, _, err := execute(t, "scenario", "--update", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ split_hello (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "split.golden"))
	require.NoError(t, err)
	assert.Equal(t, splitTrace, string(golden))

	_, _, err = execute(t, "scenario", path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "split.golden"), []byte("stale\n"), 0644))
	out, _, err = execute(t, "scenario", path)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestScenarioCommandJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "split.yaml", splitScenario)
	writeScenario(t, dir, "wrong.yaml", failingScenario)

	out, _, err := execute(t, "--format", "json", "scenario", dir)
	require.Error(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   ScenarioSummary `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeScenario, resp.Error.Code)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
}

func TestScenarioCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "typo.yaml", "name: x\ndescription: y\nline: {text: a}\nassertion: []\n")

	out, _, err := execute(t, "scenario", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ typo.yaml\n")
	assert.Contains(t, out, "failed to load scenario")
}

func TestScenarioCommandEmptyAndMissing(t *testing.T) {
	out, _, err := execute(t, "scenario", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")

	_, _, err = execute(t, "scenario", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScenarioCommandHarnessFixtures(t *testing.T) {
	out, _, err := execute(t, "scenario", filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err)
	assert.Contains(t, out, "3 passed, 0 failed, 3 total")
}
