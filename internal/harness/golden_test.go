package harness

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/asstags/internal/karaoke"
)

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"split_and_merge", "retime", "auto_split"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass)
		})
	}
}

func TestFormatTraceWithErrors(t *testing.T) {
	result := NewResult()
	result.AddTrace(0, OpSetLine, "start=0:00:00.00 end=0:00:05.00", `{\k10}a`)
	result.AddTrace(1, OpReparse, "", `{\k10}a`)
	result.Syllables = []karaoke.Syllable{{Duration: 100 * time.Millisecond, TagType: `\k`, Text: "a"}}
	result.AddError("assertions[0] text: expected \"x\", got \"y\"")

	want := `scenario: broken
0 set_line start=0:00:00.00 end=0:00:05.00 => {\k10}a
1 reparse => {\k10}a
syllables:
  0 \k start=0 dur=100 "a"
pass: false
error: assertions[0] text: expected "x", got "y"
`
	assert.Equal(t, want, FormatTrace("broken", result))
}
