package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// FormatTrace renders a result as the text stored in golden files: one line
// per step, the final syllables, and any failures.
func FormatTrace(name string, result *Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scenario: %s\n", name)
	for _, ev := range result.Trace {
		fmt.Fprintf(&sb, "%d %s", ev.Step, ev.Op)
		if ev.Detail != "" {
			sb.WriteString(" " + ev.Detail)
		}
		sb.WriteString(" => " + ev.Text + "\n")
	}
	sb.WriteString("syllables:\n")
	for i, s := range result.Syllables {
		fmt.Fprintf(&sb, "  %d %s start=%d dur=%d %q\n",
			i, s.TagType, s.Start.Milliseconds(), s.Duration.Milliseconds(), s.Text)
	}
	fmt.Fprintf(&sb, "pass: %t\n", result.Pass)
	for _, e := range result.Errors {
		sb.WriteString("error: " + e + "\n")
	}
	return sb.String()
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(FormatTrace(name, result)))
}
