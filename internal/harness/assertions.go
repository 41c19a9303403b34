package harness

import (
	"context"
	"fmt"

	"github.com/roach88/asstags/internal/event"
	"github.com/roach88/asstags/internal/karaoke"
	"github.com/roach88/asstags/internal/store"
)

// AssertionContext is the state assertions are evaluated against.
type AssertionContext struct {
	Karaoke *karaoke.Karaoke
	Line    *event.Event
	Store   *store.Store
	Ctx     context.Context
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Index    int
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertions[%d] %s: expected %s, got %s", e.Index, e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion and returns one message per
// failure, in order.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var msgs []string
	for i, a := range assertions {
		if err := evaluateAssertion(i, a, actx); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}

func evaluateAssertion(index int, a Assertion, actx *AssertionContext) error {
	k := actx.Karaoke
	fail := func(expected, actual string) error {
		return &AssertionError{Index: index, Type: a.Type, Expected: expected, Actual: actual}
	}

	switch a.Type {
	case AssertText:
		if got := k.Text(); got != *a.Expect {
			return fail(fmt.Sprintf("%q", *a.Expect), fmt.Sprintf("%q", got))
		}

	case AssertTagType:
		if got := k.TagType(); got != *a.Expect {
			return fail(fmt.Sprintf("%q", *a.Expect), fmt.Sprintf("%q", got))
		}

	case AssertSyllableCount:
		if got := k.Len(); got != *a.Count {
			return fail(fmt.Sprint(*a.Count), fmt.Sprint(got))
		}

	case AssertSyllable:
		s, ok := k.Syllable(*a.Index)
		if !ok {
			return fail(fmt.Sprintf("syllable %d", *a.Index), fmt.Sprintf("%d syllables", k.Len()))
		}
		if a.Text != nil && s.Text != *a.Text {
			return fail(fmt.Sprintf("text %q", *a.Text), fmt.Sprintf("%q", s.Text))
		}
		if a.StartMs != nil && s.Start.Milliseconds() != *a.StartMs {
			return fail(fmt.Sprintf("start_ms %d", *a.StartMs), fmt.Sprint(s.Start.Milliseconds()))
		}
		if a.DurationMs != nil && s.Duration.Milliseconds() != *a.DurationMs {
			return fail(fmt.Sprintf("duration_ms %d", *a.DurationMs), fmt.Sprint(s.Duration.Milliseconds()))
		}
		if a.TagType != nil && s.TagType != *a.TagType {
			return fail(fmt.Sprintf("tag_type %q", *a.TagType), fmt.Sprintf("%q", s.TagType))
		}

	case AssertTotalDuration:
		if got := k.TotalDuration().Milliseconds(); got != *a.DurationMs {
			return fail(fmt.Sprintf("%dms", *a.DurationMs), fmt.Sprintf("%dms", got))
		}

	case AssertSnapshotCount:
		snaps, err := actx.Store.ListSnapshots(actx.Ctx, store.LineHash(actx.Line.Text))
		if err != nil {
			return fail(fmt.Sprint(*a.Count), "error: "+err.Error())
		}
		if len(snaps) != *a.Count {
			return fail(fmt.Sprint(*a.Count), fmt.Sprint(len(snaps)))
		}

	default:
		return fail("a known assertion type", a.Type)
	}
	return nil
}
