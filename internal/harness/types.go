package harness

import "github.com/roach88/asstags/internal/karaoke"

// TraceEvent records one applied step and the karaoke text it produced.
type TraceEvent struct {
	// Step is 0 for the initial line load and 1-based for scenario steps.
	Step   int    `json:"step"`
	Op     string `json:"op"`
	Detail string `json:"detail,omitempty"`
	Text   string `json:"text"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	Trace []TraceEvent `json:"trace"`

	// Syllables is the final timeline.
	Syllables []karaoke.Syllable `json:"syllables"`

	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(step int, op, detail, text string) {
	r.Trace = append(r.Trace, TraceEvent{Step: step, Op: op, Detail: detail, Text: text})
}
