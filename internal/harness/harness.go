package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/asstags/internal/catalog"
	"github.com/roach88/asstags/internal/event"
	"github.com/roach88/asstags/internal/extension"
	"github.com/roach88/asstags/internal/karaoke"
	"github.com/roach88/asstags/internal/override"
	"github.com/roach88/asstags/internal/store"
	"github.com/roach88/asstags/internal/testutil"
)

// Harness applies scenario steps to one karaoke view.
type Harness struct {
	store  *store.Store
	parser *override.Parser
	kara   *karaoke.Karaoke
	line   *event.Event
	logger *slog.Logger
}

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger for the run. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes a scenario and returns the result. A scenario whose
// assertions fail still returns a result; the error is reserved for
// scenarios that cannot be executed at all.
//
// Each run gets a fresh in-memory store with sequential snapshot IDs.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequentialGenerator("snap")))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	cat := catalog.Default()
	if scenario.Catalog != "" {
		if cat, err = extension.Load(cat, scenario.Catalog); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	parser := override.NewParser(cat, override.WithLogger(cfg.logger))
	h := &Harness{
		store:  st,
		parser: parser,
		kara:   karaoke.New(karaoke.WithParser(parser), karaoke.WithLogger(cfg.logger)),
		logger: cfg.logger,
	}

	ctx := context.Background()
	result := NewResult()

	detail, err := h.setLine(scenario.Line)
	if err != nil {
		return nil, fmt.Errorf("failed to load line: %w", err)
	}
	result.AddTrace(0, OpSetLine, detail, h.kara.Text())

	for i, step := range scenario.Steps {
		detail, err := h.apply(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		result.AddTrace(i+1, step.Op, detail, h.kara.Text())

		h.logger.Debug("scenario step applied",
			"scenario", scenario.Name,
			"step", i+1,
			"op", step.Op,
			"syllables", h.kara.Len(),
		)
	}

	result.Syllables = h.kara.Syllables()

	actx := &AssertionContext{Karaoke: h.kara, Line: h.line, Store: st, Ctx: ctx}
	for _, msg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished", "scenario", scenario.Name, "pass", result.Pass)
	return result, nil
}

func (h *Harness) setLine(l LineSpec) (string, error) {
	line, err := l.Event()
	if err != nil {
		return "", err
	}
	h.line = line
	h.kara.SetLine(line, l.AutoSplit, l.Normalize)

	detail := fmt.Sprintf("start=%s end=%s", event.FormatTime(line.Start), event.FormatTime(line.End))
	if l.AutoSplit {
		detail += " auto_split"
	}
	if l.Normalize {
		detail += " normalize"
	}
	return detail, nil
}

// apply runs one step and returns its trace detail.
func (h *Harness) apply(ctx context.Context, s Step) (string, error) {
	switch s.Op {
	case OpSetLine:
		return h.setLine(*s.Line)

	case OpAddSplit:
		h.kara.AddSplit(*s.Index, *s.Position)
		return fmt.Sprintf("index=%d position=%d", *s.Index, *s.Position), nil

	case OpRemoveSplit:
		h.kara.RemoveSplit(*s.Index)
		return fmt.Sprintf("index=%d", *s.Index), nil

	case OpSetStartTime:
		h.kara.SetStartTime(*s.Index, millis(*s.TimeMs))
		return fmt.Sprintf("index=%d time_ms=%d", *s.Index, *s.TimeMs), nil

	case OpSetLineTimes:
		start, end := millis(*s.StartMs), millis(*s.EndMs)
		h.kara.SetLineTimes(start, end)
		if end >= start {
			h.line.Start, h.line.End = start, end
		}
		return fmt.Sprintf("start_ms=%d end_ms=%d", *s.StartMs, *s.EndMs), nil

	case OpSetTagType:
		h.kara.SetTagType(s.Tag)
		return "tag=" + strings.TrimPrefix(s.Tag, `\`), nil

	case OpReparse:
		h.line = &event.Event{Start: h.line.Start, End: h.line.End, Text: h.kara.Text()}
		h.kara.SetLine(h.line, false, false)
		return "", nil

	case OpSnapshot:
		snap, _, err := h.store.WriteSnapshot(ctx, store.NewSnapshot(h.line, h.kara))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("id=%s seq=%d", snap.ID, snap.Seq), nil

	case OpRestore:
		snap, err := h.store.LatestSnapshot(ctx, store.LineHash(h.line.Text))
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("no snapshot to restore for the current line")
		}
		if err != nil {
			return "", err
		}
		h.kara.Load(snap.Syllables)
		return fmt.Sprintf("id=%s seq=%d", snap.ID, snap.Seq), nil

	default:
		return "", fmt.Errorf("unknown op %q", s.Op)
	}
}
