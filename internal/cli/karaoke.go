package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/asstags/internal/event"
	"github.com/roach88/asstags/internal/karaoke"
	"github.com/roach88/asstags/internal/override"
	"github.com/roach88/asstags/internal/store"
)

// KaraokeOptions holds flags for the karaoke command.
type KaraokeOptions struct {
	*RootOptions
	Start     string
	End       string
	AutoSplit bool
	Normalize bool
	Splits    []string // "index:position"
	Merges    []int
	Tag       string
	DBPath    string
}

// KaraokeView is the JSON form of a karaoke timeline.
type KaraokeView struct {
	Text      string         `json:"text"`
	TagType   string         `json:"tag_type"`
	StartMs   int64          `json:"start_ms"`
	EndMs     int64          `json:"end_ms"`
	TotalMs   int64          `json:"total_ms"`
	Syllables []SyllableView `json:"syllables"`
	Snapshot  *SnapshotRef   `json:"snapshot,omitempty"`
}

// SyllableView is the JSON form of one syllable.
type SyllableView struct {
	Index      int            `json:"index"`
	TagType    string         `json:"tag_type"`
	StartMs    int64          `json:"start_ms"`
	DurationMs int64          `json:"duration_ms"`
	Text       string         `json:"text"`
	Overrides  map[int]string `json:"overrides,omitempty"`
}

// SnapshotRef identifies a stored snapshot.
type SnapshotRef struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	LineHash string `json:"line_hash"`
	Inserted bool   `json:"inserted"`
}

type splitEdit struct {
	index, position int
}

// NewKaraokeCommand creates the karaoke command.
func NewKaraokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KaraokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "karaoke <line>",
		Short: "Build and edit a karaoke timeline",
		Long: `Decompose a dialogue line into karaoke syllables and apply edits.

Splits are applied first, in the order given, then merges. With --db the
resulting timeline is stored as a snapshot of the line.

Examples:
  asstags karaoke '{\k50}Hello {\k30}world'
  asstags karaoke --auto-split --start 0:00:01.00 --end 0:00:03.00 'one two three'
  asstags karaoke --split 0:2 --merge 1 --tag kf --db ./kara.db '{\k40}Hello'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKaraoke(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "0:00:00.00", "line start time (H:MM:SS.CC)")
	cmd.Flags().StringVar(&opts.End, "end", "", "line end time (default start + 5s)")
	cmd.Flags().BoolVar(&opts.AutoSplit, "auto-split", false, "split an untimed line at spaces")
	cmd.Flags().BoolVar(&opts.Normalize, "normalize", false, "cut syllable time past the line end")
	cmd.Flags().StringArrayVar(&opts.Splits, "split", nil, "split syllable at rune position (index:position, repeatable)")
	cmd.Flags().IntSliceVar(&opts.Merges, "merge", nil, "merge syllable into its predecessor (repeatable)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "rewrite every karaoke tag (k, kf, ko)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "store the result as a snapshot in this database")

	return cmd
}

func runKaraoke(cmd *cobra.Command, opts *KaraokeOptions, text string) error {
	f := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	line, err := lineEvent(text, opts.Start, opts.End)
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeArgs, "invalid line times", err)
	}
	splits, err := parseSplits(opts.Splits)
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeArgs, "invalid --split", err)
	}

	cat, err := opts.LoadCatalog()
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeCatalog, "failed to load catalog", err)
	}
	parser := override.NewParser(cat, override.WithLogger(logger))
	k := karaoke.New(karaoke.WithParser(parser), karaoke.WithLogger(logger))
	k.SetLine(line, opts.AutoSplit, opts.Normalize)

	for _, s := range splits {
		k.AddSplit(s.index, s.position)
	}
	for _, i := range opts.Merges {
		k.RemoveSplit(i)
	}
	if opts.Tag != "" {
		k.SetTagType(opts.Tag)
	}

	view := karaokeView(line, k)

	if opts.DBPath != "" {
		ref, err := saveSnapshot(cmd.Context(), opts.DBPath, line, k)
		if err != nil {
			return f.fail(ExitCommandError, ErrCodeStore, "failed to store snapshot", err)
		}
		view.Snapshot = ref
		logger.Debug("snapshot stored", "id", ref.ID, "seq", ref.Seq, "inserted", ref.Inserted)
	}

	if f.IsJSON() {
		return f.Success(view)
	}
	writeKaraokeText(cmd.OutOrStdout(), view)
	return nil
}

func lineEvent(text, start, end string) (*event.Event, error) {
	s, err := event.ParseTime(start)
	if err != nil {
		return nil, fmt.Errorf("--start: %w", err)
	}
	e := s + event.DefaultDuration
	if end != "" {
		if e, err = event.ParseTime(end); err != nil {
			return nil, fmt.Errorf("--end: %w", err)
		}
	}
	if e < s {
		return nil, fmt.Errorf("end %s is before start %s", event.FormatTime(e), event.FormatTime(s))
	}
	return &event.Event{Start: s, End: e, Text: text}, nil
}

func parseSplits(specs []string) ([]splitEdit, error) {
	edits := make([]splitEdit, 0, len(specs))
	for _, spec := range specs {
		idx, pos, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("%q: expected index:position", spec)
		}
		i, err := strconv.Atoi(idx)
		if err != nil {
			return nil, fmt.Errorf("%q: bad index: %w", spec, err)
		}
		p, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("%q: bad position: %w", spec, err)
		}
		edits = append(edits, splitEdit{index: i, position: p})
	}
	return edits, nil
}

// saveSnapshot opens the database only for the write so a failed edit never
// creates the file.
func saveSnapshot(ctx context.Context, path string, line *event.Event, k *karaoke.Karaoke) (*SnapshotRef, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	snap, inserted, err := st.WriteSnapshot(ctx, store.NewSnapshot(line, k))
	if err != nil {
		return nil, err
	}
	return &SnapshotRef{ID: snap.ID, Seq: snap.Seq, LineHash: snap.LineHash, Inserted: inserted}, nil
}

func karaokeView(line *event.Event, k *karaoke.Karaoke) KaraokeView {
	return KaraokeView{
		Text:      k.Text(),
		TagType:   k.TagType(),
		StartMs:   line.Start.Milliseconds(),
		EndMs:     line.End.Milliseconds(),
		TotalMs:   k.TotalDuration().Milliseconds(),
		Syllables: syllableViews(k.Syllables()),
	}
}

func syllableViews(syls []karaoke.Syllable) []SyllableView {
	views := make([]SyllableView, 0, len(syls))
	for i, s := range syls {
		v := SyllableView{
			Index:      i,
			TagType:    s.TagType,
			StartMs:    s.Start.Milliseconds(),
			DurationMs: s.Duration.Milliseconds(),
			Text:       s.Text,
		}
		if len(s.Overrides) > 0 {
			v.Overrides = s.Overrides
		}
		views = append(views, v)
	}
	return views
}

func writeKaraokeText(w io.Writer, v KaraokeView) {
	fmt.Fprintf(w, "text: %s\n", v.Text)
	fmt.Fprintf(w, "line: %s - %s (total %s)\n",
		event.FormatTime(millis(v.StartMs)), event.FormatTime(millis(v.EndMs)), millis(v.TotalMs))
	writeSyllables(w, v.Syllables)
	if v.Snapshot != nil {
		fmt.Fprintf(w, "snapshot: id=%s seq=%d\n", v.Snapshot.ID, v.Snapshot.Seq)
	}
}

func writeSyllables(w io.Writer, syls []SyllableView) {
	fmt.Fprintln(w, "syllables:")
	for _, s := range syls {
		fmt.Fprintf(w, "  %d %s start=%d dur=%d %q\n", s.Index, s.TagType, s.StartMs, s.DurationMs, s.Text)
	}
}

func millis(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }
