package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/asstags/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath string
	Latest bool
	Delete string
}

// SnapshotView is the JSON form of a stored snapshot.
type SnapshotView struct {
	ID        string         `json:"id"`
	Seq       int64          `json:"seq"`
	LineHash  string         `json:"line_hash"`
	Text      string         `json:"text"`
	TagType   string         `json:"tag_type"`
	StartMs   int64          `json:"start_ms"`
	EndMs     int64          `json:"end_ms"`
	Syllables []SyllableView `json:"syllables"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <line>",
		Short: "List stored karaoke snapshots for a line",
		Long: `List the snapshots stored for a line, oldest first.

The line is identified by its original text, exactly as passed to
"asstags karaoke".

Examples:
  asstags history --db ./kara.db '{\k40}Hello'
  asstags history --db ./kara.db --latest '{\k40}Hello'
  asstags history --db ./kara.db --delete 0190a5c2-... '{\k40}Hello'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "snapshot database (required)")
	cmd.Flags().BoolVar(&opts.Latest, "latest", false, "show only the newest snapshot")
	cmd.Flags().StringVar(&opts.Delete, "delete", "", "delete the snapshot with this id")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions, line string) error {
	f := opts.formatter(cmd)

	if opts.Latest && opts.Delete != "" {
		return f.fail(ExitCommandError, ErrCodeArgs, "--latest and --delete are mutually exclusive", nil)
	}
	if _, err := os.Stat(opts.DBPath); err != nil {
		return f.fail(ExitCommandError, ErrCodeNotFound, "database not found", err)
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	hash := store.LineHash(line)

	switch {
	case opts.Delete != "":
		err := st.DeleteSnapshot(ctx, opts.Delete)
		if errors.Is(err, store.ErrNotFound) {
			return f.fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("snapshot %s not found", opts.Delete), nil)
		}
		if err != nil {
			return f.fail(ExitCommandError, ErrCodeStore, "failed to delete snapshot", err)
		}
		if f.IsJSON() {
			return f.Success(map[string]string{"deleted": opts.Delete})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", opts.Delete)
		return nil

	case opts.Latest:
		snap, err := st.LatestSnapshot(ctx, hash)
		if errors.Is(err, store.ErrNotFound) {
			return f.fail(ExitFailure, ErrCodeNotFound, "no snapshots for line", nil)
		}
		if err != nil {
			return f.fail(ExitCommandError, ErrCodeStore, "failed to read snapshot", err)
		}
		return writeSnapshots(cmd, f, []store.Snapshot{snap})

	default:
		snaps, err := st.ListSnapshots(ctx, hash)
		if err != nil {
			return f.fail(ExitCommandError, ErrCodeStore, "failed to list snapshots", err)
		}
		if len(snaps) == 0 {
			return f.fail(ExitFailure, ErrCodeNotFound, "no snapshots for line", nil)
		}
		return writeSnapshots(cmd, f, snaps)
	}
}

func writeSnapshots(cmd *cobra.Command, f *OutputFormatter, snaps []store.Snapshot) error {
	views := make([]SnapshotView, 0, len(snaps))
	for _, s := range snaps {
		views = append(views, SnapshotView{
			ID:        s.ID,
			Seq:       s.Seq,
			LineHash:  s.LineHash,
			Text:      s.Text,
			TagType:   s.TagType,
			StartMs:   s.Line.Start.Milliseconds(),
			EndMs:     s.Line.End.Milliseconds(),
			Syllables: syllableViews(s.Syllables),
		})
	}

	if f.IsJSON() {
		return f.Success(views)
	}
	w := cmd.OutOrStdout()
	for _, v := range views {
		fmt.Fprintf(w, "#%d %s %s\n", v.Seq, v.ID, v.Text)
	}
	return nil
}
