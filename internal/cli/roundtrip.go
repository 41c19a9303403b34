package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/asstags/internal/override"
)

// RoundtripResult reports one input and its re-serialized form.
type RoundtripResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Match  bool   `json:"match"`
}

// NewRoundtripCommand creates the roundtrip command.
func NewRoundtripCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <block>...",
		Short: "Check that override blocks re-serialize unchanged",
		Long: `Parse each block and render it back to text.

Exits 1 if any block does not reproduce its input exactly.

Examples:
  asstags roundtrip '{\b1\i1}' '{\t(0,100,\1c&HFF&)}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(cmd, rootOpts, args)
		},
	}
}

func runRoundtrip(cmd *cobra.Command, rootOpts *RootOptions, inputs []string) error {
	f := rootOpts.formatter(cmd)

	cat, err := rootOpts.LoadCatalog()
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeCatalog, "failed to load catalog", err)
	}
	parser := override.NewParser(cat, override.WithLogger(rootOpts.Logger(cmd.ErrOrStderr())))

	results := make([]RoundtripResult, 0, len(inputs))
	mismatches := 0
	for _, in := range inputs {
		res := roundtrip(parser, in)
		if !res.Match {
			mismatches++
		}
		results = append(results, res)
	}

	failed := mismatches > 0
	message := fmt.Sprintf("%d block(s) did not round-trip", mismatches)
	if f.IsJSON() {
		if err := f.Result(results, failed, ErrCodeRoundTrip, message); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, r := range results {
			if r.Match {
				fmt.Fprintf(w, "✓ %s\n", r.Input)
				continue
			}
			fmt.Fprintf(w, "✗ %s\n    got: %s\n", r.Input, r.Output)
		}
	}

	if failed {
		return NewExitError(ExitFailure, message)
	}
	return nil
}

// roundtrip compares like with like: braced input against the braced
// rendering, bare input against the body.
func roundtrip(parser *override.Parser, in string) RoundtripResult {
	block := parser.Parse(in)
	out := block.Body()
	if strings.HasPrefix(in, "{") && strings.HasSuffix(in, "}") {
		out = block.String()
	}
	return RoundtripResult{Input: in, Output: out, Match: out == in}
}
