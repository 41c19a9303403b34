package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/asstags/internal/override"
)

// TagView is the JSON form of one parsed tag.
type TagView struct {
	Name    string      `json:"name"`
	Kind    string      `json:"kind"`
	Text    string      `json:"text"`
	Params  []ParamView `json:"params,omitempty"`
	Args    []string    `json:"args,omitempty"`
	Literal []string    `json:"literal,omitempty"`
}

// ParamView is the JSON form of one parameter slot.
type ParamView struct {
	Type    string    `json:"type"`
	Class   string    `json:"class"`
	Raw     string    `json:"raw"`
	Omitted bool      `json:"omitted,omitempty"`
	Tags    []TagView `json:"tags,omitempty"`
}

// BlockView is the JSON form of a parsed block.
type BlockView struct {
	Input string    `json:"input"`
	Text  string    `json:"text"`
	Tags  []TagView `json:"tags"`
	Spans []string  `json:"spans,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <block>",
		Short: "Show the tags of an override block",
		Long: `Parse one override block and describe every tag and parameter.

The surrounding braces are optional.

Examples:
  asstags parse '{\an8\pos(100,200)\t(0,500,\fscx120)}'
  asstags parse --format json '\fad(100,200)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, rootOpts, args[0])
		},
	}
}

func runParse(cmd *cobra.Command, rootOpts *RootOptions, input string) error {
	f := rootOpts.formatter(cmd)

	cat, err := rootOpts.LoadCatalog()
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeCatalog, "failed to load catalog", err)
	}
	parser := override.NewParser(cat, override.WithLogger(rootOpts.Logger(cmd.ErrOrStderr())))
	block := parser.Parse(input)

	if f.IsJSON() {
		return f.Success(blockView(input, block))
	}
	fmt.Fprint(cmd.OutOrStdout(), override.Dump(block))
	return nil
}

func blockView(input string, b *override.Block) BlockView {
	v := BlockView{Input: input, Text: b.String(), Tags: tagViews(b)}
	for _, s := range b.Spans {
		v.Spans = append(v.Spans, s.Text)
	}
	return v
}

func tagViews(b *override.Block) []TagView {
	views := make([]TagView, 0, len(b.Tags))
	for _, t := range b.Tags {
		views = append(views, tagView(t))
	}
	return views
}

func tagView(t override.Tag) TagView {
	v := TagView{Name: t.Name(), Text: t.String()}
	proto, ok := t.Prototype()
	if !ok {
		v.Kind = "unknown"
		if u, isUnknown := t.(*override.Unknown); isUnknown {
			v.Args = u.Args()
		}
		return v
	}
	v.Kind = proto.Kind.String()
	for _, p := range t.Params() {
		pv := ParamView{
			Type:    p.Spec().Type.String(),
			Class:   p.Spec().Class.String(),
			Raw:     p.Raw(),
			Omitted: p.Omitted(),
		}
		if nested := p.Block(); nested != nil {
			pv.Tags = tagViews(nested)
		}
		v.Params = append(v.Params, pv)
	}
	return v
}
