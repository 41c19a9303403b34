package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/asstags/internal/catalog"
)

// PrototypeView is the JSON form of one catalog prototype.
type PrototypeView struct {
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Signature string          `json:"signature"`
	Arities   []int           `json:"arities"`
	Params    []ParamSpecView `json:"params"`
}

// ParamSpecView is the JSON form of one parameter spec.
type ParamSpecView struct {
	Type     string `json:"type"`
	Class    string `json:"class"`
	Optional []int  `json:"optional,omitempty"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List known tag prototypes",
		Long: `List every tag prototype, including those added with --catalog.

Examples:
  asstags catalog
  asstags catalog --name clip
  asstags --catalog ./tags.cue catalog --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, rootOpts, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "only list prototypes with this tag name")
	return cmd
}

func runCatalog(cmd *cobra.Command, rootOpts *RootOptions, name string) error {
	f := rootOpts.formatter(cmd)

	cat, err := rootOpts.LoadCatalog()
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeCatalog, "failed to load catalog", err)
	}

	protos := cat.Prototypes()
	if name != "" {
		name = strings.TrimPrefix(name, `\`)
		protos = cat.Lookup(name)
		if len(protos) == 0 {
			return f.fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("unknown tag %q", name), nil)
		}
	}

	views := make([]PrototypeView, 0, len(protos))
	for _, p := range protos {
		v := PrototypeView{
			Name:      p.Name,
			Kind:      p.Kind.String(),
			Signature: p.String(),
			Arities:   p.Arities(),
		}
		for _, ps := range p.Params {
			psv := ParamSpecView{Type: ps.Type.String(), Class: ps.Class.String()}
			if ps.Optional != catalog.NotOptional {
				psv.Optional = ps.Optional.Counts()
			}
			v.Params = append(v.Params, psv)
		}
		views = append(views, v)
	}

	if f.IsJSON() {
		return f.Success(views)
	}
	w := cmd.OutOrStdout()
	for _, v := range views {
		fmt.Fprintf(w, "%-10s %s\n", v.Kind, v.Signature)
	}
	return nil
}
