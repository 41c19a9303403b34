package catalog

import (
	"fmt"
	"strings"
)

// Prototype is one argument shape for a tag name. Name carries no backslash.
type Prototype struct {
	Name   string
	Kind   Kind
	Params []ParamSpec
}

// Matches reports whether the prototype accepts n arguments.
//
// Inline prototypes have a single parameter and accept zero or one argument;
// zero means the value is omitted (\i resets italics to the style default).
// Parenthesized prototypes accept n when exactly n parameters are present
// for that count.
func (p Prototype) Matches(n int) bool {
	if p.Kind.Inline() {
		return len(p.Params) == 1 && (n == 0 || n == 1)
	}
	if n == 0 {
		return false
	}
	return len(p.Layout(n)) == n
}

// Layout returns the indexes into Params that are present for n arguments,
// in order. The i-th argument binds to Params[Layout(n)[i]].
func (p Prototype) Layout(n int) []int {
	var idx []int
	for i, ps := range p.Params {
		if ps.Optional.PresentFor(n) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Arities lists the argument counts the prototype accepts, ascending.
func (p Prototype) Arities() []int {
	if p.Kind.Inline() {
		return []int{0, 1}
	}
	var out []int
	for n := 1; n <= len(p.Params); n++ {
		if p.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}

// String renders a compact signature, e.g. `\pos(float:absolute_pos_x, float:absolute_pos_y)`.
func (p Prototype) String() string {
	parts := make([]string, len(p.Params))
	for i, ps := range p.Params {
		s := ps.Type.String()
		if ps.Class != Normal {
			s += ":" + ps.Class.String()
		}
		if ps.Optional != NotOptional {
			s += fmt.Sprintf("?%v", ps.Optional.Counts())
		}
		parts[i] = s
	}
	if p.Kind.Inline() {
		return `\` + p.Name + "<" + strings.Join(parts, ", ") + ">"
	}
	return `\` + p.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Validate checks the name and parameter list. Catalog construction rejects
// prototypes that fail it.
func (p Prototype) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("prototype name is empty")
	}
	if strings.ContainsAny(p.Name, "\\(),{} \t") {
		return fmt.Errorf("prototype name %q contains a reserved character", p.Name)
	}
	if len(p.Params) == 0 {
		return fmt.Errorf("prototype %q has no parameters", p.Name)
	}
	if p.Kind.Inline() && len(p.Params) != 1 {
		return fmt.Errorf("prototype %q: %s tags take exactly one parameter", p.Name, p.Kind)
	}
	return nil
}
