package extension

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/asstags/internal/catalog"
)

// allowedKinds are the kinds an extension may declare. The remaining kinds
// carry per-tag behavior that only built-in tags have.
var allowedKinds = map[catalog.Kind]bool{
	catalog.KindScalar: true,
	catalog.KindToggle: true,
	catalog.KindText:   true,
	catalog.KindColor:  true,
	catalog.KindAlpha:  true,
	catalog.KindVector: true,
}

// CompileString compiles extension source text. filename only labels
// error positions.
func CompileString(src, filename string) ([]catalog.Prototype, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename(filename))
	return Compile(v)
}

// CompileFile compiles a single .cue file, or every .cue file of the
// package in a directory.
func CompileFile(path string) ([]catalog.Prototype, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read extension: %w", err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read extension: %w", err)
		}
		return CompileString(string(data), path)
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: path})
	if len(instances) == 0 {
		return nil, fmt.Errorf("load extension %s: no CUE instances", path)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}
	return Compile(cuecontext.New().BuildInstance(inst))
}

// Compile reads the "tags" struct of v. Prototypes come back in declaration
// order. A value without "tags" yields no prototypes.
func Compile(v cue.Value) ([]catalog.Prototype, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	tagsVal := v.LookupPath(cue.ParsePath("tags"))
	if !tagsVal.Exists() {
		return nil, nil
	}

	iter, err := tagsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var protos []catalog.Prototype
	for iter.Next() {
		sel := iter.Selector()
		if sel.LabelType() != cue.StringLabel {
			continue
		}
		proto, err := compileTag(sel.Unquoted(), iter.Value())
		if err != nil {
			return nil, err
		}
		protos = append(protos, proto)
	}
	return protos, nil
}

func compileTag(name string, v cue.Value) (catalog.Prototype, error) {
	field := "tags." + name
	proto := catalog.Prototype{Name: name}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return proto, &CompileError{Field: field, Message: "kind is required", Pos: v.Pos()}
	}
	kindStr, err := kindVal.String()
	if err != nil {
		return proto, formatCUEError(err)
	}
	kind, ok := catalog.ParseKind(kindStr)
	if !ok || !allowedKinds[kind] {
		return proto, &CompileError{
			Field:   field + ".kind",
			Message: fmt.Sprintf("kind %q is not allowed in extensions", kindStr),
			Pos:     kindVal.Pos(),
		}
	}
	proto.Kind = kind

	paramsVal := v.LookupPath(cue.ParsePath("params"))
	if !paramsVal.Exists() {
		return proto, &CompileError{Field: field, Message: "params is required", Pos: v.Pos()}
	}
	list, err := paramsVal.List()
	if err != nil {
		return proto, formatCUEError(err)
	}
	for i := 0; list.Next(); i++ {
		spec, err := compileParam(fmt.Sprintf("%s.params[%d]", field, i), kind, list.Value())
		if err != nil {
			return proto, err
		}
		proto.Params = append(proto.Params, spec)
	}

	if err := proto.Validate(); err != nil {
		return proto, &CompileError{Field: field, Message: err.Error(), Pos: v.Pos()}
	}
	return proto, nil
}

func compileParam(field string, kind catalog.Kind, v cue.Value) (catalog.ParamSpec, error) {
	spec := catalog.ParamSpec{Class: catalog.Normal, Optional: catalog.NotOptional}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return spec, &CompileError{Field: field, Message: "type is required", Pos: v.Pos()}
	}
	typeStr, err := typeVal.String()
	if err != nil {
		return spec, formatCUEError(err)
	}
	t, ok := catalog.ParseVariableType(typeStr)
	if !ok || t == catalog.Block {
		return spec, &CompileError{
			Field:   field + ".type",
			Message: fmt.Sprintf("type %q must be int, float, text or bool", typeStr),
			Pos:     typeVal.Pos(),
		}
	}
	spec.Type = t

	if classVal := v.LookupPath(cue.ParsePath("class")); classVal.Exists() {
		classStr, err := classVal.String()
		if err != nil {
			return spec, formatCUEError(err)
		}
		c, ok := catalog.ParseClassification(classStr)
		if !ok {
			return spec, &CompileError{
				Field:   field + ".class",
				Message: fmt.Sprintf("unknown class %q", classStr),
				Pos:     classVal.Pos(),
			}
		}
		spec.Class = c
	}

	optVal := v.LookupPath(cue.ParsePath("optional"))
	if !optVal.Exists() {
		return spec, nil
	}
	if kind.Inline() {
		return spec, &CompileError{
			Field:   field + ".optional",
			Message: fmt.Sprintf("%s tags cannot have optional parameters", kind),
			Pos:     optVal.Pos(),
		}
	}
	counts, err := optVal.List()
	if err != nil {
		return spec, formatCUEError(err)
	}
	var present []int
	for counts.Next() {
		n, err := counts.Value().Int64()
		if err != nil {
			return spec, formatCUEError(err)
		}
		if n < 1 || n > 8 {
			return spec, &CompileError{
				Field:   field + ".optional",
				Message: fmt.Sprintf("argument count %d is outside 1..8", n),
				Pos:     counts.Value().Pos(),
			}
		}
		present = append(present, int(n))
	}
	if len(present) == 0 {
		return spec, &CompileError{
			Field:   field + ".optional",
			Message: "optional must list at least one argument count",
			Pos:     optVal.Pos(),
		}
	}
	spec.Optional = catalog.OptionalFor(present...)
	return spec, nil
}

// Load compiles the extension at path and returns base extended with it.
func Load(base *catalog.Catalog, path string) (*catalog.Catalog, error) {
	protos, err := CompileFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := base.Extend(protos...)
	if err != nil {
		return nil, fmt.Errorf("extend catalog with %s: %w", path, err)
	}
	return cat, nil
}
