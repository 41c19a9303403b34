package override

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/roach88/asstags/internal/catalog"
)

// Parser turns override block text into tags using a catalog. A Parser holds
// no mutable state and may be shared.
type Parser struct {
	cat    *catalog.Catalog
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a parser over cat. A nil catalog means catalog.Default().
func NewParser(cat *catalog.Catalog, opts ...Option) *Parser {
	if cat == nil {
		cat = catalog.Default()
	}
	p := &Parser{
		cat:    cat,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = sync.OnceValue(func() *Parser {
	return NewParser(catalog.Default())
})

// Default returns a shared parser over the built-in catalog.
func Default() *Parser { return defaultParser() }

// Parse parses text with the default parser.
func Parse(text string) *Block { return Default().Parse(text) }

// Catalog returns the catalog the parser matches against.
func (p *Parser) Catalog() *catalog.Catalog { return p.cat }

// Parse parses one override block. A single surrounding pair of braces is
// optional. Parsing never fails: unrecognized input becomes Unknown tags or
// literal spans.
func (p *Parser) Parse(text string) *Block {
	text = strings.TrimPrefix(text, "{")
	text = strings.TrimSuffix(text, "}")
	return p.parseBody(text)
}

// ParseTag parses text that holds a single tag, such as `\fad(100,200)`.
func (p *Parser) ParseTag(text string) (Tag, bool) {
	b := p.parseBody(text)
	if len(b.Tags) != 1 {
		return nil, false
	}
	return b.Tags[0], true
}

// Build creates a tag from a name and raw arguments. Names outside the
// catalog produce an Unknown tag; a known name whose prototypes all reject
// the argument count is a ShapeError.
func (p *Parser) Build(name string, args ...string) (Tag, error) {
	protos := p.cat.Lookup(name)
	if len(protos) == 0 {
		return NewUnknown(name, len(args) > 1, args...), nil
	}
	for _, proto := range protos {
		if proto.Matches(len(args)) {
			return p.bind(proto, args), nil
		}
	}
	return nil, &ShapeError{Name: name, Args: len(args)}
}

func (p *Parser) parseBody(s string) *Block {
	b := &Block{}
	i := 0
	for i < len(s) {
		j := strings.IndexByte(s[i:], '\\')
		if j < 0 {
			b.addSpan(s[i:])
			break
		}
		if j > 0 {
			b.addSpan(s[i : i+j])
		}
		var t Tag
		t, i = p.parseTag(s, i+j)
		b.Tags = append(b.Tags, t)
	}
	return b
}

func (b *Block) addSpan(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.Spans = append(b.Spans, Span{Index: len(b.Tags), Text: text})
}

// parseTag reads the tag starting at the backslash s[start] and returns it
// with the offset just past it.
func (p *Parser) parseTag(s string, start int) (Tag, int) {
	i := skipSpace(s, start+1)
	name, ok := p.cat.Match(s[i:])
	if !ok {
		return p.parseUnknown(s, i)
	}
	i += len(name)

	if j := skipSpace(s, i); j < len(s) && s[j] == '(' {
		args, end := splitArgs(s, j)
		return p.resolve(name, args, true), end
	}

	value, end := inlineValue(s, i)
	var args []string
	if value != "" {
		args = []string{value}
	}
	return p.resolve(name, args, false), end
}

// resolve binds args to the first matching prototype of name, falling back
// to Unknown.
func (p *Parser) resolve(name string, args []string, parens bool) Tag {
	for _, proto := range p.cat.Lookup(name) {
		if proto.Matches(len(args)) {
			return p.bind(proto, args)
		}
	}
	p.logger.Debug("tag shape not recognized", "tag", name, "args", len(args), "parens", parens)
	return NewUnknown(name, parens, args...)
}

func (p *Parser) parseUnknown(s string, i int) (Tag, int) {
	n := i
	for n < len(s) && s[n] != '(' && s[n] != '\\' && !isSpace(s[n]) {
		n++
	}
	name := s[i:n]
	p.logger.Debug("unknown tag", "tag", name)

	if j := skipSpace(s, n); j < len(s) && s[j] == '(' {
		args, end := splitArgs(s, j)
		return &Unknown{name: name, args: args, parens: true}, end
	}

	value, end := inlineValue(s, n)
	if value == "" {
		return &Unknown{name: name}, end
	}
	sep := s[n:skipSpace(s, n)]
	return &Unknown{name: name, args: []string{value}, sep: sep}, end
}

func (p *Parser) bind(proto catalog.Prototype, args []string) Tag {
	params := make([]*Param, len(proto.Params))
	for i, spec := range proto.Params {
		params[i] = newParam(spec, p)
	}
	if proto.Kind.Inline() {
		if len(args) == 1 {
			params[0].Set(args[0])
		}
	} else {
		for ai, pi := range proto.Layout(len(args)) {
			params[pi].Set(args[ai])
		}
	}
	for _, prm := range params {
		if prm.spec.Type == catalog.Block && !prm.omitted {
			prm.block = p.parseBody(prm.raw)
		}
	}

	b := base{proto: proto, params: params}
	switch proto.Kind {
	case catalog.KindToggle:
		return &Toggle{inline{b}}
	case catalog.KindScalar:
		return &Scalar{inline{b}}
	case catalog.KindFontSize:
		return &FontSize{inline{b}}
	case catalog.KindColor:
		return &Color{inline{b}}
	case catalog.KindAlpha:
		return &Alpha{inline{b}}
	case catalog.KindText:
		return &Text{inline{b}}
	case catalog.KindKaraoke:
		return &Karaoke{inline{b}}
	case catalog.KindPosition:
		return &Position{b}
	case catalog.KindMove:
		return &Move{b}
	case catalog.KindFade:
		return &Fade{b}
	case catalog.KindClip:
		return &Clip{b}
	case catalog.KindTransform:
		return &Transform{b}
	default:
		return &Vector{b}
	}
}

// splitArgs splits the parenthesized list opening at s[open] on top-level
// commas. Nested parentheses and !...! expressions do not split. Once an
// argument starts with a backslash it is a nested block and runs to the
// closing parenthesis. An unclosed list runs to the end of s.
func splitArgs(s string, open int) ([]string, int) {
	var args []string
	depth := 0
	argStart := open + 1
	nested := false
	end := len(s)
	closed := false

	for k := open + 1; k < len(s) && !closed; k++ {
		switch c := s[k]; c {
		case '!':
			if m := strings.IndexByte(s[k+1:], '!'); m >= 0 {
				k += m + 1
			}
		case '\\':
			if strings.TrimSpace(s[argStart:k]) == "" {
				nested = true
			}
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
				continue
			}
			args = append(args, strings.TrimSpace(s[argStart:k]))
			end = k + 1
			closed = true
		case ',':
			if depth == 0 && !nested {
				args = append(args, strings.TrimSpace(s[argStart:k]))
				argStart = k + 1
			}
		}
	}
	if !closed {
		args = append(args, strings.TrimSpace(s[argStart:]))
	}
	if len(args) == 1 && args[0] == "" {
		return nil, end
	}
	return args, end
}

// inlineValue reads an unparenthesized value up to the next backslash that is
// not inside a !...! expression.
func inlineValue(s string, i int) (string, int) {
	k := i
	for k < len(s) {
		switch s[k] {
		case '\\':
			return strings.TrimSpace(s[i:k]), k
		case '!':
			if m := strings.IndexByte(s[k+1:], '!'); m >= 0 {
				k += m + 2
				continue
			}
		}
		k++
	}
	return strings.TrimSpace(s[i:]), len(s)
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
