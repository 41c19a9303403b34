package override

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a block as an indented, line-oriented description of every
// tag and parameter. It is stable and used for golden comparisons.
func Dump(b *Block) string {
	var sb strings.Builder
	dumpBlock(&sb, b, 0)
	return sb.String()
}

func dumpBlock(sb *strings.Builder, b *Block, depth int) {
	indent := strings.Repeat("  ", depth)
	s := 0
	writeSpans := func(upTo int) {
		for s < len(b.Spans) && b.Spans[s].Index <= upTo {
			fmt.Fprintf(sb, "%sliteral %s\n", indent, strconv.Quote(b.Spans[s].Text))
			s++
		}
	}
	for i, t := range b.Tags {
		writeSpans(i)
		dumpTag(sb, t, depth)
	}
	writeSpans(len(b.Tags))
}

func dumpTag(sb *strings.Builder, t Tag, depth int) {
	indent := strings.Repeat("  ", depth)
	if u, ok := t.(*Unknown); ok {
		fmt.Fprintf(sb, "%s\\%s unknown parens=%t args=%s\n", indent, u.Name(), u.HasParens(), quoteList(u.Args()))
		return
	}

	proto, _ := t.Prototype()
	fmt.Fprintf(sb, "%s\\%s %s%s\n", indent, t.Name(), proto.Kind, variantNote(t))
	for i, p := range t.Params() {
		spec := p.Spec()
		head := fmt.Sprintf("%s  %d %s %s", indent, i, spec.Type, spec.Class)
		switch {
		case p.Omitted():
			sb.WriteString(head + " omitted\n")
		case p.Block() != nil:
			sb.WriteString(head + "\n")
			dumpBlock(sb, p.Block(), depth+2)
		default:
			sb.WriteString(head + " " + strconv.Quote(p.Raw()) + "\n")
		}
	}
}

func variantNote(t Tag) string {
	switch v := t.(type) {
	case *Transform:
		return " " + v.Variant().String()
	case *Clip:
		return " " + v.Shape().String()
	case *Fade:
		if v.IsShortVariant() {
			return " short"
		}
		return " long"
	case *Move:
		if v.IsShortVariant() {
			return " short"
		}
		return " long"
	case *FontSize:
		if v.Relative() {
			return " relative"
		}
	}
	return ""
}

func quoteList(items []string) string {
	q := make([]string, len(items))
	for i, s := range items {
		q[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(q, " ") + "]"
}
