package override

import "strings"

// Span is literal text inside a block that is not part of any tag. Index is
// the number of tags that precede it.
type Span struct {
	Index int
	Text  string
}

// Block is the ordered content of one {...} override span.
type Block struct {
	Tags  []Tag
	Spans []Span
}

// Body renders the block without braces.
func (b *Block) Body() string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	s := 0
	for i, t := range b.Tags {
		for s < len(b.Spans) && b.Spans[s].Index <= i {
			sb.WriteString(b.Spans[s].Text)
			s++
		}
		sb.WriteString(t.String())
	}
	for ; s < len(b.Spans); s++ {
		sb.WriteString(b.Spans[s].Text)
	}
	return sb.String()
}

// String renders the block with braces.
func (b *Block) String() string {
	return "{" + b.Body() + "}"
}

// Named returns the tags with the given name, in order.
func (b *Block) Named(name string) []Tag {
	var out []Tag
	for _, t := range b.Tags {
		if t.Name() == name {
			out = append(out, t)
		}
	}
	return out
}

// Append adds tags at the end of the block.
func (b *Block) Append(tags ...Tag) {
	b.Tags = append(b.Tags, tags...)
}

// Remove deletes the tag at index i, keeping literal spans attached to the
// tags they preceded.
func (b *Block) Remove(i int) {
	if i < 0 || i >= len(b.Tags) {
		return
	}
	b.Tags = append(b.Tags[:i], b.Tags[i+1:]...)
	for s := range b.Spans {
		if b.Spans[s].Index > i {
			b.Spans[s].Index--
		}
	}
}

// EqualBlocks compares two blocks tag by tag and span by span.
func EqualBlocks(a, b *Block) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Tags) != len(b.Tags) || len(a.Spans) != len(b.Spans) {
		return false
	}
	for i := range a.Tags {
		if !Equal(a.Tags[i], b.Tags[i]) {
			return false
		}
	}
	for i := range a.Spans {
		if a.Spans[i] != b.Spans[i] {
			return false
		}
	}
	return true
}
