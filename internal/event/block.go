package event

import (
	"strings"

	"github.com/roach88/asstags/internal/override"
)

// Block is one segment of a line's text.
type Block interface {
	// Kind names the segment type.
	Kind() BlockKind
	// String renders the segment as it appears in the line.
	String() string
	block()
}

// BlockKind enumerates the segment types.
type BlockKind int

const (
	KindPlain BlockKind = iota
	KindComment
	KindDrawing
	KindOverride
)

func (k BlockKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindComment:
		return "comment"
	case KindDrawing:
		return "drawing"
	case KindOverride:
		return "override"
	}
	return "unknown"
}

// PlainBlock is visible text.
type PlainBlock struct{ Text string }

// CommentBlock is a {...} span with no backslash. Body excludes the braces.
type CommentBlock struct{ Body string }

// DrawingBlock is text drawn as vector commands because a \p tag with a
// nonzero level is in effect.
type DrawingBlock struct {
	Commands string
	Level    int
}

// OverrideBlock is a {...} span holding tags.
type OverrideBlock struct{ *override.Block }

func (*PlainBlock) Kind() BlockKind { return KindPlain }
func (*CommentBlock) Kind() BlockKind { return KindComment }
func (*DrawingBlock) Kind() BlockKind { return KindDrawing }
func (*OverrideBlock) Kind() BlockKind { return KindOverride }

func (b *PlainBlock) String() string { return b.Text }
func (b *CommentBlock) String() string { return "{" + b.Body + "}" }
func (b *DrawingBlock) String() string { return b.Commands }

func (*PlainBlock) block() {}
func (*CommentBlock) block() {}
func (*DrawingBlock) block() {}
func (*OverrideBlock) block() {}

// Split segments text into blocks. A {...} span without a backslash is a
// comment; with one it is parsed as an override block. After a \p tag with
// a nonzero level, text up to the next brace is a drawing. A { with no
// closing } is plain text. Empty text yields a single empty plain block.
func Split(text string, parser *override.Parser) []Block {
	if text == "" {
		return []Block{&PlainBlock{}}
	}
	if parser == nil {
		parser = override.Default()
	}

	var blocks []Block
	drawing := 0
	data := text
	for data != "" {
		if data[0] == '{' {
			if q := strings.IndexByte(data, '}'); q >= 0 {
				body := data[1:q]
				data = data[q+1:]
				if !strings.Contains(body, `\`) {
					blocks = append(blocks, &CommentBlock{Body: body})
					continue
				}
				ob := parser.Parse(body)
				blocks = append(blocks, &OverrideBlock{Block: ob})
				for _, t := range ob.Named("p") {
					if s, ok := t.(*override.Scalar); ok {
						drawing = s.Int()
					}
				}
				continue
			}
		}

		if drawing != 0 {
			q := strings.IndexByte(data[1:], '{')
			if q < 0 {
				q = len(data)
			} else {
				q++
			}
			blocks = append(blocks, &DrawingBlock{Commands: data[:q], Level: drawing})
			data = data[q:]
			continue
		}

		q := strings.IndexByte(data[1:], '{')
		if q < 0 {
			q = len(data)
		} else {
			q++
			if !strings.Contains(data[q:], "}") {
				q = len(data)
			}
		}
		blocks = append(blocks, &PlainBlock{Text: data[:q]})
		data = data[q:]
	}
	return blocks
}

// Join renders blocks back into line text.
func Join(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.String())
	}
	return sb.String()
}
