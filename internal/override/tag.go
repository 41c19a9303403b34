package override

import (
	"strings"
	"time"

	"github.com/roach88/asstags/internal/catalog"
	"github.com/roach88/asstags/internal/color"
)

// Tag is one parsed override tag. The set of implementations is closed:
// Toggle, Scalar, FontSize, Color, Alpha, Text, Karaoke, Position, Move,
// Fade, Clip, Transform, Vector and Unknown.
type Tag interface {
	// Name is the tag name without the backslash.
	Name() string
	// Prototype is the catalog shape the tag was bound to. Unknown tags
	// report false.
	Prototype() (catalog.Prototype, bool)
	// Params returns the parameter slots in prototype order.
	Params() []*Param
	// String renders the tag, backslash included.
	String() string
	tag()
}

type base struct {
	proto  catalog.Prototype
	params []*Param
}

func (b *base) Name() string { return b.proto.Name }
func (b *base) Prototype() (catalog.Prototype, bool) { return b.proto, true }
func (b *base) Params() []*Param { return b.params }
func (b *base) tag() {}

// Param returns the i-th parameter slot.
func (b *base) Param(i int) *Param { return b.params[i] }

func (b *base) String() string {
	if b.proto.Kind.Inline() {
		p := b.params[0]
		if p.Omitted() {
			return `\` + b.proto.Name
		}
		return `\` + b.proto.Name + p.Raw()
	}
	var sb strings.Builder
	sb.WriteByte('\\')
	sb.WriteString(b.proto.Name)
	sb.WriteByte('(')
	first := true
	for _, p := range b.params {
		if p.Omitted() {
			continue
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(p.Raw())
	}
	sb.WriteByte(')')
	return sb.String()
}

// inline is shared by the single-value kinds.
type inline struct{ base }

// IsSet reports whether a value was written. \i without a value resets to
// the style default.
func (t *inline) IsSet() bool { return !t.params[0].Omitted() }

// Raw returns the value text.
func (t *inline) Raw() string { return t.params[0].Raw() }

// SetRaw replaces the value text verbatim.
func (t *inline) SetRaw(raw string) { t.params[0].Set(raw) }

// Reset removes the value.
func (t *inline) Reset() { t.params[0].Reset() }

// Toggle is an on/off flag such as \i, \u or \s.
type Toggle struct{ inline }

func (t *Toggle) Enabled() bool { return t.params[0].Bool() }
func (t *Toggle) SetEnabled(v bool) { t.params[0].SetBool(v) }

// Scalar is a single numeric value such as \bord, \fscx or \an.
type Scalar struct{ inline }

func (t *Scalar) Int() int { return t.params[0].Int() }
func (t *Scalar) Float() float64 { return t.params[0].Float() }
func (t *Scalar) SetInt(v int) { t.params[0].SetInt(v) }
func (t *Scalar) SetFloat(v float64) { t.params[0].SetFloat(v) }

// FontSize is \fs, or the relative forms \fs+ and \fs-.
type FontSize struct{ inline }

// Relative reports whether the tag adjusts the current size.
func (t *FontSize) Relative() bool {
	return t.proto.Name != "fs"
}

// Value returns the absolute size, or the signed adjustment for the
// relative forms (\fs-10 yields -10).
func (t *FontSize) Value() float64 {
	v := t.params[0].Float()
	if t.proto.Name == "fs-" {
		return -v
	}
	return v
}

// SetValue stores v using the same sign convention as Value.
func (t *FontSize) SetValue(v float64) {
	if t.proto.Name == "fs-" {
		v = -v
	}
	t.params[0].SetFloat(v)
}

// Color is \c or one of \1c..\4c.
type Color struct{ inline }

// Index is the color slot: 1 primary through 4 shadow. \c is slot 1.
func (t *Color) Index() int {
	return slotIndex(t.proto.Name)
}

// Color decodes the value. Malformed text is an error.
func (t *Color) Color() (color.Color, error) { return t.params[0].Color() }

// SetColor stores c as &HBBGGRR&.
func (t *Color) SetColor(c color.Color) { t.params[0].Set(c.Override()) }

// Alpha is \alpha or one of \1a..\4a.
type Alpha struct{ inline }

// Index is the alpha slot; \alpha, which sets all four, is 0.
func (t *Alpha) Index() int {
	if t.proto.Name == "alpha" {
		return 0
	}
	return slotIndex(t.proto.Name)
}

func (t *Alpha) Alpha() int { return t.params[0].Int() }
func (t *Alpha) SetAlpha(a int) { t.params[0].SetInt(a) }

func slotIndex(name string) int {
	if len(name) == 2 && name[0] >= '1' && name[0] <= '4' {
		return int(name[0] - '0')
	}
	return 1
}

// Text is a free-form value such as \fn, \fe or \r.
type Text struct{ inline }

func (t *Text) Text() string { return t.params[0].Raw() }
func (t *Text) SetText(s string) { t.params[0].Set(s) }

// Karaoke is \k, \K, \kf or \ko. The value is in centiseconds.
type Karaoke struct{ inline }

func (t *Karaoke) Centiseconds() int { return t.params[0].Int() }
func (t *Karaoke) SetCentiseconds(cs int) { t.params[0].SetInt(cs) }

// Duration converts the value to a duration.
func (t *Karaoke) Duration() time.Duration {
	return time.Duration(t.Centiseconds()) * 10 * time.Millisecond
}

// SetDuration stores d rounded to the nearest centisecond.
func (t *Karaoke) SetDuration(d time.Duration) {
	t.SetCentiseconds(int((d.Milliseconds() + 5) / 10))
}

// Canonical returns the name karaoke timing uses for this tag: \K is an
// alias of \kf.
func (t *Karaoke) Canonical() string {
	if t.proto.Name == "K" {
		return "kf"
	}
	return t.proto.Name
}

// Position is \pos or \org.
type Position struct{ base }

func (t *Position) X() float64 { return t.params[0].Float() }
func (t *Position) Y() float64 { return t.params[1].Float() }

func (t *Position) SetXY(x, y float64) {
	t.params[0].SetFloat(x)
	t.params[1].SetFloat(y)
}

// Move is \move, with or without the timing pair.
type Move struct{ base }

// IsShortVariant reports the four-argument form, which moves over the whole line.
func (t *Move) IsShortVariant() bool { return t.params[4].Omitted() }

func (t *Move) From() (x, y float64) { return t.params[0].Float(), t.params[1].Float() }
func (t *Move) To() (x, y float64) { return t.params[2].Float(), t.params[3].Float() }

// Times returns the movement window in milliseconds from line start; both
// are 0 for the short form.
func (t *Move) Times() (t1, t2 int) { return t.params[4].Int(), t.params[5].Int() }

// Fade is \fad or \fade in the two-argument or seven-argument form.
type Fade struct{ base }

// IsShortVariant reports the two-argument fade-in/fade-out form.
func (t *Fade) IsShortVariant() bool { return len(t.params) == 2 }

// FadeInDuration is the fade-in length in milliseconds.
func (t *Fade) FadeInDuration() int {
	if t.IsShortVariant() {
		return t.params[0].Int()
	}
	return t.params[4].Int() - t.params[3].Int()
}

// FadeOutDuration is the fade-out length in milliseconds.
func (t *Fade) FadeOutDuration() int {
	if t.IsShortVariant() {
		return t.params[1].Int()
	}
	return t.params[6].Int() - t.params[5].Int()
}

// Alphas returns the three alpha levels. The short form fades from
// transparent to opaque and back.
func (t *Fade) Alphas() (a1, a2, a3 int) {
	if t.IsShortVariant() {
		return 255, 0, 255
	}
	return t.params[0].Int(), t.params[1].Int(), t.params[2].Int()
}

// Times returns the four fade timestamps. For the short form t1 and t4 are
// -1 and t2, t3 hold the fade durations.
func (t *Fade) Times() (t1, t2, t3, t4 int) {
	if t.IsShortVariant() {
		return -1, t.params[0].Int(), t.params[1].Int(), -1
	}
	return t.params[3].Int(), t.params[4].Int(), t.params[5].Int(), t.params[6].Int()
}

// ClipShape distinguishes the \clip argument forms.
type ClipShape int

const (
	ClipRect ClipShape = iota
	ClipDrawing
	ClipScaledDrawing
)

func (s ClipShape) String() string {
	switch s {
	case ClipRect:
		return "rect"
	case ClipDrawing:
		return "drawing"
	case ClipScaledDrawing:
		return "scaled_drawing"
	}
	return "unknown"
}

// Clip is \clip or \iclip.
type Clip struct{ base }

// Inverse reports \iclip.
func (t *Clip) Inverse() bool { return t.proto.Name == "iclip" }

func (t *Clip) Shape() ClipShape {
	if len(t.params) == 4 {
		return ClipRect
	}
	if t.params[0].Omitted() {
		return ClipDrawing
	}
	return ClipScaledDrawing
}

// Rect returns the rectangle corners; zero for drawing clips.
func (t *Clip) Rect() (x0, y0, x1, y1 int) {
	if len(t.params) != 4 {
		return 0, 0, 0, 0
	}
	return t.params[0].Int(), t.params[1].Int(), t.params[2].Int(), t.params[3].Int()
}

// Scale returns the drawing scale; 1 when not given.
func (t *Clip) Scale() float64 {
	if t.Shape() != ClipScaledDrawing {
		return 1
	}
	return t.params[0].Float()
}

// Drawing returns the vector drawing commands.
func (t *Clip) Drawing() string {
	if len(t.params) == 4 {
		return ""
	}
	return t.params[1].Raw()
}

// TransformVariant names the \t argument forms.
type TransformVariant int

const (
	TransformBlockOnly TransformVariant = iota
	TransformAccelerationOnly
	TransformTimeOnly
	TransformFull
)

func (v TransformVariant) String() string {
	switch v {
	case TransformBlockOnly:
		return "block_only"
	case TransformAccelerationOnly:
		return "acceleration_only"
	case TransformTimeOnly:
		return "time_only"
	case TransformFull:
		return "full"
	}
	return "unknown"
}

// Transform is \t: an animated transition into the nested block's style.
type Transform struct{ base }

func (t *Transform) Variant() TransformVariant {
	timed := !t.params[0].Omitted()
	accel := !t.params[2].Omitted()
	switch {
	case timed && accel:
		return TransformFull
	case timed:
		return TransformTimeOnly
	case accel:
		return TransformAccelerationOnly
	}
	return TransformBlockOnly
}

func (t *Transform) RawT1() string { return t.params[0].Raw() }
func (t *Transform) RawT2() string { return t.params[1].Raw() }
func (t *Transform) RawAcceleration() string { return t.params[2].Raw() }

// T1 and T2 are milliseconds from line start; 0 when omitted.
func (t *Transform) T1() int { return t.params[0].Int() }
func (t *Transform) T2() int { return t.params[1].Int() }

// Acceleration is the easing exponent; 1 when omitted.
func (t *Transform) Acceleration() float64 {
	if t.params[2].Omitted() {
		return 1
	}
	return t.params[2].Float()
}

// Block returns the nested tags being transitioned to.
func (t *Transform) Block() *Block { return t.params[3].Block() }

// SetTimes writes both timestamps, switching to the timed form.
func (t *Transform) SetTimes(t1, t2 int) {
	t.params[0].SetInt(t1)
	t.params[1].SetInt(t2)
}

// SetAcceleration writes the easing exponent.
func (t *Transform) SetAcceleration(a float64) { t.params[2].SetFloat(a) }

// Vector is a parenthesized list of values for catalog extensions.
type Vector struct{ base }

// Values reads every present parameter as a float.
func (t *Vector) Values() []float64 {
	var out []float64
	for _, p := range t.params {
		if !p.Omitted() {
			out = append(out, p.Float())
		}
	}
	return out
}

// Unknown is any tag the catalog does not describe, or a known name whose
// arguments fit none of its prototypes. It renders exactly what was read.
type Unknown struct {
	name   string
	args   []string
	parens bool
	// whitespace between name and inline value
	sep string
}

// NewUnknown builds an Unknown tag. Parenthesized tags render as
// \name(a,b); otherwise the single argument, if any, follows the name.
func NewUnknown(name string, parens bool, args ...string) *Unknown {
	return &Unknown{name: name, args: append([]string(nil), args...), parens: parens}
}

func (t *Unknown) Name() string { return t.name }
func (t *Unknown) Prototype() (catalog.Prototype, bool) { return catalog.Prototype{}, false }
func (t *Unknown) Params() []*Param { return nil }
func (t *Unknown) tag() {}

// Args returns the positional argument text.
func (t *Unknown) Args() []string { return t.args }

// HasParens reports whether the arguments were parenthesized.
func (t *Unknown) HasParens() bool { return t.parens }

func (t *Unknown) String() string {
	if t.parens {
		return `\` + t.name + "(" + strings.Join(t.args, ",") + ")"
	}
	if len(t.args) == 0 {
		return `\` + t.name
	}
	return `\` + t.name + t.sep + t.args[0]
}

// Equal reports whether two tags have the same shape and argument text,
// comparing nested \t blocks tag by tag.
func Equal(a, b Tag) bool {
	ua, aUnknown := a.(*Unknown)
	ub, bUnknown := b.(*Unknown)
	if aUnknown || bUnknown {
		if !aUnknown || !bUnknown {
			return false
		}
		if ua.name != ub.name || ua.parens != ub.parens || len(ua.args) != len(ub.args) {
			return false
		}
		for i := range ua.args {
			if ua.args[i] != ub.args[i] {
				return false
			}
		}
		return true
	}

	pa, _ := a.Prototype()
	pb, _ := b.Prototype()
	if pa.Name != pb.Name || pa.Kind != pb.Kind {
		return false
	}
	ap, bp := a.Params(), b.Params()
	if len(ap) != len(bp) {
		return false
	}
	for i := range ap {
		if ap[i].Omitted() != bp[i].Omitted() {
			return false
		}
		if ap[i].spec.Type == catalog.Block && !ap[i].Omitted() {
			if !EqualBlocks(ap[i].Block(), bp[i].Block()) {
				return false
			}
			continue
		}
		if ap[i].Raw() != bp[i].Raw() {
			return false
		}
	}
	return true
}
