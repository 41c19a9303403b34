package catalog

import "fmt"

// VariableType is the value type a parameter is parsed as.
type VariableType int

const (
	Int VariableType = iota
	Float
	Text
	Bool
	Block
)

var variableTypeNames = []string{"int", "float", "text", "bool", "block"}

func (t VariableType) String() string {
	if t < 0 || int(t) >= len(variableTypeNames) {
		return fmt.Sprintf("VariableType(%d)", int(t))
	}
	return variableTypeNames[t]
}

// ParseVariableType resolves a lowercase type name such as "float".
func ParseVariableType(s string) (VariableType, bool) {
	for i, name := range variableTypeNames {
		if name == s {
			return VariableType(i), true
		}
	}
	return 0, false
}

// Classification is the semantic role of a parameter. Consumers use it to
// interpret raw values, for example to shift RelativeTimeStart values when
// a line is retimed or to scale AbsolutePosX values on resample.
type Classification int

const (
	Normal Classification = iota
	AbsoluteSize
	AbsolutePosX
	AbsolutePosY
	RelativeSizeX
	RelativeSizeY
	RelativeTimeStart
	RelativeTimeEnd
	Karaoke
	Drawing
	Alpha
	Color
)

var classificationNames = []string{
	"normal",
	"absolute_size",
	"absolute_pos_x",
	"absolute_pos_y",
	"relative_size_x",
	"relative_size_y",
	"relative_time_start",
	"relative_time_end",
	"karaoke",
	"drawing",
	"alpha",
	"color",
}

func (c Classification) String() string {
	if c < 0 || int(c) >= len(classificationNames) {
		return fmt.Sprintf("Classification(%d)", int(c))
	}
	return classificationNames[c]
}

// ParseClassification resolves a snake_case classification name.
func ParseClassification(s string) (Classification, bool) {
	for i, name := range classificationNames {
		if name == s {
			return Classification(i), true
		}
	}
	return 0, false
}

// Optional is a bitset of argument counts for which a parameter is present.
// Bit n-1 set means the parameter takes part when the tag has n arguments.
type Optional uint8

// NotOptional marks a parameter present for every argument count.
const NotOptional Optional = 0xFF

// OptionalFor builds a mask for the given argument counts (1 through 8).
func OptionalFor(counts ...int) Optional {
	var o Optional
	for _, n := range counts {
		if n >= 1 && n <= 8 {
			o |= 1 << (n - 1)
		}
	}
	return o
}

// PresentFor reports whether the parameter is present when a tag has n arguments.
func (o Optional) PresentFor(n int) bool {
	if n < 1 || n > 8 {
		return false
	}
	return o&(1<<(n-1)) != 0
}

// Counts lists the argument counts the mask covers, ascending.
func (o Optional) Counts() []int {
	var counts []int
	for n := 1; n <= 8; n++ {
		if o.PresentFor(n) {
			counts = append(counts, n)
		}
	}
	return counts
}

// ParamSpec describes one parameter position of a prototype.
type ParamSpec struct {
	Type     VariableType
	Class    Classification
	Optional Optional
}

// Param returns an always-present parameter spec.
func Param(t VariableType, c Classification) ParamSpec {
	return ParamSpec{Type: t, Class: c, Optional: NotOptional}
}

// OptionalParam returns a parameter spec present only for the given argument counts.
func OptionalParam(t VariableType, c Classification, counts ...int) ParamSpec {
	return ParamSpec{Type: t, Class: c, Optional: OptionalFor(counts...)}
}

// Kind selects the tag value variant a prototype produces.
type Kind int

const (
	KindToggle Kind = iota
	KindScalar
	KindFontSize
	KindColor
	KindAlpha
	KindText
	KindKaraoke
	KindPosition
	KindMove
	KindFade
	KindClip
	KindTransform
	KindVector
)

var kindNames = []string{
	"toggle",
	"scalar",
	"font_size",
	"color",
	"alpha",
	"text",
	"karaoke",
	"position",
	"move",
	"fade",
	"clip",
	"transform",
	"vector",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind name such as "scalar".
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Inline reports whether tags of this kind serialize their single value
// directly after the name (\fscx100) instead of in parentheses.
func (k Kind) Inline() bool {
	switch k {
	case KindToggle, KindScalar, KindFontSize, KindColor, KindAlpha, KindText, KindKaraoke:
		return true
	}
	return false
}
