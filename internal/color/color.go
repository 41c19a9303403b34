// Package color parses and formats ASS color and alpha literals.
//
// Override tags write colors as &HBBGGRR& and alpha as &HAA&; style lines use
// the packed &HAABBGGRR form. Malformed color text is an error because there
// is no safe fallback color.
package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is matched by every ParseError via errors.Is.
var ErrMalformed = errors.New("malformed color")

// ParseError reports color text that could not be decoded.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("color %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

// Color is an RGB triple with ASS alpha, where 0 is opaque and 255 transparent.
type Color struct {
	R, G, B uint8
	A       uint8
}

// Parse decodes &HBBGGRR&, &HAABBGGRR, bare hex digits, or a two-digit
// alpha-only value. The & and H markers are optional.
func Parse(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	hex = strings.Trim(hex, "&")
	hex = strings.TrimPrefix(hex, "H")
	hex = strings.TrimPrefix(hex, "h")
	hex = strings.Trim(hex, "&")

	if hex == "" {
		return Color{}, &ParseError{Input: s, Reason: "no hex digits"}
	}
	if len(hex) > 8 {
		return Color{}, &ParseError{Input: s, Reason: "more than 8 hex digits"}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, &ParseError{Input: s, Reason: "invalid hex digits"}
	}

	switch len(hex) {
	case 2:
		return Color{A: uint8(v)}, nil
	case 8:
		return Color{
			A: uint8(v >> 24),
			B: uint8(v >> 16),
			G: uint8(v >> 8),
			R: uint8(v),
		}, nil
	default:
		return Color{
			B: uint8(v >> 16),
			G: uint8(v >> 8),
			R: uint8(v),
		}, nil
	}
}

// MustParse is Parse that panics on error. Intended for literals in tests
// and tables.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Override renders the override-tag form &HBBGGRR&.
func (c Color) Override() string {
	return fmt.Sprintf("&H%02X%02X%02X&", c.B, c.G, c.R)
}

// Style renders the style-line form &HAABBGGRR.
func (c Color) Style() string {
	return fmt.Sprintf("&H%02X%02X%02X%02X", c.A, c.B, c.G, c.R)
}

// AlphaString renders the alpha component as &HAA&.
func (c Color) AlphaString() string {
	return FormatAlpha(int(c.A))
}

// FormatAlpha renders an alpha value as &HAA&, clamping to 0..255.
func FormatAlpha(a int) string {
	return fmt.Sprintf("&H%02X&", clamp(a))
}

// ParseAlpha reads an alpha literal. Non-hex characters are ignored and the
// result is clamped to 0..255; text without hex digits yields 0.
func ParseAlpha(s string) int {
	var b strings.Builder
	for _, r := range s {
		if isHex(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0
	}
	if len(digits) > 8 {
		return 255
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0
	}
	return clamp(int(v))
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func clamp(a int) int {
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return a
}
