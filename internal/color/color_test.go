package color

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"&H0000FF&", Color{R: 0xFF}},
		{"&HFF0000&", Color{B: 0xFF}},
		{"&H00FF00", Color{G: 0xFF}},
		{"H123456", Color{B: 0x12, G: 0x34, R: 0x56}},
		{"123456", Color{B: 0x12, G: 0x34, R: 0x56}},
		{"&H80FFFFFF", Color{A: 0x80, B: 0xFF, G: 0xFF, R: 0xFF}},
		{"&HFF&", Color{A: 0xFF}},
		{"&H0&", Color{}},
		{" &hAbCdEf& ", Color{B: 0xAB, G: 0xCD, R: 0xEF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{"", "&H&", "&HGG0000&", "!gc(2)!", "&H123456789&", "$color"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, input, perr.Input)
		})
	}
}

func TestFormat(t *testing.T) {
	c := Color{R: 0x12, G: 0x34, B: 0x56, A: 0x78}

	assert.Equal(t, "&H563412&", c.Override())
	assert.Equal(t, "&H78563412", c.Style())
	assert.Equal(t, "&H78&", c.AlphaString())

	back, err := Parse(c.Override())
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0x12, G: 0x34, B: 0x56}, back)
}

func TestAlpha(t *testing.T) {
	assert.Equal(t, 0xFF, ParseAlpha("&HFF&"))
	assert.Equal(t, 0x80, ParseAlpha("&H80&"))
	assert.Equal(t, 0x0A, ParseAlpha("&HA"))
	assert.Equal(t, 0, ParseAlpha(""))
	assert.Equal(t, 0, ParseAlpha("$x"))
	assert.Equal(t, 255, ParseAlpha("&H1FF&"))

	assert.Equal(t, "&H00&", FormatAlpha(-4))
	assert.Equal(t, "&HFF&", FormatAlpha(300))
	assert.Equal(t, "&H0F&", FormatAlpha(15))
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.Equal(t, Color{R: 1}, MustParse("&H000001&"))
}
