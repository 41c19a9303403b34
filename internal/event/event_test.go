package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/asstags/internal/override"
)

func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind()
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kinds []BlockKind
	}{
		{"empty", "", []BlockKind{KindPlain}},
		{"plain", "Hello", []BlockKind{KindPlain}},
		{"override", `{\b1}Hello`, []BlockKind{KindOverride, KindPlain}},
		{"comment", `Hi{note}there`, []BlockKind{KindPlain, KindComment, KindPlain}},
		{"karaoke", `{\k10}Hi {\k20}there`, []BlockKind{KindOverride, KindPlain, KindOverride, KindPlain}},
		{"unclosed brace", `Hi {there`, []BlockKind{KindPlain}},
		{"leading unclosed brace", `{Hi`, []BlockKind{KindPlain}},
		{"drawing", `{\p1}m 0 0 l 10 10{\p0}text`, []BlockKind{KindOverride, KindDrawing, KindOverride, KindPlain}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Split(tt.text, nil)
			assert.Equal(t, tt.kinds, kinds(blocks))
			assert.Equal(t, tt.text, Join(blocks))
		})
	}
}

func TestSplitDetails(t *testing.T) {
	blocks := Split(`{\pos(1,2)}Hi{note}{\p2}m 0 0`, override.Default())
	require.Len(t, blocks, 5)

	ob := blocks[0].(*OverrideBlock)
	require.Len(t, ob.Tags, 1)
	assert.Equal(t, "pos", ob.Tags[0].Name())

	assert.Equal(t, "Hi", blocks[1].(*PlainBlock).Text)
	assert.Equal(t, "note", blocks[2].(*CommentBlock).Body)
	assert.Equal(t, "{note}", blocks[2].String())

	d := blocks[4].(*DrawingBlock)
	assert.Equal(t, 2, d.Level)
	assert.Equal(t, "m 0 0", d.Commands)
}

func TestStrippedText(t *testing.T) {
	e := New(`{\an8}Hello{note} {\i1}world{\p1}m 0 0 l 1 1`)
	assert.Equal(t, "Hello world", e.StrippedText())
	assert.Equal(t, DefaultDuration, e.Duration())
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"0:00:00.00", 0},
		{"0:00:01.50", 1500 * time.Millisecond},
		{"1:02:03.04", time.Hour + 2*time.Minute + 3*time.Second + 40*time.Millisecond},
		{"02:03.5", 2*time.Minute + 3500*time.Millisecond},
		{"5", 5 * time.Second},
		{"-0:00:01.00", -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "a:00:00.00", "1:2:3:4", "0:00:xx"} {
		_, err := ParseTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00:00.00", FormatTime(0))
	assert.Equal(t, "0:00:05.00", FormatTime(DefaultDuration))
	assert.Equal(t, "1:02:03.04", FormatTime(time.Hour+2*time.Minute+3*time.Second+45*time.Millisecond))
	assert.Equal(t, "0:00:00.00", FormatTime(-time.Second))

	d, err := ParseTime(FormatTime(90 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)
}
