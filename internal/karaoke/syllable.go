package karaoke

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Syllable is one karaoke-timed run of text.
type Syllable struct {
	// Start is absolute, not relative to the line.
	Start    time.Duration
	Duration time.Duration
	// TagType is the karaoke tag including its backslash, e.g. `\kf`.
	TagType string
	Text    string
	// Overrides holds literal tag text to splice into Text, keyed by rune
	// offset. Several tags at one offset share a single {...} run.
	Overrides map[int]string
}

// End is Start plus Duration.
func (s *Syllable) End() time.Duration {
	return s.Start + s.Duration
}

// Centiseconds is the duration as serialized in the karaoke tag.
func (s *Syllable) Centiseconds() int64 {
	return (s.Duration.Milliseconds() + 5) / 10
}

// Len is the text length in runes.
func (s *Syllable) Len() int {
	return utf8.RuneCountInString(s.Text)
}

// FormattedText renders the syllable's text with its overrides spliced in,
// optionally preceded by its karaoke tag block.
func (s *Syllable) FormattedText(withTag bool) string {
	var sb strings.Builder
	if withTag {
		sb.WriteString("{")
		sb.WriteString(s.TagType)
		sb.WriteString(strconv.FormatInt(s.Centiseconds(), 10))
		sb.WriteString("}")
	}

	runes := []rune(s.Text)
	prev := 0
	for _, off := range slices.Sorted(maps.Keys(s.Overrides)) {
		at := min(max(off, prev), len(runes))
		sb.WriteString(string(runes[prev:at]))
		sb.WriteString(s.Overrides[off])
		prev = at
	}
	sb.WriteString(string(runes[prev:]))
	return sb.String()
}

func (s *Syllable) clone() *Syllable {
	c := *s
	c.Overrides = maps.Clone(s.Overrides)
	if c.Overrides == nil {
		c.Overrides = make(map[int]string)
	}
	return &c
}

func (s *Syllable) addOverride(off int, text string) {
	if s.Overrides == nil {
		s.Overrides = make(map[int]string)
	}
	s.Overrides[off] += text
}
