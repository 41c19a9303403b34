package karaoke

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/asstags/internal/event"
	"github.com/roach88/asstags/internal/override"
)

// DefaultTagType is the tag given to text that precedes any karaoke tag.
const DefaultTagType = `\k`

// Karaoke is the syllable view of one line. It is not safe for concurrent
// mutation.
type Karaoke struct {
	syls   []*Syllable
	parser *override.Parser
	logger *slog.Logger
}

// Option configures a Karaoke.
type Option func(*Karaoke)

// WithParser sets the parser used to read override blocks.
func WithParser(p *override.Parser) Option {
	return func(k *Karaoke) {
		if p != nil {
			k.parser = p
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(k *Karaoke) {
		if l != nil {
			k.logger = l
		}
	}
}

// New returns an empty karaoke view.
func New(opts ...Option) *Karaoke {
	k := &Karaoke{
		parser: override.Default(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Len is the number of syllables.
func (k *Karaoke) Len() int { return len(k.syls) }

// Syllables returns copies of the syllables in order.
func (k *Karaoke) Syllables() []Syllable {
	out := make([]Syllable, len(k.syls))
	for i, s := range k.syls {
		out[i] = *s.clone()
	}
	return out
}

// Syllable returns a copy of syllable i.
func (k *Karaoke) Syllable(i int) (Syllable, bool) {
	if i < 0 || i >= len(k.syls) {
		return Syllable{}, false
	}
	return *k.syls[i].clone(), true
}

// Load replaces the syllables with copies of syls.
func (k *Karaoke) Load(syls []Syllable) {
	k.syls = make([]*Syllable, len(syls))
	for i := range syls {
		k.syls[i] = syls[i].clone()
	}
}

// TotalDuration sums every syllable's duration.
func (k *Karaoke) TotalDuration() time.Duration {
	var d time.Duration
	for _, s := range k.syls {
		d += s.Duration
	}
	return d
}

// Text serializes the syllables back into line text.
func (k *Karaoke) Text() string {
	var sb strings.Builder
	for _, s := range k.syls {
		sb.WriteString(s.FormattedText(true))
	}
	return sb.String()
}

// TagType returns the first syllable's tag, or "" when there are none.
func (k *Karaoke) TagType() string {
	if len(k.syls) == 0 {
		return ""
	}
	return k.syls[0].TagType
}

// SetTagType rewrites every syllable's tag. The backslash is optional.
func (k *Karaoke) SetTagType(tag string) {
	if !strings.HasPrefix(tag, `\`) {
		tag = `\` + tag
	}
	for _, s := range k.syls {
		s.TagType = tag
	}
}

// SetLine rebuilds the syllables from line. With normalize, time past the
// line's end is cut off. With autoSplit, a line that yields a single
// syllable is split at every interior space; each extra space in a run
// becomes its own " " syllable.
func (k *Karaoke) SetLine(line *event.Event, autoSplit, normalize bool) {
	k.syls = nil
	last := k.parseSyllables(line)

	if normalize && last.End() > line.End {
		for _, s := range k.syls {
			if s.Start > line.End {
				s.Start = line.End
				s.Duration = 0
			} else {
				s.Duration = min(s.Duration, line.End-s.Start)
			}
		}
	}

	if autoSplit && len(k.syls) == 1 {
		for {
			tail := k.syls[len(k.syls)-1]
			pos := runeIndex(tail.Text, ' ')
			if pos < 0 || pos+1 >= tail.Len() {
				break
			}
			k.AddSplit(len(k.syls)-1, pos+1)
		}
	}

	k.logger.Debug("karaoke line loaded", "syllables", len(k.syls), "auto_split", autoSplit, "normalize", normalize)
}

// parseSyllables walks the line's blocks and returns the final syllable,
// which has already been appended.
func (k *Karaoke) parseSyllables(line *event.Event) *Syllable {
	syl := &Syllable{Start: line.Start, TagType: DefaultTagType, Overrides: map[int]string{}}

	for _, b := range event.Split(line.Text, k.parser) {
		switch b := b.(type) {
		case *event.PlainBlock:
			syl.Text += b.Text
		case *event.CommentBlock, *event.DrawingBlock:
			syl.addOverride(syl.Len(), b.String())
		case *event.OverrideBlock:
			inTag := false
			emit := func(text string) {
				if !inTag {
					syl.addOverride(syl.Len(), "{")
					inTag = true
				}
				syl.addOverride(syl.Len(), text)
			}
			// Literal text inside the braces rides along with the tag run.
			span := 0
			emitSpans := func(upTo int) {
				for ; span < len(b.Spans) && b.Spans[span].Index <= upTo; span++ {
					emit(b.Spans[span].Text)
				}
			}
			for i, tag := range b.Tags {
				emitSpans(i)
				kt, ok := tag.(*override.Karaoke)
				if !ok {
					emit(tag.String())
					continue
				}

				if inTag {
					syl.addOverride(syl.Len(), "}")
					inTag = false
				}
				if syl.Duration > 0 || syl.Text != "" {
					k.syls = append(k.syls, syl)
					syl = &Syllable{
						Start:     syl.Start,
						Duration:  syl.Duration,
						TagType:   syl.TagType,
						Overrides: map[int]string{},
					}
				}
				syl.TagType = `\` + kt.Canonical()
				syl.Start += syl.Duration
				syl.Duration = max(kt.Duration(), 0)
			}
			emitSpans(len(b.Tags))
			if inTag {
				syl.addOverride(syl.Len(), "}")
			}
		}
	}

	k.syls = append(k.syls, syl)
	return syl
}

// AddSplit splits syllable index at rune position. The new syllable takes a
// share of the duration proportional to its length, rounded to 10ms.
func (k *Karaoke) AddSplit(index, position int) {
	if index < 0 || index >= len(k.syls) || position < 0 {
		k.logger.Debug("split ignored", "index", index, "position", position)
		return
	}
	pre := k.syls[index]
	post := &Syllable{Overrides: map[int]string{}}

	runes := []rune(pre.Text)
	if position < len(runes) {
		post.Text = string(runes[position:])
		pre.Text = string(runes[:position])
	}

	switch {
	case post.Text == "":
		post.Duration = 0
	case pre.Text == "":
		post.Duration = pre.Duration
		pre.Duration = 0
	default:
		preLen, postLen := int64(pre.Len()), int64(post.Len())
		ms := (pre.Duration.Milliseconds()*postLen/(preLen+postLen) + 5) / 10 * 10
		// Rounding up can exceed a duration that is not a multiple of 10ms.
		post.Duration = min(time.Duration(ms)*time.Millisecond, pre.Duration)
		pre.Duration -= post.Duration
	}

	post.Start = pre.End()
	post.TagType = pre.TagType

	n := pre.Len()
	for off, text := range pre.Overrides {
		if off < n {
			continue
		}
		post.Overrides[off-n] = text
		delete(pre.Overrides, off)
	}

	k.syls = append(k.syls, nil)
	copy(k.syls[index+2:], k.syls[index+1:])
	k.syls[index+1] = post
}

// RemoveSplit merges syllable index into its predecessor. The first
// syllable cannot be removed.
func (k *Karaoke) RemoveSplit(index int) {
	if index <= 0 || index >= len(k.syls) {
		k.logger.Debug("merge ignored", "index", index)
		return
	}
	syl := k.syls[index]
	pre := k.syls[index-1]

	pre.Duration += syl.Duration
	n := pre.Len()
	for off, text := range syl.Overrides {
		pre.addOverride(off+n, text)
	}
	pre.Text += syl.Text

	k.syls = append(k.syls[:index], k.syls[index+1:]...)
}

// SetStartTime moves the boundary between syllable index and its
// predecessor to t. Times outside the two syllables' span are ignored.
func (k *Karaoke) SetStartTime(index int, t time.Duration) {
	if index <= 0 || index >= len(k.syls) {
		k.logger.Debug("retime ignored", "index", index)
		return
	}
	syl := k.syls[index]
	pre := k.syls[index-1]
	if t < pre.Start || t > syl.End() {
		k.logger.Debug("retime out of range", "index", index, "time", t)
		return
	}

	delta := t - syl.Start
	syl.Start = t
	syl.Duration -= delta
	pre.Duration += delta
}

// SetLineTimes fits the syllables to a new line span. Syllables starting
// before start are pinned to it and lose the clipped time; syllables
// starting after end collapse to zero at end, and the last syllable still in
// range stretches or shrinks to finish at end.
func (k *Karaoke) SetLineTimes(start, end time.Duration) {
	if end < start || len(k.syls) == 0 {
		k.logger.Debug("line retime ignored", "start", start, "end", end)
		return
	}

	for i := 0; ; {
		s := k.syls[i]
		delta := start - s.Start
		s.Start = start
		s.Duration = max(s.Duration-delta, 0)
		i++
		if i >= len(k.syls) || k.syls[i].Start >= start {
			break
		}
	}

	i := len(k.syls) - 1
	for i > 0 && k.syls[i].Start > end {
		k.syls[i].Start = end
		k.syls[i].Duration = 0
		i--
	}
	k.syls[i].Duration = end - k.syls[i].Start
}

func runeIndex(s string, r rune) int {
	i := strings.IndexRune(s, r)
	if i < 0 {
		return -1
	}
	return len([]rune(s[:i]))
}
