package event

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/asstags/internal/override"
)

// DefaultDuration is the length given to a line created without an end time.
const DefaultDuration = 5 * time.Second

// Event is a dialogue line: raw text with override blocks, and its absolute
// start and end times.
type Event struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// New returns an event starting at zero and lasting DefaultDuration.
func New(text string) *Event {
	return &Event{Start: 0, End: DefaultDuration, Text: text}
}

// Duration is End minus Start.
func (e *Event) Duration() time.Duration {
	return e.End - e.Start
}

// Blocks splits the text using the default parser.
func (e *Event) Blocks() []Block {
	return Split(e.Text, override.Default())
}

// StrippedText returns the text with every override, comment and drawing
// block removed.
func (e *Event) StrippedText() string {
	var sb strings.Builder
	for _, b := range e.Blocks() {
		if p, ok := b.(*PlainBlock); ok {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// ParseTime reads an ASS timecode H:MM:SS.CC. Fields may be short or
// missing from the left ("5.5" is five and a half seconds).
func ParseTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse time: empty timecode")
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("parse time %q: too many fields", s)
	}
	var hours, minutes int64
	var err error
	switch len(parts) {
	case 3:
		if hours, err = strconv.ParseInt(parts[0], 10, 64); err != nil {
			return 0, fmt.Errorf("parse time %q: hours: %w", s, err)
		}
		parts = parts[1:]
		fallthrough
	case 2:
		if minutes, err = strconv.ParseInt(parts[0], 10, 64); err != nil {
			return 0, fmt.Errorf("parse time %q: minutes: %w", s, err)
		}
		parts = parts[1:]
	}
	seconds, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: seconds: %w", s, err)
	}

	ms := (hours*3600+minutes*60)*1000 + int64(seconds*1000+0.5)
	d := time.Duration(ms) * time.Millisecond
	if neg {
		d = -d
	}
	return d, nil
}

// FormatTime renders d as H:MM:SS.CC, truncated to centiseconds. Negative
// durations render as 0:00:00.00.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := d.Milliseconds() / 10
	h := cs / 360000
	m := cs / 6000 % 60
	sec := cs / 100 % 60
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, sec, cs%100)
}
