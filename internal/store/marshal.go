package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// marshalOverrides converts a syllable's override map to JSON TEXT. Keys are
// rune offsets; encoding/json sorts them, so equal maps store equal text.
func marshalOverrides(overrides map[int]string) (string, error) {
	if len(overrides) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Override text is full of backslashes and braces; keep it readable.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(overrides); err != nil {
		return "", fmt.Errorf("marshal overrides: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func unmarshalOverrides(data string) (map[int]string, error) {
	overrides := map[int]string{}
	if data == "" || data == "{}" {
		return overrides, nil
	}
	if err := json.Unmarshal([]byte(data), &overrides); err != nil {
		return nil, fmt.Errorf("unmarshal overrides: %w", err)
	}
	return overrides, nil
}

func toMillis(d time.Duration) int64 { return d.Milliseconds() }

func fromMillis(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }
