package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/asstags/internal/event"
)

// Scenario is one karaoke editing test.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Catalog is an optional CUE extension file. Relative paths are
	// resolved against the scenario file's directory.
	Catalog string `yaml:"catalog,omitempty"`

	// Line is loaded before the first step.
	Line LineSpec `yaml:"line"`

	Steps []Step `yaml:"steps,omitempty"`

	Assertions []Assertion `yaml:"assertions"`
}

// LineSpec describes a dialogue line and how it is loaded.
type LineSpec struct {
	Text string `yaml:"text"`

	// Start and End are ASS timecodes (H:MM:SS.CC). Start defaults to 0 and
	// End to Start plus the default event duration.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`

	AutoSplit bool `yaml:"auto_split,omitempty"`
	Normalize bool `yaml:"normalize,omitempty"`
}

// Event builds the dialogue event for the line.
func (l LineSpec) Event() (*event.Event, error) {
	ev := &event.Event{Text: l.Text}
	if l.Start != "" {
		start, err := event.ParseTime(l.Start)
		if err != nil {
			return nil, fmt.Errorf("line start: %w", err)
		}
		ev.Start = start
	}
	ev.End = ev.Start + event.DefaultDuration
	if l.End != "" {
		end, err := event.ParseTime(l.End)
		if err != nil {
			return nil, fmt.Errorf("line end: %w", err)
		}
		ev.End = end
	}
	return ev, nil
}

// Step is one karaoke edit. Which fields apply depends on Op.
type Step struct {
	Op string `yaml:"op"`

	Index    *int `yaml:"index,omitempty"`
	Position *int `yaml:"position,omitempty"`

	TimeMs  *int64 `yaml:"time_ms,omitempty"`
	StartMs *int64 `yaml:"start_ms,omitempty"`
	EndMs   *int64 `yaml:"end_ms,omitempty"`

	Tag string `yaml:"tag,omitempty"`

	// Line is the replacement line for set_line.
	Line *LineSpec `yaml:"line,omitempty"`
}

// Step op constants.
const (
	OpSetLine      = "set_line"
	OpAddSplit     = "add_split"
	OpRemoveSplit  = "remove_split"
	OpSetStartTime = "set_start_time"
	OpSetLineTimes = "set_line_times"
	OpSetTagType   = "set_tag_type"
	OpReparse      = "reparse"
	OpSnapshot     = "snapshot"
	OpRestore      = "restore"
)

// Assertion checks the karaoke state after the last step.
type Assertion struct {
	Type string `yaml:"type"`

	// Expect is the wanted value for text and tag_type.
	Expect *string `yaml:"expect,omitempty"`

	// Count is used by syllable_count and snapshot_count.
	Count *int `yaml:"count,omitempty"`

	// Index selects the syllable for syllable assertions. The remaining
	// fields are a subset match: only fields that are set are compared.
	Index      *int    `yaml:"index,omitempty"`
	Text       *string `yaml:"text,omitempty"`
	StartMs    *int64  `yaml:"start_ms,omitempty"`
	DurationMs *int64  `yaml:"duration_ms,omitempty"`
	TagType    *string `yaml:"tag_type,omitempty"`
}

// Assertion type constants.
const (
	AssertText          = "text"
	AssertTagType       = "tag_type"
	AssertSyllableCount = "syllable_count"
	AssertSyllable      = "syllable"
	AssertTotalDuration = "total_duration"
	AssertSnapshotCount = "snapshot_count"
)

// LoadScenario reads and parses a scenario YAML file, resolving the
// catalog path against the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the catalog path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Reject unknown fields so typos like "assertion:" fail loudly.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) && basePath != "" {
		scenario.Catalog = filepath.Join(basePath, scenario.Catalog)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted.
func FindScenarios(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if err := validateLine("line", s.Line); err != nil {
		return err
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.Catalog != "" {
		if _, err := os.Stat(s.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", s.Catalog)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateLine(field string, l LineSpec) error {
	ev, err := l.Event()
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if ev.End < ev.Start {
		return fmt.Errorf("%s: end %s is before start %s", field, l.End, l.Start)
	}
	return nil
}

func validateStep(index int, s *Step) error {
	field := fmt.Sprintf("steps[%d]", index)
	need := func(name string, ok bool) error {
		if !ok {
			return fmt.Errorf("%s: %s requires %s", field, s.Op, name)
		}
		return nil
	}

	switch s.Op {
	case "":
		return fmt.Errorf("%s: op is required", field)
	case OpSetLine:
		if s.Line == nil {
			return need("line", false)
		}
		return validateLine(field+".line", *s.Line)
	case OpAddSplit:
		if err := need("index", s.Index != nil); err != nil {
			return err
		}
		return need("position", s.Position != nil)
	case OpRemoveSplit:
		return need("index", s.Index != nil)
	case OpSetStartTime:
		if err := need("index", s.Index != nil); err != nil {
			return err
		}
		return need("time_ms", s.TimeMs != nil)
	case OpSetLineTimes:
		if err := need("start_ms", s.StartMs != nil); err != nil {
			return err
		}
		return need("end_ms", s.EndMs != nil)
	case OpSetTagType:
		return need("tag", s.Tag != "")
	case OpReparse, OpSnapshot, OpRestore:
		return nil
	default:
		return fmt.Errorf("%s: unknown op %q", field, s.Op)
	}
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	field := fmt.Sprintf("assertions[%d]", index)

	switch a.Type {
	case "":
		return fmt.Errorf("%s: type is required", field)
	case AssertText, AssertTagType:
		if a.Expect == nil {
			return fmt.Errorf("%s: %s requires expect", field, a.Type)
		}
	case AssertSyllableCount, AssertSnapshotCount:
		if a.Count == nil {
			return fmt.Errorf("%s: %s requires count", field, a.Type)
		}
		if *a.Count < 0 {
			return fmt.Errorf("%s: count must be non-negative", field)
		}
	case AssertSyllable:
		if a.Index == nil {
			return fmt.Errorf("%s: syllable requires index", field)
		}
		if a.Text == nil && a.StartMs == nil && a.DurationMs == nil && a.TagType == nil {
			return fmt.Errorf("%s: syllable requires at least one of text, start_ms, duration_ms, tag_type", field)
		}
	case AssertTotalDuration:
		if a.DurationMs == nil {
			return fmt.Errorf("%s: total_duration requires duration_ms", field)
		}
	default:
		return fmt.Errorf("%s: unknown assertion type %q", field, a.Type)
	}
	return nil
}

func millis(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }
