package override

import (
	"math"
	"strconv"
	"strings"

	"github.com/roach88/asstags/internal/catalog"
	"github.com/roach88/asstags/internal/color"
)

// Param is one parameter slot of a tag. It stores the raw argument text and
// derives typed values on demand.
type Param struct {
	spec    catalog.ParamSpec
	raw     string
	omitted bool

	// Block parameters only.
	parser *Parser
	block  *Block
}

func newParam(spec catalog.ParamSpec, parser *Parser) *Param {
	return &Param{spec: spec, omitted: true, parser: parser}
}

// Spec returns the catalog description of this slot.
func (p *Param) Spec() catalog.ParamSpec { return p.spec }

// Omitted reports whether the tag was written without this argument.
func (p *Param) Omitted() bool { return p.omitted }

// Raw returns the argument text. A Block parameter renders its nested tags.
func (p *Param) Raw() string {
	if p.omitted {
		return ""
	}
	if p.block != nil {
		return p.block.Body()
	}
	return p.raw
}

// Int reads the value as an integer. Alpha parameters are read as hex.
// Malformed text yields 0.
func (p *Param) Int() int {
	if p.omitted {
		return 0
	}
	if p.spec.Class == catalog.Alpha {
		return color.ParseAlpha(p.raw)
	}
	return parseInt(p.raw)
}

// Float reads the value as a float. Malformed text yields 0.
func (p *Param) Float() float64 {
	if p.omitted {
		return 0
	}
	return parseFloat(p.raw)
}

// Bool reads the value as a flag: any nonzero integer is true.
func (p *Param) Bool() bool {
	return p.Int() != 0
}

// Color decodes the value as an ASS color.
func (p *Param) Color() (color.Color, error) {
	return color.Parse(p.Raw())
}

// Block returns the nested block of a \t parameter, parsing the raw text on
// first use after a Set. It returns nil for omitted or non-block parameters.
func (p *Param) Block() *Block {
	if p.omitted || p.spec.Type != catalog.Block {
		return nil
	}
	if p.block == nil {
		parser := p.parser
		if parser == nil {
			parser = Default()
		}
		p.block = parser.parseBody(p.raw)
	}
	return p.block
}

// Set replaces the raw text and drops any cached nested block.
func (p *Param) Set(raw string) {
	p.raw = raw
	p.omitted = false
	p.block = nil
}

// SetInt stores an integer. Alpha parameters are written as &HXX&.
func (p *Param) SetInt(v int) {
	if p.spec.Class == catalog.Alpha {
		p.Set(color.FormatAlpha(v))
		return
	}
	p.Set(strconv.Itoa(v))
}

// SetFloat stores a float in its shortest decimal form.
func (p *Param) SetFloat(v float64) {
	p.Set(formatFloat(v))
}

// SetBool stores 1 or 0.
func (p *Param) SetBool(v bool) {
	if v {
		p.Set("1")
		return
	}
	p.Set("0")
}

// SetBlock replaces a Block parameter's nested tags.
func (p *Param) SetBlock(b *Block) {
	p.raw = b.Body()
	p.omitted = false
	p.block = b
}

// Reset marks the parameter omitted.
func (p *Param) Reset() {
	p.raw = ""
	p.omitted = true
	p.block = nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	f := parseFloat(s)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// parseFloat accepts a full decimal literal, or failing that the longest
// numeric prefix ("120," reads as 120). Anything else is 0.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return v
	}
	n := numericPrefix(s)
	if n == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return 0
	}
	return v
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	return i
}
