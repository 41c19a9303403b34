package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Catalog maps tag names to their prototypes. It is never mutated after
// construction.
type Catalog struct {
	protos map[string][]Prototype
	// names sorted by length descending so the first prefix hit is the longest.
	names []string
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog. It is built on first use and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := New(builtin()...)
		if err != nil {
			panic(fmt.Sprintf("catalog: built-in table is invalid: %v", err))
		}
		defaultCat = cat
	})
	return defaultCat
}

// New builds a catalog from prototypes. Prototypes sharing a name are kept in
// specificity order: more parameters first, ties in the order given.
func New(protos ...Prototype) (*Catalog, error) {
	c := &Catalog{protos: make(map[string][]Prototype)}
	for _, p := range protos {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		p.Params = append([]ParamSpec(nil), p.Params...)
		c.protos[p.Name] = append(c.protos[p.Name], p)
	}
	for name, list := range c.protos {
		sort.SliceStable(list, func(i, j int) bool {
			return len(list[i].Params) > len(list[j].Params)
		})
		c.names = append(c.names, name)
	}
	sort.Slice(c.names, func(i, j int) bool {
		if len(c.names[i]) != len(c.names[j]) {
			return len(c.names[i]) > len(c.names[j])
		}
		return c.names[i] < c.names[j]
	})
	return c, nil
}

// Extend returns a new catalog holding the receiver's prototypes followed by
// protos. The receiver is unchanged.
func (c *Catalog) Extend(protos ...Prototype) (*Catalog, error) {
	all := c.Prototypes()
	all = append(all, protos...)
	return New(all...)
}

// Lookup returns the prototypes registered for name, most specific first.
// The returned slice must not be modified.
func (c *Catalog) Lookup(name string) []Prototype {
	return c.protos[name]
}

// Has reports whether name is a known tag.
func (c *Catalog) Has(name string) bool {
	_, ok := c.protos[name]
	return ok
}

// Match returns the longest known tag name that prefixes s. Matching is
// case-sensitive.
func (c *Catalog) Match(s string) (string, bool) {
	for _, name := range c.names {
		if strings.HasPrefix(s, name) {
			return name, true
		}
	}
	return "", false
}

// Names returns all tag names in lexical order.
func (c *Catalog) Names() []string {
	out := append([]string(nil), c.names...)
	sort.Strings(out)
	return out
}

// Prototypes returns every prototype, grouped by name in lexical order.
func (c *Catalog) Prototypes() []Prototype {
	var out []Prototype
	for _, name := range c.Names() {
		out = append(out, c.protos[name]...)
	}
	return out
}
