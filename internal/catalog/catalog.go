package catalog

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Catalog is the lookup capability the resolver consumes.
type Catalog interface {
	// Lookup returns the definition for id, if there is one.
	Lookup(id string) (*Definition, bool)

	// IDs returns every defined id in load order.
	IDs() []string
}

// Memory is an in-memory Catalog.
type Memory struct {
	defs  map[string]*Definition
	order []string
}

// NewMemory creates a catalog holding defs. When an id repeats, the first
// definition is kept.
func NewMemory(defs ...*Definition) *Memory {
	m := &Memory{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		m.Add(d)
	}
	return m
}

// Add stores def unless its id is already defined. It reports whether def
// was stored.
func (m *Memory) Add(def *Definition) bool {
	if _, exists := m.defs[def.ID]; exists {
		return false
	}
	m.defs[def.ID] = def
	m.order = append(m.order, def.ID)
	return true
}

// Lookup implements Catalog.
func (m *Memory) Lookup(id string) (*Definition, bool) {
	d, ok := m.defs[id]
	return d, ok
}

// IDs implements Catalog.
func (m *Memory) IDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of definitions.
func (m *Memory) Len() int {
	return len(m.order)
}

// ConversionCount returns how many unit conversions cat defines for id; zero
// when id is unknown.
func ConversionCount(cat Catalog, id string) int {
	d, ok := cat.Lookup(id)
	if !ok {
		return 0
	}
	return len(d.Conversions)
}

// Suggest returns the defined id closest to id, or "" when nothing is close.
func Suggest(cat Catalog, id string) string {
	if id == "" {
		return ""
	}
	ranks := fuzzy.RankFindFold(id, cat.IDs())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
