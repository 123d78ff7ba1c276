package spajsonpo

import (
	"cmp"
	"slices"
)

// Occurrence records where a string was found: the input file's base name
// and the key path inside it.
type Occurrence struct {
	File string
	Path string
}

func (o Occurrence) compare(other Occurrence) int {
	if c := cmp.Compare(o.File, other.File); c != 0 {
		return c
	}
	return cmp.Compare(o.Path, other.Path)
}

// Catalog collects extracted strings. Each msgid is stored once with every
// occurrence that referenced it, in the order they were added.
type Catalog struct {
	order       []string
	occurrences map[string][]Occurrence
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{occurrences: make(map[string][]Occurrence)}
}

// Add appends one occurrence of msgid.
func (c *Catalog) Add(msgid string, occ Occurrence) {
	if _, ok := c.occurrences[msgid]; !ok {
		c.order = append(c.order, msgid)
	}
	c.occurrences[msgid] = append(c.occurrences[msgid], occ)
}

// Merge appends every occurrence of other to c. Lists under a shared msgid
// are concatenated.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, msgid := range other.order {
		for _, occ := range other.occurrences[msgid] {
			c.Add(msgid, occ)
		}
	}
}

// Len returns the number of distinct msgids.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Count returns the total number of occurrences.
func (c *Catalog) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, occ := range c.occurrences {
		n += len(occ)
	}
	return n
}

// Occurrences returns a copy of the occurrences recorded for msgid, in
// insertion order.
func (c *Catalog) Occurrences(msgid string) []Occurrence {
	if c == nil {
		return nil
	}
	return slices.Clone(c.occurrences[msgid])
}

// Entry is one msgid ready for output.
type Entry struct {
	MsgID       string
	Occurrences []Occurrence
}

// Entries returns the catalog in output order. Every entry carries a sorted
// copy of its occurrences (file, then path); entries are ordered by comparing
// those lists element by element, a shorter list first when one is a prefix
// of the other. Equal lists keep insertion order. The catalog is not modified.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	entries := make([]Entry, 0, len(c.order))
	for _, msgid := range c.order {
		occ := slices.Clone(c.occurrences[msgid])
		slices.SortFunc(occ, Occurrence.compare)
		entries = append(entries, Entry{MsgID: msgid, Occurrences: occ})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return slices.CompareFunc(a.Occurrences, b.Occurrences, Occurrence.compare)
	})
	return entries
}
