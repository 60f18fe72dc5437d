// Package catalog holds the set of category values the models were trained on.
package catalog

import "github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"

// Entry is one categorical field and its allowed values.
type Entry struct {
	Field  string
	Values []string
}

// Catalog maps each categorical field to its allowed values. Field and value
// order is preserved. A Catalog is never mutated after New returns. A nil
// Catalog is empty.
type Catalog struct {
	entries []Entry
	index   map[string]map[string]struct{}
}

// New builds a Catalog from entries. Duplicate values within a field are kept
// once.
func New(entries ...Entry) *Catalog {
	c := &Catalog{index: make(map[string]map[string]struct{}, len(entries))}
	for _, e := range entries {
		seen, ok := c.index[e.Field]
		if !ok {
			seen = make(map[string]struct{}, len(e.Values))
			c.index[e.Field] = seen
			c.entries = append(c.entries, Entry{Field: e.Field})
		}
		last := &c.entries[c.position(e.Field)]
		for _, v := range e.Values {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			last.Values = append(last.Values, v)
		}
	}
	return c
}

func (c *Catalog) position(field string) int {
	if c == nil {
		return -1
	}
	for i, e := range c.entries {
		if e.Field == field {
			return i
		}
	}
	return -1
}

// Default returns the category universe of the trained car price models.
func Default() *Catalog {
	return New(
		Entry{Field: dal.FieldMake, Values: []string{"audi", "bmw", "toyota", "honda", "mercedes"}},
		Entry{Field: dal.FieldFuelType, Values: []string{"diesel", "essence"}},
		Entry{Field: dal.FieldNumDoors, Values: []string{"two", "four"}},
		Entry{Field: dal.FieldBodyStyle, Values: []string{"sedan", "hatchback", "wagon"}},
	)
}

// Fields returns the categorical field names in catalog order.
func (c *Catalog) Fields() []string {
	if c == nil {
		return []string{}
	}
	fields := make([]string, len(c.entries))
	for i, e := range c.entries {
		fields[i] = e.Field
	}
	return fields
}

// Values returns a copy of the allowed values for field, or nil if the field
// is not in the catalog.
func (c *Catalog) Values(field string) []string {
	i := c.position(field)
	if i < 0 {
		return nil
	}
	return append([]string(nil), c.entries[i].Values...)
}

// Entries returns a copy of every field with its values.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return []Entry{}
	}
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = Entry{Field: e.Field, Values: append([]string(nil), e.Values...)}
	}
	return out
}

// Contains reports whether value is allowed for field.
func (c *Catalog) Contains(field, value string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[field][value]
	return ok
}
