// Package encoder turns a Vehicle into the one-hot feature row the trained
// models expect.
package encoder

import (
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/catalog"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
)

// Schema is the ordered list of feature columns seen by the models at fit time.
type Schema []string

// Vector is one encoded row. Its columns are exactly the schema it was encoded
// against, in the same order.
type Vector struct {
	columns []string
	values  []float64
}

// Columns returns a copy of the column names.
func (v Vector) Columns() []string {
	out := make([]string, len(v.columns))
	copy(out, v.columns)
	return out
}

// Values returns a copy of the row values in column order.
func (v Vector) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out
}

// Len is the row width.
func (v Vector) Len() int {
	return len(v.values)
}

// Value looks up a column by name.
func (v Vector) Value(column string) (float64, bool) {
	for i, c := range v.columns {
		if c == column {
			return v.values[i], true
		}
	}
	return 0, false
}

// ColumnName is the one-hot column for a categorical field value.
func ColumnName(field, value string) string {
	return field + "_" + value
}

// Encoder binds a catalog and schema loaded once at startup.
type Encoder struct {
	catalog *catalog.Catalog
	schema  Schema
}

// New returns an Encoder. The schema is copied.
func New(c *catalog.Catalog, s Schema) *Encoder {
	return &Encoder{catalog: c, schema: append(Schema(nil), s...)}
}

// Catalog returns the catalog the encoder was built with.
func (e *Encoder) Catalog() *catalog.Catalog {
	return e.catalog
}

// Schema returns a copy of the expected columns.
func (e *Encoder) Schema() Schema {
	return append(Schema(nil), e.schema...)
}

// Encode encodes v against the bound catalog and schema.
func (e *Encoder) Encode(v dal.Vehicle) Vector {
	return Encode(v, e.catalog, e.schema)
}

// Encode one-hot expands the categorical fields of v, adds a zero column for
// every catalog category not chosen, then reindexes to s. Columns required by
// s but never produced are zero; produced columns absent from s are dropped.
// Values outside the catalog yield no matching column, so their field encodes
// as all zeros.
func Encode(v dal.Vehicle, c *catalog.Catalog, s Schema) Vector {
	r := newRow()
	for _, n := range v.Numerical() {
		r.set(n.Field, n.Value)
	}
	for _, cv := range v.Categorical() {
		r.set(ColumnName(cv.Field, cv.Value), 1)
	}

	for _, e := range c.Entries() {
		for _, value := range e.Values {
			r.setDefault(ColumnName(e.Field, value), 0)
		}
	}

	out := Vector{
		columns: make([]string, len(s)),
		values:  make([]float64, len(s)),
	}
	for i, col := range s {
		out.columns[i] = col
		out.values[i] = r.get(col)
	}
	return out
}

// row is the intermediate single-row table, column -> value.
type row struct {
	values map[string]float64
}

func newRow() *row {
	return &row{values: make(map[string]float64)}
}

func (r *row) set(col string, v float64) {
	r.values[col] = v
}

func (r *row) setDefault(col string, v float64) {
	if _, ok := r.values[col]; ok {
		return
	}
	r.set(col, v)
}

func (r *row) get(col string) float64 {
	return r.values[col]
}

// UnknownValues returns the categorical fields of v whose value is not in c.
func UnknownValues(v dal.Vehicle, c *catalog.Catalog) []dal.CategoricalValue {
	var unknown []dal.CategoricalValue
	for _, cv := range v.Categorical() {
		if !c.Contains(cv.Field, cv.Value) {
			unknown = append(unknown, cv)
		}
	}
	return unknown
}
