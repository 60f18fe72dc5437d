package encoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/catalog"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
)

// DriftError describes a mismatch between the category catalog and the
// schema of the loaded models.
type DriftError struct {
	// Catalog columns the models never saw. Encoding them is lost.
	MissingFromSchema []string
	// Schema columns that neither a numeric field nor the catalog produce.
	// They are always zero.
	UnknownToCatalog []string
}

func (e *DriftError) Error() string {
	var parts []string
	if len(e.MissingFromSchema) > 0 {
		parts = append(parts, "catalog columns missing from schema: "+strings.Join(e.MissingFromSchema, ", "))
	}
	if len(e.UnknownToCatalog) > 0 {
		parts = append(parts, "schema columns unknown to catalog: "+strings.Join(e.UnknownToCatalog, ", "))
	}
	return fmt.Sprintf("schema drift: %s", strings.Join(parts, "; "))
}

// Problems lists every drifted column with its kind.
func (e *DriftError) Problems() []string {
	out := make([]string, 0, len(e.MissingFromSchema)+len(e.UnknownToCatalog))
	for _, c := range e.MissingFromSchema {
		out = append(out, "missing:"+c)
	}
	for _, c := range e.UnknownToCatalog {
		out = append(out, "unknown:"+c)
	}
	return out
}

// Validate compares c against s. It returns a *DriftError when they disagree
// and nil otherwise. Encode never calls it.
func Validate(c *catalog.Catalog, s Schema) error {
	inSchema := make(map[string]struct{}, len(s))
	for _, col := range s {
		inSchema[col] = struct{}{}
	}

	known := make(map[string]struct{})
	for _, f := range dal.NumericFields() {
		known[f] = struct{}{}
	}

	drift := &DriftError{}
	for _, e := range c.Entries() {
		for _, v := range e.Values {
			col := ColumnName(e.Field, v)
			known[col] = struct{}{}
			if _, ok := inSchema[col]; !ok {
				drift.MissingFromSchema = append(drift.MissingFromSchema, col)
			}
		}
	}
	for _, col := range s {
		if _, ok := known[col]; !ok {
			drift.UnknownToCatalog = append(drift.UnknownToCatalog, col)
		}
	}

	if len(drift.MissingFromSchema) == 0 && len(drift.UnknownToCatalog) == 0 {
		return nil
	}
	return drift
}

// ErrSchemaMismatch is returned by CheckAligned when two models expect
// different feature columns.
var ErrSchemaMismatch = errors.New("model schemas differ")

// CheckAligned reports whether other lists exactly the columns of s in the
// same order. Rows are encoded once against s, so any other model fed the
// same row must agree column for column.
func CheckAligned(s Schema, other []string) error {
	if len(s) != len(other) {
		return fmt.Errorf("%w: %d columns, other model expects %d", ErrSchemaMismatch, len(s), len(other))
	}
	for i, col := range s {
		if other[i] != col {
			return fmt.Errorf("%w: column %d is %q, other model expects %q", ErrSchemaMismatch, i, col, other[i])
		}
	}
	return nil
}
