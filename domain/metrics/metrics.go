// Package metrics derives the efficiency ratios (ctr, cpc, cpm, roas) with
// safe-division semantics: a zero or missing denominator yields a missing
// value, never zero, infinity, or a panic.
package metrics

import (
	"marketlens/domain/schema"
	"marketlens/domain/table"
)

// Derived ratio field names
const (
	FieldCTR  = "ctr"
	FieldCPC  = "cpc"
	FieldCPM  = "cpm"
	FieldROAS = "roas"
)

// RatioFields in canonical order
var RatioFields = []string{FieldCTR, FieldCPC, FieldCPM, FieldROAS}

// SafeDiv divides n by d, returning missing when d is zero
func SafeDiv(n, d float64) table.Value {
	if d == 0 {
		return table.Missing()
	}
	return table.Numeric(n / d)
}

// SafeDivValues divides two cell values, missing when either operand is
// missing or the denominator is zero.
func SafeDivValues(n, d table.Value) table.Value {
	if !n.IsNumeric() || !d.IsNumeric() {
		return table.Missing()
	}
	return SafeDiv(n.AsFloat64(), d.AsFloat64())
}

// ratioSpec ties a derived field to its numerator/denominator columns and
// an optional scale applied to the numerator.
type ratioSpec struct {
	field string
	num   string
	den   string
	scale float64
}

func ratioSpecs() []ratioSpec {
	return []ratioSpec{
		{FieldCTR, schema.FieldClicks, schema.FieldImpression, 1},
		{FieldCPC, schema.FieldSpend, schema.FieldClicks, 1},
		{FieldCPM, schema.FieldSpend, schema.FieldImpression, 1000},
		{FieldROAS, schema.FieldRevenue, schema.FieldSpend, 1},
	}
}

// DeriveRow computes the requested ratio fields into the row, in place.
// A ratio is missing when either of its source columns is absent from the
// table header, when either operand is missing, or when the denominator
// is zero.
func DeriveRow(t *table.Table, r table.Row, fields []string) {
	want := make(map[string]bool, len(fields))
	for _, f := range fields {
		want[f] = true
	}
	for _, spec := range ratioSpecs() {
		if !want[spec.field] {
			continue
		}
		if !t.HasColumn(spec.num) || !t.HasColumn(spec.den) {
			r[spec.field] = table.Missing()
			continue
		}
		n, d := r.Get(spec.num), r.Get(spec.den)
		if !n.IsNumeric() || !d.IsNumeric() {
			r[spec.field] = table.Missing()
			continue
		}
		r[spec.field] = SafeDiv(n.AsFloat64()*spec.scale, d.AsFloat64())
	}
}

// DeriveTable appends the requested ratio columns to the table and fills
// them for every row.
func DeriveTable(t *table.Table, fields []string) {
	for _, f := range fields {
		t.EnsureColumn(f)
	}
	for _, r := range t.Rows {
		DeriveRow(t, r, fields)
	}
}
