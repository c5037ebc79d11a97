package app

import (
	"marketlens/adapters/tabular/coercer"
	"marketlens/domain/core"
	"marketlens/domain/schema"
	"marketlens/domain/table"
	"marketlens/ports"
)

// LoadBusiness reads the business-outcomes table, renames columns through
// the exact-match table, and coerces the six outcome fields with
// missing-as-zero semantics.
//
// Unlike channel loading, an unparseable business date becomes missing
// instead of failing the load. The asymmetry is inherited from the original
// preparation logic and kept deliberate; see the loader tests for both
// policies side by side.
func LoadBusiness(src ports.RowSource) (*table.Table, error) {
	raw, err := src.Read()
	if err != nil {
		return nil, core.NewSourceError(src.Name(), err)
	}

	mapping := schema.MapBusinessColumns(raw.Columns)
	raw = schema.ApplyMapping(raw, mapping)

	if !schema.HasColumn(raw.Columns, schema.FieldDate) {
		return nil, core.NewMissingFieldError(src.Name(), schema.FieldDate)
	}

	outcome := make(map[string]bool, len(schema.BusinessMetrics))
	for _, m := range schema.BusinessMetrics {
		outcome[m] = true
	}

	out := table.New(raw.Columns...)
	for _, rec := range raw.Records {
		row := make(table.Row, len(raw.Columns))
		for j, col := range raw.Columns {
			cell := ""
			if j < len(rec) {
				cell = rec[j]
			}
			switch {
			case col == schema.FieldDate:
				row[col] = coercer.CoerceDate(cell)
			case outcome[col]:
				v := coercer.CoerceNumeric(cell)
				if v.IsMissing {
					v = table.Numeric(0)
				}
				row[col] = v
			default:
				row[col] = table.String(cell)
			}
		}
		out.Append(row)
	}
	return out, nil
}
