package app

import (
	"marketlens/adapters/tabular/coercer"
	"marketlens/domain/core"
	"marketlens/domain/metrics"
	"marketlens/domain/schema"
	"marketlens/domain/table"
	"marketlens/ports"
)

// LoadChannel reads one channel's raw table, normalizes its columns onto
// the canonical schema, coerces types, zero-fills missing base metrics,
// stamps the channel name on every row, and derives the per-row ratios.
//
// A date column is required: a source where none can be located fails with
// ErrMissingRequiredField, and any row whose date does not parse fails the
// whole load. Dates are the grouping and join key, so a silently dropped
// row would corrupt every aggregate downstream.
func LoadChannel(src ports.RowSource, channelName string) (*table.Table, error) {
	raw, err := src.Read()
	if err != nil {
		return nil, core.NewSourceError(src.Name(), err)
	}

	mapping := schema.MapChannelColumns(raw.Columns)
	raw = schema.ApplyMapping(raw, mapping)

	if !schema.HasColumn(raw.Columns, schema.FieldDate) {
		return nil, core.NewMissingFieldError(src.Name(), schema.FieldDate)
	}

	out := table.New(raw.Columns...)
	out.EnsureColumn(schema.FieldChannel)

	baseMetric := make(map[string]bool, len(schema.BaseMetrics))
	for _, m := range schema.BaseMetrics {
		baseMetric[m] = true
	}

	for i, rec := range raw.Records {
		row := make(table.Row, len(raw.Columns)+5)
		for j, col := range raw.Columns {
			cell := ""
			if j < len(rec) {
				cell = rec[j]
			}
			switch {
			case col == schema.FieldDate:
				d, ok := coercer.ParseDate(cell)
				if !ok {
					return nil, core.NewDateParseError(src.Name(), cell, i+1)
				}
				row[col] = table.DateValue(d)
			case baseMetric[col]:
				v := coercer.CoerceNumeric(cell)
				if v.IsMissing {
					v = table.Numeric(0)
				}
				row[col] = v
			default:
				row[col] = table.String(cell)
			}
		}
		row[schema.FieldChannel] = table.String(channelName)
		out.Append(row)
	}

	metrics.DeriveTable(out, metrics.RatioFields)
	return out, nil
}
