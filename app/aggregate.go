package app

import (
	"sort"
	"strings"

	"marketlens/domain/metrics"
	"marketlens/domain/schema"
	"marketlens/domain/table"
)

// UnionChannels concatenates all channel tables row for row, preserving
// every row and the union of columns in first-seen order. Campaign and
// tactic strings are whitespace-trimmed so the same campaign spelled with
// stray spaces groups as one.
func UnionChannels(tables []*table.Table) *table.Table {
	out := table.New()
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			out.EnsureColumn(c)
		}
		for _, r := range t.Rows {
			row := make(table.Row, len(r))
			for k, v := range r {
				if k == schema.FieldCampaign || k == schema.FieldTactic {
					v = table.String(strings.TrimSpace(v.AsString()))
				}
				row[k] = v
			}
			out.Append(row)
		}
	}
	return out
}

// groupKey orders output groups deterministically
type groupKey struct {
	parts [2]string
}

// sumGroups folds rows into per-key sums over the given metric columns.
// Missing cells contribute nothing to a sum; a key whose cells are all
// missing for a column still reports 0 there, matching the zero-filled
// loader output.
func sumGroups(t *table.Table, keyOf func(table.Row) (groupKey, bool), metricCols []string) (map[groupKey]table.Row, []groupKey) {
	groups := make(map[groupKey]table.Row)
	var order []groupKey
	for _, r := range t.Rows {
		key, ok := keyOf(r)
		if !ok {
			continue
		}
		acc, seen := groups[key]
		if !seen {
			acc = make(table.Row, len(metricCols)+2)
			for _, m := range metricCols {
				acc[m] = table.Numeric(0)
			}
			groups[key] = acc
			order = append(order, key)
		}
		for _, m := range metricCols {
			if v := r.Get(m); v.IsNumeric() {
				acc[m] = table.Numeric(acc[m].AsFloat64() + v.AsFloat64())
			}
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].parts[0] != order[j].parts[0] {
			return order[i].parts[0] < order[j].parts[0]
		}
		return order[i].parts[1] < order[j].parts[1]
	})
	return groups, order
}

// presentMetrics filters the canonical base metrics down to the columns
// the table actually carries.
func presentMetrics(t *table.Table) []string {
	var cols []string
	for _, m := range schema.BaseMetrics {
		if t.HasColumn(m) {
			cols = append(cols, m)
		}
	}
	return cols
}

// AggregateDailyChannel groups the unioned channel rows by (date, channel),
// sums the base metrics present, and recomputes the ratios from the sums.
// Ratios are never averaged across rows; averaging per-row ratios would
// weight a 10-impression row the same as a 10-million-impression one.
func AggregateDailyChannel(union *table.Table) *table.Table {
	metricCols := presentMetrics(union)

	columns := append([]string{schema.FieldDate, schema.FieldChannel}, metricCols...)
	out := table.New(columns...)

	if !union.HasColumn(schema.FieldDate) || !union.HasColumn(schema.FieldChannel) {
		metrics.DeriveTable(out, metrics.RatioFields)
		return out
	}

	dates := make(map[string]table.Value)
	groups, order := sumGroups(union, func(r table.Row) (groupKey, bool) {
		d, ch := r.Get(schema.FieldDate), r.Get(schema.FieldChannel)
		if !d.IsDate() {
			return groupKey{}, false
		}
		key := groupKey{parts: [2]string{d.DateVal.String(), ch.AsString()}}
		dates[key.parts[0]] = d
		return key, true
	}, metricCols)

	for _, key := range order {
		row := groups[key]
		row[schema.FieldDate] = dates[key.parts[0]]
		row[schema.FieldChannel] = table.String(key.parts[1])
		out.Append(row)
	}

	metrics.DeriveTable(out, metrics.RatioFields)
	return out
}

// AggregateDailyTotal collapses the daily-channel aggregate to one row per
// date across all channels, recomputing the ratios from the summed values.
func AggregateDailyTotal(dailyChannel *table.Table) *table.Table {
	metricCols := presentMetrics(dailyChannel)

	columns := append([]string{schema.FieldDate}, metricCols...)
	out := table.New(columns...)

	if !dailyChannel.HasColumn(schema.FieldDate) {
		metrics.DeriveTable(out, metrics.RatioFields)
		return out
	}

	dates := make(map[string]table.Value)
	groups, order := sumGroups(dailyChannel, func(r table.Row) (groupKey, bool) {
		d := r.Get(schema.FieldDate)
		if !d.IsDate() {
			return groupKey{}, false
		}
		key := groupKey{parts: [2]string{d.DateVal.String(), ""}}
		dates[key.parts[0]] = d
		return key, true
	}, metricCols)

	for _, key := range order {
		row := groups[key]
		row[schema.FieldDate] = dates[key.parts[0]]
		out.Append(row)
	}

	metrics.DeriveTable(out, metrics.RatioFields)
	return out
}

// AggregateCampaign groups the unioned channel rows by (campaign, channel)
// across all dates. cpm is intentionally not derived at this granularity.
// When the union carries no campaign column the result is an empty table,
// never a nil one.
func AggregateCampaign(union *table.Table) *table.Table {
	if !union.HasColumn(schema.FieldCampaign) {
		return table.New()
	}

	metricCols := presentMetrics(union)
	columns := append([]string{schema.FieldCampaign, schema.FieldChannel}, metricCols...)
	out := table.New(columns...)

	groups, order := sumGroups(union, func(r table.Row) (groupKey, bool) {
		return groupKey{parts: [2]string{
			r.Get(schema.FieldCampaign).AsString(),
			r.Get(schema.FieldChannel).AsString(),
		}}, true
	}, metricCols)

	for _, key := range order {
		row := groups[key]
		row[schema.FieldCampaign] = table.String(key.parts[0])
		row[schema.FieldChannel] = table.String(key.parts[1])
		out.Append(row)
	}

	metrics.DeriveTable(out, []string{metrics.FieldCTR, metrics.FieldCPC, metrics.FieldROAS})
	return out
}
