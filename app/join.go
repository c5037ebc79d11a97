package app

import (
	"marketlens/domain/schema"
	"marketlens/domain/table"
)

// Rolling-window field names
const (
	FieldSpend7d   = "spend_7d"
	FieldRevenue7d = "revenue_7d"

	rollingWindow = 7
)

// JoinOutcomes left-joins the daily marketing totals onto the business
// outcomes by date. Every business row survives the join; dates with no
// marketing activity carry missing marketing cells. Colliding non-key
// column names are suffixed _biz / _marketing. The result is sorted
// ascending by date (rows with a missing date sort last) and carries
// trailing 7-row rolling sums of spend and revenue.
func JoinOutcomes(business, dailyTotal *table.Table) *table.Table {
	marketingCols := make([]string, 0, len(dailyTotal.Columns))
	for _, c := range dailyTotal.Columns {
		if c != schema.FieldDate {
			marketingCols = append(marketingCols, c)
		}
	}

	// Resolve column-name collisions between the two sides
	bizName := make(map[string]string, len(business.Columns))
	mkName := make(map[string]string, len(marketingCols))
	for _, c := range business.Columns {
		bizName[c] = c
	}
	for _, c := range marketingCols {
		if _, clash := bizName[c]; clash && c != schema.FieldDate {
			bizName[c] = c + "_biz"
			mkName[c] = c + "_marketing"
		} else {
			mkName[c] = c
		}
	}

	columns := make([]string, 0, len(business.Columns)+len(marketingCols)+2)
	for _, c := range business.Columns {
		columns = append(columns, bizName[c])
	}
	for _, c := range marketingCols {
		columns = append(columns, mkName[c])
	}
	out := table.New(columns...)

	byDate := make(map[string]table.Row, dailyTotal.Len())
	for _, r := range dailyTotal.Rows {
		if d := r.Get(schema.FieldDate); d.IsDate() {
			byDate[d.DateVal.String()] = r
		}
	}

	for _, r := range business.Rows {
		row := make(table.Row, len(columns))
		for _, c := range business.Columns {
			row[bizName[c]] = r.Get(c)
		}
		var match table.Row
		if d := r.Get(schema.FieldDate); d.IsDate() {
			match = byDate[d.DateVal.String()]
		}
		for _, c := range marketingCols {
			if match != nil {
				row[mkName[c]] = match.Get(c)
			} else {
				row[mkName[c]] = table.Missing()
			}
		}
		out.Append(row)
	}

	out = out.SortByDate(schema.FieldDate)
	appendRolling(out, schema.FieldSpend, FieldSpend7d)
	appendRolling(out, "revenue", FieldRevenue7d)
	return out
}

// appendRolling adds a trailing rolling-sum column over the source column.
// The window clamps to the available rows at the series start rather than
// zero-padding, so the first row's window is just itself. Missing cells
// contribute nothing; a window with no observed value at all stays missing.
// When the source column is absent the rolling column is all missing.
func appendRolling(t *table.Table, source, target string) {
	t.EnsureColumn(target)
	if !t.HasColumn(source) {
		for _, r := range t.Rows {
			r[target] = table.Missing()
		}
		return
	}
	for i, r := range t.Rows {
		start := i - rollingWindow + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		observed := 0
		for j := start; j <= i; j++ {
			if v := t.Rows[j].Get(source); v.IsNumeric() {
				sum += v.AsFloat64()
				observed++
			}
		}
		if observed == 0 {
			r[target] = table.Missing()
		} else {
			r[target] = table.Numeric(sum)
		}
	}
}
