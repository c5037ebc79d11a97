package table

import (
	"sort"

	"marketlens/domain/core"
)

// Row maps canonical column names to cell values
type Row map[string]Value

// Table is an ordered-column, row-oriented dataset. Tables are treated as
// immutable snapshots: every transform returns a new table and leaves its
// input untouched.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// RawTable is the untyped shape delivered by row sources: a header row plus
// string records, before any normalization or coercion.
type RawTable struct {
	Name    string
	Columns []string
	Records [][]string
}

// New creates an empty table with the given column order
func New(columns ...string) *Table {
	return &Table{Columns: append([]string{}, columns...)}
}

// Empty reports whether the table has no rows
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn appends the column to the ordering if absent
func (t *Table) EnsureColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a row. Columns not yet in the ordering are not discovered
// automatically; callers declare columns via New or EnsureColumn.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Get returns the named cell of a row, missing when absent
func (r Row) Get(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	return Missing()
}

// Clone returns a deep-enough copy: fresh column slice and row maps.
// Values are immutable so they are shared.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// Numeric extracts the non-missing numeric values of a column, in row order
func (t *Table) Numeric(name string) []float64 {
	out := make([]float64, 0, t.Len())
	for _, r := range t.Rows {
		if v := r.Get(name); v.IsNumeric() {
			out = append(out, *v.NumericVal)
		}
	}
	return out
}

// SumColumn sums the non-missing numeric values of a column
func (t *Table) SumColumn(name string) float64 {
	total := 0.0
	for _, r := range t.Rows {
		if v := r.Get(name); v.IsNumeric() {
			total += *v.NumericVal
		}
	}
	return total
}

// FilterDateRange returns the rows whose date column falls inside
// [start, end], both ends inclusive. Tables without the column are
// returned unchanged; rows with a missing date are dropped by the filter.
func (t *Table) FilterDateRange(column string, start, end core.Date) *Table {
	if t == nil || !t.HasColumn(column) {
		return t
	}
	out := New(t.Columns...)
	for _, r := range t.Rows {
		v := r.Get(column)
		if !v.IsDate() {
			continue
		}
		d := *v.DateVal
		if d.Before(start) || d.After(end) {
			continue
		}
		out.Append(r)
	}
	return out
}

// FilterIn returns the rows whose column value (string form) is a member
// of the given set. Tables without the column, or empty sets, pass through
// unchanged.
func (t *Table) FilterIn(column string, values []string) *Table {
	if t == nil || len(values) == 0 || !t.HasColumn(column) {
		return t
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	out := New(t.Columns...)
	for _, r := range t.Rows {
		if set[r.Get(column).AsString()] {
			out.Append(r)
		}
	}
	return out
}

// SortByDate returns a copy sorted ascending by the date column. Rows with
// a missing date sort after all dated rows, preserving their relative order.
func (t *Table) SortByDate(column string) *Table {
	out := New(t.Columns...)
	out.Rows = append([]Row{}, t.Rows...)
	sort.SliceStable(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i].Get(column), out.Rows[j].Get(column)
		switch {
		case a.IsDate() && b.IsDate():
			return a.DateVal.Before(*b.DateVal)
		case a.IsDate():
			return true
		default:
			return false
		}
	})
	return out
}

// Dates returns the distinct non-missing dates of a column in sorted order
func (t *Table) Dates(column string) []core.Date {
	seen := make(map[string]core.Date)
	for _, r := range t.Rows {
		if v := r.Get(column); v.IsDate() {
			seen[v.DateVal.String()] = *v.DateVal
		}
	}
	out := make([]core.Date, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// DistinctStrings returns the distinct non-missing string values of a
// column in sorted order.
func (t *Table) DistinctStrings(column string) []string {
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		if s := r.Get(column).AsString(); s != "" {
			seen[s] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
