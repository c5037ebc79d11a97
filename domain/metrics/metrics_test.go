package metrics

import (
	"testing"

	"marketlens/domain/table"
)

func TestSafeDiv(t *testing.T) {
	if v := SafeDiv(50, 1000); !v.IsNumeric() || v.AsFloat64() != 0.05 {
		t.Errorf("SafeDiv(50, 1000) = %v, want 0.05", v)
	}
	if v := SafeDiv(50, 0); !v.IsMissing {
		t.Errorf("SafeDiv by zero should be missing, got %v", v)
	}
}

func TestSafeDivValues_MissingOperands(t *testing.T) {
	if v := SafeDivValues(table.Missing(), table.Numeric(10)); !v.IsMissing {
		t.Error("missing numerator should yield missing")
	}
	if v := SafeDivValues(table.Numeric(10), table.Missing()); !v.IsMissing {
		t.Error("missing denominator should yield missing")
	}
}

func TestDeriveRow_AllRatios(t *testing.T) {
	tbl := table.New("impression", "clicks", "spend", "attributed_revenue")
	row := table.Row{
		"impression":         table.Numeric(1000),
		"clicks":             table.Numeric(50),
		"spend":              table.Numeric(100),
		"attributed_revenue": table.Numeric(250),
	}
	DeriveRow(tbl, row, RatioFields)

	checks := map[string]float64{
		"ctr":  0.05,
		"cpc":  2.0,
		"cpm":  100.0,
		"roas": 2.5,
	}
	for field, want := range checks {
		got := row.Get(field)
		if !got.IsNumeric() || got.AsFloat64() != want {
			t.Errorf("%s = %v, want %v", field, got, want)
		}
	}
}

func TestDeriveRow_ZeroDenominators(t *testing.T) {
	tbl := table.New("impression", "clicks", "spend", "attributed_revenue")
	row := table.Row{
		"impression":         table.Numeric(0),
		"clicks":             table.Numeric(0),
		"spend":              table.Numeric(100),
		"attributed_revenue": table.Numeric(250),
	}
	DeriveRow(tbl, row, RatioFields)

	for _, field := range []string{"ctr", "cpc", "cpm"} {
		if !row.Get(field).IsMissing {
			t.Errorf("%s should be missing with zero denominator", field)
		}
	}
	// roas has a nonzero denominator and stays defined
	if got := row.Get("roas"); !got.IsNumeric() || got.AsFloat64() != 2.5 {
		t.Errorf("roas = %v, want 2.5", got)
	}
}

func TestDeriveRow_AbsentColumns(t *testing.T) {
	tbl := table.New("spend", "attributed_revenue")
	row := table.Row{
		"spend":              table.Numeric(100),
		"attributed_revenue": table.Numeric(50),
	}
	DeriveRow(tbl, row, RatioFields)

	for _, field := range []string{"ctr", "cpc", "cpm"} {
		if !row.Get(field).IsMissing {
			t.Errorf("%s should be missing when a source column is absent", field)
		}
	}
	if got := row.Get("roas"); !got.IsNumeric() || got.AsFloat64() != 0.5 {
		t.Errorf("roas = %v, want 0.5", got)
	}
}

func TestDeriveTable_AppendsColumns(t *testing.T) {
	tbl := table.New("impression", "clicks")
	tbl.Append(table.Row{"impression": table.Numeric(200), "clicks": table.Numeric(10)})
	DeriveTable(tbl, RatioFields)

	for _, field := range RatioFields {
		if !tbl.HasColumn(field) {
			t.Errorf("missing derived column %s", field)
		}
	}
	if got := tbl.Rows[0].Get("ctr"); got.AsFloat64() != 0.05 {
		t.Errorf("ctr = %v, want 0.05", got)
	}
}
