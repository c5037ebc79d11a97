package app

import (
	"strings"
	"testing"

	"marketlens/domain/core"
)

func businessSource() *memSource {
	return &memSource{
		name:    "business",
		columns: []string{"date", "# of orders", "# of new orders", "new customers", "total revenue", "gross profit", "COGS"},
		records: [][]string{
			{"2024-01-01", "100", "40", "20", "5000", "2000", "3000"},
			{"2024-01-02", "bad", "41", "21", "5100", "2100", "3000"},
		},
	}
}

func TestLoadBusiness_Renames(t *testing.T) {
	got, err := LoadBusiness(businessSource())
	if err != nil {
		t.Fatalf("LoadBusiness: %v", err)
	}
	for _, col := range []string{"date", "orders", "new_orders", "customers", "revenue", "profit", "cogs"} {
		if !got.HasColumn(col) {
			t.Errorf("missing canonical column %s", col)
		}
	}
	if v := got.Rows[0].Get("revenue"); v.AsFloat64() != 5000 {
		t.Errorf("revenue = %v, want 5000", v)
	}
}

func TestLoadBusiness_UnparseableNumericZeroFilled(t *testing.T) {
	got, err := LoadBusiness(businessSource())
	if err != nil {
		t.Fatalf("LoadBusiness: %v", err)
	}
	if v := got.Rows[1].Get("orders"); !v.IsNumeric() || v.AsFloat64() != 0 {
		t.Errorf("unparseable orders = %v, want 0", v)
	}
}

// Channel dates are fatal on parse failure, business dates degrade to
// missing. The two policies are deliberate and tested side by side here.
func TestLoadBusiness_BadDateBecomesMissing(t *testing.T) {
	src := &memSource{
		name:    "business",
		columns: []string{"date", "# of orders"},
		records: [][]string{
			{"not-a-date", "10"},
			{"2024-01-02", "20"},
		},
	}
	got, err := LoadBusiness(src)
	if err != nil {
		t.Fatalf("business date failures must not abort the load: %v", err)
	}
	if !got.Rows[0].Get("date").IsMissing {
		t.Error("unparseable business date should be missing")
	}
	if !got.Rows[1].Get("date").IsDate() {
		t.Error("valid business date should survive")
	}
}

func TestLoadBusiness_MissingDateColumn(t *testing.T) {
	src := &memSource{
		name:    "business",
		columns: []string{"# of orders"},
		records: [][]string{{"10"}},
	}
	_, err := LoadBusiness(src)
	if err == nil {
		t.Fatal("expected MissingRequiredField error")
	}
	if !core.IsMissingFieldError(err) {
		t.Errorf("error should wrap ErrMissingRequiredField, got %v", err)
	}
	if !strings.Contains(err.Error(), "business") {
		t.Errorf("error should name the business source, got %v", err)
	}
}
