package app

import (
	"testing"

	"marketlens/domain/core"
)

func TestLoadChannel_CanonicalRow(t *testing.T) {
	src := &memSource{
		name:    "google",
		columns: []string{"Date", "Impressions", "Clicks", "Spend (USD)", "Attributed Revenue"},
		records: [][]string{{"2024-01-01", "1000", "50", "100.0", "250.0"}},
	}
	got, err := LoadChannel(src, "Google")
	if err != nil {
		t.Fatalf("LoadChannel: %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", got.Len())
	}

	row := got.Rows[0]
	if d := row.Get("date"); !d.IsDate() || d.AsDate().String() != "2024-01-01" {
		t.Errorf("date = %v, want 2024-01-01", d)
	}
	if ch := row.Get("channel").AsString(); ch != "Google" {
		t.Errorf("channel = %q, want Google", ch)
	}
	numerics := map[string]float64{
		"impression":         1000,
		"clicks":             50,
		"spend":              100,
		"attributed_revenue": 250,
		"ctr":                0.05,
		"cpc":                2.0,
		"cpm":                100.0,
		"roas":               2.5,
	}
	for field, want := range numerics {
		v := row.Get(field)
		if !v.IsNumeric() || v.AsFloat64() != want {
			t.Errorf("%s = %v, want %v", field, v, want)
		}
	}
}

func TestLoadChannel_ZeroDenominators(t *testing.T) {
	src := &memSource{
		name:    "tiktok",
		columns: []string{"Date", "Impressions", "Clicks", "Spend", "Revenue"},
		records: [][]string{{"2024-01-01", "0", "0", "100", "250"}},
	}
	got, err := LoadChannel(src, "TikTok")
	if err != nil {
		t.Fatalf("LoadChannel: %v", err)
	}
	row := got.Rows[0]
	for _, field := range []string{"ctr", "cpc", "cpm"} {
		if !row.Get(field).IsMissing {
			t.Errorf("%s should be missing with zero denominator", field)
		}
	}
	if roas := row.Get("roas"); !roas.IsNumeric() || roas.AsFloat64() != 2.5 {
		t.Errorf("roas = %v, want 2.5 (spend is nonzero)", roas)
	}
}

func TestLoadChannel_UnparseableMetricZeroFilled(t *testing.T) {
	src := &memSource{
		name:    "fb",
		columns: []string{"Date", "Impressions", "Clicks"},
		records: [][]string{{"2024-01-01", "n/a", "10"}},
	}
	got, err := LoadChannel(src, "Facebook")
	if err != nil {
		t.Fatalf("LoadChannel: %v", err)
	}
	if v := got.Rows[0].Get("impression"); !v.IsNumeric() || v.AsFloat64() != 0 {
		t.Errorf("impression = %v, want 0 fill", v)
	}
	// ctr divides by the zero-filled impression and stays undefined
	if !got.Rows[0].Get("ctr").IsMissing {
		t.Error("ctr should be missing with zero-filled impression")
	}
}

func TestLoadChannel_MissingDateColumn(t *testing.T) {
	src := &memSource{
		name:    "google",
		columns: []string{"Impressions", "Clicks"},
		records: [][]string{{"1000", "50"}},
	}
	_, err := LoadChannel(src, "Google")
	if err == nil {
		t.Fatal("expected MissingRequiredField error")
	}
	if !core.IsMissingFieldError(err) {
		t.Errorf("error should wrap ErrMissingRequiredField, got %v", err)
	}
}

func TestLoadChannel_BadDateIsFatal(t *testing.T) {
	src := &memSource{
		name:    "google",
		columns: []string{"Date", "Clicks"},
		records: [][]string{
			{"2024-01-01", "10"},
			{"yesterday", "20"},
		},
	}
	_, err := LoadChannel(src, "Google")
	if err == nil {
		t.Fatal("an unparseable channel date must fail the whole load")
	}
}

func TestLoadChannel_ExtraColumnsPreserved(t *testing.T) {
	src := &memSource{
		name:    "google",
		columns: []string{"Date", "Clicks", "Notes"},
		records: [][]string{{"2024-01-01", "10", "promo week"}},
	}
	got, err := LoadChannel(src, "Google")
	if err != nil {
		t.Fatalf("LoadChannel: %v", err)
	}
	if !got.HasColumn("Notes") {
		t.Fatal("unrecognized columns must be preserved")
	}
	if v := got.Rows[0].Get("Notes").AsString(); v != "promo week" {
		t.Errorf("Notes = %q, want original value", v)
	}
}

func TestLoadChannel_SourceError(t *testing.T) {
	src := &memSource{name: "google", err: errBoom}
	if _, err := LoadChannel(src, "Google"); err == nil {
		t.Fatal("expected wrapped source error")
	}
}
