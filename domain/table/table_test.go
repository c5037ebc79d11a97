package table

import (
	"testing"
	"time"

	"marketlens/domain/core"
)

func day(y int, m time.Month, d int) core.Date {
	return core.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func sampleTable() *Table {
	t := New("date", "channel", "spend")
	t.Append(Row{"date": DateValue(day(2024, 1, 1)), "channel": String("Google"), "spend": Numeric(100)})
	t.Append(Row{"date": DateValue(day(2024, 1, 2)), "channel": String("Facebook"), "spend": Numeric(200)})
	t.Append(Row{"date": DateValue(day(2024, 1, 3)), "channel": String("Google"), "spend": Numeric(300)})
	return t
}

func TestFilterDateRange_Inclusive(t *testing.T) {
	tbl := sampleTable()
	got := tbl.FilterDateRange("date", day(2024, 1, 1), day(2024, 1, 2))
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	// both ends of the range are included
	if got.Rows[0].Get("date").AsDate().String() != "2024-01-01" {
		t.Error("range start should be included")
	}
	if got.Rows[1].Get("date").AsDate().String() != "2024-01-02" {
		t.Error("range end should be included")
	}
	if tbl.Len() != 3 {
		t.Error("filtering must not mutate the input")
	}
}

func TestFilterDateRange_NoDateColumn(t *testing.T) {
	tbl := New("channel")
	tbl.Append(Row{"channel": String("Google")})
	if got := tbl.FilterDateRange("date", day(2024, 1, 1), day(2024, 1, 2)); got != tbl {
		t.Error("filter on absent column should return the input unchanged")
	}
}

func TestFilterIn(t *testing.T) {
	tbl := sampleTable()
	got := tbl.FilterIn("channel", []string{"Google"})
	if got.Len() != 2 {
		t.Fatalf("expected 2 Google rows, got %d", got.Len())
	}

	if got := tbl.FilterIn("channel", nil); got != tbl {
		t.Error("empty filter set should return the input unchanged")
	}
	if got := tbl.FilterIn("state", []string{"CA"}); got != tbl {
		t.Error("filter on absent column should return the input unchanged")
	}
}

func TestSortByDate_MissingLast(t *testing.T) {
	tbl := New("date")
	tbl.Append(Row{"date": Missing()})
	tbl.Append(Row{"date": DateValue(day(2024, 1, 2))})
	tbl.Append(Row{"date": DateValue(day(2024, 1, 1))})

	sorted := tbl.SortByDate("date")
	if sorted.Rows[0].Get("date").AsDate().String() != "2024-01-01" {
		t.Error("earliest date should sort first")
	}
	if !sorted.Rows[2].Get("date").IsMissing {
		t.Error("missing dates should sort last")
	}
	if !tbl.Rows[0].Get("date").IsMissing {
		t.Error("sort must not mutate the input")
	}
}

func TestSumColumn_SkipsMissing(t *testing.T) {
	tbl := New("spend")
	tbl.Append(Row{"spend": Numeric(10)})
	tbl.Append(Row{"spend": Missing()})
	tbl.Append(Row{"spend": Numeric(5)})
	if got := tbl.SumColumn("spend"); got != 15 {
		t.Errorf("SumColumn = %v, want 15", got)
	}
}

func TestValueRender(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Numeric(100), "100"},
		{Numeric(2.5), "2.5"},
		{DateValue(day(2024, 1, 1)), "2024-01-01"},
		{String("Google"), "Google"},
		{Missing(), ""},
	}
	for _, tc := range cases {
		if got := tc.v.Render(); got != tc.want {
			t.Errorf("Render(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestDistinctStrings(t *testing.T) {
	tbl := sampleTable()
	got := tbl.DistinctStrings("channel")
	if len(got) != 2 || got[0] != "Facebook" || got[1] != "Google" {
		t.Errorf("DistinctStrings = %v, want [Facebook Google]", got)
	}
}
