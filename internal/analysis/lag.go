// Package analysis builds the lag view: 7-day rolling marketing spend next
// to 7-day rolling business revenue, aligned on the marketing dates.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"marketlens/domain/core"
	"marketlens/domain/schema"
	"marketlens/domain/table"
)

const window = 7

// LagPoint is one date of the aligned rolling series
type LagPoint struct {
	Date      core.Date `json:"date"`
	Spend     float64   `json:"spend"`
	Revenue   float64   `json:"revenue"`
	Spend7d   float64   `json:"spend_7d"`
	Revenue7d float64   `json:"revenue_7d"`
}

// LagResult carries the series plus a descriptive correlation between the
// two rolling sums. Correlation is nil when fewer than two points exist or
// either series is constant.
type LagResult struct {
	Points      []LagPoint `json:"points"`
	Correlation *float64   `json:"correlation,omitempty"`
}

// Lag aligns daily marketing spend with business revenue by date and
// computes trailing 7-day sums of both, window clamped at the series
// start. Dates come from the filtered daily-channel aggregate; revenue
// for dates the business feed does not cover counts as 0.
func Lag(dailyChannel, businessJoin *table.Table) LagResult {
	if dailyChannel.Empty() || !dailyChannel.HasColumn(schema.FieldDate) {
		return LagResult{}
	}

	spendByDate := make(map[string]float64)
	for _, r := range dailyChannel.Rows {
		d := r.Get(schema.FieldDate)
		if !d.IsDate() {
			continue
		}
		spendByDate[d.DateVal.String()] += r.Get(schema.FieldSpend).AsFloat64()
	}

	revenueByDate := make(map[string]float64)
	if businessJoin.HasColumn("revenue") {
		for _, r := range businessJoin.Rows {
			d := r.Get(schema.FieldDate)
			if !d.IsDate() {
				continue
			}
			key := d.DateVal.String()
			if _, seen := revenueByDate[key]; !seen {
				revenueByDate[key] = r.Get("revenue").AsFloat64()
			}
		}
	}

	dates := dailyChannel.Dates(schema.FieldDate)
	points := make([]LagPoint, len(dates))
	for i, d := range dates {
		points[i] = LagPoint{
			Date:    d,
			Spend:   spendByDate[d.String()],
			Revenue: revenueByDate[d.String()],
		}
	}

	spend7d := make([]float64, len(points))
	revenue7d := make([]float64, len(points))
	for i := range points {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		for j := start; j <= i; j++ {
			spend7d[i] += points[j].Spend
			revenue7d[i] += points[j].Revenue
		}
		points[i].Spend7d = spend7d[i]
		points[i].Revenue7d = revenue7d[i]
	}

	result := LagResult{Points: points}
	if len(points) >= 2 {
		if r := stat.Correlation(spend7d, revenue7d, nil); !math.IsNaN(r) {
			result.Correlation = &r
		}
	}
	return result
}
