// Package kpi computes the headline figures and breakdown tables the
// display layer shows above the charts. Everything here works on already
// filtered tables; filtering itself lives on the table type.
package kpi

import (
	"sort"

	"github.com/montanaflynn/stats"

	"marketlens/domain/metrics"
	"marketlens/domain/schema"
	"marketlens/domain/table"
)

// Summary carries the headline cards: totals over the filtered period.
// ROAS is nil when no spend was recorded.
type Summary struct {
	TotalSpend        float64  `json:"total_spend"`
	AttributedRevenue float64  `json:"attributed_revenue"`
	BusinessRevenue   float64  `json:"business_revenue"`
	TotalClicks       float64  `json:"total_clicks"`
	ROAS              *float64 `json:"roas,omitempty"`
}

// Compute builds the summary from the filtered daily totals and the
// business join. Business revenue falls back to the bare business table
// when the join carries no revenue column.
func Compute(dailyTotal, businessJoin, business *table.Table) Summary {
	s := Summary{
		TotalSpend:        safeSum(dailyTotal, schema.FieldSpend),
		AttributedRevenue: safeSum(dailyTotal, schema.FieldRevenue),
		TotalClicks:       safeSum(dailyTotal, schema.FieldClicks),
	}
	if businessJoin.HasColumn("revenue") {
		s.BusinessRevenue = safeSum(businessJoin, "revenue")
	} else {
		s.BusinessRevenue = safeSum(business, "revenue")
	}
	if s.TotalSpend > 0 {
		roas := s.AttributedRevenue / s.TotalSpend
		s.ROAS = &roas
	}
	return s
}

// safeSum sums a column, 0 when the table or column is absent
func safeSum(t *table.Table, column string) float64 {
	if t == nil || !t.HasColumn(column) {
		return 0
	}
	total, _ := stats.Sum(t.Numeric(column))
	return total
}

// ChannelRollup is one line of the high-level channel breakdown
type ChannelRollup struct {
	Channel           string      `json:"channel"`
	Impression        float64     `json:"impression"`
	Clicks            float64     `json:"clicks"`
	Spend             float64     `json:"spend"`
	AttributedRevenue float64     `json:"attributed_revenue"`
	CTR               table.Value `json:"ctr"`
	CPC               table.Value `json:"cpc"`
	ROAS              table.Value `json:"roas"`
}

// ChannelBreakdown rolls the filtered daily-channel aggregate up to one
// line per channel, sorted by spend descending.
func ChannelBreakdown(dailyChannel *table.Table) []ChannelRollup {
	if dailyChannel == nil || !dailyChannel.HasColumn(schema.FieldChannel) {
		return nil
	}
	byChannel := make(map[string]*ChannelRollup)
	var order []string
	for _, r := range dailyChannel.Rows {
		ch := r.Get(schema.FieldChannel).AsString()
		roll, ok := byChannel[ch]
		if !ok {
			roll = &ChannelRollup{Channel: ch}
			byChannel[ch] = roll
			order = append(order, ch)
		}
		roll.Impression += r.Get(schema.FieldImpression).AsFloat64()
		roll.Clicks += r.Get(schema.FieldClicks).AsFloat64()
		roll.Spend += r.Get(schema.FieldSpend).AsFloat64()
		roll.AttributedRevenue += r.Get(schema.FieldRevenue).AsFloat64()
	}

	out := make([]ChannelRollup, 0, len(order))
	for _, ch := range order {
		roll := byChannel[ch]
		roll.CTR = metrics.SafeDiv(roll.Clicks, roll.Impression)
		roll.CPC = metrics.SafeDiv(roll.Spend, roll.Clicks)
		roll.ROAS = metrics.SafeDiv(roll.AttributedRevenue, roll.Spend)
		out = append(out, *roll)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	return out
}

// SpendShare reports each channel's share of total spend
type SpendShare struct {
	Channel string  `json:"channel"`
	Spend   float64 `json:"spend"`
	Share   float64 `json:"share"`
}

// ComputeSpendShare derives per-channel spend shares from the breakdown
func ComputeSpendShare(dailyChannel *table.Table) []SpendShare {
	rollups := ChannelBreakdown(dailyChannel)
	total := 0.0
	for _, r := range rollups {
		total += r.Spend
	}
	out := make([]SpendShare, 0, len(rollups))
	for _, r := range rollups {
		share := 0.0
		if total > 0 {
			share = r.Spend / total
		}
		out = append(out, SpendShare{Channel: r.Channel, Spend: r.Spend, Share: share})
	}
	return out
}

// TopCampaigns returns the n best campaign rows by ROAS. Rows without a
// defined ROAS are excluded.
func TopCampaigns(campaignPerf *table.Table, n int) []table.Row {
	if campaignPerf.Empty() || !campaignPerf.HasColumn(metrics.FieldROAS) {
		return nil
	}
	rows := make([]table.Row, 0, campaignPerf.Len())
	for _, r := range campaignPerf.Rows {
		if r.Get(metrics.FieldROAS).IsNumeric() {
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Get(metrics.FieldROAS).AsFloat64() > rows[j].Get(metrics.FieldROAS).AsFloat64()
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// ROASDistribution summarizes the spread of campaign ROAS for one channel
type ROASDistribution struct {
	Channel string  `json:"channel"`
	Count   int     `json:"count"`
	Min     float64 `json:"min"`
	Q1      float64 `json:"q1"`
	Median  float64 `json:"median"`
	Q3      float64 `json:"q3"`
	Max     float64 `json:"max"`
}

// CampaignROASDistribution computes per-channel quartile summaries of
// campaign ROAS, the data behind the box plot. Campaigns with zero spend
// are excluded since their ROAS is undefined.
func CampaignROASDistribution(campaignPerf *table.Table) []ROASDistribution {
	if campaignPerf.Empty() || !campaignPerf.HasColumn(metrics.FieldROAS) {
		return nil
	}
	byChannel := make(map[string][]float64)
	var order []string
	for _, r := range campaignPerf.Rows {
		roas := r.Get(metrics.FieldROAS)
		if !roas.IsNumeric() {
			continue
		}
		ch := r.Get(schema.FieldChannel).AsString()
		if _, ok := byChannel[ch]; !ok {
			order = append(order, ch)
		}
		byChannel[ch] = append(byChannel[ch], roas.AsFloat64())
	}
	sort.Strings(order)

	out := make([]ROASDistribution, 0, len(order))
	for _, ch := range order {
		values := byChannel[ch]
		d := ROASDistribution{Channel: ch, Count: len(values)}
		d.Min, _ = stats.Min(values)
		d.Max, _ = stats.Max(values)
		d.Median, _ = stats.Median(values)
		if q, err := stats.Quartile(values); err == nil {
			d.Q1, d.Q3 = q.Q1, q.Q3
		}
		out = append(out, d)
	}
	return out
}
