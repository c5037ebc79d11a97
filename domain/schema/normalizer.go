// Package schema unifies heterogeneous source column names onto the
// canonical field set (date, impression, clicks, spend, attributed_revenue,
// campaign, tactic, state). Matching is an explicit ordered rule list, not
// an accident of map iteration: per raw column the first matching rule wins,
// and when several raw columns map to the same canonical name the last one
// in source order supplies the values.
package schema

import (
	"strings"

	"marketlens/domain/table"
)

// Canonical field names
const (
	FieldDate       = "date"
	FieldImpression = "impression"
	FieldClicks     = "clicks"
	FieldSpend      = "spend"
	FieldRevenue    = "attributed_revenue"
	FieldCampaign   = "campaign"
	FieldTactic     = "tactic"
	FieldState      = "state"
	FieldChannel    = "channel"
)

// BaseMetrics are the summable channel metrics, in canonical order
var BaseMetrics = []string{FieldImpression, FieldClicks, FieldSpend, FieldRevenue}

// Rule maps raw column names onto a canonical field
type Rule struct {
	Canonical string
	Match     func(lower string) bool
}

// ChannelRules returns the ordered heuristic rules for channel sources.
// Rules are evaluated top to bottom per column; the first hit wins.
func ChannelRules() []Rule {
	return []Rule{
		{FieldImpression, func(lc string) bool { return strings.Contains(lc, "impress") }},
		{FieldClicks, func(lc string) bool { return lc == "clicks" || lc == "click" }},
		{FieldSpend, func(lc string) bool { return strings.Contains(lc, "spend") || strings.Contains(lc, "cost") }},
		{FieldRevenue, func(lc string) bool { return strings.Contains(lc, "revenue") }},
		{FieldCampaign, func(lc string) bool { return strings.Contains(lc, "campaign") }},
		{FieldTactic, func(lc string) bool { return strings.Contains(lc, "tactic") }},
		{FieldState, func(lc string) bool { return strings.Contains(lc, "state") || strings.Contains(lc, "region") }},
	}
}

// BusinessRenames is the exact-match rename table for the business source.
// Keys are compared after whitespace trimming, verbatim otherwise.
func BusinessRenames() map[string]string {
	return map[string]string{
		"# of orders":     "orders",
		"# of new orders": "new_orders",
		"new customers":   "customers",
		"total revenue":   "revenue",
		"gross profit":    "profit",
		"COGS":            "cogs",
	}
}

// BusinessMetrics are the summable business outcome fields
var BusinessMetrics = []string{"orders", "new_orders", "customers", "revenue", "profit", "cogs"}

// MapChannelColumns produces the original→canonical mapping for a channel
// source. Columns no rule matches keep their trimmed original name. If no
// column resolves to "date" (case-insensitive exact match), the first
// still-unmapped column containing "date" is claimed for it.
func MapChannelColumns(columns []string) map[string]string {
	mapping := make(map[string]string, len(columns))
	rules := ChannelRules()

	hasDate := false
	for _, c := range columns {
		trimmed := strings.TrimSpace(c)
		lc := strings.ToLower(trimmed)
		mapped := trimmed
		for _, rule := range rules {
			if rule.Match(lc) {
				mapped = rule.Canonical
				break
			}
		}
		if lc == FieldDate {
			mapped = FieldDate
			hasDate = true
		}
		mapping[c] = mapped
	}

	if !hasDate {
		for _, c := range columns {
			if mapping[c] != strings.TrimSpace(c) {
				continue // already claimed by a metric rule
			}
			if strings.Contains(strings.ToLower(c), FieldDate) {
				mapping[c] = FieldDate
				break
			}
		}
	}
	return mapping
}

// MapBusinessColumns produces the original→canonical mapping for the
// business source via the exact-match rename table.
func MapBusinessColumns(columns []string) map[string]string {
	renames := BusinessRenames()
	mapping := make(map[string]string, len(columns))
	for _, c := range columns {
		trimmed := strings.TrimSpace(c)
		if canonical, ok := renames[trimmed]; ok {
			mapping[c] = canonical
			continue
		}
		if strings.EqualFold(trimmed, FieldDate) {
			mapping[c] = FieldDate
			continue
		}
		mapping[c] = trimmed
	}
	return mapping
}

// ApplyMapping rewrites a raw table's header through the mapping. When two
// raw columns land on the same canonical name the later source column wins
// and supplies the values; the canonical column keeps the position of its
// first occurrence.
func ApplyMapping(raw *table.RawTable, mapping map[string]string) *table.RawTable {
	position := make(map[string]int)
	columns := make([]string, 0, len(raw.Columns))
	sourceIdx := make([]int, 0, len(raw.Columns))

	for i, c := range raw.Columns {
		name := mapping[c]
		if name == "" {
			name = strings.TrimSpace(c)
		}
		if at, seen := position[name]; seen {
			sourceIdx[at] = i // last raw column wins
			continue
		}
		position[name] = len(columns)
		columns = append(columns, name)
		sourceIdx = append(sourceIdx, i)
	}

	out := &table.RawTable{Name: raw.Name, Columns: columns}
	out.Records = make([][]string, 0, len(raw.Records))
	for _, rec := range raw.Records {
		row := make([]string, len(columns))
		for j, src := range sourceIdx {
			if src < len(rec) {
				row[j] = rec[src]
			}
		}
		out.Records = append(out.Records, row)
	}
	return out
}

// HasColumn reports whether the canonical name appears in the header
func HasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
