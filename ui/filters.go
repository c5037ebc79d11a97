package ui

import (
	"strings"

	"github.com/gin-gonic/gin"

	"marketlens/adapters/tabular/coercer"
	"marketlens/domain/core"
	"marketlens/domain/schema"
	"marketlens/domain/table"
)

// filters carries the user-selected filter dimensions from query params:
// ?start=2024-01-01&end=2024-01-31&channels=Google,TikTok&states=CA,NY
type filters struct {
	start, end core.Date
	hasRange   bool
	channels   []string
	states     []string
}

func parseFilters(c *gin.Context) filters {
	var f filters
	start, okStart := coercer.ParseDate(c.Query("start"))
	end, okEnd := coercer.ParseDate(c.Query("end"))
	if okStart && okEnd {
		f.start, f.end = start, end
		f.hasRange = true
	}
	f.channels = splitParam(c.Query("channels"))
	f.states = splitParam(c.Query("states"))
	return f
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// apply runs the filter dimensions against a table. Each dimension no-ops
// when the table lacks its column, so every prepared table accepts the
// same filter set.
func (f filters) apply(t *table.Table) *table.Table {
	if t == nil {
		return nil
	}
	out := t
	if f.hasRange {
		out = out.FilterDateRange(schema.FieldDate, f.start, f.end)
	}
	out = out.FilterIn(schema.FieldChannel, f.channels)
	out = out.FilterIn(schema.FieldState, f.states)
	return out
}
