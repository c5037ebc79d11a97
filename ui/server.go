// Package ui serves the prepared datasets to the display layer: filtered
// table access, KPI summaries, lag analysis, and tabular export. Charts
// and layout are the consumer's concern; this server only hands over data.
package ui

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"marketlens/adapters/tabular"
	"marketlens/domain/core"
	"marketlens/domain/dataset"
	"marketlens/domain/schema"
	"marketlens/domain/table"
	"marketlens/internal"
	"marketlens/internal/analysis"
	"marketlens/internal/kpi"
	"marketlens/ports"
)

// Server exposes one analysis session over HTTP
type Server struct {
	router   *gin.Engine
	preparer ports.DatasetPreparer
	log      *internal.Logger

	// The pipeline is a pure function of its input files, so its result is
	// memoized for the process lifetime; /api/refresh re-runs it after the
	// files change. singleflight collapses concurrent first requests.
	group  singleflight.Group
	mu     sync.RWMutex
	bundle *dataset.Bundle
}

// NewServer creates the display server around a dataset preparer
func NewServer(preparer ports.DatasetPreparer, log *internal.Logger) *Server {
	s := &Server{
		router:   gin.New(),
		preparer: preparer,
		log:      log,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/api/health", s.handleHealth)
	s.router.GET("/api/tables", s.handleTableList)
	s.router.GET("/api/tables/:name", s.handleTable)
	s.router.GET("/api/tables/:name/export", s.handleExport)
	s.router.GET("/api/kpi/summary", s.handleKPISummary)
	s.router.GET("/api/kpi/channels", s.handleChannelBreakdown)
	s.router.GET("/api/kpi/spend-share", s.handleSpendShare)
	s.router.GET("/api/kpi/top-campaigns", s.handleTopCampaigns)
	s.router.GET("/api/kpi/roas-distribution", s.handleROASDistribution)
	s.router.GET("/api/analysis/lag", s.handleLag)
	s.router.POST("/api/refresh", s.handleRefresh)
	s.router.GET("/guide", s.handleGuide)
}

// Start runs the HTTP server
func (s *Server) Start(addr string) error {
	s.log.Info("display server listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// prepared returns the memoized bundle, running the pipeline on first use
func (s *Server) prepared() (*dataset.Bundle, error) {
	s.mu.RLock()
	b := s.bundle
	s.mu.RUnlock()
	if b != nil {
		return b, nil
	}

	v, err, _ := s.group.Do("prepare", func() (interface{}, error) {
		s.log.Info("preparing datasets")
		bundle, err := s.preparer.PrepareAll()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.bundle = bundle
		s.mu.Unlock()
		s.log.Info("prepared snapshot %s", bundle.SnapshotID)
		return bundle, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dataset.Bundle), nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRefresh(c *gin.Context) {
	s.mu.Lock()
	s.bundle = nil
	s.mu.Unlock()
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot_id": b.SnapshotID, "prepared_at": b.PreparedAt})
}

func (s *Server) handleTableList(c *gin.Context) {
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(dataset.Names()))
	for _, name := range dataset.Names() {
		out = append(out, gin.H{"name": name, "rows": b.Table(name).Len()})
	}
	c.JSON(http.StatusOK, gin.H{"snapshot_id": b.SnapshotID, "tables": out})
}

func (s *Server) handleTable(c *gin.Context) {
	t, ok := s.filteredTable(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"columns": t.Columns,
		"rows":    renderRows(t),
	})
}

func (s *Server) handleExport(c *gin.Context) {
	t, ok := s.filteredTable(c)
	if !ok {
		return
	}
	name := c.Param("name")
	var buf bytes.Buffer
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		if err := tabular.WriteXLSX(&buf, t); err != nil {
			s.fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		if err := tabular.WriteCSV(&buf, t); err != nil {
			s.fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`.csv"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	}
}

func (s *Server) handleKPISummary(c *gin.Context) {
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return
	}
	f := parseFilters(c)
	summary := kpi.Compute(
		f.apply(b.Table(dataset.TableDailyTotal)),
		f.apply(b.Table(dataset.TableBusinessJoin)),
		f.apply(b.Table(dataset.TableBusiness)),
	)
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleChannelBreakdown(c *gin.Context) {
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return
	}
	f := parseFilters(c)
	c.JSON(http.StatusOK, kpi.ChannelBreakdown(f.apply(b.Table(dataset.TableDailyChannel))))
}

func (s *Server) handleSpendShare(c *gin.Context) {
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return
	}
	f := parseFilters(c)
	c.JSON(http.StatusOK, kpi.ComputeSpendShare(f.apply(b.Table(dataset.TableDailyChannel))))
}

func (s *Server) handleTopCampaigns(c *gin.Context) {
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return
	}
	f := parseFilters(c)
	top := kpi.TopCampaigns(f.apply(b.Table(dataset.TableCampaignPerf)), 10)
	out := make([]map[string]interface{}, 0, len(top))
	for _, r := range top {
		out = append(out, renderRow(r, []string{
			schema.FieldCampaign, schema.FieldChannel, schema.FieldSpend,
			schema.FieldRevenue, "roas", "ctr", "cpc",
		}))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleROASDistribution(c *gin.Context) {
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return
	}
	f := parseFilters(c)
	c.JSON(http.StatusOK, kpi.CampaignROASDistribution(f.apply(b.Table(dataset.TableCampaignPerf))))
}

func (s *Server) handleLag(c *gin.Context) {
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return
	}
	f := parseFilters(c)
	result := analysis.Lag(
		f.apply(b.Table(dataset.TableDailyChannel)),
		f.apply(b.Table(dataset.TableBusinessJoin)),
	)
	c.JSON(http.StatusOK, result)
}

// filteredTable resolves the :name path param and applies query filters
func (s *Server) filteredTable(c *gin.Context) (*table.Table, bool) {
	b, err := s.prepared()
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	name := c.Param("name")
	t := b.Table(name)
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table: " + name})
		return nil, false
	}
	return parseFilters(c).apply(t), true
}

func (s *Server) fail(c *gin.Context, err error) {
	if core.IsLoadError(err) {
		s.log.Error("pipeline aborted: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	s.log.Error("request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// renderRows flattens typed rows for JSON: dates as YYYY-MM-DD strings,
// numerics as numbers, missing as null.
func renderRows(t *table.Table) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, renderRow(r, t.Columns))
	}
	return out
}

func renderRow(r table.Row, columns []string) map[string]interface{} {
	m := make(map[string]interface{}, len(columns))
	for _, col := range columns {
		v := r.Get(col)
		switch {
		case v.IsNumeric():
			m[col] = *v.NumericVal
		case v.IsDate():
			m[col] = v.DateVal.String()
		case v.Type == table.ValueTypeString:
			m[col] = v.AsString()
		default:
			m[col] = nil
		}
	}
	return m
}
