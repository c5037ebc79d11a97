// Package dataset defines the prepared-table bundle produced by one
// pipeline run.
package dataset

import (
	"time"

	"marketlens/domain/core"
	"marketlens/domain/table"
)

// Prepared table names. A bundle always carries exactly these six keys;
// a table may be empty but is never absent.
const (
	TableChannelsRaw  = "channels_raw"
	TableDailyChannel = "daily_channel"
	TableDailyTotal   = "daily_total"
	TableBusiness     = "business"
	TableBusinessJoin = "business_join"
	TableCampaignPerf = "campaign_perf"
)

// Names lists the prepared table names in presentation order
func Names() []string {
	return []string{
		TableChannelsRaw,
		TableDailyChannel,
		TableDailyTotal,
		TableBusiness,
		TableBusinessJoin,
		TableCampaignPerf,
	}
}

// Bundle is an immutable snapshot of all prepared tables from one run
type Bundle struct {
	SnapshotID core.SnapshotID         `json:"snapshot_id"`
	PreparedAt time.Time               `json:"prepared_at"`
	Tables     map[string]*table.Table `json:"tables"`
}

// NewBundle stamps a fresh snapshot around the prepared tables
func NewBundle(tables map[string]*table.Table) *Bundle {
	return &Bundle{
		SnapshotID: core.NewSnapshotID(),
		PreparedAt: time.Now().UTC(),
		Tables:     tables,
	}
}

// Table returns the named table, or nil when the name is unknown
func (b *Bundle) Table(name string) *table.Table {
	if b == nil {
		return nil
	}
	return b.Tables[name]
}

// Has reports whether the bundle carries the named table
func (b *Bundle) Has(name string) bool {
	_, ok := b.Tables[name]
	return ok
}
