package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlens/adapters/tabular"
	"marketlens/domain/dataset"
	"marketlens/internal/testkit"
)

func generatedPipeline(t *testing.T) *Pipeline {
	t.Helper()
	dir := t.TempDir()
	gen := testkit.NewFeedGenerator(testkit.DefaultGeneratorConfig())

	var channels []ChannelSource
	for _, name := range []string{"Google", "Facebook", "TikTok"} {
		path, err := gen.WriteChannelCSV(dir, name)
		require.NoError(t, err)
		channels = append(channels, ChannelSource{
			Channel: name,
			Source:  tabular.NewFileSource(name, path),
		})
	}
	bizPath, err := gen.WriteBusinessCSV(dir)
	require.NoError(t, err)

	return NewPipeline(channels, tabular.NewFileSource("business", bizPath))
}

func TestPipeline_PrepareAll(t *testing.T) {
	bundle, err := generatedPipeline(t).PrepareAll()
	require.NoError(t, err)
	require.NotNil(t, bundle)
	assert.False(t, bundle.SnapshotID.String() == "")

	// exactly the six named tables, all present even if empty
	assert.Len(t, bundle.Tables, 6)
	for _, name := range dataset.Names() {
		assert.True(t, bundle.Has(name), "missing table %s", name)
	}

	union := bundle.Table(dataset.TableChannelsRaw)
	daily := bundle.Table(dataset.TableDailyChannel)
	total := bundle.Table(dataset.TableDailyTotal)

	// conservation of sums across every aggregation level
	for _, col := range []string{"impression", "clicks", "spend", "attributed_revenue"} {
		raw := union.SumColumn(col)
		assert.InDelta(t, raw, daily.SumColumn(col), 1e-6, "daily channel %s", col)
		assert.InDelta(t, raw, total.SumColumn(col), 1e-6, "daily total %s", col)
	}

	// the join preserves the business row count exactly
	assert.Equal(t, bundle.Table(dataset.TableBusiness).Len(), bundle.Table(dataset.TableBusinessJoin).Len())

	// first sorted join row: window of one
	joined := bundle.Table(dataset.TableBusinessJoin)
	first := joined.Rows[0]
	if spend := first.Get("spend"); spend.IsNumeric() {
		assert.InDelta(t, spend.AsFloat64(), first.Get("spend_7d").AsFloat64(), 1e-9)
	}

	// campaign table exists and carries no cpm
	camp := bundle.Table(dataset.TableCampaignPerf)
	assert.False(t, camp.Empty())
	assert.False(t, camp.HasColumn("cpm"))
}

func TestPipeline_DeterministicTables(t *testing.T) {
	p := generatedPipeline(t)
	a, err := p.PrepareAll()
	require.NoError(t, err)
	b, err := p.PrepareAll()
	require.NoError(t, err)

	// fresh snapshot identity, identical data
	assert.NotEqual(t, a.SnapshotID, b.SnapshotID)
	for _, name := range dataset.Names() {
		ta, tb := a.Table(name), b.Table(name)
		require.Equal(t, ta.Len(), tb.Len(), "table %s", name)
		require.Equal(t, ta.Columns, tb.Columns, "table %s", name)
		for i := range ta.Rows {
			for _, col := range ta.Columns {
				va, vb := ta.Rows[i].Get(col), tb.Rows[i].Get(col)
				if va.IsNumeric() && vb.IsNumeric() {
					require.True(t, math.Abs(va.AsFloat64()-vb.AsFloat64()) < 1e-12)
				} else {
					require.Equal(t, va.Render(), vb.Render())
				}
			}
		}
	}
}

func TestPipeline_LoaderFailureAborts(t *testing.T) {
	channels := []ChannelSource{{
		Channel: "Google",
		Source: &memSource{
			name:    "Google",
			columns: []string{"Impressions"},
			records: [][]string{{"10"}},
		},
	}}
	business := &memSource{
		name:    "business",
		columns: []string{"date"},
		records: [][]string{{"2024-01-01"}},
	}
	bundle, err := NewPipeline(channels, business).PrepareAll()
	require.Error(t, err)
	assert.Nil(t, bundle, "no partial results on loader failure")
}
