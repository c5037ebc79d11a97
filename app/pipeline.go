package app

import (
	"marketlens/domain/dataset"
	"marketlens/domain/table"
	"marketlens/ports"
)

// ChannelSource pairs a channel name with the source delivering its rows
type ChannelSource struct {
	Channel string
	Source  ports.RowSource
}

// Pipeline sequences the loaders, aggregators, and joiner into one batch
// run over in-memory tables. A run either completes with all six prepared
// tables or fails; there is no partial-result mode.
//
// The pipeline holds no mutable state between runs and its output depends
// only on the configured sources, so callers may memoize PrepareAll keyed
// on the input file set.
type Pipeline struct {
	channels []ChannelSource
	business ports.RowSource
}

// NewPipeline wires the pipeline over its sources. Channel order is
// preserved through the union.
func NewPipeline(channels []ChannelSource, business ports.RowSource) *Pipeline {
	return &Pipeline{channels: channels, business: business}
}

// PrepareAll runs the fixed sequence: load channels, load business,
// aggregate day x channel, aggregate day totals, join outcomes, aggregate
// campaigns. Any loader failure aborts the whole run.
func (p *Pipeline) PrepareAll() (*dataset.Bundle, error) {
	loaded := make([]*table.Table, 0, len(p.channels))
	for _, ch := range p.channels {
		t, err := LoadChannel(ch.Source, ch.Channel)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, t)
	}
	union := UnionChannels(loaded)

	business, err := LoadBusiness(p.business)
	if err != nil {
		return nil, err
	}

	dailyChannel := AggregateDailyChannel(union)
	dailyTotal := AggregateDailyTotal(dailyChannel)
	businessJoin := JoinOutcomes(business, dailyTotal)
	campaignPerf := AggregateCampaign(union)

	return dataset.NewBundle(map[string]*table.Table{
		dataset.TableChannelsRaw:  union,
		dataset.TableDailyChannel: dailyChannel,
		dataset.TableDailyTotal:   dailyTotal,
		dataset.TableBusiness:     business,
		dataset.TableBusinessJoin: businessJoin,
		dataset.TableCampaignPerf: campaignPerf,
	}), nil
}
