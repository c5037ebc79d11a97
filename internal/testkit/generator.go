// Package testkit generates deterministic sample marketing and business
// feeds for tests and local exploration.
package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"marketlens/domain/core"
)

// GeneratorConfig configures the sample feed generator
type GeneratorConfig struct {
	Days      int       `json:"days"`
	Campaigns int       `json:"campaigns"`
	StartDate time.Time `json:"start_date"`
	Seed      int64     `json:"seed"`
}

// DefaultGeneratorConfig returns sensible defaults
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Days:      30,
		Campaigns: 4,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}
}

// FeedGenerator writes channel and business CSV files with realistic
// column headers, including the messy source spellings the normalizer
// has to handle.
type FeedGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewFeedGenerator creates a generator seeded from the config
func NewFeedGenerator(config GeneratorConfig) *FeedGenerator {
	return &FeedGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var states = []string{"CA", "NY", "TX", "WA"}
var tactics = []string{"Prospecting", "Retargeting"}

// WriteChannelCSV writes one channel feed using source-style headers
// ("Impressions", "Spend (USD)", ...) rather than canonical names.
func (g *FeedGenerator) WriteChannelCSV(dir, channel string) (string, error) {
	path := filepath.Join(dir, channel+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Campaign", "Tactic", "State", "Impressions", "Clicks", "Spend (USD)", "Attributed Revenue"}); err != nil {
		return "", err
	}

	for day := 0; day < g.config.Days; day++ {
		date := core.NewDate(g.config.StartDate.AddDate(0, 0, day))
		for c := 0; c < g.config.Campaigns; c++ {
			impressions := 500 + g.rng.Intn(20000)
			clicks := g.rng.Intn(impressions / 20)
			spend := float64(clicks) * (0.5 + g.rng.Float64()*2.5)
			revenue := spend * (0.2 + g.rng.Float64()*3.8)
			record := []string{
				date.String(),
				fmt.Sprintf("%s Campaign %d", channel, c+1),
				tactics[c%len(tactics)],
				states[g.rng.Intn(len(states))],
				fmt.Sprintf("%d", impressions),
				fmt.Sprintf("%d", clicks),
				fmt.Sprintf("%.2f", spend),
				fmt.Sprintf("%.2f", revenue),
			}
			if err := w.Write(record); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	return path, w.Error()
}

// WriteBusinessCSV writes the business-outcomes feed with its exact
// original header spellings.
func (g *FeedGenerator) WriteBusinessCSV(dir string) (string, error) {
	path := filepath.Join(dir, "business.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "# of orders", "# of new orders", "new customers", "total revenue", "gross profit", "COGS"}); err != nil {
		return "", err
	}

	for day := 0; day < g.config.Days; day++ {
		date := core.NewDate(g.config.StartDate.AddDate(0, 0, day))
		orders := 50 + g.rng.Intn(400)
		newOrders := g.rng.Intn(orders)
		revenue := float64(orders) * (20 + g.rng.Float64()*80)
		cogs := revenue * (0.3 + g.rng.Float64()*0.3)
		record := []string{
			date.String(),
			fmt.Sprintf("%d", orders),
			fmt.Sprintf("%d", newOrders),
			fmt.Sprintf("%d", newOrders/2),
			fmt.Sprintf("%.2f", revenue),
			fmt.Sprintf("%.2f", revenue-cogs),
			fmt.Sprintf("%.2f", cogs),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}
