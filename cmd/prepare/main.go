// Command prepare runs the preparation pipeline once and reports the
// prepared tables. With -out it also exports every table as CSV, which is
// handy for eyeballing the aggregates without the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"marketlens/adapters/tabular"
	"marketlens/app"
	"marketlens/domain/dataset"
	"marketlens/internal/config"
)

func main() {
	outDir := flag.String("out", "", "directory to export all prepared tables as CSV")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	channels := make([]app.ChannelSource, 0, len(cfg.Data.ChannelFiles))
	for _, name := range cfg.Data.ChannelNames() {
		channels = append(channels, app.ChannelSource{
			Channel: name,
			Source:  tabular.NewFileSource(name, cfg.Data.ChannelFiles[name]),
		})
	}
	pipeline := app.NewPipeline(channels, tabular.NewFileSource("business", cfg.Data.BusinessFile))

	bundle, err := pipeline.PrepareAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline aborted: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Prepared snapshot %s\n", bundle.SnapshotID)
	for _, name := range dataset.Names() {
		fmt.Printf("  %-16s %6d rows\n", name, bundle.Table(name).Len())
	}

	if *outDir == "" {
		return
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", *outDir, err)
		os.Exit(1)
	}
	for _, name := range dataset.Names() {
		path := filepath.Join(*outDir, name+".csv")
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", path, err)
			os.Exit(1)
		}
		if err := tabular.WriteCSV(f, bundle.Table(name)); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "failed to export %s: %v\n", name, err)
			os.Exit(1)
		}
		f.Close()
		fmt.Printf("exported %s\n", path)
	}
}
