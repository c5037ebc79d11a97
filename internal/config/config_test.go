package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Data.ChannelFiles) != 3 {
		t.Errorf("default channels = %d, want 3", len(cfg.Data.ChannelFiles))
	}
	if cfg.Data.BusinessFile != "data/business.csv" {
		t.Errorf("business file = %q", cfg.Data.BusinessFile)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
}

func TestLoad_ChannelFilesOverride(t *testing.T) {
	t.Setenv("CHANNEL_FILES", "Google=in/g.csv, Snapchat=in/snap.xlsx")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := map[string]string{"Google": "in/g.csv", "Snapchat": "in/snap.xlsx"}
	if len(cfg.Data.ChannelFiles) != len(want) {
		t.Fatalf("channels = %v", cfg.Data.ChannelFiles)
	}
	for name, path := range want {
		if cfg.Data.ChannelFiles[name] != path {
			t.Errorf("channel %s = %q, want %q", name, cfg.Data.ChannelFiles[name], path)
		}
	}
	if got := cfg.Data.ChannelNames(); got[0] != "Google" || got[1] != "Snapchat" {
		t.Errorf("ChannelNames() = %v, want sorted order", got)
	}
}

func TestLoad_MalformedChannelFiles(t *testing.T) {
	t.Setenv("CHANNEL_FILES", "just-a-path.csv")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for entry without Name=path form")
	}
}
