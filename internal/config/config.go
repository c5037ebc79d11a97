// Package config loads application configuration from environment
// variables. main.go bootstraps the environment with godotenv before
// calling Load.
package config

import (
	"os"
	"sort"
	"strings"

	"marketlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Server ServerConfig
}

// DataConfig names the input files for one analysis session
type DataConfig struct {
	// ChannelFiles maps channel name to its source file, iterated in
	// sorted name order for deterministic runs
	ChannelFiles map[string]string
	BusinessFile string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Data: DataConfig{
			ChannelFiles: defaultChannelFiles(),
			BusinessFile: getEnv("BUSINESS_FILE", "data/business.csv"),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
	}

	if spec := os.Getenv("CHANNEL_FILES"); spec != "" {
		files, err := parseChannelFiles(spec)
		if err != nil {
			return nil, err
		}
		cfg.Data.ChannelFiles = files
	}

	if len(cfg.Data.ChannelFiles) == 0 {
		return nil, errors.ConfigInvalid("CHANNEL_FILES must name at least one channel source")
	}
	if cfg.Data.BusinessFile == "" {
		return nil, errors.ConfigInvalid("BUSINESS_FILE is required")
	}
	return cfg, nil
}

// ChannelNames returns the configured channel names in sorted order
func (d DataConfig) ChannelNames() []string {
	names := make([]string, 0, len(d.ChannelFiles))
	for name := range d.ChannelFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseChannelFiles parses "Google=data/Google.csv,Facebook=data/Facebook.csv"
func parseChannelFiles(spec string) (map[string]string, error) {
	files := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, path, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(path) == "" {
			return nil, errors.ConfigInvalid("CHANNEL_FILES entries must look like Name=path: " + pair)
		}
		files[strings.TrimSpace(name)] = strings.TrimSpace(path)
	}
	return files, nil
}

func defaultChannelFiles() map[string]string {
	return map[string]string{
		"Google":   "data/Google.csv",
		"Facebook": "data/Facebook.csv",
		"TikTok":   "data/TikTok.csv",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
