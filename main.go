package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketlens/adapters/tabular"
	"marketlens/app"
	"marketlens/internal"
	"marketlens/internal/config"
	"marketlens/ui"
)

func main() {
	// .env is optional; real deployments configure via the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	logger := internal.NewDefaultLogger()

	pipeline := buildPipeline(cfg)
	server := ui.NewServer(pipeline, logger)

	logger.Info("channels configured: %v", cfg.Data.ChannelNames())
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func buildPipeline(cfg *config.Config) *app.Pipeline {
	channels := make([]app.ChannelSource, 0, len(cfg.Data.ChannelFiles))
	for _, name := range cfg.Data.ChannelNames() {
		channels = append(channels, app.ChannelSource{
			Channel: name,
			Source:  tabular.NewFileSource(name, cfg.Data.ChannelFiles[name]),
		})
	}
	business := tabular.NewFileSource("business", cfg.Data.BusinessFile)
	return app.NewPipeline(channels, business)
}
