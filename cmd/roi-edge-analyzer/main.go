package main

import (
	"flag"
	"log"

	"roi-edge-analyzer/internal/app"
	"roi-edge-analyzer/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	imagePath := flag.String("image", "", "source image shown on startup")
	exportPath := flag.String("export", "", "where the selected ROI is written")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()
	if *imagePath != "" {
		cfg.SourcePath = *imagePath
	}
	if *exportPath != "" {
		cfg.ExportPath = *exportPath
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}
