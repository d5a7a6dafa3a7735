package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/handiism/music-catalog/internal/config"
	"github.com/handiism/music-catalog/internal/tui"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed loading .env file: %s\n", err)
		os.Exit(1)
	}

	configPath := os.Getenv("CATALOG_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if db := os.Getenv("CATALOG_DB"); db != "" {
		settings.DatabasePath = db
	}

	// Sources given on the command line prefill the input.
	settings.Sources = append(settings.Sources, os.Args[1:]...)

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
