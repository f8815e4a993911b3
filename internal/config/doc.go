// Package config provides centralized configuration management for Park Pulse.
// It handles loading configuration from multiple sources, validation, and
// provides a type-safe API for accessing configuration values throughout the
// application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Optional config.yaml next to the executable
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern PARKPULSE_* for namespacing:
//
//	PARKPULSE_SERVER_PORT=8080
//	PARKPULSE_LOGGING_LEVEL=info
//	PARKPULSE_PATHS_DATA_DIR=data
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, _ := config.GetPaths()
//	csvPath := paths.GetDataFilePath("dinosaur.csv")
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
