// Package config provides configuration management for gearsync.
//
// It uses Viper to load settings from environment variables and an optional
// .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key, destination label)
//   - Hub: external gear hub API (base URL, API key, rate limit)
//   - Buoy: local tracking platform API (base URL, token, page size)
//   - Sync: reconciliation pass settings (window, event batch size)
//   - Storage: S3/MinIO credentials and bucket for the payload archive
//   - Archive: snapshot prefix and retention
//   - Database: journal database connection
//   - Log: logging level and format
//
// Environment variables map onto nested keys with underscores, e.g.
// HUB_API_KEY sets hub.api_key and SYNC_WINDOW_DAYS sets sync.window_days.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Hub.BaseURL)
package config
