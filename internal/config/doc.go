// Package config provides configuration management for igcfetch.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to the durations and selectors other packages consume
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Scrapes https://scoring.paragleiter.org/
//	// Waits 150ms between download starts
//	// Saves track logs to ~/Tracklogs
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.DownloadsPath = "/data/tracklogs"
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - The scoring site base URL and results-table CSS selectors
//   - Download target (local directory or blob bucket URL) and pacing
//   - HTTP user agent and request timeout
//   - Task-page discovery limits
package config
