package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/flugbuch/igcfetch/internal/scoring"
)

// Settings holds all configuration options.
type Settings struct {
	// Scoring site settings
	BaseURL            string `json:"base_url"`
	TableSelector      string `json:"table_selector"`
	ResultRowSelector  string `json:"result_row_selector"`
	ResultCellSelector string `json:"result_cell_selector"`

	// Download settings
	DownloadsPath    string `json:"downloads_path"`
	BucketURL        string `json:"bucket_url"`
	DownloadDelayMs  int    `json:"download_delay_ms"`
	DownloadAllTasks bool   `json:"download_all_tasks"`

	// HTTP settings
	UserAgent             string `json:"user_agent"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`

	// Task discovery settings
	ProbeConcurrency int `json:"probe_concurrency"`
	ProbeMaxTasks    int `json:"probe_max_tasks"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		BaseURL:            "https://scoring.paragleiter.org/",
		TableSelector:      "table.result",
		ResultRowSelector:  "tr",
		ResultCellSelector: "td",

		DownloadsPath:    filepath.Join(homeDir, "Tracklogs"),
		BucketURL:        "",
		DownloadDelayMs:  150,
		DownloadAllTasks: false,

		UserAgent:             "igcfetch",
		RequestTimeoutSeconds: 60,

		ProbeConcurrency: 4,
		ProbeMaxTasks:    30,
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DownloadDelay returns the minimum time between two download starts.
func (s *Settings) DownloadDelay() time.Duration {
	return time.Duration(s.DownloadDelayMs) * time.Millisecond
}

// RequestTimeout returns the overall timeout for a single HTTP request.
func (s *Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// ToSelectors converts settings to the selectors used by the results
// table scraper.
func (s *Settings) ToSelectors() scoring.Selectors {
	return scoring.Selectors{
		Table: s.TableSelector,
		Row:   s.ResultRowSelector,
		Cell:  s.ResultCellSelector,
	}
}
