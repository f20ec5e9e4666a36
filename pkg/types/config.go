// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EutilsConfig holds settings for the NCBI E-utilities client.
type EutilsConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities endpoint root. Defaults to the public
	// NCBI service; tests point it at a local server.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// RetMax is the maximum number of identifiers a search returns
	// (default 10000). Keep below 100000 to respect NCBI limits.
	RetMax int `json:"retmax" yaml:"retmax"`

	// BatchSize bounds the number of identifiers per fetch request
	// (default 250).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// FetchDelay is the fixed pause between consecutive outbound requests
	// (default 1s). Cooperative pacing only; there is no adaptive backoff.
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// Email is the contact address sent with every request for NCBI API
	// compliance.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ReportConfig holds settings for report emission.
type ReportConfig struct {
	// OutputPath is the TSV report file; empty routes the report to the
	// console only.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// RunFilePath, when set, saves the query, rules, and matched records
	// to a YAML run file.
	RunFilePath string `json:"run_file,omitempty" yaml:"run_file,omitempty"`

	// HistoryDB, when set, records matched articles in a SQLite database
	// and skips articles already recorded by earlier runs.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`

	// CSLPath, when set, writes matched records as CSL-YAML for
	// reference managers.
	CSLPath string `json:"csl_path,omitempty" yaml:"csl_path,omitempty"`
}
