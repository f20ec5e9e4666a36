// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// RunFile is the on-disk representation of one report run: the query, the
// rule set, the statistics, and the matched records. A saved run can be
// reloaded to re-emit the report without re-querying the API.
type RunFile struct {
	Query   string                  `yaml:"query,omitempty"`
	Rules   []types.InstitutionRule `yaml:"rules"`
	Summary RunSummary              `yaml:"summary"`
	Results []types.MatchResult     `yaml:"results"`
}

// RunSummary stores run statistics and a timestamp.
type RunSummary struct {
	TotalAvailable int       `yaml:"total_available"`
	Searched       int       `yaml:"searched"`
	Fetched        int       `yaml:"fetched"`
	Matched        int       `yaml:"matched"`
	Skipped        int       `yaml:"skipped,omitempty"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteRunFile saves a completed run to a YAML file.
func WriteRunFile(path string, opts Options, res Result) error {
	rf := RunFile{
		Query: opts.Query,
		Rules: opts.Rules,
		Summary: RunSummary{
			TotalAvailable: res.TotalAvailable,
			Searched:       res.Searched,
			Fetched:        res.Fetched,
			Matched:        len(res.Matched),
			Skipped:        res.Skipped,
			Timestamp:      time.Now(),
		},
		Results: res.Matched,
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
