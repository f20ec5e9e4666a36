// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-scout/internal/match"
	"github.com/pdiddy/pubmed-scout/internal/pipeline"
	"github.com/pdiddy/pubmed-scout/internal/report"
	"github.com/pdiddy/pubmed-scout/internal/store"
	"github.com/pdiddy/pubmed-scout/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch PubMed records and report publications by affiliation",
	Long: `Report runs the full pipeline: it searches PubMed (once per free-text
query, or once per institution when no query is given), fetches the
bibliographic XML in paced batches, filters the articles by author
affiliation against the institution rules, and writes a tab-delimited
report. Matched publications are always mirrored to the console.

Institution rules come from --institutions (a file of names or
name<TAB>country lines; country "NA" disables the country check) or from
a single --institution/--country pair.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("query", "", "free-text search term; all rules apply to its results")
	reportCmd.Flags().String("institutions", "", "institution list file")
	reportCmd.Flags().String("institution", "", "single institution name")
	reportCmd.Flags().String("country", "", "country qualifier for --institution")
	reportCmd.Flags().String("output", "", "TSV report file (default: console only)")
	reportCmd.Flags().String("save-run", "", "save query, rules, and matches to a YAML run file")
	reportCmd.Flags().String("from-run", "", "re-emit the report from a saved run file without querying")
	reportCmd.Flags().String("db", "", "SQLite history database; previously reported PMIDs are skipped")
	reportCmd.Flags().String("csl", "", "write matched records as CSL-YAML to this file")
	reportCmd.Flags().Int("batch-size", 0, "PMIDs per fetch request (default 250)")
	addEutilsFlags(reportCmd)

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	repCfg := reportConfig(cmd)

	fromRun, _ := cmd.Flags().GetString("from-run")
	if fromRun != "" {
		rf, err := pipeline.ReadRunFile(fromRun)
		if err != nil {
			return err
		}
		return emit(repCfg, rf.Results)
	}

	rules, err := loadRuleSet(cmd)
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("query")

	cfg := eutilsConfig(cmd)
	if batchSize, _ := cmd.Flags().GetInt("batch-size"); batchSize > 0 {
		cfg.BatchSize = batchSize
	}

	var hist *store.Store
	if repCfg.HistoryDB != "" {
		hist, err = store.Open(repCfg.HistoryDB)
		if err != nil {
			return err
		}
		defer hist.Close()
	}

	opts := pipeline.Options{Query: query, Rules: rules, Eutils: cfg}
	client := &http.Client{Timeout: cfg.Timeout}

	res, err := pipeline.Run(cmd.Context(), client, opts, hist, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d searched, %d fetched, %d matched", res.Searched, res.Fetched, len(res.Matched))
	if res.Skipped > 0 {
		fmt.Fprintf(os.Stderr, " (%d already reported)", res.Skipped)
	}
	fmt.Fprintln(os.Stderr)

	if repCfg.RunFilePath != "" {
		if err := pipeline.WriteRunFile(repCfg.RunFilePath, opts, res); err != nil {
			return err
		}
	}

	return emit(repCfg, res.Matched)
}

// reportConfig assembles the report sink configuration from flags.
func reportConfig(cmd *cobra.Command) types.ReportConfig {
	output, _ := cmd.Flags().GetString("output")
	saveRun, _ := cmd.Flags().GetString("save-run")
	dbPath, _ := cmd.Flags().GetString("db")
	cslPath, _ := cmd.Flags().GetString("csl")

	return types.ReportConfig{
		OutputPath:  output,
		RunFilePath: saveRun,
		HistoryDB:   dbPath,
		CSLPath:     cslPath,
	}
}

// emit writes the report to every configured sink: TSV file, CSL file, and
// always the console.
func emit(cfg types.ReportConfig, results []types.MatchResult) error {
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		if err := report.WriteTSV(f, results); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report written to %s\n", cfg.OutputPath)
	}

	if cfg.CSLPath != "" {
		f, err := os.Create(cfg.CSLPath)
		if err != nil {
			return fmt.Errorf("creating CSL file: %w", err)
		}
		if err := report.FormatCSL(results, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	report.FormatConsole(results, os.Stdout)
	return nil
}

// loadRuleSet builds the institution rules from --institutions or the
// --institution/--country pair.
func loadRuleSet(cmd *cobra.Command) ([]types.InstitutionRule, error) {
	listPath, _ := cmd.Flags().GetString("institutions")
	name, _ := cmd.Flags().GetString("institution")
	country, _ := cmd.Flags().GetString("country")

	switch {
	case listPath != "" && name != "":
		return nil, fmt.Errorf("--institutions and --institution are mutually exclusive")
	case listPath != "":
		return match.LoadRules(listPath)
	case name != "":
		if country == "NA" {
			country = ""
		}
		return []types.InstitutionRule{{Name: name, Country: country}}, nil
	default:
		return nil, fmt.Errorf("provide --institutions FILE or --institution NAME")
	}
}
