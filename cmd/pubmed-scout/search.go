// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-scout/internal/eutils"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search PubMed and print matching PMIDs",
	Long: `Search runs an ESearch query against PubMed and prints the total result
count followed by the retrieved PMIDs, one per line. Use the report
command to fetch records and filter them by affiliation.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "search term (required)")
	searchCmd.Flags().Bool("json", false, "output PMIDs as JSON")
	addEutilsFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		return fmt.Errorf("provide a search term with --query")
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg := eutilsConfig(cmd)
	client := &http.Client{Timeout: cfg.Timeout}

	ids, count, err := eutils.Search(cmd.Context(), client, query, cfg)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Count int      `json:"count"`
			PMIDs []string `json:"pmids"`
		}{Count: count, PMIDs: ids})
	}

	fmt.Printf("Total results for query: %d\n", count)
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
