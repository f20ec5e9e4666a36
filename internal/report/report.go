// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes matched articles to the tab-delimited report
// format and to a human-readable console listing.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// Header is the fixed six-column TSV schema, written once per report file.
const Header = "Title\tJournal\tDate\tPMID\tPubMed_URL\tInstitutes\n"

// urlBase is the public article URL prefix; the full URL is urlBase+PMID.
const urlBase = "https://pubmed.gov/"

// URL returns the PubMed URL for a PMID.
func URL(pmid string) string {
	return urlBase + pmid
}

// WriteHeader writes the report header line.
func WriteHeader(w io.Writer) error {
	_, err := io.WriteString(w, Header)
	return err
}

// WriteRow appends one tab-separated row for a matched article. Embedded
// tabs and newlines in text fields are collapsed to single spaces so rows
// stay one line; Institutes is semicolon-joined (already sorted by the
// matcher).
func WriteRow(w io.Writer, m types.MatchResult) error {
	a := m.Article
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		clean(a.Title), clean(a.Journal), clean(a.PubDate),
		a.PMID, URL(a.PMID), strings.Join(m.Institutes, ";"))
	return err
}

// WriteTSV writes the header followed by one row per result.
func WriteTSV(w io.Writer, results []types.MatchResult) error {
	if err := WriteHeader(w); err != nil {
		return err
	}
	for _, m := range results {
		if err := WriteRow(w, m); err != nil {
			return err
		}
	}
	return nil
}

// FormatConsole writes a fixed multi-line block per matched record, the
// console mirror of the TSV report.
func FormatConsole(results []types.MatchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No publications matched the institution list.")
		return
	}
	for _, m := range results {
		a := m.Article
		fmt.Fprintf(w, "Title      : %s\n", a.Title)
		fmt.Fprintf(w, "Journal    : %s\n", a.Journal)
		fmt.Fprintf(w, "Date       : %s\n", a.PubDate)
		fmt.Fprintf(w, "PMID       : %s\n", a.PMID)
		fmt.Fprintf(w, "URL        : %s\n", URL(a.PMID))
		fmt.Fprintf(w, "Institutes : %s\n", strings.Join(m.Institutes, "; "))
		fmt.Fprintln(w, strings.Repeat("-", 60))
	}
}

// clean collapses tabs and newlines to single spaces so a field cannot
// break the row structure.
func clean(s string) string {
	r := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	return r.Replace(s)
}
