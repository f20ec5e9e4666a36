// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full report flow: search, identifier→rule
// accumulation, paced batch fetching, extraction, matching, and assembly.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/pubmed-scout/internal/eutils"
	"github.com/pdiddy/pubmed-scout/internal/extract"
	"github.com/pdiddy/pubmed-scout/internal/httputil"
	"github.com/pdiddy/pubmed-scout/internal/match"
	"github.com/pdiddy/pubmed-scout/internal/store"
	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// Options selects what to search and which institution rules apply.
type Options struct {
	// Query is a free-text search term. When set, a single search runs
	// and every rule is attributed to each returned identifier. When
	// empty, one search runs per rule with the rule name as the term.
	Query string

	// Rules is the institution rule set; it must be non-empty, since
	// articles matching no rule are dropped.
	Rules []types.InstitutionRule

	Eutils types.EutilsConfig
}

// Result holds the run statistics and the matched articles in search order.
type Result struct {
	// TotalAvailable is the server-side result count (summed across
	// per-rule searches).
	TotalAvailable int

	// Searched is the number of distinct identifiers accumulated.
	Searched int

	// Fetched is the number of article records extracted.
	Fetched int

	// Skipped counts matches suppressed because the history database
	// already recorded them.
	Skipped int

	Matched []types.MatchResult
}

// Run executes the pipeline. Requests go out strictly one at a time with
// the configured fixed delay between them. hist may be nil; when set,
// previously recorded PMIDs are skipped and new matches are recorded.
// Progress lines go to w.
func Run(ctx context.Context, client *http.Client, opts Options, hist *store.Store, w io.Writer) (Result, error) {
	var res Result

	if len(opts.Rules) == 0 {
		return res, fmt.Errorf("no institution rules: provide an institution list or a single institution")
	}

	pacer := httputil.NewPacer(opts.Eutils.FetchDelay)

	ids, attributed, total, err := accumulate(ctx, client, opts, pacer, w)
	if err != nil {
		return res, err
	}
	res.TotalAvailable = total
	res.Searched = len(ids)

	if len(ids) == 0 {
		return res, fmt.Errorf("no results found")
	}

	batchSize := opts.Eutils.BatchSize
	if batchSize <= 0 {
		batchSize = eutils.DefaultBatchSize
	}
	batches := eutils.Chunk(ids, batchSize)
	fmt.Fprintf(w, "fetching %d PMIDs in %d batch(es) of up to %d\n", len(ids), len(batches), batchSize)

	for i, batch := range batches {
		pacer.Wait()

		xmlData, err := eutils.Fetch(ctx, client, batch, opts.Eutils)
		if err != nil {
			return res, fmt.Errorf("batch %d/%d: %w", i+1, len(batches), err)
		}

		records, err := extract.Records(xmlData)
		if err != nil {
			return res, fmt.Errorf("batch %d/%d: %w", i+1, len(batches), err)
		}
		res.Fetched += len(records)

		for _, rec := range records {
			rules := attributed[rec.PMID]
			names := match.MatchedNames(rules, rec.Affiliations)
			if len(names) == 0 {
				continue
			}

			m := types.MatchResult{Article: rec, Institutes: names}

			if hist != nil {
				seen, err := hist.Has(rec.PMID)
				if err != nil {
					return res, err
				}
				if seen {
					res.Skipped++
					continue
				}
				if err := hist.Record(m); err != nil {
					return res, err
				}
			}

			res.Matched = append(res.Matched, m)
		}
	}

	return res, nil
}

// accumulate builds the identifier→rules mapping before the bulk fetch so
// a single fetch pass can re-associate rules with articles. Identifiers
// keep first-seen order.
func accumulate(ctx context.Context, client *http.Client, opts Options, pacer *httputil.Pacer, w io.Writer) ([]string, map[string][]types.InstitutionRule, int, error) {
	attributed := make(map[string][]types.InstitutionRule)
	var ids []string
	total := 0

	attach := func(pmid string, rules []types.InstitutionRule) {
		if _, seen := attributed[pmid]; !seen {
			ids = append(ids, pmid)
		}
		attributed[pmid] = append(attributed[pmid], rules...)
	}

	if opts.Query != "" {
		pacer.Wait()
		found, count, err := eutils.Search(ctx, client, opts.Query, opts.Eutils)
		if err != nil {
			return nil, nil, 0, err
		}
		total = count
		fmt.Fprintf(w, "query %q: %d total, %d retrieved\n", opts.Query, count, len(found))
		for _, pmid := range found {
			attach(pmid, opts.Rules)
		}
		return ids, attributed, total, nil
	}

	for _, rule := range opts.Rules {
		pacer.Wait()
		found, count, err := eutils.Search(ctx, client, rule.Name, opts.Eutils)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("searching %q: %w", rule.Name, err)
		}
		total += count
		fmt.Fprintf(w, "institution %q: %d total, %d retrieved\n", rule.Name, count, len(found))
		for _, pmid := range found {
			attach(pmid, []types.InstitutionRule{rule})
		}
	}
	return ids, attributed, total, nil
}
