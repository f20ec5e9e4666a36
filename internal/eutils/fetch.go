// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/pubmed-scout/internal/httputil"
	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// DefaultBatchSize bounds identifiers per EFetch request to respect
// server-side limits on POST body size.
const DefaultBatchSize = 250

// Fetch retrieves the raw bibliographic XML document for one batch of
// PMIDs via EFetch. Identifiers are comma-joined into a form-encoded POST
// body. The caller paces successive calls; a non-2xx response is fatal.
func Fetch(ctx context.Context, client *http.Client, pmids []string, cfg types.EutilsConfig) ([]byte, error) {
	if len(pmids) == 0 {
		return nil, fmt.Errorf("empty PMID batch")
	}

	form := url.Values{
		"db":      {dbPubmed},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	}
	addIdentity(form, cfg)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL(cfg)+"/efetch.fcgi", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating fetch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", cfg.UserAgent)

	body, err := httputil.Do(client, req)
	if err != nil {
		return nil, fmt.Errorf("EFetch request: %w", err)
	}
	return body, nil
}

// Chunk splits pmids into order-preserving batches of at most size. Every
// identifier lands in exactly one batch. A non-positive size falls back to
// DefaultBatchSize.
func Chunk(pmids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]string
	for start := 0; start < len(pmids); start += size {
		end := start + size
		if end > len(pmids) {
			end = len(pmids)
		}
		batches = append(batches, pmids[start:end])
	}
	return batches
}
