// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils is a client for the NCBI E-utilities API: ESearch for
// identifier lookup and EFetch for bulk bibliographic XML retrieval.
package eutils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/pubmed-scout/internal/httputil"
	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// DefaultBaseURL is the public NCBI E-utilities endpoint root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// tool is the registered client name sent with every request.
const tool = "pubmed-scout"

const (
	dbPubmed = "pubmed"

	defaultRetMax = 10000
)

// Search queries ESearch and returns the matching PMIDs in rank order
// together with the total number of records available for the term. A
// non-2xx response or unparsable body is fatal to the caller; there is no
// retry.
func Search(ctx context.Context, client *http.Client, term string, cfg types.EutilsConfig) ([]string, int, error) {
	if term == "" {
		return nil, 0, fmt.Errorf("empty search term")
	}

	retmax := cfg.RetMax
	if retmax <= 0 {
		retmax = defaultRetMax
	}

	params := url.Values{
		"db":      {dbPubmed},
		"term":    {term},
		"retmax":  {strconv.Itoa(retmax)},
		"retmode": {"json"},
	}
	addIdentity(params, cfg)

	reqURL := baseURL(cfg) + "/esearch.fcgi?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	body, err := httputil.Do(client, req)
	if err != nil {
		return nil, 0, fmt.Errorf("ESearch request: %w", err)
	}

	var esr esearchResponse
	if err := json.Unmarshal(body, &esr); err != nil {
		return nil, 0, fmt.Errorf("parsing ESearch response: %w", err)
	}

	count := 0
	if esr.Result.Count != "" {
		count, err = strconv.Atoi(esr.Result.Count)
		if err != nil {
			return nil, 0, fmt.Errorf("parsing ESearch count %q: %w", esr.Result.Count, err)
		}
	}

	return esr.Result.IDList, count, nil
}

// baseURL returns the configured endpoint root, defaulting to the public service.
func baseURL(cfg types.EutilsConfig) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return DefaultBaseURL
}

// addIdentity attaches the tool name, contact email, and API key parameters
// NCBI asks clients to send.
func addIdentity(params url.Values, cfg types.EutilsConfig) {
	params.Set("tool", tool)
	if cfg.Email != "" {
		params.Set("email", cfg.Email)
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}
}

// ESearch JSON structures. NCBI encodes the count as a string.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	RetMax string   `json:"retmax"`
	IDList []string `json:"idlist"`
}
