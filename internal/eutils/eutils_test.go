// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pubmed-scout/pkg/types"
)

func testCfg(baseURL string) types.EutilsConfig {
	return types.EutilsConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		BaseURL: baseURL,
		RetMax:  20,
		Email:   "dev@example.org",
	}
}

// --- Search ---

const sampleESearchJSON = `{
  "header": {"type": "esearch", "version": "0.3"},
  "esearchresult": {
    "count": "2041",
    "retmax": "20",
    "retstart": "0",
    "idlist": ["38012345", "37999888", "37888777"]
  }
}`

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/esearch.fcgi") {
			t.Errorf("path = %q, want esearch.fcgi", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k, v := range r.URL.Query() {
			gotQuery[k] = v[0]
		}
		fmt.Fprint(w, sampleESearchJSON)
	}))
	defer ts.Close()

	ids, count, err := Search(context.Background(), ts.Client(), "covid vaccine", testCfg(ts.URL))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if count != 2041 {
		t.Errorf("count = %d, want 2041", count)
	}
	want := []string{"38012345", "37999888", "37888777"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if gotQuery["db"] != "pubmed" {
		t.Errorf("db = %q, want pubmed", gotQuery["db"])
	}
	if gotQuery["term"] != "covid vaccine" {
		t.Errorf("term = %q", gotQuery["term"])
	}
	if gotQuery["retmax"] != "20" {
		t.Errorf("retmax = %q, want 20", gotQuery["retmax"])
	}
	if gotQuery["retmode"] != "json" {
		t.Errorf("retmode = %q, want json", gotQuery["retmode"])
	}
	if gotQuery["email"] != "dev@example.org" {
		t.Errorf("email = %q", gotQuery["email"])
	}
	if gotQuery["tool"] == "" {
		t.Error("tool parameter missing")
	}
}

func TestSearchEmptyTerm(t *testing.T) {
	if _, _, err := Search(context.Background(), http.DefaultClient, "", testCfg("http://unused")); err == nil {
		t.Error("Search() with empty term: expected error")
	}
}

func TestSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	if _, _, err := Search(context.Background(), ts.Client(), "x", testCfg(ts.URL)); err == nil {
		t.Error("Search() on HTTP 502: expected error")
	}
}

func TestSearchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer ts.Close()

	if _, _, err := Search(context.Background(), ts.Client(), "x", testCfg(ts.URL)); err == nil {
		t.Error("Search() on malformed body: expected error")
	}
}

// --- Fetch ---

func TestFetch(t *testing.T) {
	const doc = `<?xml version="1.0"?><PubmedArticleSet></PubmedArticleSet>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("id"); got != "111,222,333" {
			t.Errorf("id = %q, want 111,222,333", got)
		}
		if got := r.PostForm.Get("retmode"); got != "xml" {
			t.Errorf("retmode = %q, want xml", got)
		}
		fmt.Fprint(w, doc)
	}))
	defer ts.Close()

	body, err := Fetch(context.Background(), ts.Client(), []string{"111", "222", "333"}, testCfg(ts.URL))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != doc {
		t.Errorf("body = %q, want %q", body, doc)
	}
}

func TestFetchEmptyBatch(t *testing.T) {
	if _, err := Fetch(context.Background(), http.DefaultClient, nil, testCfg("http://unused")); err == nil {
		t.Error("Fetch() with empty batch: expected error")
	}
}

func TestFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	if _, err := Fetch(context.Background(), ts.Client(), []string{"111"}, testCfg(ts.URL)); err == nil {
		t.Error("Fetch() on HTTP 503: expected error")
	}
}

// --- Chunk ---

func TestChunk(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		size      int
		wantSizes []int
	}{
		{"600 ids in 250s", 600, 250, []int{250, 250, 100}},
		{"exact multiple", 500, 250, []int{250, 250}},
		{"fewer than one batch", 3, 250, []int{3}},
		{"empty", 0, 250, nil},
		{"size one", 3, 1, []int{1, 1, 1}},
		{"non-positive size uses default", 251, 0, []int{250, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.n)
			for i := range ids {
				ids[i] = strconv.Itoa(i)
			}

			batches := Chunk(ids, tt.size)
			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.wantSizes))
			}

			var flat []string
			for i, b := range batches {
				if len(b) != tt.wantSizes[i] {
					t.Errorf("batch %d has %d ids, want %d", i, len(b), tt.wantSizes[i])
				}
				flat = append(flat, b...)
			}

			// Order preserved, nothing duplicated or dropped.
			if len(flat) != tt.n {
				t.Fatalf("flattened %d ids, want %d", len(flat), tt.n)
			}
			for i, id := range flat {
				if id != strconv.Itoa(i) {
					t.Errorf("flat[%d] = %q, want %q", i, id, strconv.Itoa(i))
				}
			}
		})
	}
}
