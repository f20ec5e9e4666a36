// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-scout pipeline.
package types

// ArticleRecord holds the bibliographic fields extracted from one PubMed
// article. Missing optional fields are empty strings, never errors.
type ArticleRecord struct {
	// PMID is the PubMed identifier, a numeric string unique per article.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title as published.
	Title string `json:"title" yaml:"title"`

	// Journal is the full journal title.
	Journal string `json:"journal" yaml:"journal"`

	// PubDate is the publication date as free-form text: a 4-digit year
	// when the record carries one, otherwise the composite MedlineDate
	// string (e.g. "2019 Nov-Dec").
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// Affiliations lists every author affiliation string found under the
	// article, in document order, original text preserved.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// InstitutionRule is one entry from an institution list: an institution
// name plus an optional country qualifier.
type InstitutionRule struct {
	// Name is the institution name matched as a case-folded substring of
	// an affiliation string.
	Name string `json:"name" yaml:"name"`

	// Country, when non-empty, requires the same affiliation string to
	// also contain the country as a case-folded substring.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// MatchResult pairs an article with the names of the institution rules
// that matched it. Institutes is sorted and non-empty by construction;
// articles with no matching rule are dropped before a MatchResult exists.
type MatchResult struct {
	Article ArticleRecord `json:"article" yaml:"article"`

	// Institutes lists the matched rule names, lexicographically sorted.
	Institutes []string `json:"institutes" yaml:"institutes"`
}
