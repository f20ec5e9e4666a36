// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether an article's affiliation list satisfies a
// named-institution membership test, optionally qualified by country.
package match

import (
	"sort"
	"strings"

	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// Matches reports whether any single affiliation string satisfies the
// rule. The institution name must occur as a case-folded substring; when
// the rule carries a country, the same affiliation string must also
// contain the country.
func Matches(rule types.InstitutionRule, affiliations []string) bool {
	name := strings.ToLower(rule.Name)
	if name == "" {
		return false
	}
	country := strings.ToLower(rule.Country)

	for _, aff := range affiliations {
		folded := strings.ToLower(aff)
		if !strings.Contains(folded, name) {
			continue
		}
		if country == "" || strings.Contains(folded, country) {
			return true
		}
	}
	return false
}

// MatchedNames returns the names of the rules that individually matched
// the affiliation list, lexicographically sorted and deduplicated. An
// empty result means the article is dropped from the report.
func MatchedNames(rules []types.InstitutionRule, affiliations []string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rule := range rules {
		if seen[rule.Name] {
			continue
		}
		if Matches(rule, affiliations) {
			seen[rule.Name] = true
			names = append(names, rule.Name)
		}
	}
	sort.Strings(names)
	return names
}
