// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// countryNone is the sentinel country value that disables the country
// check for an institution in a tab-delimited list file.
const countryNone = "NA"

// LoadRules reads an institution list file. Each line is either a bare
// institution name or a tab-delimited (name, country) pair; a country of
// "NA" disables the country check. Lines starting with # and blank lines
// are ignored. Any other field count is a fatal parse error.
func LoadRules(path string) ([]types.InstitutionRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening institution list: %w", err)
	}
	defer f.Close()

	var rules []types.InstitutionRule
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		switch len(fields) {
		case 1:
			rules = append(rules, types.InstitutionRule{Name: strings.TrimSpace(fields[0])})
		case 2:
			rule := types.InstitutionRule{
				Name:    strings.TrimSpace(fields[0]),
				Country: strings.TrimSpace(fields[1]),
			}
			if rule.Country == countryNone {
				rule.Country = ""
			}
			rules = append(rules, rule)
		default:
			return nil, fmt.Errorf("%s:%d: expected name or name\\tcountry, got %d fields", path, lineNo, len(fields))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading institution list: %w", err)
	}

	return rules, nil
}
