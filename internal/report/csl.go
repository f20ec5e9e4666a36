// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"io"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-JSON/CSL-YAML schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string   `yaml:"id"`
	Type           string   `yaml:"type"`
	Title          string   `yaml:"title"`
	ContainerTitle string   `yaml:"container-title,omitempty"`
	Issued         *CSLDate `yaml:"issued,omitempty"`
	URL            string   `yaml:"URL,omitempty"`
	PMID           string   `yaml:"PMID,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes matched records as a CSL-YAML list to w.
func FormatCSL(results []types.MatchResult, w io.Writer) error {
	items := make([]CSLItem, len(results))
	for i, m := range results {
		items[i] = toCSLItem(m.Article)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts an ArticleRecord to a CSLItem. Only a discrete
// 4-digit year produces an issued date; composite MedlineDate strings are
// not representable as date-parts and are omitted.
func toCSLItem(a types.ArticleRecord) CSLItem {
	item := CSLItem{
		ID:             "pmid-" + a.PMID,
		Type:           "article-journal",
		Title:          a.Title,
		ContainerTitle: a.Journal,
		URL:            URL(a.PMID),
		PMID:           a.PMID,
	}
	if year, err := strconv.Atoi(a.PubDate); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}
	return item
}
