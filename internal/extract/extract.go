// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract parses PubMed EFetch XML into per-article records.
package extract

import (
	"encoding/xml"
	"fmt"

	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// Records decodes one PubmedArticleSet document into ArticleRecords, one
// per embedded article. Missing optional fields degrade to empty strings —
// a malformed article never aborts extraction of its siblings — but a
// document that fails to parse as XML is fatal for the whole batch.
func Records(data []byte) ([]types.ArticleRecord, error) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing PubMed XML: %w", err)
	}

	records := make([]types.ArticleRecord, 0, len(set.Articles))
	for _, a := range set.Articles {
		records = append(records, toRecord(a))
	}
	return records, nil
}

// toRecord applies the field-extraction policy to one article: first PMID,
// first title, first journal title, Year with MedlineDate fallback, and
// every affiliation string found anywhere under the article — both the
// author list and the investigator list carry AffiliationInfo nodes.
func toRecord(a pubmedArticle) types.ArticleRecord {
	art := a.Citation.Article

	rec := types.ArticleRecord{
		PMID:    a.Citation.PMID,
		Title:   art.Title,
		Journal: art.Journal.Title,
	}

	pubDate := art.Journal.JournalIssue.PubDate
	if pubDate.Year != "" {
		rec.PubDate = pubDate.Year
	} else {
		rec.PubDate = pubDate.MedlineDate
	}

	for _, author := range art.AuthorList.Authors {
		rec.Affiliations = appendAffiliations(rec.Affiliations, author.AffiliationInfo)
	}
	for _, inv := range a.Citation.InvestigatorList.Investigators {
		rec.Affiliations = appendAffiliations(rec.Affiliations, inv.AffiliationInfo)
	}
	return rec
}

func appendAffiliations(dst []string, infos []xmlAffiliationInfo) []string {
	for _, info := range infos {
		if info.Affiliation != "" {
			dst = append(dst, info.Affiliation)
		}
	}
	return dst
}

// PubMed EFetch XML structures, limited to the fields the report uses.
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID             string              `xml:"PMID"`
	Article          xmlArticle          `xml:"Article"`
	InvestigatorList xmlInvestigatorList `xml:"InvestigatorList"`
}

type xmlArticle struct {
	Journal    xmlJournal    `xml:"Journal"`
	Title      string        `xml:"ArticleTitle"`
	AuthorList xmlAuthorList `xml:"AuthorList"`
}

type xmlJournal struct {
	Title        string          `xml:"Title"`
	JournalIssue xmlJournalIssue `xml:"JournalIssue"`
}

type xmlJournalIssue struct {
	PubDate xmlPubDate `xml:"PubDate"`
}

type xmlPubDate struct {
	Year        string `xml:"Year"`
	MedlineDate string `xml:"MedlineDate"`
}

type xmlAuthorList struct {
	Authors []xmlAuthor `xml:"Author"`
}

type xmlAuthor struct {
	AffiliationInfo []xmlAffiliationInfo `xml:"AffiliationInfo"`
}

type xmlInvestigatorList struct {
	Investigators []xmlInvestigator `xml:"Investigator"`
}

type xmlInvestigator struct {
	AffiliationInfo []xmlAffiliationInfo `xml:"AffiliationInfo"`
}

type xmlAffiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}
