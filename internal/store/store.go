// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists matched articles in a SQLite history database so
// repeated runs can skip articles already reported.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-scout/internal/report"
	"github.com/pdiddy/pubmed-scout/pkg/types"
)

// Store manages the match-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS matched_articles (
		pmid TEXT PRIMARY KEY,
		title TEXT,
		journal TEXT,
		pub_date TEXT,
		institutes TEXT,
		url TEXT,
		first_seen TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Has reports whether a PMID was recorded by an earlier run.
func (s *Store) Has(pmid string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT count(*) FROM matched_articles WHERE pmid = ?`, pmid).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying history for %s: %w", pmid, err)
	}
	return n > 0, nil
}

// Record inserts a matched article. Recording the same PMID twice is a
// no-op; the first run's row wins.
func (s *Store) Record(m types.MatchResult) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO matched_articles
		 (pmid, title, journal, pub_date, institutes, url, first_seen)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Article.PMID, m.Article.Title, m.Article.Journal, m.Article.PubDate,
		strings.Join(m.Institutes, ";"), report.URL(m.Article.PMID),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", m.Article.PMID, err)
	}
	return nil
}

// Count returns the number of recorded articles.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM matched_articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}
