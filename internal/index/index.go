// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a SQLite full-text index over stored paper
// metadata. The topic partitions on disk remain the durable truth; the
// index is derived state and is rebuilt opportunistically on ingestion,
// so losing it never loses paper data.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-mcp/pkg/types"
)

const dbFile = "papers.db"

// Index wraps the SQLite FTS5 database.
type Index struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the index database at cfg.IndexDir/papers.db,
// creating the schema when absent.
func Open(cfg types.IndexConfig) (*Index, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	idx := &Index{db: db, maxResults: maxResults}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_id TEXT NOT NULL,
			slug TEXT NOT NULL,
			title TEXT,
			summary TEXT,
			published TEXT,
			UNIQUE(slug, paper_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_slug ON papers(slug)`,
	}
	for _, stmt := range statements {
		if _, err := idx.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := idx.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, summary, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
				INSERT INTO papers_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := idx.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Upsert indexes every record of one topic partition, replacing prior
// rows for the same (slug, paper_id).
func (idx *Index) Upsert(ctx context.Context, slug string, papers map[string]types.Paper) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning index transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO papers (paper_id, slug, title, summary, published)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slug, paper_id) DO UPDATE SET
			title=excluded.title, summary=excluded.summary, published=excluded.published`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for id, p := range papers {
		if _, err := stmt.ExecContext(ctx, id, slug, p.Title, p.Summary, p.Published); err != nil {
			return fmt.Errorf("indexing paper %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// Hit is one full-text search match.
type Hit struct {
	PaperID   string `json:"paper_id"`
	Topic     string `json:"topic"`
	Title     string `json:"title"`
	Published string `json:"published"`
}

// Search runs an FTS5 query over titles and summaries, ranked by
// relevance. A limit of 0 uses the configured default.
func (idx *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty index query")
	}
	if limit <= 0 {
		limit = idx.maxResults
	}

	rows, err := idx.db.QueryContext(ctx, `
		SELECT p.paper_id, p.slug, p.title, p.published
		FROM papers_fts
		JOIN papers p ON p.rowid = papers_fts.rowid
		WHERE papers_fts MATCH ?
		ORDER BY papers_fts.rank
		LIMIT ?`, sanitizeFTS(query), limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.PaperID, &h.Topic, &h.Title, &h.Published); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// sanitizeFTS quotes each term so FTS5 operator characters in user input
// cannot produce syntax errors.
func sanitizeFTS(query string) string {
	terms := strings.Fields(query)
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
