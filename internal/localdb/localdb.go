// Package localdb provides an offline bibliographic source backed by a
// SQLite database, used ahead of the network providers when configured.
package localdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/LyzardKing/refchecker/internal/normalize"
	"github.com/LyzardKing/refchecker/internal/reference"
	"github.com/LyzardKing/refchecker/internal/resolve"
)

// ProviderName identifies this source in reports.
const ProviderName = "localdb"

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `title, authors_json, pub_year, venue, url, doi, arxiv_id`

// DB wraps a SQLite database of paper metadata.
type DB struct {
	db *sql.DB
}

// Open opens or creates a paper database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			title_normalized TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			pub_year INTEGER,
			venue TEXT,
			url TEXT,
			doi TEXT,
			arxiv_id TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_papers_doi
			ON papers(doi) WHERE doi IS NOT NULL AND doi != '';
		CREATE INDEX IF NOT EXISTS idx_papers_arxiv
			ON papers(arxiv_id) WHERE arxiv_id IS NOT NULL AND arxiv_id != '';
		CREATE INDEX IF NOT EXISTS idx_papers_title
			ON papers(title_normalized);

		-- Full-text search over normalized titles
		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			paper_id,
			title_normalized
		);
	`

	_, err := db.Exec(schema)
	return err
}

// InsertPaper adds a paper to the database.
func (d *DB) InsertPaper(cand reference.Candidate) error {
	authorsJSON, err := json.Marshal(cand.Authors)
	if err != nil {
		return fmt.Errorf("marshaling authors: %w", err)
	}

	titleNorm := normalize.Title(cand.Title)
	res, err := d.db.Exec(`
		INSERT INTO papers (title, title_normalized, authors_json, pub_year, venue, url, doi, arxiv_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, cand.Title, titleNorm, string(authorsJSON), cand.Year, cand.Venue,
		cand.URL, normalize.DOI(cand.DOI), normalize.ArXivID(cand.ArXivID))
	if err != nil {
		return fmt.Errorf("inserting paper: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading insert id: %w", err)
	}
	if _, err := d.db.Exec(`INSERT INTO papers_fts (paper_id, title_normalized) VALUES (?, ?)`,
		id, titleNorm); err != nil {
		return fmt.Errorf("inserting fts row: %w", err)
	}
	return nil
}

// ByDOI retrieves the paper with the given DOI. Returns nil when absent.
func (d *DB) ByDOI(doi string) (*reference.Candidate, error) {
	row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE doi = ?`,
		normalize.DOI(doi))
	return scanPaper(row)
}

// ByArXivID retrieves the paper with the given arXiv identifier. Returns
// nil when absent.
func (d *DB) ByArXivID(id string) (*reference.Candidate, error) {
	row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE arxiv_id = ?`,
		normalize.ArXivID(id))
	return scanPaper(row)
}

// SearchTitle performs a full-text search over normalized titles.
func (d *DB) SearchTitle(title string, limit int) ([]reference.Candidate, error) {
	query := ftsQuery(normalize.Title(title))
	if query == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT `+selectPaperFields+`
		FROM papers
		JOIN papers_fts ON papers_fts.paper_id = papers.id
		WHERE papers_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching titles: %w", err)
	}
	defer rows.Close()

	var found []reference.Candidate
	for rows.Next() {
		cand, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, *cand)
	}
	return found, rows.Err()
}

// ftsQuery quotes each token so FTS5 operators in titles are treated as
// literal text.
func ftsQuery(s string) string {
	var tokens []string
	for _, tok := range strings.Fields(s) {
		tok = strings.ReplaceAll(tok, `"`, "")
		if tok != "" {
			tokens = append(tokens, `"`+tok+`"`)
		}
	}
	return strings.Join(tokens, " ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (*reference.Candidate, error) {
	var cand reference.Candidate
	var authorsJSON string
	var year sql.NullInt64
	var venue, url, doi, arxivID sql.NullString

	err := row.Scan(&cand.Title, &authorsJSON, &year, &venue, &url, &doi, &arxivID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning paper: %w", err)
	}

	if err := json.Unmarshal([]byte(authorsJSON), &cand.Authors); err != nil {
		return nil, fmt.Errorf("unmarshaling authors: %w", err)
	}
	cand.Year = int(year.Int64)
	cand.Venue = venue.String
	cand.URL = url.String
	cand.DOI = doi.String
	cand.ArXivID = arxivID.String
	cand.Provider = ProviderName
	return &cand, nil
}

// Provider adapts the database to the resolver's query interface.
type Provider struct {
	db    *DB
	limit int
}

// NewProvider wraps a database as a resolver provider.
func NewProvider(db *DB) *Provider {
	return &Provider{db: db, limit: 5}
}

// Name implements resolve.Provider.
func (p *Provider) Name() string { return ProviderName }

// Query implements resolve.Provider.
func (p *Provider) Query(ctx context.Context, req resolve.Request) ([]reference.Candidate, error) {
	switch {
	case req.DOI != "":
		cand, err := p.db.ByDOI(req.DOI)
		if err != nil || cand == nil {
			return nil, err
		}
		cand.Rank = 1
		return []reference.Candidate{*cand}, nil
	case req.ArXivID != "":
		cand, err := p.db.ByArXivID(req.ArXivID)
		if err != nil || cand == nil {
			return nil, err
		}
		cand.Rank = 1
		return []reference.Candidate{*cand}, nil
	case req.Title != "":
		cands, err := p.db.SearchTitle(req.Title, p.limit)
		if err != nil {
			return nil, err
		}
		for i := range cands {
			cands[i].Rank = i + 1
		}
		return cands, nil
	}
	return nil, nil
}
