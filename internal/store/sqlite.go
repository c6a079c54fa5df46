// Package store persists reviews, papers, and screening decisions in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/reviewdb/lr/internal/paper"
	"github.com/reviewdb/lr/internal/reliability"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path, creating
// parent directories and the schema as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

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

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS reviews (
			review_id TEXT PRIMARY KEY,
			review_name TEXT NOT NULL,
			research_question TEXT NOT NULL,
			inclusion_criteria_json TEXT,
			reviewers_json TEXT,
			search_strategy TEXT,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS papers (
			paper_id TEXT PRIMARY KEY,
			title TEXT,
			authors_json TEXT,
			pub_year INTEGER,
			journal TEXT,
			volume TEXT,
			issue TEXT,
			pages TEXT,
			doi TEXT,
			abstract TEXT,
			pdf_path TEXT,
			extraction_source TEXT,
			extraction_confidence REAL,
			date_added TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_papers_doi ON papers(doi);

		CREATE TABLE IF NOT EXISTS review_papers (
			review_id TEXT NOT NULL,
			paper_id TEXT NOT NULL,
			date_added TEXT NOT NULL,
			PRIMARY KEY (review_id, paper_id)
		);

		CREATE TABLE IF NOT EXISTS paper_screening (
			screening_id TEXT PRIMARY KEY,
			review_id TEXT NOT NULL,
			paper_id TEXT NOT NULL,
			reviewer_id TEXT NOT NULL,
			stage TEXT NOT NULL,
			decision TEXT NOT NULL,
			rationale TEXT,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_screening_lookup
			ON paper_screening(review_id, paper_id, stage);

		CREATE TABLE IF NOT EXISTS extractions (
			extraction_id TEXT PRIMARY KEY,
			review_id TEXT NOT NULL,
			paper_id TEXT NOT NULL,
			template_name TEXT NOT NULL,
			data_json TEXT NOT NULL,
			extracted_by TEXT,
			created_at TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Review is a literature review project.
type Review struct {
	ReviewID          string   `json:"review_id"`
	Name              string   `json:"review_name"`
	ResearchQuestion  string   `json:"research_question"`
	InclusionCriteria []string `json:"inclusion_criteria,omitempty"`
	Reviewers         []string `json:"reviewers,omitempty"`
	SearchStrategy    string   `json:"search_strategy,omitempty"`
	CreatedAt         string   `json:"created_at"`
}

// CreateReview creates a new review project and returns its ID.
func (d *DB) CreateReview(name, question string, criteria, reviewers []string, strategy string) (string, error) {
	id := uuid.NewString()

	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("encoding criteria: %w", err)
	}
	reviewersJSON, err := json.Marshal(reviewers)
	if err != nil {
		return "", fmt.Errorf("encoding reviewers: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO reviews (review_id, review_name, research_question,
			inclusion_criteria_json, reviewers_json, search_strategy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, question, string(criteriaJSON), string(reviewersJSON),
		strategy, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting review: %w", err)
	}

	return id, nil
}

// GetReview fetches a review by ID.
func (d *DB) GetReview(reviewID string) (*Review, error) {
	row := d.db.QueryRow(`
		SELECT review_id, review_name, research_question,
			inclusion_criteria_json, reviewers_json, search_strategy, created_at
		FROM reviews WHERE review_id = ?`, reviewID)

	var r Review
	var criteriaJSON, reviewersJSON, strategy sql.NullString
	err := row.Scan(&r.ReviewID, &r.Name, &r.ResearchQuestion,
		&criteriaJSON, &reviewersJSON, &strategy, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning review: %w", err)
	}

	if criteriaJSON.Valid && criteriaJSON.String != "" {
		if err := json.Unmarshal([]byte(criteriaJSON.String), &r.InclusionCriteria); err != nil {
			return nil, fmt.Errorf("decoding criteria: %w", err)
		}
	}
	if reviewersJSON.Valid && reviewersJSON.String != "" {
		if err := json.Unmarshal([]byte(reviewersJSON.String), &r.Reviewers); err != nil {
			return nil, fmt.Errorf("decoding reviewers: %w", err)
		}
	}
	r.SearchStrategy = strategy.String

	return &r, nil
}

// LinkPaper links a paper from the library to a review. Linking an
// already-linked paper is a no-op.
func (d *DB) LinkPaper(reviewID, paperID string) error {
	_, err := d.db.Exec(`
		INSERT OR IGNORE INTO review_papers (review_id, paper_id, date_added)
		VALUES (?, ?, ?)`,
		reviewID, paperID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("linking paper: %w", err)
	}
	return nil
}

// ReviewPapers returns all paper IDs linked to a review, in link order.
func (d *DB) ReviewPapers(reviewID string) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT paper_id FROM review_papers
		WHERE review_id = ?
		ORDER BY date_added, paper_id`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("querying review papers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertScreening records a screening decision and returns its ID.
func (d *DB) InsertScreening(reviewID, paperID, reviewerID, stage, decision, rationale string) (string, error) {
	id := uuid.NewString()
	_, err := d.db.Exec(`
		INSERT INTO paper_screening (screening_id, review_id, paper_id,
			reviewer_id, stage, decision, rationale, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, reviewID, paperID, reviewerID, stage, decision, rationale,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("inserting screening decision: %w", err)
	}
	return id, nil
}

// Decisions returns screening decisions for a paper at a stage, in the
// order they were recorded. Satisfies reliability.DecisionSource.
func (d *DB) Decisions(reviewID, paperID, stage string) ([]reliability.Decision, error) {
	rows, err := d.db.Query(`
		SELECT reviewer_id, decision, rationale FROM paper_screening
		WHERE review_id = ? AND paper_id = ? AND stage = ?
		ORDER BY created_at, rowid`, reviewID, paperID, stage)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var decisions []reliability.Decision
	for rows.Next() {
		var dec reliability.Decision
		var rationale sql.NullString
		if err := rows.Scan(&dec.ReviewerID, &dec.Decision, &rationale); err != nil {
			return nil, err
		}
		dec.Rationale = rationale.String
		decisions = append(decisions, dec)
	}
	return decisions, rows.Err()
}

// RecordExtraction stores extracted data for a paper against a template.
func (d *DB) RecordExtraction(reviewID, paperID, templateName string, data map[string]any, extractedBy string) (string, error) {
	id := uuid.NewString()
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding extraction data: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO extractions (extraction_id, review_id, paper_id,
			template_name, data_json, extracted_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, reviewID, paperID, templateName, string(dataJSON), extractedBy,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting extraction: %w", err)
	}
	return id, nil
}

// Extractions returns the extracted field data for all papers in a review,
// keyed by paper ID.
func (d *DB) Extractions(reviewID string) (map[string]map[string]any, error) {
	rows, err := d.db.Query(`
		SELECT paper_id, data_json FROM extractions
		WHERE review_id = ? ORDER BY created_at`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("querying extractions: %w", err)
	}
	defer rows.Close()

	result := make(map[string]map[string]any)
	for rows.Next() {
		var paperID, dataJSON string
		if err := rows.Scan(&paperID, &dataJSON); err != nil {
			return nil, err
		}
		var data map[string]any
		if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
			return nil, fmt.Errorf("decoding extraction for %s: %w", paperID, err)
		}
		result[paperID] = data
	}
	return result, rows.Err()
}

// interface check
var _ reliability.DecisionSource = (*DB)(nil)

// paperColumns is the standard field list for paper SELECT queries.
const paperColumns = `paper_id, title, authors_json, pub_year, journal,
	volume, issue, pages, doi, abstract, pdf_path,
	extraction_source, extraction_confidence`

// AddPaper inserts a paper into the library, deriving its ID from the
// metadata fingerprint when unset. Returns the paper ID.
func (d *DB) AddPaper(meta paper.Metadata) (string, error) {
	if meta.PaperID == "" {
		meta.PaperID = Fingerprint(meta)
	}

	authorsJSON, err := json.Marshal(meta.Authors)
	if err != nil {
		return "", fmt.Errorf("encoding authors: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO papers (paper_id, title, authors_json, pub_year, journal,
			volume, issue, pages, doi, abstract, pdf_path,
			extraction_source, extraction_confidence, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.PaperID, meta.Title, string(authorsJSON), meta.Year, meta.Journal,
		meta.Volume, meta.Issue, meta.Pages, meta.DOI, meta.Abstract, meta.PDFPath,
		meta.ExtractionSource, meta.ExtractionConfidence,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting paper: %w", err)
	}

	return meta.PaperID, nil
}

// GetPaper fetches a paper by ID.
func (d *DB) GetPaper(paperID string) (*paper.Metadata, error) {
	row := d.db.QueryRow(`SELECT `+paperColumns+` FROM papers WHERE paper_id = ?`, paperID)
	meta, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("paper %s: %w", paperID, ErrNotFound)
	}
	return meta, err
}

// ListPapers returns all papers in the library, in insertion order.
func (d *DB) ListPapers() ([]paper.Metadata, error) {
	rows, err := d.db.Query(`SELECT ` + paperColumns + ` FROM papers ORDER BY date_added, paper_id`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []paper.Metadata
	for rows.Next() {
		meta, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, *meta)
	}
	return papers, rows.Err()
}

// SearchPapers returns papers whose title or abstract contains the query
// text (case-insensitive).
func (d *DB) SearchPapers(query string) ([]paper.Metadata, error) {
	pattern := "%" + query + "%"
	rows, err := d.db.Query(`
		SELECT `+paperColumns+` FROM papers
		WHERE title LIKE ? COLLATE NOCASE OR abstract LIKE ? COLLATE NOCASE
		ORDER BY date_added, paper_id`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}
	defer rows.Close()

	var papers []paper.Metadata
	for rows.Next() {
		meta, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, *meta)
	}
	return papers, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanPaper.
type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(s scanner) (*paper.Metadata, error) {
	var meta paper.Metadata
	var authorsJSON, title, journal, volume, issue, pages, doiStr, abstract, pdfPath, source sql.NullString
	var year sql.NullInt64
	var confidence sql.NullFloat64

	err := s.Scan(&meta.PaperID, &title, &authorsJSON, &year, &journal,
		&volume, &issue, &pages, &doiStr, &abstract, &pdfPath,
		&source, &confidence)
	if err != nil {
		return nil, err
	}

	meta.Title = title.String
	meta.Journal = journal.String
	meta.Volume = volume.String
	meta.Issue = issue.String
	meta.Pages = pages.String
	meta.DOI = doiStr.String
	meta.Abstract = abstract.String
	meta.PDFPath = pdfPath.String
	meta.ExtractionSource = source.String
	meta.Year = int(year.Int64)
	meta.ExtractionConfidence = confidence.Float64

	if authorsJSON.Valid && authorsJSON.String != "" {
		if err := json.Unmarshal([]byte(authorsJSON.String), &meta.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors: %w", err)
		}
	}

	return &meta, nil
}
