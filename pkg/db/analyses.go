package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aodesk/ao-analyzer/models"
)

// AnalysisSummary is the list view of a stored run.
type AnalysisSummary struct {
	ID            string
	CreatedAt     time.Time
	Sector        string
	Buyer         string
	DocumentCount int
}

// ErrNotFound is returned when no run with the requested ID is stored.
var ErrNotFound = errors.New("analysis not found")

// SaveAnalysis stores one run with its documents and URLs in a single
// transaction. Saving the same ID twice is an error.
func (db *DB) SaveAnalysis(res models.AnalysisResult) error {
	fileNames, err := json.Marshal(res.FileNames)
	if err != nil {
		return fmt.Errorf("failed to encode file names: %w", err)
	}
	warnings, err := json.Marshal(res.Warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}
	topKeywords, err := json.Marshal(res.TopKeywords)
	if err != nil {
		return fmt.Errorf("failed to encode top keywords: %w", err)
	}

	var deadline sql.NullString
	timeKnown := false
	if res.Deadline != nil {
		deadline = sql.NullString{String: res.Deadline.At.UTC().Format(time.RFC3339), Valid: true}
		timeKnown = res.Deadline.TimeKnown
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO analyses (analysis_id, created_at, sector, buyer, email, postal_address,
			deadline, deadline_time_known, language, file_names, warnings, top_keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, res.ID, res.CreatedAt.UTC().Format(time.RFC3339), string(res.Sector), res.Buyer,
		res.Email, res.PostalAddress, deadline, timeKnown, res.Language,
		string(fileNames), string(warnings), string(topKeywords))
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	for i, doc := range res.Documents {
		keywords, err := json.Marshal(doc.Keywords)
		if err != nil {
			return fmt.Errorf("failed to encode keywords: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO required_documents (analysis_id, position, key, label, category,
				score, source_section, summary, keywords)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, res.ID, i, doc.Key, doc.Label, doc.Category, doc.Score,
			doc.SourceSection, doc.Summary, string(keywords))
		if err != nil {
			return fmt.Errorf("failed to insert document %s: %w", doc.Key, err)
		}
	}

	for i, u := range res.URLs {
		if _, err := tx.Exec(`
			INSERT INTO urls (analysis_id, position, url) VALUES (?, ?, ?)
		`, res.ID, i, u); err != nil {
			return fmt.Errorf("failed to insert url: %w", err)
		}
	}

	return tx.Commit()
}

// GetAnalysis loads one stored run by ID.
func (db *DB) GetAnalysis(id string) (models.AnalysisResult, error) {
	var res models.AnalysisResult
	var createdAt, sector string
	var deadline sql.NullString
	var timeKnown bool
	var fileNames, warnings, topKeywords string

	err := db.QueryRow(`
		SELECT analysis_id, created_at, sector, buyer, email, postal_address,
			deadline, deadline_time_known, language, file_names, warnings, top_keywords
		FROM analyses WHERE analysis_id = ?
	`, id).Scan(&res.ID, &createdAt, &sector, &res.Buyer, &res.Email, &res.PostalAddress,
		&deadline, &timeKnown, &res.Language, &fileNames, &warnings, &topKeywords)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ErrNotFound
	}
	if err != nil {
		return res, fmt.Errorf("failed to query analysis: %w", err)
	}

	res.Sector = models.Sector(sector)
	if res.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return res, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if deadline.Valid {
		at, err := time.Parse(time.RFC3339, deadline.String)
		if err != nil {
			return res, fmt.Errorf("failed to parse deadline: %w", err)
		}
		res.Deadline = &models.Deadline{At: at, TimeKnown: timeKnown}
	}
	if err := json.Unmarshal([]byte(fileNames), &res.FileNames); err != nil {
		return res, fmt.Errorf("failed to decode file names: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &res.Warnings); err != nil {
		return res, fmt.Errorf("failed to decode warnings: %w", err)
	}
	if err := json.Unmarshal([]byte(topKeywords), &res.TopKeywords); err != nil {
		return res, fmt.Errorf("failed to decode top keywords: %w", err)
	}

	if res.Documents, err = db.analysisDocuments(id); err != nil {
		return res, err
	}
	if res.URLs, err = db.analysisURLs(id); err != nil {
		return res, err
	}
	return res, nil
}

func (db *DB) analysisDocuments(id string) ([]models.RequiredDocument, error) {
	rows, err := db.Query(`
		SELECT key, label, category, score, source_section, summary, keywords
		FROM required_documents WHERE analysis_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []models.RequiredDocument
	for rows.Next() {
		var doc models.RequiredDocument
		var keywords string
		if err := rows.Scan(&doc.Key, &doc.Label, &doc.Category, &doc.Score,
			&doc.SourceSection, &doc.Summary, &keywords); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &doc.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (db *DB) analysisURLs(id string) ([]string, error) {
	rows, err := db.Query(`SELECT url FROM urls WHERE analysis_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// ListAnalyses returns stored runs, newest first, up to limit (0 = all).
func (db *DB) ListAnalyses(limit int) ([]AnalysisSummary, error) {
	query := `
		SELECT a.analysis_id, a.created_at, a.sector, a.buyer,
			(SELECT COUNT(*) FROM required_documents d WHERE d.analysis_id = a.analysis_id)
		FROM analyses a ORDER BY a.created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisSummary
	for rows.Next() {
		var s AnalysisSummary
		var createdAt string
		if err := rows.Scan(&s.ID, &createdAt, &s.Sector, &s.Buyer, &s.DocumentCount); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
