package models

import "time"

// RequiredDocument is one detected checklist entry. Score counts distinct
// keywords found, not occurrences; results are sorted by score descending.
// Keywords are carried along for the downstream corpus file search.
type RequiredDocument struct {
	Label         string   `yaml:"label" json:"label"`
	Category      string   `yaml:"category" json:"category"`
	Key           string   `yaml:"key" json:"key"`
	Keywords      []string `yaml:"keywords" json:"keywords"`
	Score         int      `yaml:"score" json:"score"`
	SourceSection string   `yaml:"source_section,omitempty" json:"source_section,omitempty"`
	Summary       string   `yaml:"summary" json:"summary"`
}

// Deadline is a submission cutoff. TimeKnown is false when the document only
// gave a date and the 23:59 end-of-day default was applied.
type Deadline struct {
	At        time.Time `yaml:"at" json:"at"`
	TimeKnown bool      `yaml:"time_known" json:"time_known"`
}

// SourceFile is one uploaded tender document. Text is the collaborator's
// best-effort plain text extraction; Raw keeps the original bytes so PDF
// link annotations stay reachable for URL extraction.
type SourceFile struct {
	Name string
	Raw  []byte
	Text string
}

// AnalysisResult is the immutable bundle returned by one analysis run.
// Nothing in it is cached or shared; every run recomputes from the input.
type AnalysisResult struct {
	ID            string             `yaml:"id" json:"id"`
	CreatedAt     time.Time          `yaml:"created_at" json:"created_at"`
	Sector        Sector             `yaml:"sector,omitempty" json:"sector,omitempty"`
	Documents     []RequiredDocument `yaml:"required_documents" json:"required_documents"`
	Email         string             `yaml:"email,omitempty" json:"email,omitempty"`
	PostalAddress string             `yaml:"postal_address,omitempty" json:"postal_address,omitempty"`
	Buyer         string             `yaml:"buyer,omitempty" json:"buyer,omitempty"`
	Deadline      *Deadline          `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	URLs          []string           `yaml:"urls,omitempty" json:"urls,omitempty"`
	Language      string             `yaml:"language,omitempty" json:"language,omitempty"`
	Warnings      []string           `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	FileNames     []string           `yaml:"files,omitempty" json:"files,omitempty"`
	TopKeywords   map[string]int     `yaml:"top_keywords,omitempty" json:"top_keywords,omitempty"`
}
