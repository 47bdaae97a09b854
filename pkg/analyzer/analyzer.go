// Package analyzer is the top-level entry point of the extraction engine.
// It joins per-document text into one corpus, runs the sector detector,
// the requirement extractor and every field extractor exactly once, and
// returns an immutable result bundle. No state survives between calls.
package analyzer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pemistahl/lingua-go"

	"github.com/aodesk/ao-analyzer/models"
	"github.com/aodesk/ao-analyzer/pkg/analytics"
	"github.com/aodesk/ao-analyzer/pkg/fields"
	"github.com/aodesk/ao-analyzer/pkg/requirements"
	"github.com/aodesk/ao-analyzer/pkg/rules"
	"github.com/aodesk/ao-analyzer/pkg/sector"
)

// topKeywordCount bounds the keyword summary attached to a result.
const topKeywordCount = 10

// Analyzer bundles the immutable rule catalog with the stateless
// extractors. Safe for concurrent use: nothing here mutates after New.
type Analyzer struct {
	req      *requirements.Extractor
	stats    *analytics.Analytics
	language lingua.LanguageDetector
}

// New builds an analyzer over the given catalog.
func New(catalog *rules.Catalog) *Analyzer {
	return &Analyzer{
		req:   requirements.New(catalog),
		stats: &analytics.Analytics{},
		language: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.French, lingua.English, lingua.German, lingua.Spanish, lingua.Italian).
			Build(),
	}
}

// Analyze runs the full extraction over the uploaded files. Files are
// joined in upload order; URL extraction additionally sees each file's
// raw bytes so PDF link annotations are not lost. Total: empty input
// yields an empty (but valid) result, never an error.
func (a *Analyzer) Analyze(docs []models.SourceFile) models.AnalysisResult {
	var texts []string
	var names []string
	var wordCounts []map[string]int
	for _, d := range docs {
		names = append(names, d.Name)
		if d.Text != "" {
			texts = append(texts, d.Text)
			wordCounts = append(wordCounts, a.stats.WordFrequency(d.Text))
		}
	}
	combined := strings.Join(texts, "\n\n")

	result := models.AnalysisResult{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		FileNames: names,
	}
	if combined == "" {
		result.Warnings = append(result.Warnings, "aucun texte n'a pu être extrait des documents")
		return result
	}

	result.Sector = sector.Detect(combined)
	result.Documents = a.req.Extract(combined)
	result.Email = fields.Email(combined)
	result.PostalAddress = fields.PostalAddress(combined)
	result.Buyer = fields.Buyer(combined)
	result.Deadline = fields.Deadline(combined)
	result.URLs = collectURLs(combined, docs)
	result.TopKeywords = analytics.TopN(analytics.Merge(wordCounts), topKeywordCount)

	if lang, ok := a.language.DetectLanguageOf(combined); ok {
		result.Language = strings.ToLower(lang.IsoCode639_1().String())
		if lang != lingua.French {
			result.Warnings = append(result.Warnings,
				"le document ne semble pas rédigé en français ; l'extraction heuristique est calibrée pour le français")
		}
	}
	return result
}

// collectURLs merges URL extraction per file, in upload order. PDFs
// contribute their native link annotations alongside their own text;
// other formats are scanned over the joined corpus.
func collectURLs(combined string, docs []models.SourceFile) []string {
	var all []string
	seen := make(map[string]bool)
	add := func(urls []string) {
		for _, u := range urls {
			if !seen[u] {
				seen[u] = true
				all = append(all, u)
			}
		}
	}

	for _, d := range docs {
		if strings.HasSuffix(strings.ToLower(d.Name), ".pdf") {
			add(fields.URLs(d.Text, d.Raw))
		} else if d.Text != "" {
			add(fields.URLs(d.Text, nil))
		}
	}
	if len(all) == 0 {
		add(fields.URLs(combined, nil))
	}
	return all
}
