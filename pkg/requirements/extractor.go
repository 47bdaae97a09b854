// Package requirements scores the rule catalog against tender text and
// produces the ranked required-document checklist.
package requirements

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aodesk/ao-analyzer/models"
	"github.com/aodesk/ao-analyzer/pkg/rules"
	"github.com/aodesk/ao-analyzer/pkg/sector"
)

// contextWindow is the number of characters kept on each side of the first
// keyword hit, for human verification of why a rule fired.
const contextWindow = 250

// Extractor evaluates a rule catalog against text.
type Extractor struct {
	catalog *rules.Catalog
}

// New returns an extractor over the given catalog.
func New(catalog *rules.Catalog) *Extractor {
	return &Extractor{catalog: catalog}
}

// Extract runs sector detection, builds the effective rule list and scores
// every rule. A rule scores one point per distinct keyword present as a
// case-insensitive substring; rules scoring zero are dropped. The result is
// stable-sorted by score descending, so ties keep catalog order.
//
// Keywords are matched as plain substrings. Short keywords like "ae" or
// "rc" can fire on unrelated text; that imprecision is part of the
// detection contract and is surfaced through the context snippet instead
// of being filtered out.
func (e *Extractor) Extract(text string) []models.RequiredDocument {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	effective := e.catalog.Effective(sector.Detect(text))

	var results []models.RequiredDocument
	for _, rule := range effective {
		score := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		results = append(results, models.RequiredDocument{
			Label:         rule.Label,
			Category:      rule.Category,
			Key:           SlugKey(rule.Label),
			Keywords:      rule.Keywords,
			Score:         score,
			SourceSection: extractContext(text, lower, rule.Keywords),
			Summary:       fmt.Sprintf("Détecté via %d mot(s)-clé", score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// SlugKey derives the checklist key from a rule label: lower-cased, spaces
// and apostrophes replaced with underscores.
func SlugKey(label string) string {
	key := strings.ToLower(label)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "'", "_")
	return key
}

// extractContext returns a window around the first occurrence of the first
// matching keyword, taken from the original-case text. Empty when no
// keyword is found, which cannot happen for rules that scored.
func extractContext(text, lower string, keywords []string) string {
	for _, kw := range keywords {
		pos := strings.Index(lower, strings.ToLower(kw))
		if pos < 0 {
			continue
		}
		start := pos - contextWindow
		if start < 0 {
			start = 0
		}
		end := pos + contextWindow
		if end > len(text) {
			end = len(text)
		}
		for start > 0 && !utf8.RuneStart(text[start]) {
			start--
		}
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}
		return text[start:end]
	}
	return ""
}
