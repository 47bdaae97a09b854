// Package analytics computes word-frequency statistics over tender text.
// The top keywords end up in the analysis summary and the assembled
// README, giving a quick feel for what a consultation is about.
package analytics

import (
	"sort"
	"strings"
	"unicode"
)

type Analytics struct{}

// commonWords are French (plus a few administrative) stopwords ignored in
// frequency analysis. The list can be extended as needed.
var commonWords = map[string]struct{}{
	"a": {}, "à": {}, "afin": {}, "ainsi": {}, "alors": {}, "après": {},
	"au": {}, "aucun": {}, "aucune": {}, "auprès": {}, "aux": {},
	"avant": {}, "avec": {}, "autre": {}, "autres": {},

	"car": {}, "ce": {}, "ceci": {}, "cela": {}, "celle": {}, "celles": {},
	"celui": {}, "ces": {}, "cet": {}, "cette": {}, "ceux": {}, "chaque": {},
	"chez": {}, "ci": {}, "comme": {}, "comment": {}, "contre": {},

	"d": {}, "dans": {}, "de": {}, "des": {}, "donc": {}, "dont": {},
	"du": {}, "déjà": {}, "doit": {}, "doivent": {},

	"elle": {}, "elles": {}, "en": {}, "encore": {}, "entre": {}, "est": {},
	"et": {}, "être": {}, "été": {}, "eux": {},

	"fait": {}, "faire": {},

	"il": {}, "ils": {},

	"l": {}, "la": {}, "le": {}, "les": {}, "leur": {}, "leurs": {},
	"lors": {}, "lui": {}, "là": {},

	"mais": {}, "me": {}, "même": {}, "mes": {}, "mon": {}, "ma": {},

	"ne": {}, "ni": {}, "non": {}, "nos": {}, "notre": {}, "nous": {},

	"on": {}, "ont": {}, "ou": {}, "où": {},

	"par": {}, "pas": {}, "peut": {}, "peuvent": {}, "plus": {}, "pour": {},
	"près": {}, "puis": {},

	"qu": {}, "quand": {}, "que": {}, "quel": {}, "quelle": {},
	"quelles": {}, "quels": {}, "qui": {},

	"s": {}, "sa": {}, "sans": {}, "se": {}, "selon": {}, "ses": {},
	"si": {}, "soit": {}, "son": {}, "sont": {}, "sous": {}, "sur": {},

	"tous": {}, "tout": {}, "toute": {}, "toutes": {}, "très": {},

	"un": {}, "une": {},

	"vers": {}, "vos": {}, "votre": {}, "vous": {},

	"y": {},

	// Boilerplate every tender repeats; keeping them would drown the
	// keywords that actually distinguish one consultation from another.
	"article": {}, "articles": {}, "annexe": {}, "annexes": {},
	"présent": {}, "présente": {}, "marché": {}, "marchés": {},
	"candidat": {}, "candidats": {}, "titulaire": {},
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts non-stopword occurrences, keeping accented letters.
func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text))
	frequencies := make(map[string]int)

	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if _, exists := commonWords[word]; exists || word == "" {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// Merge sums per-document frequency maps into one corpus-wide map, for
// tenders split across several files.
func Merge(counts []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, m := range counts {
		for word, n := range m {
			merged[word] += n
		}
	}
	return merged
}

type wordCount struct {
	word  string
	count int
}

// TopN returns the n most frequent keywords with their counts. Ties break
// alphabetically so the output is deterministic.
func TopN(frequencies map[string]int, n int) map[string]int {
	counts := make([]wordCount, 0, len(frequencies))
	for word, count := range frequencies {
		counts = append(counts, wordCount{word, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].word < counts[j].word
	})

	limit := n
	if len(counts) < limit {
		limit = len(counts)
	}
	if limit < 0 {
		limit = 0
	}

	top := make(map[string]int, limit)
	for i := 0; i < limit; i++ {
		top[counts[i].word] = counts[i].count
	}
	return top
}
