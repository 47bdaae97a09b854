package fields

import (
	"regexp"
	"strings"

	"github.com/aodesk/ao-analyzer/pkg/pdflinks"
)

// URL shapes scanned in the text: full http(s), bare www, and mailto.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://(?:[-\w.])+(?:[:\d]+)?(?:/(?:[\w/_.])*)?(?:\?(?:[\w&=%.])*)?(?:#(?:[\w.])*)?`),
	regexp.MustCompile(`(?i)www\.(?:[-\w.])+(?:[:\d]+)?(?:/(?:[\w/_.])*)?(?:\?(?:[\w&=%.])*)?(?:#(?:[\w.])*)?`),
	regexp.MustCompile(`(?i)mailto:[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
}

// excludedURLDomains drop loopback and placeholder targets.
var excludedURLDomains = []string{"localhost", "127.0.0.1", "example.com", "test.com"}

const trailingPunctuation = ".,;:!?)"

// URLs merges two sources in order: hyperlink annotations read natively
// from the PDF bytes when supplied, then regex matches over the text.
// Matches are cleaned (trailing punctuation trimmed, bare www prefixed
// with http://), filtered against placeholder domains and de-duplicated
// preserving first-encounter order.
func URLs(text string, rawPDF []byte) []string {
	var collected []string

	if len(rawPDF) > 0 {
		collected = append(collected, pdflinks.Extract(rawPDF)...)
	}

	if text != "" {
		for _, pattern := range urlPatterns {
			for _, m := range pattern.FindAllString(text, -1) {
				collected = append(collected, cleanURL(m))
			}
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, u := range collected {
		u = cleanURL(u)
		if u == "" || seen[u] {
			continue
		}
		if containsAny(strings.ToLower(u), excludedURLDomains) {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// cleanURL trims surrounding noise and normalizes bare www URLs.
func cleanURL(u string) string {
	u = strings.TrimSpace(u)
	u = strings.TrimRight(u, trailingPunctuation)
	if strings.HasPrefix(strings.ToLower(u), "www.") {
		u = "http://" + u
	}
	return u
}
