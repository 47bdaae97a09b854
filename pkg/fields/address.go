package fields

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// addressHeadWindow is where French tenders put the buyer's address,
// usually the cover page.
const addressHeadWindow = 2000

// headWindow cuts text to at most n bytes, backing up so the cut never
// splits a multi-byte rune.
func headWindow(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

// minAddressLen rejects fragments too short to be a usable address.
const minAddressLen = 10

// French street-address shapes, most specific first.
var addressPatterns = []*regexp.Regexp{
	// number + street keyword + city or postal code
	regexp.MustCompile(`(?i)(?:\d+[,\s]+)?(?:[A-Za-zÀ-ÿ\s]+(?:rue|avenue|boulevard|place|chemin|route|impasse|allée|passage)[A-Za-zÀ-ÿ\s,]+(?:\d{5}|[A-Za-zÀ-ÿ\s]+))`),
	// street keyword ending in a 5-digit postal code
	regexp.MustCompile(`(?i)[A-Za-zÀ-ÿ\s]+(?:rue|avenue|boulevard|place|chemin|route|impasse|allée|passage)[A-Za-zÀ-ÿ\s,]+\d{5}`),
	// leading street number
	regexp.MustCompile(`(?i)\d+[,\s]+(?:rue|avenue|boulevard|place|chemin|route|impasse|allée|passage)[A-Za-zÀ-ÿ\s,]+(?:\d{5}|[A-Za-zÀ-ÿ\s]+)`),
	// generic fallback: long run + postal code + city
	regexp.MustCompile(`(?i)[A-Za-zÀ-ÿ\s]{10,}(?:,\s*)?\d{5}\s+[A-Za-zÀ-ÿ\s]+`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// PostalAddress extracts a postal address, preferring the head of the
// document and falling back to the whole text. Returns "" when no shape
// matches in either scope.
func PostalAddress(text string) string {
	if text == "" {
		return ""
	}

	head := headWindow(text, addressHeadWindow)

	if addr := matchAddress(head); addr != "" {
		return addr
	}
	return matchAddress(text)
}

func matchAddress(text string) string {
	for _, pattern := range addressPatterns {
		m := pattern.FindString(text)
		if m == "" {
			continue
		}
		addr := whitespaceRun.ReplaceAllString(strings.TrimSpace(m), " ")
		if len(addr) > minAddressLen {
			return addr
		}
	}
	return ""
}
