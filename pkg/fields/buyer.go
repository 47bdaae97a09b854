package fields

import (
	"regexp"
	"strings"
)

// Buyer-name shapes: a label followed by a capitalized name run. The whole
// text is searched without scoping, so a street name after "commande" can
// match; this imprecision is part of the contract, surfaced as-is rather
// than second-guessed.
var buyerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)acheteur[:\s]+([A-Z][A-Za-zÀ-ÿ\s]+)`),
	regexp.MustCompile(`(?i)commande[:\s]+([A-Z][A-Za-zÀ-ÿ\s]+)`),
	regexp.MustCompile(`(?i)maître[:\s]+d'?ouvrage[:\s]+([A-Z][A-Za-zÀ-ÿ\s]+)`),
}

// Buyer returns the first labeled buyer name found, trimmed, or "".
func Buyer(text string) string {
	for _, pattern := range buyerPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
