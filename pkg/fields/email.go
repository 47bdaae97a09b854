// Package fields holds the independent heuristic extractors for contact
// email, postal address, buyer name, submission deadline and embedded URLs.
// Every extractor is pure and total over its input text: malformed input
// yields "nothing found", never an error.
package fields

import (
	"regexp"
	"strings"
)

// conditionsHeading spots the "conditions d'envoi ou de remise des plis"
// section, the part of a tender that usually names the submission mailbox.
var conditionsHeading = regexp.MustCompile(`conditions?\s+d'?envoi\s+(?:ou\s+de\s+)?remise\s+des\s+plis?`)

// majorHeading ends a conditions section early when a new top-level
// heading starts, provided the section already spans at least 10 lines.
var majorHeading = regexp.MustCompile(`^(chapitre|section|partie|titre)\s+`)

// emailContextKeywords flag lines likely to sit next to the contact
// address. The trailing [^\w] is deliberate: a keyword at end of line does
// not match, matching the behaviour the extraction was tuned against.
var emailContextKeywords = []*regexp.Regexp{
	regexp.MustCompile(`adresse\s+electronique[^\w]`),
	regexp.MustCompile(`adresse\s+email[^\w]`),
	regexp.MustCompile(`adresse\s+mail[^\w]`),
	regexp.MustCompile(`courrier\s+electronique[^\w]`),
	regexp.MustCompile(`contact[^\w]`),
	regexp.MustCompile(`envoyer\s+à[^\w]`),
	regexp.MustCompile(`destinataire[^\w]`),
	regexp.MustCompile(`depot\s+(?:electronique|numerique)[^\w]`),
}

// Three shapes tried in order: permissive, stricter, then mailto URIs.
var emailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?@[A-Za-z0-9](?:[A-Za-z0-9.-]*[A-Za-z0-9])?\.[A-Za-z]{2,}\b`),
	regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	regexp.MustCompile(`(?i)mailto:([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`),
}

// excludedEmails are placeholder or automated addresses never worth
// contacting. Heuristic policy: a legitimate address containing one of
// these substrings is discarded too, unless it is the only candidate.
var excludedEmails = []string{"example.com", "test.com", "noreply", "no-reply", "webmaster", "admin@localhost"}

// Email extracts the contact address for sending the submission folder.
// It narrows the text to sections near submission-related wording before
// pattern matching, retries against the whole text when that fails, and
// filters out placeholder addresses. Returns "" when nothing is found.
func Email(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	relevant := relevantEmailSections(lines)

	searchText := text
	if len(relevant) > 0 {
		searchText = strings.Join(relevant, "\n")
	}

	candidates := findEmails(searchText)
	if len(candidates) == 0 {
		candidates = findEmails(text)
	}
	if len(candidates) == 0 {
		return ""
	}

	for _, email := range candidates {
		lower := strings.ToLower(strings.TrimSpace(email))
		if !structurallyValid(lower) {
			continue
		}
		if !containsAny(lower, excludedEmails) {
			return lower
		}
	}
	// All candidates excluded: better a throwaway-looking address than none.
	return strings.ToLower(strings.TrimSpace(candidates[0]))
}

// relevantEmailSections collects short windows around context keywords,
// with windows found inside a "conditions de remise des plis" block
// inserted at the front so they win.
func relevantEmailSections(lines []string) []string {
	var conditionSections []string
	for i, line := range lines {
		if !conditionsHeading.MatchString(strings.ToLower(line)) {
			continue
		}
		end := i + 150
		for j := i + 1; j < len(lines) && j < i+150; j++ {
			if majorHeading.MatchString(strings.ToLower(lines[j])) && j > i+10 {
				end = j
				break
			}
		}
		if end > len(lines) {
			end = len(lines)
		}
		start := i - 1
		if start < 0 {
			start = 0
		}
		conditionSections = append(conditionSections, strings.Join(lines[start:end], "\n"))
	}

	var relevant []string
	for _, section := range conditionSections {
		lower := strings.ToLower(section)
		for _, kw := range emailContextKeywords {
			if kw.MatchString(lower) {
				relevant = append([]string{section}, relevant...)
				break
			}
		}
	}

	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range emailContextKeywords {
			if !kw.MatchString(lower) {
				continue
			}
			start := i - 1
			if start < 0 {
				start = 0
			}
			end := i + 5
			if end > len(lines) {
				end = len(lines)
			}
			section := strings.Join(lines[start:end], "\n")
			if !containsString(relevant, section) {
				relevant = append(relevant, section)
			}
			break
		}
	}
	return relevant
}

// findEmails applies the three patterns in order and accumulates all
// matches, preferring the first captured group when a pattern has one.
func findEmails(text string) []string {
	var emails []string
	for _, pattern := range emailPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 && m[1] != "" {
				emails = append(emails, m[1])
			} else {
				emails = append(emails, m[0])
			}
		}
	}
	return emails
}

// structurallyValid demands an @ with a dot somewhere in the domain part.
func structurallyValid(email string) bool {
	at := strings.Index(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
