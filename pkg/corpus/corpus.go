// Package corpus searches the company document folder for files matching
// a required document's label and keywords. Matching is filename-based and
// case-insensitive; the folder is walked recursively.
package corpus

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxLabelTerms caps how many words of a document label feed the search.
const maxLabelTerms = 3

// minTermLen drops short words (articles, "de", "du") from search terms.
const minTermLen = 3

// BuildSearchTerms derives filename search terms from a requirement's
// label and keyword list. Label words shorter than three characters are
// skipped and at most the first three significant words are kept.
func BuildSearchTerms(label string, keywords []string) []string {
	var terms []string
	var labelTerms int
	for _, w := range strings.Fields(label) {
		if len(w) < minTermLen || labelTerms >= maxLabelTerms {
			continue
		}
		terms = append(terms, strings.ToLower(w))
		labelTerms++
	}
	for _, kw := range keywords {
		if len(kw) >= minTermLen {
			terms = append(terms, strings.ToLower(kw))
		}
	}
	return terms
}

// candidate is one file seen during a walk, with its match rank inputs.
type candidate struct {
	path    string
	mtime   time.Time
	matches int
}

// walkCandidates visits every regular file under base and reports how many
// search terms its lowercased name contains. Files older than maxAgeDays
// are skipped when maxAgeDays is positive. A missing base yields nothing.
func walkCandidates(base string, terms []string, maxAgeDays int) []candidate {
	var out []candidate
	cutoff := time.Time{}
	if maxAgeDays > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -maxAgeDays)
	}

	filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !cutoff.IsZero() && info.ModTime().Before(cutoff) {
			return nil
		}
		name := strings.ToLower(d.Name())
		matches := 0
		for _, term := range terms {
			if strings.Contains(name, term) {
				matches++
			}
		}
		out = append(out, candidate{path: path, mtime: info.ModTime(), matches: matches})
		return nil
	})
	return out
}

// FindBestDoc returns the newest file whose name contains EVERY search
// term, or "" when nothing qualifies. With no terms, the newest file of
// the whole folder wins.
func FindBestDoc(base string, terms []string, maxAgeDays int) string {
	var normalized []string
	for _, t := range terms {
		if t != "" {
			normalized = append(normalized, strings.ToLower(t))
		}
	}

	best := ""
	var bestMtime time.Time
	for _, c := range walkCandidates(base, normalized, maxAgeDays) {
		if len(normalized) > 0 && c.matches < len(normalized) {
			continue
		}
		if best == "" || c.mtime.After(bestMtime) {
			best = c.path
			bestMtime = c.mtime
		}
	}
	return best
}

// FindAllMatching returns every file whose name contains at least one
// search term, ranked by match count then by modification time, newest
// first. An empty term list returns nothing.
func FindAllMatching(base string, terms []string, maxAgeDays int) []string {
	var normalized []string
	for _, t := range terms {
		if t != "" {
			normalized = append(normalized, strings.ToLower(t))
		}
	}
	if len(normalized) == 0 {
		return nil
	}

	var matched []candidate
	for _, c := range walkCandidates(base, normalized, maxAgeDays) {
		if c.matches > 0 {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].matches != matched[j].matches {
			return matched[i].matches > matched[j].matches
		}
		return matched[i].mtime.After(matched[j].mtime)
	})

	paths := make([]string, len(matched))
	for i, c := range matched {
		paths[i] = c.path
	}
	return paths
}

// CopyInto copies source into destDir (created if needed), keeping the
// source's base name. Returns the destination path.
func CopyInto(source, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination dir: %w", err)
	}
	target := filepath.Join(destDir, filepath.Base(source))

	in, err := os.Open(source)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create target: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("copy %s: %w", filepath.Base(source), err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close target: %w", err)
	}
	return target, nil
}
