package requirements

import (
	"sort"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aodesk/ao-analyzer/pkg/rules"
)

func TestExtract_SingleRule(t *testing.T) {
	e := New(rules.Default())
	// Both CCTP keywords present, nothing else from the catalog.
	text := "Le CCTP précise les clauses techniques du futur contrat."

	docs := e.Extract(text)

	var found bool
	for _, d := range docs {
		if d.Label != "CCTP" {
			continue
		}
		found = true
		if d.Score != 2 {
			t.Errorf("CCTP score = %d, want 2 (distinct keywords)", d.Score)
		}
		if d.Category != "Contrat" {
			t.Errorf("CCTP category = %q, want %q", d.Category, "Contrat")
		}
		if d.Summary != "Détecté via 2 mot(s)-clé" {
			t.Errorf("summary = %q", d.Summary)
		}
	}
	if !found {
		t.Fatal("CCTP rule not detected")
	}
}

func TestExtract_DistinctKeywordsNotOccurrences(t *testing.T) {
	e := New(rules.Default())
	text := "Le BPU, encore le BPU, toujours le BPU."

	docs := e.Extract(text)
	for _, d := range docs {
		if d.Label == "BPU" && d.Score != 1 {
			t.Errorf("BPU score = %d, want 1 (occurrences must not accumulate)", d.Score)
		}
	}
}

func TestExtract_SortedByScoreDescending(t *testing.T) {
	e := New(rules.Default())
	text := "Acte d'engagement (AE) à signer. Joindre le DC1."

	docs := e.Extract(text)
	if len(docs) < 2 {
		t.Fatalf("got %d documents, want at least 2", len(docs))
	}
	if !sort.SliceIsSorted(docs, func(i, j int) bool { return docs[i].Score > docs[j].Score }) {
		t.Errorf("documents not sorted by score descending: %+v", docs)
	}
	if docs[0].Label != "Acte d'engagement (AE)" {
		t.Errorf("top document = %q, want the two-keyword AE rule", docs[0].Label)
	}
}

func TestExtract_ContextWindow(t *testing.T) {
	e := New(rules.Default())
	pad := strings.Repeat("x ", 300)
	text := pad + "bordereau des prix unitaires" + pad

	docs := e.Extract(text)
	var section string
	for _, d := range docs {
		if d.Label == "BPU" {
			section = d.SourceSection
		}
	}
	if section == "" {
		t.Fatal("BPU detected without a context section")
	}
	if !strings.Contains(section, "bordereau des prix") {
		t.Errorf("context %q does not contain the matched keyword", section)
	}
	if len(section) > 2*250+len("bordereau des prix") {
		t.Errorf("context length = %d, want a bounded window", len(section))
	}
}

func TestExtract_SectorRulesApplied(t *testing.T) {
	e := New(rules.Default())
	// "chantier" triggers the travaux sector; "ppsps" only exists in the
	// travaux extension.
	text := "Organisation du chantier : fournir le PPSPS avant démarrage."

	docs := e.Extract(text)
	var found bool
	for _, d := range docs {
		if d.Label == "PPSPS" {
			found = true
		}
	}
	if !found {
		t.Error("PPSPS sector rule not applied for travaux text")
	}
}

func TestExtract_EmptyText(t *testing.T) {
	e := New(rules.Default())
	if docs := e.Extract(""); len(docs) != 0 {
		t.Errorf("Extract(\"\") returned %d documents, want 0", len(docs))
	}
}

func TestExtract_ContextKeepsRunesWhole(t *testing.T) {
	e := New(rules.Default())
	// "é" straddles the byte offset 250 before the keyword, right where
	// the context window starts.
	text := strings.Repeat("a", 249) + "é" + strings.Repeat("b", 249) + "ccap clauses administratives"

	docs := e.Extract(text)

	var section string
	for _, d := range docs {
		if d.Label == "CCAP" {
			section = d.SourceSection
		}
	}
	if section == "" {
		t.Fatal("CCAP rule did not fire")
	}
	if !utf8.ValidString(section) {
		t.Errorf("context window split a rune: %q", section[:4])
	}
	if !strings.HasPrefix(section, "é") {
		t.Errorf("context starts with %q, want the whole rune kept", section[:2])
	}
}

func TestSlugKey(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Acte d'engagement (AE)", "acte_d_engagement_(ae)"},
		{"CCAP", "ccap"},
		{"Déclaration sur l'honneur", "déclaration_sur_l_honneur"},
	}
	for _, tt := range tests {
		if got := SlugKey(tt.label); got != tt.want {
			t.Errorf("SlugKey(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
	for _, tt := range tests {
		got := SlugKey(tt.label)
		if strings.ContainsAny(got, " '") || got != strings.ToLower(got) {
			t.Errorf("SlugKey(%q) = %q, want lower-case with no spaces or apostrophes", tt.label, got)
		}
	}
}
