package assembler

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aodesk/ao-analyzer/models"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC)
}

func newTestAssembler(t *testing.T) (*Assembler, string) {
	t.Helper()
	corpusDir := t.TempDir()
	outputDir := t.TempDir()
	a := &Assembler{CorpusDir: corpusDir, OutputDir: outputDir, now: fixedNow}
	return a, corpusDir
}

func seedCorpus(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("doc"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func sampleAnalysis() models.AnalysisResult {
	return models.AnalysisResult{
		ID:     "run-1",
		Sector: models.SectorTravaux,
		Buyer:  "Ville de Testville",
		Email:  "marches@testville.fr",
		Deadline: &models.Deadline{
			At:        time.Date(2025, time.November, 24, 12, 0, 0, 0, time.UTC),
			TimeKnown: true,
		},
		Documents: []models.RequiredDocument{
			{Key: "extrait_kbis", Label: "Extrait Kbis", Keywords: []string{"kbis"}},
			{Key: "attestation_urssaf", Label: "Attestation URSSAF", Keywords: []string{"urssaf"}},
		},
		FileNames: []string{"rc.pdf"},
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AO-2024-001", "ao-2024-001"},
		{"Marché éclairage #12", "march-clairage-12"},
		{"", "ao"},
		{"///", "ao"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAssemble_StatusesAndLayout(t *testing.T) {
	a, corpusDir := newTestAssembler(t)
	seedCorpus(t, corpusDir, "extrait_kbis_2024.pdf")

	res, err := a.Assemble("AO-2025-007", sampleAnalysis(), []models.SourceFile{
		{Name: "rc.pdf", Raw: []byte("%PDF-raw")},
	})
	if err != nil {
		t.Fatal(err)
	}

	if base := filepath.Base(res.Folder); base != "ao-2025-007_20250602_093000" {
		t.Errorf("folder = %q", base)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("got %d rows", len(res.Rows))
	}
	if res.Rows[0].Status != models.StatusOK {
		t.Errorf("kbis row status = %q", res.Rows[0].Status)
	}
	if res.Rows[0].SubmissionPath == "" {
		t.Error("kbis row missing submission path")
	}
	if res.Rows[1].Status != models.StatusMissing {
		t.Errorf("urssaf row status = %q", res.Rows[1].Status)
	}

	if _, err := os.Stat(filepath.Join(res.SubmissionDir, "extrait_kbis_2024.pdf")); err != nil {
		t.Errorf("copied document missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(res.Folder, "source", "rc.pdf")); err != nil {
		t.Errorf("archived source missing: %v", err)
	}
	for _, name := range []string{"README.md", "metadata.yaml", "email_draft.txt"} {
		if _, err := os.Stat(filepath.Join(res.Folder, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestAssemble_PartialMatchIsDraft(t *testing.T) {
	a, corpusDir := newTestAssembler(t)
	// Name carries "attestation" but not "urssaf": partial match only.
	seedCorpus(t, corpusDir, "attestation_fiscale.pdf")

	analysis := models.AnalysisResult{
		Documents: []models.RequiredDocument{
			{Key: "attestation_urssaf", Label: "Attestation URSSAF", Keywords: []string{"urssaf"}},
		},
	}
	res, err := a.Assemble("", analysis, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Rows[0].Status != models.StatusDraft {
		t.Errorf("status = %q, want DRAFT", res.Rows[0].Status)
	}
	if res.Rows[0].SubmissionPath == "" {
		t.Error("draft row should still be copied into the folder")
	}
}

func TestReadmeContainsChecklistTable(t *testing.T) {
	a, corpusDir := newTestAssembler(t)
	seedCorpus(t, corpusDir, "extrait_kbis_2024.pdf")

	res, err := a.Assemble("AO-1", sampleAnalysis(), nil)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(res.Folder, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	readme := string(raw)
	for _, want := range []string{
		"| Key | Label | Status | Source | Submission |",
		"| extrait_kbis | Extrait Kbis | OK |",
		"Acheteur : Ville de Testville",
		"Date limite : 24/11/2025 12:00",
	} {
		if !strings.Contains(readme, want) {
			t.Errorf("README missing %q:\n%s", want, readme)
		}
	}
}

func TestEmailDraft_GroupsByStatusWithDeadline(t *testing.T) {
	folder := t.TempDir()
	rows := []models.ChecklistRow{
		{Key: "kbis", Label: "Extrait Kbis", Status: models.StatusOK},
		{Key: "memoire", Label: "Mémoire technique", Status: models.StatusDraft},
		{Key: "urssaf", Label: "Attestation URSSAF", Status: models.StatusMissing},
	}
	if err := WriteEmailDraft(folder, "AO-42", sampleAnalysis(), rows); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(folder, "email_draft.txt"))
	if err != nil {
		t.Fatal(err)
	}
	draft := string(raw)
	for _, want := range []string{
		"À: marches@testville.fr",
		"Sujet: Dossier de reponse - AO-42",
		"Bonjour Ville de Testville,",
		"Les pieces suivantes sont incluses :",
		"- Extrait Kbis",
		"en brouillon (à compléter)",
		"- Mémoire technique",
		"MANQUANTES",
		"- Attestation URSSAF",
		"la date limite de depot est le 24/11/2025 à 12:00",
		"Cordialement,",
	} {
		if !strings.Contains(draft, want) {
			t.Errorf("draft missing %q", want)
		}
	}
}

func TestEmailDraft_NoEmailNoBuyer(t *testing.T) {
	folder := t.TempDir()
	if err := WriteEmailDraft(folder, "", models.AnalysisResult{}, nil); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(filepath.Join(folder, "email_draft.txt"))
	draft := string(raw)
	if !strings.Contains(draft, "À: [EMAIL À COMPLÉTER]") {
		t.Error("placeholder recipient missing")
	}
	if !strings.Contains(draft, "Bonjour Madame, Monsieur,") {
		t.Error("default greeting missing")
	}
	if !strings.Contains(draft, "Sujet: Dossier de reponse\n") {
		t.Error("subject without tender id malformed")
	}
}

func TestZipDir(t *testing.T) {
	folder := t.TempDir()
	if err := os.MkdirAll(filepath.Join(folder, "submission"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "submission", "kbis.pdf"), []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "README.md"), []byte("# Dossier"), 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := ZipDir(folder)
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["submission/kbis.pdf"] || !names["README.md"] {
		t.Errorf("zip entries = %v", names)
	}
}
