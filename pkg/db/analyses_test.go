package db

import (
	"errors"
	"testing"
	"time"

	"github.com/aodesk/ao-analyzer/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func sampleResult(id string) models.AnalysisResult {
	return models.AnalysisResult{
		ID:            id,
		CreatedAt:     time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC),
		Sector:        models.SectorTravaux,
		Buyer:         "Ville de Testville",
		Email:         "marches@testville.fr",
		PostalAddress: "4, place de la Mairie, 34000 Testville",
		Deadline: &models.Deadline{
			At:        time.Date(2025, time.November, 24, 12, 0, 0, 0, time.UTC),
			TimeKnown: true,
		},
		Documents: []models.RequiredDocument{
			{Key: "cctp", Label: "CCTP", Category: "Technique", Keywords: []string{"cctp"}, Score: 2, Summary: "2 indice(s)"},
			{Key: "acte_d_engagement_(ae)", Label: "Acte d'engagement (AE)", Category: "Administratif", Keywords: []string{"acte d'engagement", "ae"}, Score: 1, Summary: "1 indice(s)"},
		},
		URLs:        []string{"https://marches.testville.fr/consultation", "http://www.testville.fr"},
		Language:    "fr",
		FileNames:   []string{"rc.pdf", "cctp.pdf"},
		TopKeywords: map[string]int{"chantier": 4, "travaux": 3},
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	want := sampleResult("run-1")
	if err := db.SaveAnalysis(want); err != nil {
		t.Fatalf("SaveAnalysis() error = %v", err)
	}

	got, err := db.GetAnalysis("run-1")
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}

	if got.Sector != want.Sector {
		t.Errorf("sector = %q, want %q", got.Sector, want.Sector)
	}
	if got.Buyer != want.Buyer {
		t.Errorf("buyer = %q, want %q", got.Buyer, want.Buyer)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if got.Deadline == nil || !got.Deadline.At.Equal(want.Deadline.At) {
		t.Errorf("deadline = %+v, want %+v", got.Deadline, want.Deadline)
	}
	if !got.Deadline.TimeKnown {
		t.Error("deadline time_known not persisted")
	}
	if len(got.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(got.Documents))
	}
	if got.Documents[0].Key != "cctp" || got.Documents[0].Score != 2 {
		t.Errorf("document order not preserved: %+v", got.Documents[0])
	}
	if len(got.Documents[1].Keywords) != 2 {
		t.Errorf("keywords = %v", got.Documents[1].Keywords)
	}
	if len(got.URLs) != 2 || got.URLs[0] != want.URLs[0] {
		t.Errorf("urls = %v", got.URLs)
	}
	if got.TopKeywords["chantier"] != 4 {
		t.Errorf("top keywords = %v", got.TopKeywords)
	}
	if len(got.FileNames) != 2 {
		t.Errorf("file names = %v", got.FileNames)
	}
}

func TestGetAnalysis_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetAnalysis("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAnalysis() error = %v, want ErrNotFound", err)
	}
}

func TestSaveAnalysis_DuplicateID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.SaveAnalysis(sampleResult("run-1")); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveAnalysis(sampleResult("run-1")); err == nil {
		t.Error("duplicate ID should fail")
	}
}

func TestSaveAnalysis_NoDeadline(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	res := sampleResult("run-2")
	res.Deadline = nil
	if err := db.SaveAnalysis(res); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetAnalysis("run-2")
	if err != nil {
		t.Fatal(err)
	}
	if got.Deadline != nil {
		t.Errorf("deadline = %+v, want nil", got.Deadline)
	}
}

func TestListAnalyses(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	older := sampleResult("run-old")
	older.CreatedAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleResult("run-new")
	newer.CreatedAt = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	for _, res := range []models.AnalysisResult{older, newer} {
		if err := db.SaveAnalysis(res); err != nil {
			t.Fatal(err)
		}
	}

	list, err := db.ListAnalyses(0)
	if err != nil {
		t.Fatalf("ListAnalyses() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d summaries, want 2", len(list))
	}
	if list[0].ID != "run-new" {
		t.Errorf("newest first expected, got %q", list[0].ID)
	}
	if list[0].DocumentCount != 2 {
		t.Errorf("document count = %d, want 2", list[0].DocumentCount)
	}

	limited, err := db.ListAnalyses(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d rows", len(limited))
	}
}
