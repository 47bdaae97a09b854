package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aodesk/ao-analyzer/models"
)

func TestDefault(t *testing.T) {
	cat := Default()

	if len(cat.Generic()) == 0 {
		t.Fatal("expected generic rules in the built-in catalog")
	}
	if got := cat.ForSector(models.SectorNone); got != nil {
		t.Errorf("got %d rules for no sector, want none", len(got))
	}
	if got := cat.ForSector(models.SectorTravaux); len(got) == 0 {
		t.Error("expected travaux rules in the built-in catalog")
	}
}

func TestEffectiveOrder(t *testing.T) {
	cat := Default()
	eff := cat.Effective(models.SectorAlimentaire)

	wantLen := len(cat.Generic()) + len(cat.ForSector(models.SectorAlimentaire))
	if len(eff) != wantLen {
		t.Fatalf("got %d effective rules, want %d", len(eff), wantLen)
	}
	if eff[0].Label != cat.Generic()[0].Label {
		t.Errorf("got first rule %q, want generic rule %q", eff[0].Label, cat.Generic()[0].Label)
	}
	last := eff[len(eff)-1]
	sector := cat.ForSector(models.SectorAlimentaire)
	if last.Label != sector[len(sector)-1].Label {
		t.Errorf("got last rule %q, want sector rule %q", last.Label, sector[len(sector)-1].Label)
	}
}

func TestLoadFile_SectorOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `sectors:
  travaux:
    - label: "Mémoire technique"
      keywords: ["mémoire technique"]
      category: "Technique"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	travaux := cat.ForSector(models.SectorTravaux)
	if len(travaux) != 1 || travaux[0].Label != "Mémoire technique" {
		t.Errorf("got travaux rules %+v, want single override rule", travaux)
	}
	// Sections absent from the file keep the built-in rules.
	if len(cat.Generic()) != len(Default().Generic()) {
		t.Error("generic rules should fall back to the built-in set")
	}
	if len(cat.ForSector(models.SectorAlimentaire)) == 0 {
		t.Error("untouched sectors should keep their built-in rules")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing rules file")
	}
}
