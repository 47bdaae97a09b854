// Package rules holds the static requirement-rule catalog: the generic
// document rules every tender gets, plus per-sector extensions.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aodesk/ao-analyzer/models"
)

// Generic rules apply to every tender regardless of sector. Keyword order
// matters: the first keyword found in the text anchors the context window.
var generic = []models.RequirementRule{
	{Label: "Acte d'engagement (AE)", Keywords: []string{"acte d'engagement", "ae"}, Category: "Offre"},
	{Label: "Règlement de consultation (RC)", Keywords: []string{"règlement de consultation", "rc"}, Category: "Offre"},
	{Label: "CCAP", Keywords: []string{"ccap", "clauses administratives"}, Category: "Contrat"},
	{Label: "CCTP", Keywords: []string{"cctp", "clauses techniques"}, Category: "Contrat"},
	{Label: "BPU", Keywords: []string{"bpu", "bordereau des prix"}, Category: "Financier"},
	{Label: "DQE", Keywords: []string{"dqe", "quantitatif estimatif"}, Category: "Financier"},
	{Label: "DC1", Keywords: []string{"dc1", "lettre de candidature"}, Category: "Candidature"},
	{Label: "DC2", Keywords: []string{"dc2", "déclaration du candidat"}, Category: "Candidature"},
	{Label: "Déclaration sur l'honneur", Keywords: []string{"déclaration sur l'honneur", "interdiction"}, Category: "Candidature"},
}

var sectorRules = models.SectorRuleSet{
	models.SectorAlimentaire: {
		{Label: "Certification Bio", Keywords: []string{"bio", "egalim", "agriculture biologique"}, Category: "Certification"},
		{Label: "Certificat ISO / HACCP", Keywords: []string{"iso", "haccp"}, Category: "Certification"},
		{Label: "Fiches techniques des produits", Keywords: []string{"fiche technique", "produit"}, Category: "Technique"},
	},
	models.SectorTravaux: {
		{Label: "Attestation décennale", Keywords: []string{"décennale", "assurance décennale"}, Category: "Assurance"},
		{Label: "PPSPS", Keywords: []string{"ppsps", "sécurité chantier"}, Category: "Sécurité"},
	},
	models.SectorInformatique: {
		{Label: "Matrice de conformité fonctionnelle", Keywords: []string{"matrice", "conformité"}, Category: "Technique"},
		{Label: "Plan d'assurance sécurité", Keywords: []string{"sécurité", "cybersécurité"}, Category: "Sécurité"},
	},
}

// Catalog is an immutable bundle of generic and sector rules.
type Catalog struct {
	generic []models.RequirementRule
	sector  models.SectorRuleSet
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{generic: generic, sector: sectorRules}
}

// catalogFile mirrors the YAML override format.
type catalogFile struct {
	Generic []models.RequirementRule            `yaml:"generic"`
	Sectors map[string][]models.RequirementRule `yaml:"sectors"`
}

// LoadFile reads a YAML catalog override. Sections missing from the file
// fall back to the built-in rules, so a file can extend just one sector.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	cat := &Catalog{generic: generic, sector: sectorRules}
	if len(cf.Generic) > 0 {
		cat.generic = cf.Generic
	}
	if len(cf.Sectors) > 0 {
		merged := make(models.SectorRuleSet, len(sectorRules))
		for s, rr := range sectorRules {
			merged[s] = rr
		}
		for name, rr := range cf.Sectors {
			merged[models.Sector(name)] = rr
		}
		cat.sector = merged
	}
	return cat, nil
}

// Generic returns the sector-independent rules in catalog order.
func (c *Catalog) Generic() []models.RequirementRule {
	return c.generic
}

// ForSector returns the extra rules for a sector, or nil for SectorNone
// and unknown sectors.
func (c *Catalog) ForSector(s models.Sector) []models.RequirementRule {
	return c.sector[s]
}

// Effective returns the generic rules followed by the sector extension,
// which is the order requirement extraction evaluates them in.
func (c *Catalog) Effective(s models.Sector) []models.RequirementRule {
	extra := c.sector[s]
	out := make([]models.RequirementRule, 0, len(c.generic)+len(extra))
	out = append(out, c.generic...)
	out = append(out, extra...)
	return out
}
