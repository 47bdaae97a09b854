package models

// Sector is the coarse industry classification of a tender.
// It drives which extra requirement rules apply on top of the generic set.
type Sector string

const (
	SectorNone         Sector = ""
	SectorAlimentaire  Sector = "alimentaire"
	SectorTravaux      Sector = "travaux"
	SectorInformatique Sector = "informatique"
)

// RequirementRule is a keyword-triggered definition of a document a tender
// response must include. Rules are loaded once at startup and never mutated.
type RequirementRule struct {
	Label    string   `yaml:"label" json:"label"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Category string   `yaml:"category" json:"category"`
}

// SectorRuleSet maps a sector to the additional rules applied when that
// sector is detected. An absent sector contributes no extra rules.
type SectorRuleSet map[Sector][]RequirementRule
