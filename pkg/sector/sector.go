// Package sector classifies tender text into a coarse industry sector.
package sector

import (
	"strings"

	"github.com/aodesk/ao-analyzer/models"
)

// Keyword groups tried in fixed priority order. Only the first group with a
// hit wins, even when several groups match; this deliberately trades
// precision for predictability and must not be reordered.
var groups = []struct {
	sector   models.Sector
	keywords []string
}{
	{models.SectorAlimentaire, []string{"alimentaire", "denrées", "egalim"}},
	{models.SectorTravaux, []string{"travaux", "chantier", "btp"}},
	{models.SectorInformatique, []string{"informatique", "réseau", "logiciel"}},
}

// Detect returns the first sector whose keyword group has at least one
// case-insensitive substring hit, or SectorNone. Pure and total.
func Detect(text string) models.Sector {
	lower := strings.ToLower(text)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.sector
			}
		}
	}
	return models.SectorNone
}
