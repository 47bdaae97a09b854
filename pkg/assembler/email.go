package assembler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aodesk/ao-analyzer/models"
)

// WriteEmailDraft writes email_draft.txt at the folder root: a French
// cover email listing the included, draft and missing documents, with a
// deadline reminder when one was extracted.
func WriteEmailDraft(folder, tenderID string, analysis models.AnalysisResult, rows []models.ChecklistRow) error {
	var ok, draft, missing []models.ChecklistRow
	for _, row := range rows {
		switch row.Status {
		case models.StatusOK:
			ok = append(ok, row)
		case models.StatusDraft:
			draft = append(draft, row)
		default:
			missing = append(missing, row)
		}
	}

	to := analysis.Email
	if to == "" {
		to = "[EMAIL À COMPLÉTER]"
	}
	subject := "Dossier de reponse"
	if tenderID != "" {
		subject += " - " + tenderID
	}
	greeting := analysis.Buyer
	if greeting == "" {
		greeting = "Madame, Monsieur"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "À: %s\n", to)
	fmt.Fprintf(&b, "Sujet: %s\n\n", subject)
	fmt.Fprintf(&b, "Bonjour %s,\n\n", greeting)
	b.WriteString("Veuillez trouver ci-joint notre dossier de reponse à votre appel d'offre.\n\n")

	if len(ok) > 0 {
		b.WriteString("Les pieces suivantes sont incluses :\n")
		for _, row := range ok {
			fmt.Fprintf(&b, "- %s\n", row.Label)
		}
		b.WriteString("\n")
	}
	if len(draft) > 0 {
		b.WriteString("Les pieces suivantes sont en brouillon (à compléter) :\n")
		for _, row := range draft {
			fmt.Fprintf(&b, "- %s\n", row.Label)
		}
		b.WriteString("\n")
	}
	if len(missing) > 0 {
		b.WriteString("ATTENTION : Les pieces suivantes sont MANQUANTES :\n")
		for _, row := range missing {
			fmt.Fprintf(&b, "- %s\n", row.Label)
		}
		b.WriteString("\nVeuillez compléter le dossier avant l'envoi final.\n\n")
	}

	if analysis.Deadline != nil {
		d := analysis.Deadline.At
		fmt.Fprintf(&b, "Pour rappel, la date limite de depot est le %s à %s.\n\n",
			d.Format("02/01/2006"), d.Format("15:04"))
	}

	b.WriteString("Nous restons à votre disposition pour tout complement d'information.\n\n")
	b.WriteString("Cordialement,\n")

	return os.WriteFile(filepath.Join(folder, "email_draft.txt"), []byte(b.String()), 0o644)
}
