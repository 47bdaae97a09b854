package fields

import (
	"strings"
	"testing"
)

func TestEmail_Simple(t *testing.T) {
	got := Email("Pour tout renseignement, contact : marches@ville-exemple.fr au service achats.")
	if got != "marches@ville-exemple.fr" {
		t.Errorf("Email() = %q, want %q", got, "marches@ville-exemple.fr")
	}
}

func TestEmail_PrefersContextualSection(t *testing.T) {
	// An unrelated address appears first in the document, but the one
	// near "adresse électronique" wording sits in a relevant section and
	// must win.
	text := strings.Join([]string{
		"Document établi par redaction@imprimeur.fr pour le compte de la ville.",
		"",
		"Article 12",
		"Les offres sont transmises par voie dématérialisée.",
		"adresse electronique : depot@acheteur-public.fr",
		"avant la date limite.",
	}, "\n")

	got := Email(text)
	if got != "depot@acheteur-public.fr" {
		t.Errorf("Email() = %q, want the contextual address %q", got, "depot@acheteur-public.fr")
	}
}

func TestEmail_ExcludesNoReplyWhenAlternativeExists(t *testing.T) {
	text := "contact : noreply@plateforme.fr ou bien cellule.marches@agglo.fr pour toute question."
	got := Email(text)
	if got != "cellule.marches@agglo.fr" {
		t.Errorf("Email() = %q, want the non-excluded candidate", got)
	}
}

func TestEmail_FallsBackToExcludedCandidate(t *testing.T) {
	text := "contact : noreply@plateforme.fr uniquement."
	got := Email(text)
	if got != "noreply@plateforme.fr" {
		t.Errorf("Email() = %q, want the excluded address as last resort", got)
	}
}

func TestEmail_Mailto(t *testing.T) {
	got := Email("Lien de dépôt : mailto:Offres@Collectivite.fr disponible sur le profil acheteur.")
	if got != "offres@collectivite.fr" {
		t.Errorf("Email() = %q, want lower-cased mailto target", got)
	}
}

func TestEmail_ConditionsSectionPrioritized(t *testing.T) {
	var b strings.Builder
	b.WriteString("Courrier : secretariat@mairie-ailleurs.fr\n")
	b.WriteString("\n")
	b.WriteString("Chapitre 3 Conditions d'envoi ou de remise des plis\n")
	b.WriteString("Les plis sont transmis par voie électronique.\n")
	b.WriteString("contact : plis@mairie-cible.fr\n")
	for i := 0; i < 20; i++ {
		b.WriteString("texte de remplissage sans information utile\n")
	}

	got := Email(b.String())
	if got != "plis@mairie-cible.fr" {
		t.Errorf("Email() = %q, want the address inside the conditions section", got)
	}
}

func TestEmail_None(t *testing.T) {
	if got := Email("Aucune coordonnée dans ce texte."); got != "" {
		t.Errorf("Email() = %q, want empty", got)
	}
	if got := Email(""); got != "" {
		t.Errorf("Email(\"\") = %q, want empty", got)
	}
}
