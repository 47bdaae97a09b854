package fields

import "testing"

func TestBuyer(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "acheteur label",
			text: "Acheteur : Ville de Testville\n12 rue de la Paix",
			want: "Ville de Testville",
		},
		{
			name: "maitre d'ouvrage label",
			text: "Le présent marché.\nMaître d'ouvrage : Région Occitanie.\nArticle 2",
			want: "Région Occitanie",
		},
		{
			name: "acheteur wins over later labels",
			text: "Acheteur : Commune de Testville (77)\nMaître d'ouvrage : Autre Entité.",
			want: "Commune de Testville",
		},
		{
			name: "no label",
			text: "Le marché porte sur la fourniture de denrées.",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Buyer(tc.text); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
