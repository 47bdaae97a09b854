package urlinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Profil acheteur - Ville de Testville</title></head>
<body>
<article>
<h1>Consultation en cours</h1>
<p>La ville de Testville publie ses marchés sur cette plateforme. Les
candidats peuvent y télécharger les dossiers de consultation et remettre
leurs offres par voie électronique.</p>
</article>
</body>
</html>`

func TestTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	c := NewClient(2 * time.Second)
	title, err := c.Title(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if title != "Profil acheteur - Ville de Testville" {
		t.Errorf("title = %q", title)
	}
}

func TestTitle_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(2 * time.Second)
	if _, err := c.Title(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestEnrich_FailuresDegradeToBareURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			w.Write([]byte(samplePage))
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(2 * time.Second)
	infos := c.Enrich(context.Background(), []string{srv.URL + "/ok", srv.URL + "/down"})

	if len(infos) != 2 {
		t.Fatalf("got %d infos", len(infos))
	}
	if infos[0].Title == "" || infos[0].Error != "" {
		t.Errorf("ok URL = %+v", infos[0])
	}
	if infos[1].URL != srv.URL+"/down" {
		t.Errorf("order not preserved: %+v", infos[1])
	}
	if infos[1].Error == "" || infos[1].Title != "" {
		t.Errorf("failed URL should carry the error: %+v", infos[1])
	}
}
