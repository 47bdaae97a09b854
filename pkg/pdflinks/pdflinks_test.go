package pdflinks

import (
	"bytes"
	"compress/zlib"
	"reflect"
	"testing"
)

func TestExtract_UncompressedAnnotations(t *testing.T) {
	raw := []byte("%PDF-1.7\n" +
		"4 0 obj\n<< /Type /Annot /Subtype /Link /A << /S /URI /URI (https://marches.ville.fr/dce) >> >>\nendobj\n" +
		"5 0 obj\n<< /A << /S /URI /URI (mailto:plis@ville.fr) >> >>\nendobj\n")

	got := Extract(raw)
	want := []string{"https://marches.ville.fr/dce", "mailto:plis@ville.fr"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtract_CompressedObjectStream(t *testing.T) {
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	zw.Write([]byte("<< /A << /S /URI /URI (https://profil-acheteur.fr/consultation) >> >>"))
	zw.Close()

	var raw bytes.Buffer
	raw.WriteString("%PDF-1.7\n6 0 obj\n<< /Filter /FlateDecode >>\nstream\n")
	raw.Write(compressed.Bytes())
	raw.WriteString("\nendstream\nendobj\n")

	got := Extract(raw.Bytes())
	want := []string{"https://profil-acheteur.fr/consultation"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtract_EscapedParentheses(t *testing.T) {
	raw := []byte("%PDF-1.4\n<< /URI (https://site.fr/page\\(1\\)) >>")
	got := Extract(raw)
	if len(got) != 1 || got[0] != "https://site.fr/page(1)" {
		t.Errorf("Extract() = %v, want the escaped parens resolved", got)
	}
}

func TestExtract_NotAPDF(t *testing.T) {
	if got := Extract([]byte("plain text with /URI (https://x.fr)")); got != nil {
		t.Errorf("Extract() = %v, want nil for non-PDF input", got)
	}
	if got := Extract(nil); got != nil {
		t.Errorf("Extract(nil) = %v, want nil", got)
	}
}

func TestExtract_Deduplicates(t *testing.T) {
	raw := []byte("%PDF-1.4\n<< /URI (https://a.fr) >> << /URI (https://a.fr) >>")
	got := Extract(raw)
	if len(got) != 1 {
		t.Errorf("Extract() = %v, want a single entry", got)
	}
}
