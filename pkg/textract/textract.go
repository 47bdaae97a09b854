// Package textract turns uploaded tender files into best-effort plain
// text. It is a collaborator, not part of the extraction engine: any
// failure degrades to an empty string so the engine only ever sees "no
// signal", never an error.
package textract

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Extractor dispatches on the declared file extension.
type Extractor struct {
	runner    Runner
	pdftotext string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRunner swaps the command runner, mainly for tests.
func WithRunner(r Runner) Option {
	return func(e *Extractor) { e.runner = r }
}

// WithPdftotext sets the pdftotext binary path.
func WithPdftotext(path string) Option {
	return func(e *Extractor) { e.pdftotext = path }
}

// New returns an extractor using pdftotext from PATH by default.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		runner:    execRunner{},
		pdftotext: "pdftotext",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Text extracts plain text from raw file bytes based on the file name's
// extension. Unsupported extensions and extraction failures return "".
func (e *Extractor) Text(ctx context.Context, name string, raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return e.pdfText(ctx, raw)
	case strings.HasSuffix(lower, ".docx"):
		return docxText(raw)
	case strings.HasSuffix(lower, ".txt"):
		return decodeText(raw)
	}
	return ""
}

// decodeText returns the bytes as a string, replacing invalid UTF-8
// sequences instead of failing on odd encodings.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), "�")
}
