package textract

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
)

// Runner executes an external command and returns stdout and stderr.
// Injected so tests never depend on poppler being installed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// pdfText shells out to pdftotext with layout preserved. The tool reads
// from a temp file and writes to stdout; anything going wrong yields "".
func (e *Extractor) pdfText(ctx context.Context, raw []byte) string {
	tmp, err := os.CreateTemp("", "aoa-*.pdf")
	if err != nil {
		return ""
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return ""
	}
	if err := tmp.Close(); err != nil {
		return ""
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, _, err := e.runner.Run(ctx, e.pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", filepath.Clean(path), "-")
	if err != nil {
		return ""
	}
	return string(out)
}
