// Package assembler builds the submission folder for an analyzed tender:
// it looks each required document up in the company corpus, copies the
// matches, and writes the checklist, README, metadata and email draft.
package assembler

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aodesk/ao-analyzer/models"
	"github.com/aodesk/ao-analyzer/pkg/corpus"
)

// Assembler assembles submission folders. Zero value is not usable; set
// the directories before calling Assemble.
type Assembler struct {
	// CorpusDir is the company-document folder searched for each
	// required document.
	CorpusDir string
	// OutputDir receives one subfolder per assembled tender.
	OutputDir string
	// MaxAgeDays excludes corpus files older than this from the search.
	// Zero disables the age check.
	MaxAgeDays int

	// now is swapped in tests to pin folder names.
	now func() time.Time
}

// Result describes an assembled folder.
type Result struct {
	Folder        string
	SubmissionDir string
	Rows          []models.ChecklistRow
}

// metadata is the shape of the metadata.yaml file dropped in the folder.
type metadata struct {
	TenderID  string   `yaml:"tender_id"`
	Buyer     string   `yaml:"buyer,omitempty"`
	Sector    string   `yaml:"sector,omitempty"`
	Deadline  string   `yaml:"deadline,omitempty"`
	Email     string   `yaml:"email,omitempty"`
	CreatedAt string   `yaml:"created_at"`
	Files     []string `yaml:"source_files,omitempty"`
}

var slugUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Slugify converts a free-form tender identifier into a folder-name-safe
// slug; an empty or fully unsafe value falls back to "ao".
func Slugify(value string) string {
	slug := strings.ToLower(strings.Trim(slugUnsafe.ReplaceAllString(value, "-"), "-"))
	if slug == "" {
		return "ao"
	}
	return slug
}

// New returns an assembler over the given corpus and output directories.
func New(cfg models.Config) *Assembler {
	return &Assembler{
		CorpusDir:  cfg.CorpusDir,
		OutputDir:  cfg.OutputDir,
		MaxAgeDays: cfg.MaxAgeDays,
		now:        time.Now,
	}
}

// Assemble builds the folder for one analyzed tender. Source files are
// archived under source/, corpus matches are copied under submission/,
// and the checklist, README.md, metadata.yaml and email_draft.txt are
// written at the folder root. A document found with every search term is
// OK; a partial filename match is copied anyway and marked DRAFT; no
// match at all is MISSING.
func (a *Assembler) Assemble(tenderID string, analysis models.AnalysisResult, sources []models.SourceFile) (*Result, error) {
	if a.now == nil {
		a.now = time.Now
	}
	stamp := a.now().Format("20060102_150405")
	folder := filepath.Join(a.OutputDir, fmt.Sprintf("%s_%s", Slugify(tenderID), stamp))

	sourceDir := filepath.Join(folder, "source")
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	for _, src := range sources {
		if len(src.Raw) == 0 {
			continue
		}
		target := filepath.Join(sourceDir, filepath.Base(src.Name))
		if err := os.WriteFile(target, src.Raw, 0o644); err != nil {
			return nil, fmt.Errorf("archive source %s: %w", src.Name, err)
		}
	}

	submissionDir := filepath.Join(folder, "submission")
	if err := os.MkdirAll(submissionDir, 0o755); err != nil {
		return nil, fmt.Errorf("create submission dir: %w", err)
	}

	rows := make([]models.ChecklistRow, 0, len(analysis.Documents))
	for _, doc := range analysis.Documents {
		rows = append(rows, a.resolveDocument(doc, submissionDir))
	}

	if err := a.writeReadme(folder, tenderID, analysis, rows); err != nil {
		return nil, err
	}
	if err := a.writeMetadata(folder, tenderID, analysis); err != nil {
		return nil, err
	}
	if err := WriteEmailDraft(folder, tenderID, analysis, rows); err != nil {
		return nil, err
	}

	return &Result{Folder: folder, SubmissionDir: submissionDir, Rows: rows}, nil
}

// resolveDocument searches the corpus for one required document and
// copies the best candidate into the submission folder.
func (a *Assembler) resolveDocument(doc models.RequiredDocument, submissionDir string) models.ChecklistRow {
	row := models.ChecklistRow{Key: doc.Key, Label: doc.Label, Status: models.StatusMissing}
	terms := corpus.BuildSearchTerms(doc.Label, doc.Keywords)

	source := corpus.FindBestDoc(a.CorpusDir, terms, a.MaxAgeDays)
	status := models.StatusOK
	if source == "" {
		// Fall back to a partial match: usable, but flagged for review.
		if partial := corpus.FindAllMatching(a.CorpusDir, terms, a.MaxAgeDays); len(partial) > 0 {
			source = partial[0]
			status = models.StatusDraft
		}
	}
	if source == "" {
		return row
	}

	target, err := corpus.CopyInto(source, submissionDir)
	if err != nil {
		// Found but uncopyable still needs a human: keep it visible.
		row.Source = source
		return row
	}
	row.Status = status
	row.Source = source
	row.SubmissionPath = target
	return row
}

// writeReadme writes the folder README: extracted metadata summary first,
// then the checklist as a Markdown table.
func (a *Assembler) writeReadme(folder, tenderID string, analysis models.AnalysisResult, rows []models.ChecklistRow) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dossier de soumission %s\n\n", tenderID)
	if analysis.Buyer != "" {
		fmt.Fprintf(&b, "- Acheteur : %s\n", analysis.Buyer)
	}
	if analysis.Sector != models.SectorNone {
		fmt.Fprintf(&b, "- Secteur : %s\n", analysis.Sector)
	}
	if analysis.Deadline != nil {
		fmt.Fprintf(&b, "- Date limite : %s\n", analysis.Deadline.At.Format("02/01/2006 15:04"))
	}
	if analysis.Email != "" {
		fmt.Fprintf(&b, "- Contact : %s\n", analysis.Email)
	}
	b.WriteString("\n")
	b.WriteString(MarkdownTable(rows))
	b.WriteString("\n")
	return os.WriteFile(filepath.Join(folder, "README.md"), []byte(b.String()), 0o644)
}

func (a *Assembler) writeMetadata(folder, tenderID string, analysis models.AnalysisResult) error {
	meta := metadata{
		TenderID:  tenderID,
		Buyer:     analysis.Buyer,
		Sector:    string(analysis.Sector),
		Email:     analysis.Email,
		CreatedAt: a.now().UTC().Format(time.RFC3339),
		Files:     analysis.FileNames,
	}
	if analysis.Deadline != nil {
		meta.Deadline = analysis.Deadline.At.Format(time.RFC3339)
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(folder, "metadata.yaml"), data, 0o644)
}

// MarkdownTable renders the checklist as a GitHub-style Markdown table.
func MarkdownTable(rows []models.ChecklistRow) string {
	var b strings.Builder
	b.WriteString("| Key | Label | Status | Source | Submission |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			row.Key, row.Label, row.Status, row.Source, row.SubmissionPath)
	}
	return b.String()
}
