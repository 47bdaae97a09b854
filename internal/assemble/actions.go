package assemble

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/aodesk/ao-analyzer/internal/analyze"
	"github.com/aodesk/ao-analyzer/internal/common"
	"github.com/aodesk/ao-analyzer/models"
	"github.com/aodesk/ao-analyzer/pkg/assembler"
	"github.com/aodesk/ao-analyzer/pkg/export"
)

// output is what the assemble command prints.
type output struct {
	Folder        string                `yaml:"folder" json:"folder"`
	SubmissionDir string                `yaml:"submission_dir" json:"submission_dir"`
	Zip           string                `yaml:"zip,omitempty" json:"zip,omitempty"`
	Checklist     []models.ChecklistRow `yaml:"checklist" json:"checklist"`
}

func AssembleAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	if c.NArg() == 0 {
		return fmt.Errorf("no input files; usage: aoa assemble --id AO-2025-001 <file>...")
	}

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("corpus-dir") {
		cfg.CorpusDir = c.String("corpus-dir")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("max-age-days") {
		cfg.MaxAgeDays = c.Int("max-age-days")
	}
	if c.IsSet("rules") {
		cfg.RulesFile = c.String("rules")
	}
	if c.IsSet("pdftotext") {
		cfg.Pdftotext = c.String("pdftotext")
	}

	result, sources, err := analyze.Run(c.Context, cfg, c.Args().Slice(), logger)
	if err != nil {
		return err
	}

	a := assembler.New(cfg)
	res, err := a.Assemble(c.String("id"), result, sources)
	if err != nil {
		return err
	}
	logger.Info("folder assembled", "folder", res.Folder, "documents", len(res.Rows))

	// The checklist lands inside the submission folder in both formats.
	csvData, err := export.ChecklistCSV(res.Rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(res.SubmissionDir, "checklist.csv"), csvData, 0o644); err != nil {
		return fmt.Errorf("failed to write checklist.csv: %w", err)
	}
	xlsxData, err := export.ChecklistXLSX(res.Rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(res.SubmissionDir, "checklist.xlsx"), xlsxData, 0o644); err != nil {
		return fmt.Errorf("failed to write checklist.xlsx: %w", err)
	}

	out := output{Folder: res.Folder, SubmissionDir: res.SubmissionDir, Checklist: res.Rows}
	if c.Bool("zip") {
		zipData, err := assembler.ZipDir(res.SubmissionDir)
		if err != nil {
			return err
		}
		zipPath := res.Folder + "_submission.zip"
		if err := os.WriteFile(zipPath, zipData, 0o644); err != nil {
			return fmt.Errorf("failed to write zip: %w", err)
		}
		out.Zip = zipPath
		logger.Info("submission zipped", "path", zipPath)
	}

	return common.WriteOutput(os.Stdout, out, c.String("format"))
}
