package export

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aodesk/ao-analyzer/internal/common"
	"github.com/aodesk/ao-analyzer/models"
	"github.com/aodesk/ao-analyzer/pkg/corpus"
	"github.com/aodesk/ao-analyzer/pkg/db"
	checklist "github.com/aodesk/ao-analyzer/pkg/export"
)

// ExportAction renders the checklist of a stored run as CSV or XLSX.
// Corpus resolution is a dry run: statuses are computed, nothing is
// copied anywhere.
func ExportAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("no run ID; usage: aoa export <run-id> --out checklist.csv")
	}

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("corpus-dir") {
		cfg.CorpusDir = c.String("corpus-dir")
	}
	if c.IsSet("max-age-days") {
		cfg.MaxAgeDays = c.Int("max-age-days")
	}

	database, err := db.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer database.Close()

	result, err := database.GetAnalysis(id)
	if err != nil {
		return err
	}

	rows := make([]models.ChecklistRow, 0, len(result.Documents))
	for _, doc := range result.Documents {
		rows = append(rows, resolveRow(doc, cfg))
	}

	var data []byte
	switch format := c.String("export-format"); format {
	case "", "csv":
		data, err = checklist.ChecklistCSV(rows)
	case "xlsx":
		data, err = checklist.ChecklistXLSX(rows)
	default:
		return fmt.Errorf("unknown export format: %q (use csv or xlsx)", format)
	}
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" || out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	logger.Info("checklist exported", "run", id, "path", out, "rows", len(rows))
	return nil
}

func resolveRow(doc models.RequiredDocument, cfg models.Config) models.ChecklistRow {
	row := models.ChecklistRow{Key: doc.Key, Label: doc.Label, Status: models.StatusMissing}
	terms := corpus.BuildSearchTerms(doc.Label, doc.Keywords)

	if source := corpus.FindBestDoc(cfg.CorpusDir, terms, cfg.MaxAgeDays); source != "" {
		row.Status = models.StatusOK
		row.Source = source
		return row
	}
	if partial := corpus.FindAllMatching(cfg.CorpusDir, terms, cfg.MaxAgeDays); len(partial) > 0 {
		row.Status = models.StatusDraft
		row.Source = partial[0]
	}
	return row
}
