package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/aodesk/ao-analyzer/internal/common"
	"github.com/aodesk/ao-analyzer/models"
	"github.com/aodesk/ao-analyzer/pkg/analyzer"
	"github.com/aodesk/ao-analyzer/pkg/db"
	"github.com/aodesk/ao-analyzer/pkg/rules"
	"github.com/aodesk/ao-analyzer/pkg/textract"
	"github.com/aodesk/ao-analyzer/pkg/urlinfo"
)

// Run reads the tender files, extracts their text and runs the engine.
// Shared by the analyze and assemble commands and the HTTP server.
func Run(ctx context.Context, cfg models.Config, paths []string, logger *slog.Logger) (models.AnalysisResult, []models.SourceFile, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return models.AnalysisResult{}, nil, err
	}

	extractor := textract.New(textract.WithPdftotext(cfg.Pdftotext))
	sources := make([]models.SourceFile, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return models.AnalysisResult{}, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		name := filepath.Base(path)
		text := extractor.Text(ctx, name, raw)
		if text == "" {
			logger.Warn("no text extracted", "file", name)
		}
		sources = append(sources, models.SourceFile{Name: name, Raw: raw, Text: text})
	}

	engine := analyzer.New(catalog)
	result := engine.Analyze(sources)
	logger.Info("analysis complete",
		"id", result.ID,
		"sector", string(result.Sector),
		"documents", len(result.Documents),
		"urls", len(result.URLs),
	)
	return result, sources, nil
}

func loadCatalog(cfg models.Config) (*rules.Catalog, error) {
	if cfg.RulesFile == "" {
		return rules.Default(), nil
	}
	catalog, err := rules.LoadFile(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules file: %w", err)
	}
	return catalog, nil
}

// enrichedResult widens the JSON/YAML output with URL titles when the
// --enrich-urls flag is set.
type enrichedResult struct {
	models.AnalysisResult `yaml:",inline"`
	URLDetails            []urlinfo.Info `yaml:"url_details,omitempty" json:"url_details,omitempty"`
}

func AnalyzeAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	if c.NArg() == 0 {
		return fmt.Errorf("no input files; usage: aoa analyze <file>...")
	}

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("rules") {
		cfg.RulesFile = c.String("rules")
	}
	if c.IsSet("pdftotext") {
		cfg.Pdftotext = c.String("pdftotext")
	}

	result, _, err := Run(c.Context, cfg, c.Args().Slice(), logger)
	if err != nil {
		return err
	}

	output := enrichedResult{AnalysisResult: result}
	if c.Bool("enrich-urls") && len(result.URLs) > 0 {
		client := urlinfo.NewClient(time.Duration(cfg.FetchTimeout))
		output.URLDetails = client.Enrich(c.Context, result.URLs)
	}

	if c.Bool("save") {
		database, err := db.Open(c.String("db"))
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.SaveAnalysis(result); err != nil {
			return err
		}
		logger.Info("analysis saved", "id", result.ID, "db", database.Path())
	}

	return common.WriteOutput(os.Stdout, output, c.String("format"))
}
