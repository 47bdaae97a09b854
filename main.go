package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aodesk/ao-analyzer/internal/analyze"
	"github.com/aodesk/ao-analyzer/internal/assemble"
	"github.com/aodesk/ao-analyzer/internal/export"
	"github.com/aodesk/ao-analyzer/internal/runs"
	"github.com/aodesk/ao-analyzer/internal/serve"
	"github.com/aodesk/ao-analyzer/pkg/db"
)

func main() {
	app := &cli.App{
		Name:  "aoa",
		Usage: "analyse d'appels d'offre : documents requis, contacts, échéances",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "YAML config file (missing file falls back to defaults)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "json",
				Usage: "output format: json or yaml",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "analyze tender files and print the extraction bundle",
				ArgsUsage: "<file>...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "rules", Usage: "YAML rule catalog overriding the built-in rules"},
					&cli.StringFlag{Name: "pdftotext", Usage: "pdftotext binary path"},
					&cli.BoolFlag{Name: "enrich-urls", Usage: "fetch extracted URLs and attach page titles"},
					&cli.BoolFlag{Name: "save", Usage: "persist the run in the local database"},
					&cli.StringFlag{Name: "db", Value: db.DefaultDBName, Usage: "database file path"},
				},
				Action: analyze.AnalyzeAction,
			},
			{
				Name:      "assemble",
				Usage:     "analyze tender files and build the submission folder",
				ArgsUsage: "<file>...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "tender identifier, e.g. AO-2025-001"},
					&cli.StringFlag{Name: "corpus-dir", Usage: "company document folder searched for required documents"},
					&cli.StringFlag{Name: "output-dir", Usage: "where the submission folder is created"},
					&cli.IntFlag{Name: "max-age-days", Usage: "skip corpus files older than this (0 = no limit)"},
					&cli.StringFlag{Name: "rules", Usage: "YAML rule catalog overriding the built-in rules"},
					&cli.StringFlag{Name: "pdftotext", Usage: "pdftotext binary path"},
					&cli.BoolFlag{Name: "zip", Usage: "also write a ZIP of the submission folder"},
				},
				Action: assemble.AssembleAction,
			},
			{
				Name:      "export",
				Usage:     "export the checklist of a stored run as CSV or XLSX",
				ArgsUsage: "<run-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "export-format", Value: "csv", Usage: "csv or xlsx"},
					&cli.StringFlag{Name: "out", Usage: "output file ('-' for stdout)"},
					&cli.StringFlag{Name: "corpus-dir", Usage: "company document folder searched for required documents"},
					&cli.IntFlag{Name: "max-age-days", Usage: "skip corpus files older than this (0 = no limit)"},
					&cli.StringFlag{Name: "db", Value: db.DefaultDBName, Usage: "database file path"},
				},
				Action: export.ExportAction,
			},
			{
				Name:      "runs",
				Usage:     "list stored analysis runs, or show one by ID",
				ArgsUsage: "[run-id]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "max runs to list (0 = all)"},
					&cli.StringFlag{Name: "db", Value: db.DefaultDBName, Usage: "database file path"},
				},
				Action: runs.RunsAction,
			},
			{
				Name:  "serve",
				Usage: "serve the analysis engine over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8000", Usage: "listen address"},
					&cli.StringFlag{Name: "rules", Usage: "YAML rule catalog overriding the built-in rules"},
					&cli.StringFlag{Name: "pdftotext", Usage: "pdftotext binary path"},
				},
				Action: serve.ServeAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
