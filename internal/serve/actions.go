package serve

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/aodesk/ao-analyzer/internal/common"
	"github.com/aodesk/ao-analyzer/models"
	"github.com/aodesk/ao-analyzer/pkg/analyzer"
	"github.com/aodesk/ao-analyzer/pkg/rules"
	"github.com/aodesk/ao-analyzer/pkg/textract"
)

// maxUploadBytes bounds one multipart analyze request.
const maxUploadBytes = 64 << 20

// analyzeResponse is the JSON bundle returned by POST /analyze.
type analyzeResponse struct {
	Success           bool                      `json:"success"`
	Message           string                    `json:"message,omitempty"`
	ID                string                    `json:"id,omitempty"`
	Sector            string                    `json:"sector,omitempty"`
	RequiredDocuments []models.RequiredDocument `json:"required_documents,omitempty"`
	EmailTo           string                    `json:"email_to,omitempty"`
	PostalAddress     string                    `json:"postal_address,omitempty"`
	Buyer             string                    `json:"buyer,omitempty"`
	Deadline          string                    `json:"deadline,omitempty"`
	URLs              []string                  `json:"urls,omitempty"`
	Language          string                    `json:"language,omitempty"`
	Warnings          []string                  `json:"warnings,omitempty"`
}

// Server exposes the analysis engine over HTTP.
type Server struct {
	engine    *analyzer.Analyzer
	extractor *textract.Extractor
	logger    *slog.Logger
}

// NewServer wires the engine for HTTP use.
func NewServer(catalog *rules.Catalog, extractor *textract.Extractor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:    analyzer.New(catalog),
		extractor: extractor,
		logger:    logger,
	}
}

// Handler returns the HTTP routes: POST /analyze and GET /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, analyzeResponse{
			Success: false, Message: "method not allowed",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	reader, err := r.MultipartReader()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, analyzeResponse{
			Success: false, Message: "multipart form with a 'files' field expected",
		})
		return
	}

	var sources []models.SourceFile
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, analyzeResponse{
				Success: false, Message: "failed to read multipart form",
			})
			return
		}
		if part.FormName() != "files" || part.FileName() == "" {
			continue
		}
		raw, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, analyzeResponse{
				Success: false, Message: fmt.Sprintf("failed to read %s", part.FileName()),
			})
			return
		}
		text := s.extractor.Text(r.Context(), part.FileName(), raw)
		sources = append(sources, models.SourceFile{Name: part.FileName(), Raw: raw, Text: text})
	}

	hasText := false
	for _, src := range sources {
		if src.Text != "" {
			hasText = true
			break
		}
	}
	if !hasText {
		writeJSON(w, http.StatusOK, analyzeResponse{
			Success: false,
			Message: "Aucun texte n'a pu être extrait des documents.",
		})
		return
	}

	result := s.engine.Analyze(sources)
	s.logger.Info("analyze request served",
		"id", result.ID,
		"files", len(sources),
		"sector", string(result.Sector),
		"documents", len(result.Documents),
	)

	resp := analyzeResponse{
		Success:           true,
		ID:                result.ID,
		Sector:            string(result.Sector),
		RequiredDocuments: result.Documents,
		EmailTo:           result.Email,
		PostalAddress:     result.PostalAddress,
		Buyer:             result.Buyer,
		URLs:              result.URLs,
		Language:          result.Language,
		Warnings:          result.Warnings,
	}
	if result.Deadline != nil {
		resp.Deadline = result.Deadline.At.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ServeAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

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

	catalog := rules.Default()
	if cfg.RulesFile != "" {
		if catalog, err = rules.LoadFile(cfg.RulesFile); err != nil {
			return fmt.Errorf("failed to load rules file: %w", err)
		}
	}

	server := NewServer(catalog, textract.New(textract.WithPdftotext(cfg.Pdftotext)), logger)
	addr := c.String("addr")
	logger.Info("listening", "addr", addr)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return httpServer.ListenAndServe()
}
