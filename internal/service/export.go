package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"estatedocs/internal/domain"
	"estatedocs/internal/domain/models"
)

// Export formats accepted by the render service.
const (
	ExportFormatPDF  = "pdf"
	ExportFormatWord = "word"
)

// ExportResult is the rendered binary returned to the client for download.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService hands generated documents to the external render service for
// PDF/Word rendering. The binary format internals stay on the other side of
// this boundary; failures come back as result values the user can retry.
type ExportService struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewExportService creates an export service targeting the render service.
func NewExportService(baseURL string, logger *slog.Logger) *ExportService {
	return &ExportService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type renderRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Format  string `json:"format"`
}

// Export renders a document in the requested format.
func (s *ExportService) Export(ctx context.Context, doc *models.GeneratedDocument, format string) (*ExportResult, error) {
	if err := validation.Validate(format,
		validation.Required.Error("format is required"),
		validation.In(ExportFormatPDF, ExportFormatWord).Error(`format must be "pdf" or "word"`),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	body, err := json.Marshal(renderRequest{
		Title:   doc.Title,
		Content: doc.Content,
		Format:  format,
	})
	if err != nil {
		return nil, fmt.Errorf("encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("render service unreachable", "error", err)
		return nil, fmt.Errorf("render service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("render service returned error",
			"status", resp.StatusCode,
			"format", format,
			"document_id", doc.ID,
		)
		return nil, fmt.Errorf("render service returned status %d", resp.StatusCode)
	}

	// 25MB cap; rendered legal documents are far smaller
	data, err := io.ReadAll(io.LimitReader(resp.Body, 25<<20))
	if err != nil {
		return nil, fmt.Errorf("read rendered document: %w", err)
	}

	return &ExportResult{
		Data:        data,
		ContentType: contentTypeFor(format),
		Filename:    fmt.Sprintf("%s.%s", doc.ID, extensionFor(format)),
	}, nil
}

func contentTypeFor(format string) string {
	if format == ExportFormatWord {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/pdf"
}

func extensionFor(format string) string {
	if format == ExportFormatWord {
		return "docx"
	}
	return "pdf"
}
