package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"estatedocs/internal/domain"
	"estatedocs/internal/httputil"
	"estatedocs/internal/service"
	"estatedocs/internal/service/analysis"
)

// DocumentHandler handles generated-document HTTP requests
type DocumentHandler struct {
	documents *service.DocumentService
	exporter  *service.ExportService
	analysis  *analysis.Service
	logger    *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	documents *service.DocumentService,
	exporter *service.ExportService,
	analysisService *analysis.Service,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		exporter:  exporter,
		analysis:  analysisService,
		logger:    logger,
	}
}

// ListDocuments returns the most recently generated documents
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	docs, err := h.documents.ListDocuments(r.Context(), limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"total":     len(docs),
	})
}

// GetDocument retrieves a generated document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a generated document
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.DeleteDocument(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Analyze runs compliance analysis over a stored document. Stored documents
// are immutable, so there is no staleness to guard against here.
// POST /api/documents/{id}/analyze
func (h *DocumentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.analysis.Analyze(r.Context(), doc.Content, doc.DocumentType, 0)
	if err != nil {
		h.logger.Warn("analysis unavailable", "document_id", doc.ID, "error", err)
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"analysis":    nil,
			"unavailable": true,
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"analysis": result,
	})
}

// Export renders a document to PDF or Word via the render service and
// streams the blob back. Export failures are user-visible and retryable.
// POST /api/documents/{id}/export?format=pdf|word
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	result, err := h.exporter.Export(r.Context(), doc, format)
	if err != nil {
		var httpErr domain.HTTPError
		if errors.As(err, &httpErr) {
			handleError(w, err)
			return
		}
		httputil.RespondError(w, http.StatusBadGateway, fmt.Sprintf("export failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
