package handler

import (
	"log/slog"
	"net/http"

	"estatedocs/internal/domain/models"
	"estatedocs/internal/httputil"
	"estatedocs/internal/wizard"
)

// StepsHandler exposes the static step configuration per document type.
type StepsHandler struct {
	registry *wizard.Registry
	logger   *slog.Logger
}

// NewStepsHandler creates a new steps handler
func NewStepsHandler(registry *wizard.Registry, logger *slog.Logger) *StepsHandler {
	return &StepsHandler{
		registry: registry,
		logger:   logger,
	}
}

// GetSteps returns the ordered step sequence for a document type.
// GET /api/document-types/{type}/steps
//
// Unknown types get the minimal fallback sequence rather than a 404, so the
// rendering layer never branches on configuration-lookup failure.
func (h *StepsHandler) GetSteps(w http.ResponseWriter, r *http.Request) {
	docType := models.DocumentType(r.PathValue("type"))
	steps := h.registry.Steps(docType)

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"document_type": docType,
		"steps":         steps,
	})
}
