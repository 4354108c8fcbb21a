package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"estatedocs/internal/domain/models"
	"estatedocs/internal/httputil"
	"estatedocs/internal/service"
	"estatedocs/internal/service/analysis"
)

// SessionHandler handles wizard session HTTP requests
type SessionHandler struct {
	sessions *service.SessionService
	analysis *analysis.Service
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService, analysisService *analysis.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		analysis: analysisService,
		logger:   logger,
	}
}

// CreateSession starts a wizard session for a document type
// POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentType models.DocumentType `json:"document_type"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessions.CreateSession(r.Context(), req.DocumentType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, session)
}

// GetSession retrieves a session, resuming it from its draft if the
// in-memory copy is gone
// GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.ResumeSession(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// AbandonSession drops a session; its draft is flushed first
// DELETE /api/sessions/{id}
func (h *SessionHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.AbandonSession(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateField writes one scalar form field
// PATCH /api/sessions/{id}/fields
func (h *SessionHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Field == "" {
		httputil.RespondError(w, http.StatusBadRequest, "field is required")
		return
	}

	session, err := h.sessions.UpdateField(r.Context(), r.PathValue("id"), req.Field, req.Value)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// AddPerson appends an entry to a list-valued field
// POST /api/sessions/{id}/people
func (h *SessionHandler) AddPerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		List   string              `json:"list"`
		Person models.PersonRecord `json:"person"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessions.AddPerson(r.Context(), r.PathValue("id"), req.List, req.Person)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// RemovePerson removes the entry at an index from a list-valued field
// DELETE /api/sessions/{id}/people/{list}/{index}
func (h *SessionHandler) RemovePerson(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	session, err := h.sessions.RemovePerson(r.Context(), r.PathValue("id"), r.PathValue("list"), index)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// Next validates the current step and advances; on the final step it
// finalizes the session and returns the generated document
// POST /api/sessions/{id}/next
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	result, doc, err := h.sessions.Next(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	session, err := h.sessions.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	response := map[string]interface{}{
		"result":  result,
		"session": session,
	}
	if doc != nil {
		response["document"] = doc
	}

	// Validation failures block progress but are data, not an error status
	httputil.RespondJSON(w, http.StatusOK, response)
}

// Previous moves back one step (floored at the first)
// POST /api/sessions/{id}/previous
func (h *SessionHandler) Previous(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Previous(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// JumpTo moves directly to an already-reached step
// POST /api/sessions/{id}/jump
func (h *SessionHandler) JumpTo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessions.JumpTo(r.Context(), r.PathValue("id"), req.Index)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// Progress returns the step surface for the rendering layer
// GET /api/sessions/{id}/progress
func (h *SessionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.sessions.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, progress)
}

// Preview returns the document text generated from the current form data,
// without persisting anything
// GET /api/sessions/{id}/preview
func (h *SessionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	content, docType, version, err := h.sessions.Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"document_type": docType,
		"content":       content,
		"version":       version,
		"generated_at":  time.Now(),
	})
}

// Analyze runs best-effort compliance analysis over the current form's
// preview text. If the session changed while the analysis was in flight the
// stale result is discarded rather than shown.
// POST /api/sessions/{id}/analyze
func (h *SessionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	content, docType, version, err := h.sessions.Preview(r.Context(), sessionID)
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.analysis.Analyze(r.Context(), content, docType, version)
	if err != nil {
		// Best effort: degrade to "suggestions unavailable"
		h.logger.Warn("analysis unavailable", "session_id", sessionID, "error", err)
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"analysis":    nil,
			"stale":       false,
			"unavailable": true,
		})
		return
	}

	current, err := h.sessions.Version(r.Context(), sessionID)
	if err != nil {
		handleError(w, err)
		return
	}
	if current != result.Version {
		// The form moved on while the provider was thinking
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"analysis": nil,
			"stale":    true,
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"analysis": result,
		"stale":    false,
	})
}
