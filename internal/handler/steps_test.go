package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"estatedocs/internal/domain/models"
	"estatedocs/internal/wizard"
)

func TestGetSteps(t *testing.T) {
	registry, err := wizard.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	h := NewStepsHandler(registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/document-types/{type}/steps", h.GetSteps)

	tests := []struct {
		docType  string
		minSteps int
	}{
		{"will", 7},
		{"poa_property", 5},
		{"poa_care", 5},
		{"deed", 1}, // unknown type falls back, never 404s
	}

	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/document-types/"+tt.docType+"/steps", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var body struct {
				DocumentType models.DocumentType     `json:"document_type"`
				Steps        []models.StepDescriptor `json:"steps"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(body.Steps) < tt.minSteps {
				t.Errorf("steps = %d, want at least %d", len(body.Steps), tt.minSteps)
			}
			if body.Steps[0].ID != "personal" {
				t.Errorf("first step = %q, want personal", body.Steps[0].ID)
			}
		})
	}
}
