package services

import (
	"context"

	"estatedocs/internal/domain/models"
)

// AnalysisRequest is one compliance-review call against a generated document.
type AnalysisRequest struct {
	DocumentText string
	DocumentType models.DocumentType
	Model        string
}

// AnalysisResult is a provider's raw review. The analysis service stamps
// provider name and session version before handing it to callers.
type AnalysisResult struct {
	ComplianceScore float64  `json:"compliance_score"`
	Issues          []string `json:"issues"`
	Suggestions     []string `json:"suggestions"`
}

// AnalysisProvider reviews a document for Ontario-compliance issues.
// Providers are best-effort collaborators: an error means "no suggestions",
// never a blocked wizard.
type AnalysisProvider interface {
	// Name returns the provider name used for registry lookup.
	Name() string
	// Analyze reviews the document and returns issues and suggestions.
	Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResult, error)
}
