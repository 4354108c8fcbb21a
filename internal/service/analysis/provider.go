package analysis

import (
	"estatedocs/internal/domain/services"
)

// Re-exported aliases so callers inside the analysis service tree can refer
// to the domain types without the longer import.
type (
	Request  = services.AnalysisRequest
	Result   = services.AnalysisResult
	Provider = services.AnalysisProvider
)
