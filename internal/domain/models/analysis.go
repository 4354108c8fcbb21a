package models

// Analysis is the result of a best-effort compliance review of a generated
// document. A failed or timed-out analysis degrades to no suggestions; it
// never blocks wizard navigation.
type Analysis struct {
	ComplianceScore float64  `json:"compliance_score"` // 0..1
	Issues          []string `json:"issues"`
	Suggestions     []string `json:"suggestions"`
	Provider        string   `json:"provider"`
	// Version is the session version the analysis was requested against.
	// Callers discard results whose version no longer matches the session,
	// so a slow response never surfaces stale suggestions.
	Version int64 `json:"version"`
}
