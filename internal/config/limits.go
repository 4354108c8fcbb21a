package config

const (
	// MaxFieldValueLength is the maximum length for a single scalar form field.
	// Free-text fields (special instructions, healthcare wishes) are the largest
	// values the wizard accepts; anything longer indicates a paste accident.
	MaxFieldValueLength = 10000

	// MaxPersonNameLength is the maximum length for a person's name.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxPersonNameLength = 255

	// MaxPersonsPerList is the maximum number of entries in a list-valued
	// field (executors, beneficiaries, attorneys, witnesses).
	MaxPersonsPerList = 20

	// MaxAnalysisTextLength is the maximum document length sent to the
	// analysis provider. Longer documents are truncated before the call.
	MaxAnalysisTextLength = 100000
)
