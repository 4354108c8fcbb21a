package models

import (
	"time"
)

// DocumentType identifies one of the Ontario legal documents the wizard can
// produce. The type is fixed when a session is created and never changes.
type DocumentType string

const (
	DocumentTypeWill        DocumentType = "will"
	DocumentTypePOAProperty DocumentType = "poa_property"
	DocumentTypePOACare     DocumentType = "poa_care"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeWill, DocumentTypePOAProperty, DocumentTypePOACare:
		return true
	}
	return false
}

// Title returns the display title used as the generated document heading.
func (t DocumentType) Title() string {
	switch t {
	case DocumentTypeWill:
		return "Last Will and Testament"
	case DocumentTypePOAProperty:
		return "Continuing Power of Attorney for Property"
	case DocumentTypePOACare:
		return "Power of Attorney for Personal Care"
	}
	return "Legal Document"
}

// GeneratedDocument is the finalized plain-text legal document produced from
// a completed wizard session. It is derived and read-only: a new generation
// replaces it wholesale, it is never mutated in place.
type GeneratedDocument struct {
	ID           string       `json:"id" db:"id"`
	SessionID    string       `json:"session_id" db:"session_id"`
	DocumentType DocumentType `json:"document_type" db:"document_type"`
	Title        string       `json:"title" db:"title"`
	Content      string       `json:"content" db:"content"`
	// FormData is the snapshot the content was generated from, stored as JSONB.
	FormData  FormData  `json:"form_data" db:"form_data"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
