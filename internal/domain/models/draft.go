package models

import "time"

// Draft is an incomplete, persisted snapshot of a wizard session's form data.
// One draft exists per session; saves replace it wholesale.
type Draft struct {
	SessionID        string       `json:"session_id" db:"session_id"`
	DocumentType     DocumentType `json:"document_type" db:"document_type"`
	CurrentStepIndex int          `json:"current_step_index" db:"current_step_index"`
	FormData         FormData     `json:"form_data" db:"form_data"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}
