package wizard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"estatedocs/internal/config"
	"estatedocs/internal/domain"
	"estatedocs/internal/domain/models"
)

// Session is one document-creation session: a document type, its ordered
// steps, the form data being filled in, and the navigation state. A session
// has exactly one writer; the service layer serializes access per session.
//
// Invariant: 0 <= CurrentStepIndex < len(Steps). Advancing past the last step
// completes the session instead of incrementing out of bounds.
type Session struct {
	ID           string                  `json:"id"`
	DocumentType models.DocumentType     `json:"document_type"`
	Steps        []models.StepDescriptor `json:"steps"`

	CurrentStepIndex int `json:"current_step_index"`
	// FurthestStepIndex is the highest step the user has validated past.
	// JumpTo is bounded by it so forward jumps cannot skip validation.
	FurthestStepIndex int `json:"furthest_step_index"`

	FormData         models.FormData   `json:"form_data"`
	ValidationErrors domain.StepErrors `json:"validation_errors"`

	// Version increments on every mutation. Asynchronous collaborators
	// (analysis) tag requests with it and discard stale responses.
	Version int64 `json:"version"`

	Completed bool `json:"completed"`
	// DocumentID is set once the session completes and the generated
	// document is persisted.
	DocumentID string `json:"document_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NextResult reports the outcome of a Next call.
type NextResult struct {
	// Advanced is true when the session moved to the next step.
	Advanced bool `json:"advanced"`
	// Completed is true when Next succeeded on the final step.
	Completed bool `json:"completed"`
	// Errors holds the per-field messages that blocked the transition.
	// Empty when Advanced or Completed.
	Errors domain.StepErrors `json:"errors"`
}

// NewSession creates a session for a document type. The type must be one of
// the known types: the UI layer never offers entry without a valid type, so a
// bad type here is a programmer error and fails loudly.
func NewSession(docType models.DocumentType, registry *Registry) (*Session, error) {
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownType, docType)
	}

	now := time.Now()
	return &Session{
		ID:               uuid.NewString(),
		DocumentType:     docType,
		Steps:            registry.Steps(docType),
		FormData:         models.NewFormData(),
		ValidationErrors: domain.StepErrors{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// CurrentStep returns the descriptor for the step the session is on.
func (s *Session) CurrentStep() models.StepDescriptor {
	return s.Steps[s.CurrentStepIndex]
}

// UpdateField writes a scalar field. A previously recorded validation error
// for that field is cleared immediately (optimistic clearing - the field is
// not re-validated until the next forward attempt).
func (s *Session) UpdateField(name, value string) error {
	if s.Completed {
		return &domain.CompletedError{Message: "session is completed; form data is frozen"}
	}
	if models.IsListField(name) {
		return &domain.ValidationError{Message: fmt.Sprintf("field %q is list-valued; use the person list operations", name)}
	}
	if len(value) > config.MaxFieldValueLength {
		return &domain.ValidationError{Message: fmt.Sprintf("field %q exceeds %d characters", name, config.MaxFieldValueLength)}
	}

	s.FormData.SetField(name, value)
	delete(s.ValidationErrors, name)
	s.touch()
	return nil
}

// AddPerson appends an entry to a list-valued field. Entries are independent
// records even when their field values match.
func (s *Session) AddPerson(listField string, p models.PersonRecord) error {
	if s.Completed {
		return &domain.CompletedError{Message: "session is completed; form data is frozen"}
	}
	if !models.IsListField(listField) {
		return &domain.ValidationError{Message: fmt.Sprintf("unknown person list %q", listField)}
	}
	if len(s.FormData.People[listField]) >= config.MaxPersonsPerList {
		return &domain.ValidationError{Message: fmt.Sprintf("%s already has %d entries", listField, config.MaxPersonsPerList)}
	}

	s.FormData.People[listField] = append(s.FormData.People[listField], p)
	delete(s.ValidationErrors, listField)
	s.touch()
	return nil
}

// RemovePerson removes the entry at index from a list-valued field.
func (s *Session) RemovePerson(listField string, index int) error {
	if s.Completed {
		return &domain.CompletedError{Message: "session is completed; form data is frozen"}
	}
	if !models.IsListField(listField) {
		return &domain.ValidationError{Message: fmt.Sprintf("unknown person list %q", listField)}
	}

	list := s.FormData.People[listField]
	if index < 0 || index >= len(list) {
		return &domain.ValidationError{Message: fmt.Sprintf("%s has no entry at index %d", listField, index)}
	}

	s.FormData.People[listField] = append(list[:index], list[index+1:]...)
	s.touch()
	return nil
}

// Next validates the current step and advances on success. On the final step
// a successful validation completes the session instead; the caller then
// performs generation and persistence. Validation failures are stored on the
// session and block the transition - they never abort the session.
func (s *Session) Next() NextResult {
	if s.Completed {
		return NextResult{Completed: true, Errors: domain.StepErrors{}}
	}

	errs := ValidateStep(s.CurrentStep().ID, s.FormData)
	if !errs.Empty() {
		s.ValidationErrors = errs
		s.touch()
		return NextResult{Errors: errs}
	}

	s.ValidationErrors = domain.StepErrors{}

	if s.CurrentStepIndex < len(s.Steps)-1 {
		s.CurrentStepIndex++
		if s.CurrentStepIndex > s.FurthestStepIndex {
			s.FurthestStepIndex = s.CurrentStepIndex
		}
		s.touch()
		return NextResult{Advanced: true, Errors: domain.StepErrors{}}
	}

	s.Completed = true
	s.touch()
	return NextResult{Completed: true, Errors: domain.StepErrors{}}
}

// Previous moves back one step, floored at the first step. Retreating never
// validates: users may always go back.
func (s *Session) Previous() {
	if s.CurrentStepIndex > 0 {
		s.CurrentStepIndex--
		s.touch()
	}
}

// JumpTo moves directly to a step the user has already reached. Jumping past
// the furthest validated step is rejected so validation cannot be skipped.
func (s *Session) JumpTo(index int) error {
	if index < 0 || index >= len(s.Steps) {
		return &domain.ValidationError{Message: fmt.Sprintf("step index %d out of range", index)}
	}
	if index > s.FurthestStepIndex {
		return &domain.ValidationError{Message: fmt.Sprintf("cannot jump ahead of progress (furthest step is %d)", s.FurthestStepIndex)}
	}

	s.CurrentStepIndex = index
	s.touch()
	return nil
}

// Progress returns the step-configuration surface for the rendering layer.
func (s *Session) Progress() models.Progress {
	return models.Progress{
		Steps:            s.Steps,
		CurrentStepIndex: s.CurrentStepIndex,
		ProgressPercent:  float64(s.CurrentStepIndex+1) / float64(len(s.Steps)),
	}
}

// Snapshot returns a draft of the session's current form state. The form
// data is deep-copied so later edits cannot mutate the saved draft. A
// completed session has no draft: the persisted document replaced it, and a
// late save must not resurrect the deleted draft row.
func (s *Session) Snapshot() *models.Draft {
	if s.Completed {
		return nil
	}
	return &models.Draft{
		SessionID:        s.ID,
		DocumentType:     s.DocumentType,
		CurrentStepIndex: s.CurrentStepIndex,
		FormData:         s.FormData.Clone(),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        time.Now(),
	}
}

// Restore rebuilds a session's form state from a persisted draft.
func (s *Session) Restore(draft *models.Draft) {
	s.FormData = draft.FormData.Clone()
	s.CurrentStepIndex = draft.CurrentStepIndex
	if s.CurrentStepIndex >= len(s.Steps) {
		s.CurrentStepIndex = len(s.Steps) - 1
	}
	s.FurthestStepIndex = s.CurrentStepIndex
	s.touch()
}

func (s *Session) touch() {
	s.Version++
	s.UpdatedAt = time.Now()
}
