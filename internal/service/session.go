package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"estatedocs/internal/docgen"
	"estatedocs/internal/domain"
	"estatedocs/internal/domain/models"
	"estatedocs/internal/domain/repositories"
	"estatedocs/internal/wizard"
)

// SessionService owns the live wizard sessions. Sessions live in memory for
// the duration of the flow; the draft repository holds the durable snapshot.
// Every session has exactly one writer: all mutations go through withSession,
// which serializes access per session, so the wizard state machine itself
// needs no locking.
type SessionService struct {
	registry  *wizard.Registry
	drafts    repositories.DraftRepository
	documents repositories.DocumentRepository
	txManager repositories.TransactionManager
	autosaver *Autosaver
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *wizard.Session
}

// NewSessionService creates a session service.
func NewSessionService(
	registry *wizard.Registry,
	drafts repositories.DraftRepository,
	documents repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	autosaver *Autosaver,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		registry:  registry,
		drafts:    drafts,
		documents: documents,
		txManager: txManager,
		autosaver: autosaver,
		logger:    logger,
		sessions:  make(map[string]*sessionEntry),
	}
}

// CreateSession starts a new wizard session for a document type.
func (s *SessionService) CreateSession(ctx context.Context, docType models.DocumentType) (*wizard.Session, error) {
	session, err := wizard.NewSession(docType, s.registry)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownType) {
			return nil, &domain.ValidationError{Message: err.Error()}
		}
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	s.logger.Info("session created",
		"session_id", session.ID,
		"document_type", docType,
		"steps", len(session.Steps),
	)

	return copySession(session), nil
}

// ResumeSession rebuilds a session from its persisted draft. Used when the
// user returns after the in-memory session was lost (restart, eviction).
func (s *SessionService) ResumeSession(ctx context.Context, sessionID string) (*wizard.Session, error) {
	s.mu.RLock()
	_, alive := s.sessions[sessionID]
	s.mu.RUnlock()
	if alive {
		return s.GetSession(ctx, sessionID)
	}

	draft, err := s.drafts.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := wizard.NewSession(draft.DocumentType, s.registry)
	if err != nil {
		return nil, fmt.Errorf("resume session %s: %w", sessionID, err)
	}
	session.ID = draft.SessionID
	session.CreatedAt = draft.CreatedAt
	session.Restore(draft)

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	s.logger.Info("session resumed from draft",
		"session_id", session.ID,
		"document_type", session.DocumentType,
		"step", session.CurrentStepIndex,
	)

	return copySession(session), nil
}

// GetSession returns a copy of the session's current state.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*wizard.Session, error) {
	var out *wizard.Session
	err := s.withSession(sessionID, func(session *wizard.Session) error {
		out = copySession(session)
		return nil
	})
	return out, err
}

// UpdateField writes a scalar field and schedules a debounced draft save.
func (s *SessionService) UpdateField(ctx context.Context, sessionID, field, value string) (*wizard.Session, error) {
	var out *wizard.Session
	err := s.withSession(sessionID, func(session *wizard.Session) error {
		if err := session.UpdateField(field, value); err != nil {
			return err
		}
		s.scheduleSave(sessionID)
		out = copySession(session)
		return nil
	})
	return out, err
}

// AddPerson appends an entry to a list-valued field.
func (s *SessionService) AddPerson(ctx context.Context, sessionID, listField string, p models.PersonRecord) (*wizard.Session, error) {
	var out *wizard.Session
	err := s.withSession(sessionID, func(session *wizard.Session) error {
		if err := session.AddPerson(listField, p); err != nil {
			return err
		}
		s.scheduleSave(sessionID)
		out = copySession(session)
		return nil
	})
	return out, err
}

// RemovePerson removes the entry at index from a list-valued field.
func (s *SessionService) RemovePerson(ctx context.Context, sessionID, listField string, index int) (*wizard.Session, error) {
	var out *wizard.Session
	err := s.withSession(sessionID, func(session *wizard.Session) error {
		if err := session.RemovePerson(listField, index); err != nil {
			return err
		}
		s.scheduleSave(sessionID)
		out = copySession(session)
		return nil
	})
	return out, err
}

// Next advances the session. On the final step it finalizes instead:
// generates the document text, persists the document, and deletes the draft
// in one transaction. The returned document is non-nil only on completion.
func (s *SessionService) Next(ctx context.Context, sessionID string) (wizard.NextResult, *models.GeneratedDocument, error) {
	var result wizard.NextResult
	var doc *models.GeneratedDocument

	err := s.withSession(sessionID, func(session *wizard.Session) error {
		result = session.Next()

		if !result.Errors.Empty() {
			return nil
		}

		if result.Completed && session.DocumentID == "" {
			finalized, err := s.finalize(ctx, session)
			if err != nil {
				// Finalization failed; reopen the final step so the
				// user can retry rather than losing the session.
				session.Completed = false
				return err
			}
			doc = finalized
			return nil
		}

		s.scheduleSave(sessionID)
		return nil
	})

	return result, doc, err
}

// finalize generates the document and swaps the draft for the persisted
// document atomically.
func (s *SessionService) finalize(ctx context.Context, session *wizard.Session) (*models.GeneratedDocument, error) {
	content, err := docgen.Generate(session.FormData, session.DocumentType, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate document: %w", err)
	}

	doc := &models.GeneratedDocument{
		ID:           uuid.NewString(),
		SessionID:    session.ID,
		DocumentType: session.DocumentType,
		Title:        session.DocumentType.Title(),
		Content:      content,
		FormData:     session.FormData.Clone(),
		CreatedAt:    time.Now(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.documents.Create(txCtx, doc); err != nil {
			return err
		}
		return s.drafts.Delete(txCtx, session.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}

	session.DocumentID = doc.ID
	s.autosaver.Forget(session.ID)

	s.logger.Info("session completed",
		"session_id", session.ID,
		"document_id", doc.ID,
		"document_type", doc.DocumentType,
	)

	return doc, nil
}

// Previous moves back one step, floored at the first step.
func (s *SessionService) Previous(ctx context.Context, sessionID string) (*wizard.Session, error) {
	var out *wizard.Session
	err := s.withSession(sessionID, func(session *wizard.Session) error {
		session.Previous()
		s.scheduleSave(sessionID)
		out = copySession(session)
		return nil
	})
	return out, err
}

// JumpTo moves directly to an already-reached step.
func (s *SessionService) JumpTo(ctx context.Context, sessionID string, index int) (*wizard.Session, error) {
	var out *wizard.Session
	err := s.withSession(sessionID, func(session *wizard.Session) error {
		if err := session.JumpTo(index); err != nil {
			return err
		}
		s.scheduleSave(sessionID)
		out = copySession(session)
		return nil
	})
	return out, err
}

// Progress returns the step-configuration surface for the rendering layer.
func (s *SessionService) Progress(ctx context.Context, sessionID string) (models.Progress, error) {
	var out models.Progress
	err := s.withSession(sessionID, func(session *wizard.Session) error {
		out = session.Progress()
		return nil
	})
	return out, err
}

// Preview generates the document text from the session's current form data
// without persisting anything. The returned version identifies the form
// snapshot the text was generated from.
func (s *SessionService) Preview(ctx context.Context, sessionID string) (string, models.DocumentType, int64, error) {
	var content string
	var docType models.DocumentType
	var version int64

	err := s.withSession(sessionID, func(session *wizard.Session) error {
		text, err := docgen.Generate(session.FormData, session.DocumentType, time.Now())
		if err != nil {
			return err
		}
		content = text
		docType = session.DocumentType
		version = session.Version
		return nil
	})

	return content, docType, version, err
}

// Version returns the session's current version token.
func (s *SessionService) Version(ctx context.Context, sessionID string) (int64, error) {
	var version int64
	err := s.withSession(sessionID, func(session *wizard.Session) error {
		version = session.Version
		return nil
	})
	return version, err
}

// AbandonSession drops a session from memory. The latest snapshot is flushed
// first so the draft survives for a later resume; in-flight saves complete
// rather than being cancelled. The entry stays in the map until the flush is
// done: the armed snapshot closure resolves the session by id, so evicting
// first would hand the flush a nil draft and lose the final edits.
func (s *SessionService) AbandonSession(ctx context.Context, sessionID string) error {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}

	entry.mu.Lock()
	completed := entry.session.Completed
	entry.mu.Unlock()

	if !completed {
		if err := s.autosaver.Flush(ctx, sessionID); err != nil {
			s.logger.Warn("final draft flush failed on abandon",
				"session_id", sessionID,
				"error", err,
			)
		}
	}
	s.autosaver.Forget(sessionID)

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.logger.Info("session abandoned", "session_id", sessionID)
	return nil
}

// withSession runs fn with the session locked. Lookups miss for sessions the
// process has never seen; callers resume from the draft in that case.
func (s *SessionService) withSession(sessionID string, fn func(*wizard.Session) error) error {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// scheduleSave arms the debounced autosave with a snapshot function that
// captures the latest session state at save time. Callers hold the session
// entry lock; the snapshot function re-acquires it when the save fires.
func (s *SessionService) scheduleSave(sessionID string) {
	s.autosaver.Schedule(sessionID, func() *models.Draft {
		s.mu.RLock()
		entry, ok := s.sessions[sessionID]
		s.mu.RUnlock()
		if !ok {
			return nil
		}

		entry.mu.Lock()
		defer entry.mu.Unlock()
		return entry.session.Snapshot()
	})
}

// copySession returns a detached copy safe to serialize outside the session
// lock. Maps and slices are duplicated; the caller owns the result.
func copySession(session *wizard.Session) *wizard.Session {
	c := *session
	c.FormData = session.FormData.Clone()
	c.ValidationErrors = make(domain.StepErrors, len(session.ValidationErrors))
	for k, v := range session.ValidationErrors {
		c.ValidationErrors[k] = v
	}
	c.Steps = make([]models.StepDescriptor, len(session.Steps))
	copy(c.Steps, session.Steps)
	return &c
}
