package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"estatedocs/internal/domain"
	"estatedocs/internal/domain/models"
	"estatedocs/internal/domain/repositories"
)

// PostgresDraftRepository implements the DraftRepository interface
type PostgresDraftRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(config *RepositoryConfig) repositories.DraftRepository {
	return &PostgresDraftRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Save upserts the draft for a session. The draft row always holds the latest
// snapshot; the form data is stored as JSONB.
func (r *PostgresDraftRepository) Save(ctx context.Context, draft *models.Draft) error {
	formJSON, err := json.Marshal(draft.FormData)
	if err != nil {
		return fmt.Errorf("encode form data: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (session_id, document_type, current_step_index, form_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO UPDATE SET
			current_step_index = EXCLUDED.current_step_index,
			form_data = EXCLUDED.form_data,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Drafts)

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		draft.SessionID,
		draft.DocumentType,
		draft.CurrentStepIndex,
		formJSON,
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	return nil
}

// GetBySessionID retrieves the draft for a session
func (r *PostgresDraftRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Draft, error) {
	query := fmt.Sprintf(`
		SELECT session_id, document_type, current_step_index, form_data, created_at, updated_at
		FROM %s
		WHERE session_id = $1
	`, r.tables.Drafts)

	var draft models.Draft
	var formJSON []byte

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, sessionID).Scan(
		&draft.SessionID,
		&draft.DocumentType,
		&draft.CurrentStepIndex,
		&formJSON,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("draft for session %s: %w", sessionID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	draft.FormData = models.NewFormData()
	if err := json.Unmarshal(formJSON, &draft.FormData); err != nil {
		return nil, fmt.Errorf("decode form data: %w", err)
	}

	return &draft, nil
}

// Delete removes the draft for a session. Deleting an absent draft is not an
// error: completion and abandonment both call this unconditionally.
func (r *PostgresDraftRepository) Delete(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE session_id = $1`, r.tables.Drafts)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	return nil
}
