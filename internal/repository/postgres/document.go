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

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create persists a generated document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.GeneratedDocument) error {
	formJSON, err := json.Marshal(doc.FormData)
	if err != nil {
		return fmt.Errorf("encode form data snapshot: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, session_id, document_type, title, content, form_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		doc.ID,
		doc.SessionID,
		doc.DocumentType,
		doc.Title,
		doc.Content,
		formJSON,
		doc.CreatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("document for session %s: %w", doc.SessionID, domain.ErrConflict)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a generated document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.GeneratedDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, document_type, title, content, form_data, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// List returns the most recently generated documents
func (r *PostgresDocumentRepository) List(ctx context.Context, limit int) ([]models.GeneratedDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, document_type, title, content, form_data, created_at
		FROM %s
		ORDER BY created_at DESC
		LIMIT $1
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.GeneratedDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// Delete removes a generated document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// rowScanner covers pgx.Row and pgx.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.GeneratedDocument, error) {
	var doc models.GeneratedDocument
	var formJSON []byte

	err := row.Scan(
		&doc.ID,
		&doc.SessionID,
		&doc.DocumentType,
		&doc.Title,
		&doc.Content,
		&formJSON,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.FormData = models.NewFormData()
	if err := json.Unmarshal(formJSON, &doc.FormData); err != nil {
		return nil, fmt.Errorf("decode form data snapshot: %w", err)
	}

	return &doc, nil
}
