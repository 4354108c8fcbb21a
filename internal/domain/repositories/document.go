package repositories

import (
	"context"

	"estatedocs/internal/domain/models"
)

// DocumentRepository persists finalized generated documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.GeneratedDocument) error
	GetByID(ctx context.Context, id string) (*models.GeneratedDocument, error)
	List(ctx context.Context, limit int) ([]models.GeneratedDocument, error)
	Delete(ctx context.Context, id string) error
}
