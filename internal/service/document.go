package service

import (
	"context"
	"log/slog"

	"estatedocs/internal/domain/models"
	"estatedocs/internal/domain/repositories"
)

// DocumentService exposes the persisted generated documents.
type DocumentService struct {
	documents repositories.DocumentRepository
	logger    *slog.Logger
}

// NewDocumentService creates a document service.
func NewDocumentService(documents repositories.DocumentRepository, logger *slog.Logger) *DocumentService {
	return &DocumentService{
		documents: documents,
		logger:    logger,
	}
}

// GetDocument retrieves a generated document by ID.
func (s *DocumentService) GetDocument(ctx context.Context, id string) (*models.GeneratedDocument, error) {
	return s.documents.GetByID(ctx, id)
}

// ListDocuments returns the most recently generated documents.
func (s *DocumentService) ListDocuments(ctx context.Context, limit int) ([]models.GeneratedDocument, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	docs, err := s.documents.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.GeneratedDocument{}
	}
	return docs, nil
}

// DeleteDocument removes a generated document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("document deleted", "document_id", id)
	return nil
}
