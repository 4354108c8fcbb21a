package repositories

import (
	"context"

	"estatedocs/internal/domain/models"
)

// DraftRepository persists in-progress wizard form snapshots. Save is an
// upsert keyed by session id: the draft always reflects the latest snapshot.
type DraftRepository interface {
	Save(ctx context.Context, draft *models.Draft) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.Draft, error)
	Delete(ctx context.Context, sessionID string) error
}
