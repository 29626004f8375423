package memories

import (
	"context"

	"github.com/sentivox/sentivox/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Memory, error)
	GetByID(ctx context.Context, id, userID string) (*models.Memory, error)
	// Touch records a read: bumps access_count and last_accessed.
	Touch(ctx context.Context, id, userID string) error
	Create(ctx context.Context, memory *models.Memory) (*models.Memory, error)
	Update(ctx context.Context, memory *models.Memory) (*models.Memory, error)
	Delete(ctx context.Context, id, userID string) error
}
