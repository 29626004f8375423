package conversations

import (
	"context"

	"github.com/sentivox/sentivox/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Conversation, error)
	GetByID(ctx context.Context, id, userID string) (*models.Conversation, error)
	Create(ctx context.Context, conversation *models.Conversation) (*models.Conversation, error)
	Update(ctx context.Context, conversation *models.Conversation) (*models.Conversation, error)
	Delete(ctx context.Context, id, userID string) error
}
