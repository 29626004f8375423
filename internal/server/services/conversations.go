package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sentivox/sentivox/internal/common"
	"github.com/sentivox/sentivox/internal/server/models"
	"github.com/sentivox/sentivox/internal/server/repositories/conversations"
)

// ConversationService exposes owner-scoped CRUD over conversation records.
// Every operation takes the requester's user ID; records owned by someone
// else behave exactly like missing records.
type ConversationService struct {
	repo conversations.Repository
}

func NewConversationService(repo conversations.Repository) *ConversationService {
	return &ConversationService{repo: repo}
}

func (s *ConversationService) List(ctx context.Context, userID string) ([]*models.Conversation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ConversationService) Get(ctx context.Context, id, userID string) (*models.Conversation, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *ConversationService) Create(ctx context.Context, userID string, conversation *models.Conversation) (*models.Conversation, error) {
	conversation.ID = uuid.NewString()
	conversation.UserID = userID
	conversation.DeriveTitle()

	if strings.TrimSpace(conversation.Title) == "" {
		return nil, fmt.Errorf("%w: please add a title", common.ErrValidation)
	}

	stampMessages(conversation.Messages)

	return s.repo.Create(ctx, conversation)
}

func (s *ConversationService) Update(ctx context.Context, id, userID string, conversation *models.Conversation) (*models.Conversation, error) {
	conversation.ID = id
	conversation.UserID = userID

	if strings.TrimSpace(conversation.Title) == "" {
		return nil, fmt.Errorf("%w: please add a title", common.ErrValidation)
	}

	stampMessages(conversation.Messages)

	return s.repo.Update(ctx, conversation)
}

func (s *ConversationService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

// stampMessages fills missing message timestamps.
func stampMessages(messages []models.Message) {
	now := time.Now().UTC()
	for i := range messages {
		if messages[i].Timestamp.IsZero() {
			messages[i].Timestamp = now
		}
	}
}
