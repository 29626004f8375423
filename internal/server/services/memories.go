package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sentivox/sentivox/internal/common"
	"github.com/sentivox/sentivox/internal/server/models"
	"github.com/sentivox/sentivox/internal/server/repositories/memories"
)

// MemoryService exposes owner-scoped CRUD over memory records. Reading a
// single memory bumps its access counters.
type MemoryService struct {
	repo memories.Repository
}

func NewMemoryService(repo memories.Repository) *MemoryService {
	return &MemoryService{repo: repo}
}

func (s *MemoryService) List(ctx context.Context, userID string) ([]*models.Memory, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *MemoryService) Get(ctx context.Context, id, userID string) (*models.Memory, error) {
	memory, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	// counter bump is best effort; the read already succeeded
	_ = s.repo.Touch(ctx, id, userID)
	return memory, nil
}

func (s *MemoryService) Create(ctx context.Context, userID string, memory *models.Memory) (*models.Memory, error) {
	memory.ID = uuid.NewString()
	memory.UserID = userID

	if err := validateMemory(memory); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, memory)
}

func (s *MemoryService) Update(ctx context.Context, id, userID string, memory *models.Memory) (*models.Memory, error) {
	memory.ID = id
	memory.UserID = userID

	if err := validateMemory(memory); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, memory)
}

func (s *MemoryService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func validateMemory(memory *models.Memory) error {
	if strings.TrimSpace(memory.Title) == "" {
		return fmt.Errorf("%w: please add a title", common.ErrValidation)
	}
	if strings.TrimSpace(memory.Content) == "" {
		return fmt.Errorf("%w: please add content", common.ErrValidation)
	}
	return nil
}
