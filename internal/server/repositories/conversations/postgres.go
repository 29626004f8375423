// Package conversations provides the PostgreSQL-backed conversation store.
// Message lists and tags are kept as JSONB documents; every query is scoped
// by the owning user so foreign records are indistinguishable from missing
// ones.
package conversations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sentivox/sentivox/internal/common"
	"github.com/sentivox/sentivox/internal/dbx"
	"github.com/sentivox/sentivox/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, user_id, title, messages, tags, is_archived, created_at, updated_at`

func scanConversation(row interface{ Scan(...any) error }) (*models.Conversation, error) {
	c := &models.Conversation{}
	var messages, tags []byte
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &messages, &tags, &c.IsArchived, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(messages, &c.Messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if err := json.Unmarshal(tags, &c.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return c, nil
}

func encodeDocs(c *models.Conversation) (messages, tags []byte, err error) {
	if c.Messages == nil {
		c.Messages = []models.Message{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	messages, err = json.Marshal(c.Messages)
	if err != nil {
		return nil, nil, fmt.Errorf("encode messages: %w", err)
	}
	tags, err = json.Marshal(c.Tags)
	if err != nil {
		return nil, nil, fmt.Errorf("encode tags: %w", err)
	}
	return messages, tags, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Conversation, error) {
	query := `SELECT ` + selectColumns + ` FROM conversations
		 WHERE user_id = $1
		 ORDER BY updated_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Conversation{}
	for rows.Next() {
		item, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Conversation, error) {
	query := `SELECT ` + selectColumns + ` FROM conversations
		 WHERE id = $1 AND user_id = $2
		 `

	c, err := scanConversation(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, conversation *models.Conversation) (*models.Conversation, error) {
	messages, tags, err := encodeDocs(conversation)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO conversations (id, user_id, title, messages, tags, is_archived)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		conversation.ID, conversation.UserID, conversation.Title, messages, tags, conversation.IsArchived).
		Scan(&conversation.CreatedAt, &conversation.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return conversation, nil
}

func (r *PostgresRepository) Update(ctx context.Context, conversation *models.Conversation) (*models.Conversation, error) {
	messages, tags, err := encodeDocs(conversation)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE conversations
		 SET title = $3, messages = $4, tags = $5, is_archived = $6, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		conversation.ID, conversation.UserID, conversation.Title, messages, tags, conversation.IsArchived).
		Scan(&conversation.CreatedAt, &conversation.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return conversation, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM conversations WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
