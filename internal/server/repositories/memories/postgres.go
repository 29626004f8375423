// Package memories provides the PostgreSQL-backed memory store. Tags and
// related-conversation links are kept as JSONB documents; every query is
// scoped by the owning user.
package memories

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

const selectColumns = `id, user_id, title, content, tags, is_important, is_archived,
	related_conversations, last_accessed, access_count, created_at, updated_at`

func scanMemory(row interface{ Scan(...any) error }) (*models.Memory, error) {
	m := &models.Memory{}
	var tags, related []byte
	err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Content, &tags, &m.IsImportant, &m.IsArchived,
		&related, &m.LastAccessed, &m.AccessCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &m.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal(related, &m.RelatedConversations); err != nil {
		return nil, fmt.Errorf("decode related conversations: %w", err)
	}
	return m, nil
}

func encodeDocs(m *models.Memory) (tags, related []byte, err error) {
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.RelatedConversations == nil {
		m.RelatedConversations = []string{}
	}
	tags, err = json.Marshal(m.Tags)
	if err != nil {
		return nil, nil, fmt.Errorf("encode tags: %w", err)
	}
	related, err = json.Marshal(m.RelatedConversations)
	if err != nil {
		return nil, nil, fmt.Errorf("encode related conversations: %w", err)
	}
	return tags, related, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Memory, error) {
	query := `SELECT ` + selectColumns + ` FROM memories
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Memory{}
	for rows.Next() {
		item, err := scanMemory(rows)
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

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Memory, error) {
	query := `SELECT ` + selectColumns + ` FROM memories
		 WHERE id = $1 AND user_id = $2
		 `

	m, err := scanMemory(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) Touch(ctx context.Context, id, userID string) error {
	query :=
		`UPDATE memories
		 SET last_accessed = now(), access_count = access_count + 1
		 WHERE id = $1 AND user_id = $2
		 `

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

func (r *PostgresRepository) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	tags, related, err := encodeDocs(memory)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO memories (id, user_id, title, content, tags, is_important, is_archived, related_conversations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING last_accessed, access_count, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		memory.ID, memory.UserID, memory.Title, memory.Content, tags,
		memory.IsImportant, memory.IsArchived, related).
		Scan(&memory.LastAccessed, &memory.AccessCount, &memory.CreatedAt, &memory.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return memory, nil
}

func (r *PostgresRepository) Update(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	tags, related, err := encodeDocs(memory)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE memories
		 SET title = $3, content = $4, tags = $5, is_important = $6, is_archived = $7,
		     related_conversations = $8, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING last_accessed, access_count, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		memory.ID, memory.UserID, memory.Title, memory.Content, tags,
		memory.IsImportant, memory.IsArchived, related).
		Scan(&memory.LastAccessed, &memory.AccessCount, &memory.CreatedAt, &memory.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return memory, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM memories WHERE id = $1 AND user_id = $2`

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
