package repomanager

import (
	"database/sql"

	"github.com/sentivox/sentivox/internal/server/repositories/conversations"
	"github.com/sentivox/sentivox/internal/server/repositories/memories"
	"github.com/sentivox/sentivox/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Conversations() conversations.Repository
	Memories() memories.Repository
}
