package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/filekeeper/internal/server/uploads"
	"github.com/dmitrijs2005/filekeeper/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Uploads() uploads.Repository
}
