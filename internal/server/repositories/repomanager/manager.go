package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/planner/internal/dbx"
	"github.com/dmitrijs2005/planner/internal/server/repositories/records"
	"github.com/dmitrijs2005/planner/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or an open
// transaction, so services can compose several of them under dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Records(db dbx.DBTX) records.Repository
}
