package repomanager

import (
	"github.com/dmitrijs2005/cloudstack/internal/dbx"
	"github.com/dmitrijs2005/cloudstack/internal/server/repositories/items"
	"github.com/dmitrijs2005/cloudstack/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same service
// code can run against the pool or inside a transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
}
