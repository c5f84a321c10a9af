package repomanager

import (
	"context"
	"database/sql"

	"github.com/wealthx/paydesk/internal/dbx"
	"github.com/wealthx/paydesk/internal/server/repositories/payments"
	"github.com/wealthx/paydesk/internal/server/repositories/qrcodes"
	"github.com/wealthx/paydesk/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Payments(db dbx.DBTX) payments.Repository
	QRCodes(db dbx.DBTX) qrcodes.Repository
}
