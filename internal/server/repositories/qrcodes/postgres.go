// Package qrcodes keeps the single record of payment QR image URLs.
package qrcodes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/dbx"
	"github.com/wealthx/paydesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.QRCodes, error) {
	query := `SELECT qr1, qr2, updated_at FROM qr_codes WHERE id = 1`

	q := &models.QRCodes{}
	err := r.db.QueryRowContext(ctx, query).Scan(&q.QR1, &q.QR2, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

// Upsert creates the record on first use. An empty qr1 or qr2 keeps the
// stored value.
func (r *PostgresRepository) Upsert(ctx context.Context, qr1, qr2 string) (*models.QRCodes, error) {
	query :=
		`INSERT INTO qr_codes (id, qr1, qr2, updated_at)
		 VALUES (1, $1, $2, now())
		 ON CONFLICT (id) DO UPDATE
		 SET qr1 = COALESCE(NULLIF(EXCLUDED.qr1, ''), qr_codes.qr1),
		     qr2 = COALESCE(NULLIF(EXCLUDED.qr2, ''), qr_codes.qr2),
		     updated_at = now()
		 RETURNING qr1, qr2, updated_at`

	q := &models.QRCodes{}
	err := r.db.QueryRowContext(ctx, query, qr1, qr2).Scan(&q.QR1, &q.QR2, &q.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}
