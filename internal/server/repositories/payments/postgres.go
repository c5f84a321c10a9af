// Package payments stores payment requests awaiting or past admin review.
package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/dbx"
	"github.com/wealthx/paydesk/internal/server/models"
)

const paymentColumns = `id, name, email, phone, utr, plan, status, submitted_at, screenshot_url, logged_in_email, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(row scanner) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.UTR, &p.Plan, &p.Status,
		&p.SubmittedAt, &p.ScreenshotURL, &p.LoggedInEmail, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	if p.Status == "" {
		p.Status = models.PaymentPending
	}

	query :=
		`INSERT INTO payments (name, email, phone, utr, plan, status, submitted_at, screenshot_url, logged_in_email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Email, p.Phone, p.UTR, string(p.Plan), string(p.Status), p.SubmittedAt, p.ScreenshotURL, p.LoggedInEmail,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// List returns all payments, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error) {
	query :=
		`UPDATE payments SET status = $2
		 WHERE id = $1
		 RETURNING ` + paymentColumns

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id, string(status)))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
