package payments

import (
	"context"

	"github.com/wealthx/paydesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error)
}
