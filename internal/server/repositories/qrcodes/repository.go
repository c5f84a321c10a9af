package qrcodes

import (
	"context"

	"github.com/wealthx/paydesk/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context) (*models.QRCodes, error)
	Upsert(ctx context.Context, qr1, qr2 string) (*models.QRCodes, error)
}
