package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/dbx"
	"github.com/wealthx/paydesk/internal/server/auth"
	"github.com/wealthx/paydesk/internal/server/media"
	"github.com/wealthx/paydesk/internal/server/models"
	"github.com/wealthx/paydesk/internal/server/repositories/repomanager"
)

type SubmitPaymentInput struct {
	Name        string
	Email       string
	Phone       string
	UTR         string
	Plan        models.Plan
	SubmittedAt time.Time
}

type PaymentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	uploader    media.Uploader
	now         func() time.Time
}

func NewPaymentService(db *sql.DB, m repomanager.RepositoryManager, uploader media.Uploader) *PaymentService {
	return &PaymentService{
		db:          db,
		repomanager: m,
		uploader:    uploader,
		now:         time.Now,
	}
}

// Submit records a pending payment for the authenticated caller. The
// screenshot is stored first; its URL goes on the record.
func (s *PaymentService) Submit(ctx context.Context, claims *auth.Claims, in SubmitPaymentInput, screenshot *media.File) (*models.Payment, error) {
	if claims == nil {
		return nil, common.ErrorUnauthorized
	}
	if screenshot == nil {
		return nil, invalid("screenshot is required")
	}
	if strings.TrimSpace(in.UTR) == "" {
		return nil, invalid("utr is required")
	}
	if !in.Plan.Valid() || in.Plan == models.PlanNone {
		return nil, invalid("unknown plan %q", in.Plan)
	}

	url, err := s.uploader.Upload(ctx, media.FolderScreenshots, *screenshot)
	if err != nil {
		return nil, err
	}

	submitted := in.SubmittedAt
	if submitted.IsZero() {
		submitted = s.now()
	}

	return s.repomanager.Payments(s.db).Create(ctx, &models.Payment{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		UTR:           strings.TrimSpace(in.UTR),
		Plan:          in.Plan,
		Status:        models.PaymentPending,
		SubmittedAt:   submitted,
		ScreenshotURL: url,
		LoggedInEmail: claims.Email,
	})
}

// List returns every payment, newest first.
func (s *PaymentService) List(ctx context.Context) ([]*models.Payment, error) {
	return s.repomanager.Payments(s.db).List(ctx)
}

// UpdateStatus moves a payment to accepted or rejected. Accepting also
// activates the payment's plan on the submitting account in the same
// transaction.
func (s *PaymentService) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalid("id is required")
	}
	if status != models.PaymentAccepted && status != models.PaymentRejected {
		return nil, invalid("invalid status value %q", status)
	}

	var updated *models.Payment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		p, err := s.repomanager.Payments(tx).UpdateStatus(ctx, id, status)
		if err != nil {
			return err
		}
		updated = p

		if status != models.PaymentAccepted || p.LoggedInEmail == "" {
			return nil
		}

		users := s.repomanager.Users(tx)
		u, err := users.GetByEmail(ctx, p.LoggedInEmail)
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		plan := p.Plan
		_, err = users.Update(ctx, u.ID, models.UserPatch{Plan: &plan})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
