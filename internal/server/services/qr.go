package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wealthx/paydesk/internal/server/media"
	"github.com/wealthx/paydesk/internal/server/models"
	"github.com/wealthx/paydesk/internal/server/repositories/repomanager"
)

// QRService manages the two payment QR images.
type QRService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	uploader    media.Uploader
}

func NewQRService(db *sql.DB, m repomanager.RepositoryManager, uploader media.Uploader) *QRService {
	return &QRService{db: db, repomanager: m, uploader: uploader}
}

// Get returns common.ErrorNotFound until QR codes have been set once.
func (s *QRService) Get(ctx context.Context) (*models.QRCodes, error) {
	return s.repomanager.QRCodes(s.db).Get(ctx)
}

// Set stores QR image URLs. An empty value keeps the stored one.
func (s *QRService) Set(ctx context.Context, qr1, qr2 string) (*models.QRCodes, error) {
	qr1, qr2 = strings.TrimSpace(qr1), strings.TrimSpace(qr2)
	if qr1 == "" && qr2 == "" {
		return nil, invalid("qr1 or qr2 is required")
	}
	return s.repomanager.QRCodes(s.db).Upsert(ctx, qr1, qr2)
}

// Upload stores the given images and records their URLs. Either file may be
// nil but not both.
func (s *QRService) Upload(ctx context.Context, qr1, qr2 *media.File) (*models.QRCodes, error) {
	if qr1 == nil && qr2 == nil {
		return nil, invalid("qr1 or qr2 file is required")
	}

	var url1, url2 string
	var err error
	if qr1 != nil {
		if url1, err = s.uploader.Upload(ctx, media.FolderQRCodes, *qr1); err != nil {
			return nil, err
		}
	}
	if qr2 != nil {
		if url2, err = s.uploader.Upload(ctx, media.FolderQRCodes, *qr2); err != nil {
			return nil, err
		}
	}

	return s.repomanager.QRCodes(s.db).Upsert(ctx, url1, url2)
}
