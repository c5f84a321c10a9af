package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/dbx"
	"github.com/wealthx/paydesk/internal/server/media"
	"github.com/wealthx/paydesk/internal/server/models"
	paymentsrepo "github.com/wealthx/paydesk/internal/server/repositories/payments"
	qrcodesrepo "github.com/wealthx/paydesk/internal/server/repositories/qrcodes"
	usersrepo "github.com/wealthx/paydesk/internal/server/repositories/users"
)

// memStore is an in-memory stand-in for the postgres repositories. The
// same store answers whether it is reached through the pool or a tx.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	payments map[string]*models.Payment
	qr       *models.QRCodes
	seq      int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, payments: map[string]*models.Payment{}}
}

func (s *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (s *memStore) Users(dbx.DBTX) usersrepo.Repository          { return memUsers{s} }
func (s *memStore) Payments(dbx.DBTX) paymentsrepo.Repository    { return memPayments{s} }
func (s *memStore) QRCodes(dbx.DBTX) qrcodesrepo.Repository      { return memQR{s} }

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.s.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Image != nil {
		u.Image = *patch.Image
	}
	if patch.Plan != nil {
		u.Plan = *patch.Plan
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) List(ctx context.Context) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type memPayments struct{ s *memStore }

func (r memPayments) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	cp := *p
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Unix(int64(r.s.seq), 0)
	r.s.payments[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memPayments) List(ctx context.Context) ([]*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Payment, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memPayments) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPayments) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Status = status
	cp := *p
	return &cp, nil
}

type memQR struct{ s *memStore }

func (r memQR) Get(ctx context.Context) (*models.QRCodes, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.qr == nil {
		return nil, common.ErrorNotFound
	}
	cp := *r.s.qr
	return &cp, nil
}

func (r memQR) Upsert(ctx context.Context, qr1, qr2 string) (*models.QRCodes, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.qr == nil {
		r.s.qr = &models.QRCodes{}
	}
	if qr1 != "" {
		r.s.qr.QR1 = qr1
	}
	if qr2 != "" {
		r.s.qr.QR2 = qr2
	}
	r.s.qr.UpdatedAt = time.Now()
	cp := *r.s.qr
	return &cp, nil
}

// memUploader validates like the real host and records what it stored.
type memUploader struct {
	mu     sync.Mutex
	stored map[string][]byte
}

func newMemUploader() *memUploader {
	return &memUploader{stored: map[string][]byte{}}
}

func (u *memUploader) Upload(ctx context.Context, folder string, f media.File) (string, error) {
	if _, _, err := media.Validate(f, 1<<20); err != nil {
		return "", err
	}
	body, err := io.ReadAll(f.Body)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://cdn.example/%s/%s", folder, f.Name)
	u.mu.Lock()
	u.stored[url] = body
	u.mu.Unlock()
	return url, nil
}
