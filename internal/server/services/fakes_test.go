package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/dbx"
	"github.com/wealthx/paydesk/internal/server/media"
	"github.com/wealthx/paydesk/internal/server/models"
	paymentsrepo "github.com/wealthx/paydesk/internal/server/repositories/payments"
	qrcodesrepo "github.com/wealthx/paydesk/internal/server/repositories/qrcodes"
	usersrepo "github.com/wealthx/paydesk/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	err     error
	updates []models.UserPatch
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id string, p models.UserPatch) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	f.updates = append(f.updates, p)
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
	if p.Plan != nil {
		u.Plan = *p.Plan
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.User, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type fakePaymentsRepo struct {
	created   []*models.Payment
	byID      map[string]*models.Payment
	createErr error
	updateErr error
}

func (f *fakePaymentsRepo) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *p
	cp.ID = "p-" + uuid.NewString()
	f.created = append(f.created, &cp)
	if f.byID == nil {
		f.byID = map[string]*models.Payment{}
	}
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakePaymentsRepo) List(ctx context.Context) ([]*models.Payment, error) {
	out := make([]*models.Payment, 0, len(f.created))
	for i := len(f.created) - 1; i >= 0; i-- {
		out = append(out, f.created[i])
	}
	return out, nil
}

func (f *fakePaymentsRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakePaymentsRepo) UpdateStatus(ctx context.Context, id string, s models.PaymentStatus) (*models.Payment, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Status = s
	cp := *p
	return &cp, nil
}

type fakeQRRepo struct {
	rec *models.QRCodes
	err error
}

func (f *fakeQRRepo) Get(ctx context.Context) (*models.QRCodes, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.rec == nil {
		return nil, common.ErrorNotFound
	}
	cp := *f.rec
	return &cp, nil
}

func (f *fakeQRRepo) Upsert(ctx context.Context, qr1, qr2 string) (*models.QRCodes, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.rec == nil {
		f.rec = &models.QRCodes{}
	}
	if qr1 != "" {
		f.rec.QR1 = qr1
	}
	if qr2 != "" {
		f.rec.QR2 = qr2
	}
	f.rec.UpdatedAt = time.Now()
	cp := *f.rec
	return &cp, nil
}

type fakeRepoManager struct {
	users    *fakeUsersRepo
	payments *fakePaymentsRepo
	qr       *fakeQRRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), payments: &fakePaymentsRepo{}, qr: &fakeQRRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) Payments(dbx.DBTX) paymentsrepo.Repository    { return m.payments }
func (m *fakeRepoManager) QRCodes(dbx.DBTX) qrcodesrepo.Repository      { return m.qr }

type fakeUploader struct {
	calls []string
	err   error
}

func (u *fakeUploader) Upload(ctx context.Context, folder string, f media.File) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if _, _, err := media.Validate(f, 0); err != nil {
		return "", err
	}
	u.calls = append(u.calls, folder+"/"+f.Name)
	return "https://cdn.example/" + folder + "/" + f.Name, nil
}
