package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/server/auth"
	"github.com/wealthx/paydesk/internal/server/media"
	"github.com/wealthx/paydesk/internal/server/models"
)

func screenshot(name string) *media.File {
	return &media.File{Name: name, Size: 3, Body: strings.NewReader("img")}
}

var bobClaims = &auth.Claims{Email: "bob@login.example", Role: models.RoleUser}

func TestSubmit(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	up := &fakeUploader{}
	s := NewPaymentService(db, rm, up)
	fixed := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	p, err := s.Submit(context.Background(), bobClaims, SubmitPaymentInput{
		Name: "Bob", Email: "bob@contact.example", Phone: "555", UTR: " UTR-1 ", Plan: models.Plan2,
	}, screenshot("proof.jpg"))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Equal(t, "bob@login.example", p.LoggedInEmail)
	assert.Equal(t, "bob@contact.example", p.Email)
	assert.Equal(t, "UTR-1", p.UTR)
	assert.Equal(t, fixed, p.SubmittedAt)
	assert.Equal(t, "https://cdn.example/screenshots/proof.jpg", p.ScreenshotURL)
	assert.Equal(t, []string{"screenshots/proof.jpg"}, up.calls)
}

func TestSubmit_Rejections(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	up := &fakeUploader{}
	s := NewPaymentService(db, rm, up)
	ctx := context.Background()
	ok := SubmitPaymentInput{UTR: "U", Plan: models.Plan1}

	_, err := s.Submit(ctx, bobClaims, ok, nil)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Submit(ctx, bobClaims, SubmitPaymentInput{Plan: models.Plan1}, screenshot("a.png"))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Submit(ctx, bobClaims, SubmitPaymentInput{UTR: "U", Plan: models.PlanNone}, screenshot("a.png"))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Submit(ctx, bobClaims, SubmitPaymentInput{UTR: "U", Plan: "gold"}, screenshot("a.png"))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Submit(ctx, bobClaims, ok, screenshot("a.bmp"))
	assert.ErrorIs(t, err, media.ErrUnsupportedFileType)

	_, err = s.Submit(ctx, nil, ok, screenshot("a.png"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	assert.Empty(t, rm.payments.created)
	assert.Empty(t, up.calls)
}

func TestUpdateStatus_AcceptActivatesPlan(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	u, err := rm.users.Create(context.Background(), &models.User{Name: "Bob", Email: "bob@login.example", Plan: models.PlanNone})
	require.NoError(t, err)

	s := NewPaymentService(db, rm, &fakeUploader{})
	p, err := s.Submit(context.Background(), bobClaims, SubmitPaymentInput{UTR: "U", Plan: models.Plan3}, screenshot("a.png"))
	require.NoError(t, err)

	updated, err := s.UpdateStatus(context.Background(), p.ID, models.PaymentAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentAccepted, updated.Status)

	got, err := rm.users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Plan3, got.Plan)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_RejectLeavesPlan(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	_, err := rm.users.Create(context.Background(), &models.User{Email: "bob@login.example", Plan: models.PlanNone})
	require.NoError(t, err)

	s := NewPaymentService(db, rm, &fakeUploader{})
	p, err := s.Submit(context.Background(), bobClaims, SubmitPaymentInput{UTR: "U", Plan: models.Plan3}, screenshot("a.png"))
	require.NoError(t, err)

	_, err = s.UpdateStatus(context.Background(), p.ID, models.PaymentRejected)
	require.NoError(t, err)
	assert.Empty(t, rm.users.updates)
}

func TestUpdateStatus_NotFoundRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := NewPaymentService(db, newFakeRepoManager(), &fakeUploader{})
	_, err := s.UpdateStatus(context.Background(), "missing", models.PaymentAccepted)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_StoreErrorRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	rm.payments.updateErr = errors.New("db down")
	s := NewPaymentService(db, rm, &fakeUploader{})

	_, err := s.UpdateStatus(context.Background(), "p-1", models.PaymentRejected)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewPaymentService(db, newFakeRepoManager(), &fakeUploader{})

	_, err := s.UpdateStatus(context.Background(), "", models.PaymentAccepted)
	assert.ErrorIs(t, err, common.ErrValidation)

	for _, st := range []models.PaymentStatus{models.PaymentPending, "Accepted", ""} {
		_, err = s.UpdateStatus(context.Background(), "p-1", st)
		assert.ErrorIs(t, err, common.ErrValidation, "status %q", st)
	}
}

func TestList_NewestFirst(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewPaymentService(db, newFakeRepoManager(), &fakeUploader{})
	ctx := context.Background()

	first, err := s.Submit(ctx, bobClaims, SubmitPaymentInput{UTR: "1", Plan: models.Plan1}, screenshot("1.png"))
	require.NoError(t, err)
	second, err := s.Submit(ctx, bobClaims, SubmitPaymentInput{UTR: "2", Plan: models.Plan1}, screenshot("2.png"))
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
