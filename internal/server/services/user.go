// Package services contains server-side business logic: registration and
// login, payment submission and review, QR code management and the
// contact form.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/server/auth"
	"github.com/wealthx/paydesk/internal/server/media"
	"github.com/wealthx/paydesk/internal/server/models"
	"github.com/wealthx/paydesk/internal/server/repositories/repomanager"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserService handles identities: registration, login and profile reads.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenManager
	uploader    media.Uploader
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	tokens *auth.TokenManager, uploader media.Uploader) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		uploader:    uploader,
	}
}

// Register creates a user with role "user" and no plan. A taken email
// yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	switch {
	case name == "":
		return nil, invalid("name is required")
	case email == "":
		return nil, invalid("email is required")
	case in.Password == "":
		return nil, invalid("password is required")
	case len(in.Password) > auth.MaxPasswordBytes:
		return nil, invalid("password must be at most %d bytes", auth.MaxPasswordBytes)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Plan:         models.PlanNone,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password both yield common.ErrInvalidCredentials after the same
// bcrypt work.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	repo := s.repomanager.Users(s.db)

	u, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(password)
			return "", nil, common.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("error fetching user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
	}
	return token, u, nil
}

// Me returns the identity behind a verified token.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("email is required")
	}
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

// UploadImage stores f as the caller's avatar and returns its URL.
func (s *UserService) UploadImage(ctx context.Context, userID string, f *media.File) (string, error) {
	if f == nil {
		return "", invalid("image is required")
	}

	url, err := s.uploader.Upload(ctx, media.FolderAvatars, *f)
	if err != nil {
		return "", err
	}

	if _, err := s.repomanager.Users(s.db).Update(ctx, userID, models.UserPatch{Image: &url}); err != nil {
		return "", err
	}
	return url, nil
}
