// Package auth issues and verifies access tokens, hashes passwords and
// enforces role-based access.
package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/server/models"
)

// Claims is the payload of an access token: the registered sub/iat/exp
// plus the identity's email and role at issuance time.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Validate is called by the jwt parser after the registered claims checks.
func (c Claims) Validate() error {
	switch {
	case c.Subject == "":
		return errors.New("missing sub")
	case c.Email == "":
		return errors.New("missing email")
	case !c.Role.Valid():
		return errors.New("unknown role")
	case c.IssuedAt == nil:
		return errors.New("missing iat")
	}
	return nil
}

// UserID is the subject the token was issued for.
func (c *Claims) UserID() string { return c.Subject }

// wireClaims is the exact set of fields an access token payload may carry.
type wireClaims struct {
	Sub   string       `json:"sub"`
	Email string       `json:"email"`
	Role  string       `json:"role"`
	Iat   *json.Number `json:"iat"`
	Exp   *json.Number `json:"exp"`
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

// Option configures a TokenManager.
type Option func(*TokenManager)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) { m.now = now }
}

// NewTokenManager returns a manager signing with HS256 under secret. Tokens
// stay valid for the given duration after issuance.
func NewTokenManager(secret string, validity time.Duration, opts ...Option) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	if validity <= 0 {
		return nil, errors.New("auth: token validity must be positive")
	}

	m := &TokenManager{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	return m, nil
}

// Issue mints a token for the given identity.
func (m *TokenManager) Issue(subject, email string, role models.Role) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		Email: email,
		Role:  role,
	})

	return token.SignedString(m.secret)
}

// Verify checks the signature and expiry of token and returns its claims.
// Any failure other than expiry is reported as common.ErrTokenMalformed.
func (m *TokenManager) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := m.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenMalformed
	}

	// signature is good; now hold the payload to the exact claim set
	if err := m.decodeStrict(token); err != nil {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}

func (m *TokenManager) decodeStrict(token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return errors.New("token must have three segments")
	}

	payload, err := m.parser.DecodeSegment(parts[1])
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var w wireClaims
	if err := dec.Decode(&w); err != nil {
		return err
	}
	if w.Sub == "" || w.Email == "" || w.Role == "" || w.Iat == nil || w.Exp == nil {
		return errors.New("missing required claim")
	}
	return nil
}
