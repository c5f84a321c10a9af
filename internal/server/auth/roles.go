package auth

import (
	"context"

	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/server/models"
)

// RequireRole allows claims whose role equals role exactly. There is no
// hierarchy between roles.
func RequireRole(claims *Claims, role models.Role) error {
	if claims == nil || claims.Role != role {
		return common.ErrForbidden
	}
	return nil
}

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the verified claims attached by the auth middleware.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}
