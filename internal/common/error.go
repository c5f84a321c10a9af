// Package common defines shared constants and sentinel errors used across
// the paydesk server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Validation errors. Wrap with fmt.Errorf("%w: ...", ErrValidation) to add detail.
	ErrValidation = errors.New("validation error")

	// Token errors. Malformed covers unparsable and forged tokens alike.
	ErrTokenMalformed = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token expired")
)
