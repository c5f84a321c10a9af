// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"
)

// Role is the authorization role carried by an identity and its token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Plan is the subscription plan activated on an identity.
type Plan string

const (
	PlanNone Plan = "none"
	Plan1    Plan = "plan1"
	Plan2    Plan = "plan2"
	Plan3    Plan = "plan3"
	Plan4    Plan = "plan4"
)

// ParsePlan normalizes a client-supplied plan name. Case and spaces are
// ignored, so "Plan 1", "plan1" and "PLAN1" all parse as Plan1.
func ParsePlan(s string) Plan {
	return Plan(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")))
}

func (p Plan) Valid() bool {
	switch p {
	case PlanNone, Plan1, Plan2, Plan3, Plan4:
		return true
	}
	return false
}

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	Plan         Plan      `db:"plan"`
	Image        string    `db:"image"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserPatch carries the optional fields of a user update. Nil means keep.
type UserPatch struct {
	Name  *string
	Image *string
	Plan  *Plan
	Role  *Role
}

// UserView is the client-facing projection of a User; it never carries the
// password hash.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Plan      Plan      `json:"plan"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Plan:      u.Plan,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
