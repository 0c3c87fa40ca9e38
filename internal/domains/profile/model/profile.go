package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNotOwner         = errors.New("only the site owner can change roles")
	ErrAdminNotOwner    = errors.New("admin role is reserved for the owner account")
	ErrStoreUnavailable = errors.New("profile store unavailable")
)

// ValidRole reports whether s is one of the assignable roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Profile is the per-user row roles are read from. The JWT also carries a
// role claim but authorization always consults this table, not the token.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanUpload reports whether the role may publish templates.
func (p *Profile) CanUpload() bool {
	return p.Role == RoleAdmin || p.Role == RoleEditor
}
