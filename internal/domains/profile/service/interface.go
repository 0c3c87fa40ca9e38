package service

import (
	"context"

	"github.com/google/uuid"

	"framecanvas-backend/internal/domains/profile/model"
)

// Actor identifies the authenticated caller of a privileged operation.
type Actor struct {
	UserID uuid.UUID
	Email  string
	IP     string
}

type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)

	// CanUpload reports whether the user's stored role allows publishing.
	CanUpload(ctx context.Context, userID uuid.UUID) (bool, error)

	// SetRole changes a user's role. Only the owner account may call it,
	// and admin may only be granted to the owner account itself.
	SetRole(ctx context.Context, actor Actor, targetUserID uuid.UUID, role string) error
}
