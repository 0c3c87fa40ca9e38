package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"framecanvas-backend/internal/domains/profile/model"
)

// Querier is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)

	// GetRole reads just the role column.
	GetRole(ctx context.Context, id uuid.UUID) (string, error)

	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
}
