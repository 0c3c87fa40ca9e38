package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"framecanvas-backend/internal/domains/category/model"
)

// Querier is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)

	// GetBySlugOrName resolves a category by slug first, name second.
	GetBySlugOrName(ctx context.Context, key string) (*model.Category, error)

	// GetByID fetches a single category.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
}
