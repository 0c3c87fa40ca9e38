package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"framecanvas-backend/internal/domains/category/model"
)

type postgresRepository struct {
	db Querier
}

func NewPostgresRepository(db Querier) Repository {
	return &postgresRepository{db: db}
}

const categoryColumns = `id, name, slug, COALESCE(description, ''), created_at`

func (r *postgresRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", model.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", model.ErrStoreUnavailable, err)
	}

	return categories, nil
}

func (r *postgresRepository) GetBySlugOrName(ctx context.Context, key string) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1 OR name = $1 LIMIT 1`,
		key,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get category %q: %v", model.ErrStoreUnavailable, key, err)
	}
	return &c, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get category %s: %v", model.ErrStoreUnavailable, id, err)
	}
	return &c, nil
}
