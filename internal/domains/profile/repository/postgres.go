package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"framecanvas-backend/internal/domains/profile/model"
)

type postgresRepository struct {
	db Querier
}

func NewPostgresRepository(db Querier) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.QueryRow(ctx, `
		SELECT id, email, COALESCE(full_name, ''), role, created_at, updated_at
		FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get profile %s: %v", model.ErrStoreUnavailable, id, err)
	}
	return &p, nil
}

func (r *postgresRepository) GetRole(ctx context.Context, id uuid.UUID) (string, error) {
	var role string
	err := r.db.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, id).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrProfileNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: get role %s: %v", model.ErrStoreUnavailable, id, err)
	}
	return role, nil
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE profiles SET role = $1, updated_at = now() WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("%w: update role %s: %v", model.ErrStoreUnavailable, id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}
