package service

import (
	"context"

	"framecanvas-backend/internal/domains/category/model"
)

type Service interface {
	// List returns all categories ordered by name, served from the
	// response cache when fresh enough.
	List(ctx context.Context) ([]model.Category, error)
}
