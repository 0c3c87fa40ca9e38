package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category is read-only to the catalog; rows are created by admin tooling
// and the slug is stable once created.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)
