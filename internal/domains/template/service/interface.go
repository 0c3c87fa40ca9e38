package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"framecanvas-backend/internal/domains/template/catalog"
	"framecanvas-backend/internal/domains/template/model"
)

// Signer produces short-lived download URLs for stored template files.
type Signer interface {
	PresignedDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	FilesBucket() string
}

// DownloadGrant is the result of recording a download: a signed URL the
// client can fetch for a short window.
type DownloadGrant struct {
	SignedURL string `json:"signed_url"`
	Format    string `json:"format"`
	ExpiresIn int64  `json:"expires_in"`
}

type Service interface {
	// ListCatalog returns the browse view: published templates for the
	// optional category slug, filtered by the search query and ordered by
	// the sort key.
	ListCatalog(ctx context.Context, categorySlug, query string, key catalog.SortKey) ([]model.Template, error)

	// ListFeatured returns the most downloaded published templates.
	ListFeatured(ctx context.Context, limit int) ([]model.Template, error)

	GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error)

	// Download records a download for the template's current version and
	// returns a signed URL for it.
	Download(ctx context.Context, id uuid.UUID) (*DownloadGrant, error)
}
