package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"framecanvas-backend/internal/domains/template/model"
)

// Querier is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository interface {
	// ListPublished returns published templates joined with their category,
	// optionally restricted to one category. Ordering is left to the
	// filter/sort stage.
	ListPublished(ctx context.Context, categoryID *uuid.UUID) ([]model.Template, error)

	// ListTopDownloaded returns published templates ordered by downloads
	// descending, for the landing view.
	ListTopDownloaded(ctx context.Context, limit int) ([]model.Template, error)

	// GetDetail returns one template with its current version and media.
	GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error)

	// CreateWithVersion inserts an unpublished template plus its first
	// version and wires current_version_id, all in one transaction.
	CreateWithVersion(ctx context.Context, t *model.Template, v *model.Version) error

	// InsertMediaBatch inserts carousel rows preserving the given sort
	// order, in one transaction.
	InsertMediaBatch(ctx context.Context, media []model.Media) error

	// InsertDownloadLog appends a download record; the database trigger
	// increments the template's downloads_count.
	InsertDownloadLog(ctx context.Context, templateID uuid.UUID, format string) error

	// CurrentVersionPath returns the storage path of the current version.
	CurrentVersionPath(ctx context.Context, templateID uuid.UUID) (string, error)

	GetMediaByID(ctx context.Context, id uuid.UUID) (*model.Media, error)
	SetMediaThumbnail(ctx context.Context, id uuid.UUID, thumbnailPath string, width, height int) error
	SetMediaStatus(ctx context.Context, id uuid.UUID, status string, errorMessage string) error

	// PathReferenced reports whether any version or media row points at the
	// given storage path. Used by the orphan sweep.
	PathReferenced(ctx context.Context, path string) (bool, error)
}
