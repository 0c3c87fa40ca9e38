package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"framecanvas-backend/internal/domains/template/model"
	"framecanvas-backend/pkg/database"
)

type postgresRepository struct {
	db Querier
}

func NewPostgresRepository(db Querier) Repository {
	return &postgresRepository{db: db}
}

const templateColumns = `
	t.id, t.title, COALESCE(t.description, ''), t.category_id,
	COALESCE(c.name, ''), COALESCE(c.slug, ''),
	t.tags, t.file_formats, t.license, COALESCE(t.preview_url, ''),
	t.downloads_count, t.is_published, t.current_version_id,
	t.created_by, t.created_at, t.updated_at`

func scanTemplate(row pgx.Row) (*model.Template, error) {
	var t model.Template
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.CategoryID,
		&t.CategoryName, &t.CategorySlug,
		&t.Tags, &t.FileFormats, &t.License, &t.PreviewURL,
		&t.DownloadsCount, &t.IsPublished, &t.CurrentVersionID,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepository) listTemplates(ctx context.Context, query string, args ...any) ([]model.Template, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", model.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var templates []model.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", model.ErrStoreUnavailable, err)
	}
	return templates, nil
}

func (r *postgresRepository) ListPublished(ctx context.Context, categoryID *uuid.UUID) ([]model.Template, error) {
	base := `SELECT ` + templateColumns + `
		FROM templates t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.is_published = true`

	if categoryID != nil {
		return r.listTemplates(ctx, base+` AND t.category_id = $1`, *categoryID)
	}
	return r.listTemplates(ctx, base)
}

func (r *postgresRepository) ListTopDownloaded(ctx context.Context, limit int) ([]model.Template, error) {
	query := `SELECT ` + templateColumns + `
		FROM templates t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.is_published = true
		ORDER BY t.downloads_count DESC
		LIMIT $1`
	return r.listTemplates(ctx, query, limit)
}

func (r *postgresRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error) {
	row := r.db.QueryRow(ctx, `SELECT `+templateColumns+`
		FROM templates t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1`, id)

	t, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get template %s: %v", model.ErrStoreUnavailable, id, err)
	}

	detail := &model.Detail{Template: *t}

	if t.CurrentVersionID != nil {
		var v model.Version
		err := r.db.QueryRow(ctx, `
			SELECT id, template_id, version, file_path, file_format, file_size, created_by, created_at
			FROM template_versions WHERE id = $1`, *t.CurrentVersionID,
		).Scan(&v.ID, &v.TemplateID, &v.Version, &v.FilePath, &v.FileFormat, &v.FileSize, &v.CreatedBy, &v.CreatedAt)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: get version for %s: %v", model.ErrStoreUnavailable, id, err)
		}
		if err == nil {
			detail.CurrentVersion = &v
		}
	}

	media, err := r.listMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Media = media

	return detail, nil
}

func (r *postgresRepository) listMedia(ctx context.Context, templateID uuid.UUID) ([]model.Media, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, image_path, thumbnail_path, width, height,
		       COALESCE(alt_text, ''), sort_order, status, error_message, created_at
		FROM template_media WHERE template_id = $1 ORDER BY sort_order`, templateID)
	if err != nil {
		return nil, fmt.Errorf("%w: list media for %s: %v", model.ErrStoreUnavailable, templateID, err)
	}
	defer rows.Close()

	var media []model.Media
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(&m.ID, &m.TemplateID, &m.ImagePath, &m.ThumbnailPath,
			&m.Width, &m.Height, &m.AltText, &m.SortOrder, &m.Status, &m.ErrorMessage, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

func (r *postgresRepository) CreateWithVersion(ctx context.Context, t *model.Template, v *model.Version) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO templates (title, description, license, category_id, tags, file_formats,
			                       is_published, preview_url, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, false, '', $7)
			RETURNING id, created_at, updated_at`,
			t.Title, t.Description, t.License, t.CategoryID, t.Tags, t.FileFormats, t.CreatedBy,
		).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert template: %w", err)
		}

		v.TemplateID = t.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO template_versions (template_id, version, file_path, file_format, file_size, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			v.TemplateID, v.Version, v.FilePath, v.FileFormat, v.FileSize, v.CreatedBy,
		).Scan(&v.ID, &v.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert template version: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE templates SET current_version_id = $1, updated_at = now() WHERE id = $2`,
			v.ID, t.ID); err != nil {
			return fmt.Errorf("set current version: %w", err)
		}
		t.CurrentVersionID = &v.ID
		return nil
	})
}

func (r *postgresRepository) InsertMediaBatch(ctx context.Context, media []model.Media) error {
	if len(media) == 0 {
		return nil
	}

	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for i := range media {
			m := &media[i]
			err := tx.QueryRow(ctx, `
				INSERT INTO template_media (template_id, image_path, width, height, alt_text, sort_order, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id, created_at`,
				m.TemplateID, m.ImagePath, m.Width, m.Height, m.AltText, m.SortOrder, m.Status,
			).Scan(&m.ID, &m.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert media row %d: %w", m.SortOrder, err)
			}
		}
		return nil
	})
}

func (r *postgresRepository) InsertDownloadLog(ctx context.Context, templateID uuid.UUID, format string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO download_logs (template_id, format) VALUES ($1, $2)`,
		templateID, format)
	if err != nil {
		return fmt.Errorf("%w: insert download log: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *postgresRepository) CurrentVersionPath(ctx context.Context, templateID uuid.UUID) (string, error) {
	var path string
	err := r.db.QueryRow(ctx, `
		SELECT v.file_path
		FROM templates t
		JOIN template_versions v ON v.id = t.current_version_id
		WHERE t.id = $1`, templateID,
	).Scan(&path)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrNoCurrentVersion
	}
	if err != nil {
		return "", fmt.Errorf("%w: current version path: %v", model.ErrStoreUnavailable, err)
	}
	return path, nil
}

func (r *postgresRepository) GetMediaByID(ctx context.Context, id uuid.UUID) (*model.Media, error) {
	var m model.Media
	err := r.db.QueryRow(ctx, `
		SELECT id, template_id, image_path, thumbnail_path, width, height,
		       COALESCE(alt_text, ''), sort_order, status, error_message, created_at
		FROM template_media WHERE id = $1`, id,
	).Scan(&m.ID, &m.TemplateID, &m.ImagePath, &m.ThumbnailPath,
		&m.Width, &m.Height, &m.AltText, &m.SortOrder, &m.Status, &m.ErrorMessage, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get media %s: %v", model.ErrStoreUnavailable, id, err)
	}
	return &m, nil
}

func (r *postgresRepository) SetMediaThumbnail(ctx context.Context, id uuid.UUID, thumbnailPath string, width, height int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE template_media
		SET thumbnail_path = $1, width = $2, height = $3, status = $4, error_message = NULL
		WHERE id = $5`,
		thumbnailPath, width, height, model.MediaStatusReady, id)
	if err != nil {
		return fmt.Errorf("%w: set media thumbnail: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *postgresRepository) SetMediaStatus(ctx context.Context, id uuid.UUID, status, errorMessage string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE template_media SET status = $1, error_message = NULLIF($2, '') WHERE id = $3`,
		status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("%w: set media status: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *postgresRepository) PathReferenced(ctx context.Context, path string) (bool, error) {
	var referenced bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM template_versions WHERE file_path = $1)
		    OR EXISTS (SELECT 1 FROM template_media WHERE image_path = $1 OR thumbnail_path = $1)`,
		path,
	).Scan(&referenced)
	if err != nil {
		return false, fmt.Errorf("%w: path referenced: %v", model.ErrStoreUnavailable, err)
	}
	return referenced, nil
}
