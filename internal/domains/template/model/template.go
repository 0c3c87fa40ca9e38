package model

import (
	"time"

	"github.com/google/uuid"
)

// Template is a published (or draft) catalog entry joined with its category
// name for display.
type Template struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	CategoryName     string     `json:"category_name,omitempty"`
	CategorySlug     string     `json:"category_slug,omitempty"`
	Tags             []string   `json:"tags"`
	FileFormats      []string   `json:"file_formats"`
	License          string     `json:"license"`
	PreviewURL       string     `json:"preview_url"`
	DownloadsCount   int        `json:"downloads_count"`
	IsPublished      bool       `json:"is_published"`
	CurrentVersionID *uuid.UUID `json:"current_version_id,omitempty"`
	CreatedBy        uuid.UUID  `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Version rows are immutable once created; exactly one is referenced as
// current per template.
type Version struct {
	ID         uuid.UUID `json:"id"`
	TemplateID uuid.UUID `json:"template_id"`
	Version    string    `json:"version"`
	FilePath   string    `json:"file_path"`
	FileFormat string    `json:"file_format"`
	FileSize   int64     `json:"file_size"`
	CreatedBy  uuid.UUID `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// Media processing status, advanced by the worker.
const (
	MediaStatusProcessing = "processing"
	MediaStatusReady      = "ready"
	MediaStatusFailed     = "failed"
)

// Media is one carousel image; sort_order defines the display sequence.
type Media struct {
	ID            uuid.UUID `json:"id"`
	TemplateID    uuid.UUID `json:"template_id"`
	ImagePath     string    `json:"image_path"`
	ThumbnailPath *string   `json:"thumbnail_path,omitempty"`
	Width         *int      `json:"width,omitempty"`
	Height        *int      `json:"height,omitempty"`
	AltText       string    `json:"alt_text"`
	SortOrder     int       `json:"sort_order"`
	Status        string    `json:"status"`
	ErrorMessage  *string   `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DownloadLog is append-only; a database trigger bumps the template's
// downloads_count on insert.
type DownloadLog struct {
	ID         uuid.UUID `json:"id"`
	TemplateID uuid.UUID `json:"template_id"`
	Format     string    `json:"format"`
	CreatedAt  time.Time `json:"created_at"`
}

// Detail is the template detail view: the template with its current
// version and ordered media.
type Detail struct {
	Template
	CurrentVersion *Version `json:"current_version,omitempty"`
	Media          []Media  `json:"media"`
}
