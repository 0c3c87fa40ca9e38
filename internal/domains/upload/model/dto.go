package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// FileMeta is the declared metadata of a file the client wants to upload.
// The backend never sees the bytes at request time; it validates the
// declaration and hands back a presigned URL.
type FileMeta struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// MediaItemMeta declares one carousel image, including the pixel width the
// client measured locally. The worker re-checks the real bytes later.
type MediaItemMeta struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Type  string `json:"type"`
	Width int    `json:"width"`
}

// TemplateUploadRequest asks for a presigned URL for a template source file.
type TemplateUploadRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	License     string   `json:"license"`
	Version     string   `json:"version"`
	File        FileMeta `json:"file"`
}

func (r TemplateUploadRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.License, validation.Required),
		validation.Field(&r.Version, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Tags, validation.Length(0, 20)),
	)
	if err != nil {
		return ErrMissingFields
	}
	return CheckTemplateFile(r.File)
}

// UploadTarget is one presigned destination, index-aligned with the request
// item it answers.
type UploadTarget struct {
	Path      string `json:"path"`
	SignedURL string `json:"signed_url"`
}

// TemplateUploadResponse carries the presigned destination, or just the
// validation verdict when object storage is not configured.
type TemplateUploadResponse struct {
	Validated bool   `json:"validated"`
	Path      string `json:"path,omitempty"`
	SignedURL string `json:"signed_url,omitempty"`
	Message   string `json:"message,omitempty"`
}

// FinalizeTemplateRequest records the uploaded file in the catalog. The
// metadata is re-sent and re-validated; the path is where the blob landed.
type FinalizeTemplateRequest struct {
	TemplateUploadRequest
	FilePath string `json:"file_path"`
}

func (r FinalizeTemplateRequest) Validate() error {
	if err := r.TemplateUploadRequest.Validate(); err != nil {
		return err
	}
	if r.FilePath == "" {
		return ErrMissingFields
	}
	return nil
}

type FinalizeTemplateResponse struct {
	TemplateID uuid.UUID `json:"template_id"`
	VersionID  uuid.UUID `json:"version_id"`
}

// MediaUploadRequest asks for presigned URLs for a carousel set.
type MediaUploadRequest struct {
	Items []MediaItemMeta `json:"items"`
}

func (r MediaUploadRequest) Validate() error {
	return CheckMediaItems(r.Items)
}

// MediaUploadResponse returns one target per requested item, same order.
type MediaUploadResponse struct {
	Validated bool           `json:"validated"`
	Uploads   []UploadTarget `json:"uploads,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// MediaFinalizeItem attaches one uploaded image to a template. Slice order
// becomes the carousel sort order.
type MediaFinalizeItem struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Alt    string `json:"alt"`
}

type FinalizeMediaRequest struct {
	TemplateID string              `json:"template_id"`
	Items      []MediaFinalizeItem `json:"items"`
}

func (r FinalizeMediaRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.TemplateID, validation.Required, is.UUID),
	)
	if err != nil {
		return ErrMissingFields
	}
	if len(r.Items) < MinMediaItems {
		return ErrTooFewImages
	}
	if len(r.Items) > MaxMediaItems {
		return ErrTooManyImages
	}
	for _, item := range r.Items {
		if item.Path == "" {
			return ErrMissingFields
		}
		if item.Width < MinImageWidth {
			return ErrImageTooNarrow
		}
	}
	return nil
}

type FinalizeMediaResponse struct {
	TemplateID uuid.UUID   `json:"template_id"`
	MediaIDs   []uuid.UUID `json:"media_ids"`
}

// SignedURLRequest asks for a short-lived GET URL for a stored file.
type SignedURLRequest struct {
	Path string `json:"path"`
}

func (r SignedURLRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required, validation.Length(1, 500)),
	)
}

type SignedURLResponse struct {
	SignedURL string `json:"signed_url"`
	ExpiresIn int64  `json:"expires_in"`
}
