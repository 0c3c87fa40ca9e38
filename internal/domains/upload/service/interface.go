package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"framecanvas-backend/internal/domains/upload/model"
)

// Actor identifies the authenticated caller.
type Actor struct {
	UserID uuid.UUID
	Email  string
	IP     string
}

// ObjectStorage is the presigning surface the upload flow needs. A nil
// ObjectStorage means storage is not configured; request endpoints then
// validate and short-circuit, finalize endpoints fail.
type ObjectStorage interface {
	PresignedUpload(ctx context.Context, bucket, key string) (string, error)
	PresignedDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	FilesBucket() string
	MediaBucket() string
}

// TaskEnqueuer is satisfied by asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Service interface {
	// RequestTemplateUpload validates the declared template file and
	// returns a presigned PUT destination.
	RequestTemplateUpload(ctx context.Context, actor Actor, req model.TemplateUploadRequest) (*model.TemplateUploadResponse, error)

	// FinalizeTemplate records the uploaded file as a new unpublished
	// template with its first version.
	FinalizeTemplate(ctx context.Context, actor Actor, req model.FinalizeTemplateRequest) (*model.FinalizeTemplateResponse, error)

	// RequestMediaUpload validates the declared carousel set and returns
	// one presigned PUT destination per item, index-aligned.
	RequestMediaUpload(ctx context.Context, actor Actor, req model.MediaUploadRequest) (*model.MediaUploadResponse, error)

	// FinalizeMedia attaches uploaded images to a template, preserving the
	// request order as carousel order, and queues thumbnail processing.
	FinalizeMedia(ctx context.Context, actor Actor, req model.FinalizeMediaRequest) (*model.FinalizeMediaResponse, error)

	// SignDownloadURL returns a short-lived GET URL for a stored template
	// file path.
	SignDownloadURL(ctx context.Context, path string) (*model.SignedURLResponse, error)
}
