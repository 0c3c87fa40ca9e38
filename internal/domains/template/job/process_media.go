package job

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hibiken/asynq"

	"framecanvas-backend/internal/domains/template/model"
	"framecanvas-backend/internal/domains/template/repository"
	"framecanvas-backend/internal/infrastructure/storage"
	"framecanvas-backend/internal/shared"
	"framecanvas-backend/internal/shared/utils"
	"framecanvas-backend/pkg/logger"
)

const thumbnailSize = 400

// BlobStore is the object storage surface the media jobs need.
type BlobStore interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error
	MediaBucket() string
}

// ProcessMediaHandler validates a freshly finalized carousel image against
// its real bytes and writes the thumbnail variant.
type ProcessMediaHandler struct {
	repo      repository.Repository
	blobs     BlobStore
	processor *storage.ImageProcessor
}

func NewProcessMediaHandler(repo repository.Repository, blobs BlobStore, processor *storage.ImageProcessor) *ProcessMediaHandler {
	return &ProcessMediaHandler{
		repo:      repo,
		blobs:     blobs,
		processor: processor,
	}
}

func (h *ProcessMediaHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ProcessMediaPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}
	mediaID := utils.ParseStringToUUID(payload.MediaID)

	media, err := h.repo.GetMediaByID(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("load media %s: %w", payload.MediaID, err)
	}
	if media.Status == model.MediaStatusReady {
		return nil // already processed, duplicate delivery
	}

	data, err := h.blobs.Download(ctx, h.blobs.MediaBucket(), media.ImagePath)
	if err != nil {
		return fmt.Errorf("download %s: %w", media.ImagePath, err)
	}

	// Validation failures are permanent: mark the row failed, don't retry.
	if err := h.processor.Validate(data); err != nil {
		logger.Error("media validation failed: "+media.ImagePath, err)
		if dbErr := h.repo.SetMediaStatus(ctx, mediaID, model.MediaStatusFailed, err.Error()); dbErr != nil {
			return dbErr
		}
		return nil
	}

	_, width, height, err := h.processor.Probe(data)
	if err != nil {
		return fmt.Errorf("probe %s: %w", media.ImagePath, err)
	}

	thumb, err := h.processor.Thumbnail(data, thumbnailSize)
	if err != nil {
		return fmt.Errorf("thumbnail %s: %w", media.ImagePath, err)
	}

	thumbPath := thumbnailPath(media.ImagePath)
	if err := h.blobs.Upload(ctx, h.blobs.MediaBucket(), thumbPath, thumb, "image/jpeg"); err != nil {
		return fmt.Errorf("upload thumbnail %s: %w", thumbPath, err)
	}

	if err := h.repo.SetMediaThumbnail(ctx, mediaID, thumbPath, width, height); err != nil {
		return err
	}

	logger.Info("media processed", map[string]interface{}{
		"media_id":  payload.MediaID,
		"thumbnail": thumbPath,
	})
	return nil
}

func thumbnailPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + "_thumb.jpg"
}
