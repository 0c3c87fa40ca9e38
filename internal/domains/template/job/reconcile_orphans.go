package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"framecanvas-backend/internal/domains/template/repository"
	"framecanvas-backend/internal/infrastructure/storage"
	"framecanvas-backend/internal/shared"
	"framecanvas-backend/internal/shared/utils"
	"framecanvas-backend/pkg/logger"
)

const defaultOrphanAgeHours = 24

// SweepStore is the storage surface the reconciliation sweep needs.
type SweepStore interface {
	ListByPrefix(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error)
	Remove(ctx context.Context, bucket, key string) error
	FilesBucket() string
	MediaBucket() string
}

// ReconcileOrphansHandler deletes stored objects no database row points at.
// Presigned uploads write blobs before finalize creates the rows, so a blob
// is only considered orphaned once it is older than the cutoff.
type ReconcileOrphansHandler struct {
	repo  repository.Repository
	blobs SweepStore
}

func NewReconcileOrphansHandler(repo repository.Repository, blobs SweepStore) *ReconcileOrphansHandler {
	return &ReconcileOrphansHandler{repo: repo, blobs: blobs}
}

func (h *ReconcileOrphansHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ReconcileOrphansPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		logger.Error("failed to unmarshal reconcile payload, using default cutoff", err)
	}
	olderThan := payload.OlderThanHours
	if olderThan <= 0 {
		olderThan = defaultOrphanAgeHours
	}
	cutoff := time.Now().Add(-time.Duration(olderThan) * time.Hour)

	removed := 0
	for _, bucket := range []string{h.blobs.FilesBucket(), h.blobs.MediaBucket()} {
		n, err := h.sweepBucket(ctx, bucket, cutoff)
		if err != nil {
			return err
		}
		removed += n
	}

	logger.Info("orphan sweep completed", map[string]interface{}{
		"removed":          removed,
		"older_than_hours": olderThan,
	})
	return nil
}

func (h *ReconcileOrphansHandler) sweepBucket(ctx context.Context, bucket string, cutoff time.Time) (int, error) {
	objects, err := h.blobs.ListByPrefix(ctx, bucket, "")
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}

		referenced, err := h.repo.PathReferenced(ctx, obj.Key)
		if err != nil {
			return removed, err
		}
		if referenced {
			continue
		}

		if err := h.blobs.Remove(ctx, bucket, obj.Key); err != nil {
			logger.Error("failed to remove orphaned object: "+obj.Key, err)
			continue
		}
		removed++
	}
	return removed, nil
}
