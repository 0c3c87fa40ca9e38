package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	auditModel "framecanvas-backend/internal/domains/audit/model"
	auditService "framecanvas-backend/internal/domains/audit/service"
	categoryModel "framecanvas-backend/internal/domains/category/model"
	categoryRepo "framecanvas-backend/internal/domains/category/repository"
	profileService "framecanvas-backend/internal/domains/profile/service"
	templateModel "framecanvas-backend/internal/domains/template/model"
	templateRepo "framecanvas-backend/internal/domains/template/repository"
	"framecanvas-backend/internal/domains/upload/model"
	"framecanvas-backend/internal/shared"
	"framecanvas-backend/internal/shared/utils"
	"framecanvas-backend/pkg/cache"
	"framecanvas-backend/pkg/logger"
)

const (
	signedURLExpiry = 60 * time.Second

	degradedMessage = "validated, object storage not configured"
)

type uploadService struct {
	templates  templateRepo.Repository
	categories categoryRepo.Repository
	profiles   profileService.Service
	audit      auditService.Recorder
	cache      cache.Cache
	storage    ObjectStorage // nil when not configured
	tasks      TaskEnqueuer  // nil when the queue is not configured
}

func NewUploadService(
	templates templateRepo.Repository,
	categories categoryRepo.Repository,
	profiles profileService.Service,
	audit auditService.Recorder,
	c cache.Cache,
	storage ObjectStorage,
	tasks TaskEnqueuer,
) Service {
	return &uploadService{
		templates:  templates,
		categories: categories,
		profiles:   profiles,
		audit:      audit,
		cache:      c,
		storage:    storage,
		tasks:      tasks,
	}
}

func (s *uploadService) requireUploader(ctx context.Context, actor Actor) error {
	allowed, err := s.profiles.CanUpload(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("check uploader role: %w", err)
	}
	if !allowed {
		return model.ErrForbidden
	}
	return nil
}

func (s *uploadService) RequestTemplateUpload(ctx context.Context, actor Actor, req model.TemplateUploadRequest) (*model.TemplateUploadResponse, error) {
	// Validation runs before any environment or role check so a client
	// with a bad payload learns that first.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.storage == nil {
		return &model.TemplateUploadResponse{Validated: true, Message: degradedMessage}, nil
	}

	if err := s.requireUploader(ctx, actor); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("templates/%s/%s", uuid.New(), utils.SafeObjectName(req.File.Name))
	signedURL, err := s.storage.PresignedUpload(ctx, s.storage.FilesBucket(), path)
	if err != nil {
		return nil, fmt.Errorf("presign template upload: %w", err)
	}

	s.audit.Record(ctx, auditModel.Entry{
		ActorID:    actor.UserID,
		ActorEmail: actor.Email,
		Action:     auditModel.ActionTemplateUploadRequest,
		Entity:     "template",
		EntityID:   path,
		Metadata: map[string]interface{}{
			"file_name": req.File.Name,
			"file_size": req.File.Size,
			"file_type": req.File.Type,
		},
		IPAddress: actor.IP,
	})

	return &model.TemplateUploadResponse{
		Validated: true,
		Path:      path,
		SignedURL: signedURL,
	}, nil
}

func (s *uploadService) FinalizeTemplate(ctx context.Context, actor Actor, req model.FinalizeTemplateRequest) (*model.FinalizeTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, model.ErrStorageNotConfigured
	}
	if err := s.requireUploader(ctx, actor); err != nil {
		return nil, err
	}

	var categoryID *uuid.UUID
	category, err := s.categories.GetBySlugOrName(ctx, req.Category)
	if err != nil && !errors.Is(err, categoryModel.ErrCategoryNotFound) {
		return nil, err
	}
	if category != nil {
		categoryID = &category.ID
	}

	format := strings.TrimPrefix(filepath.Ext(req.File.Name), ".")
	template := &templateModel.Template{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  categoryID,
		Tags:        req.Tags,
		FileFormats: []string{format},
		License:     req.License,
		CreatedBy:   actor.UserID,
	}
	version := &templateModel.Version{
		Version:    req.Version,
		FilePath:   req.FilePath,
		FileFormat: format,
		FileSize:   req.File.Size,
		CreatedBy:  actor.UserID,
	}

	if err := s.templates.CreateWithVersion(ctx, template, version); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.audit.Record(ctx, auditModel.Entry{
		ActorID:    actor.UserID,
		ActorEmail: actor.Email,
		Action:     auditModel.ActionTemplateUpload,
		Entity:     "template",
		EntityID:   template.ID.String(),
		Metadata: map[string]interface{}{
			"title":     req.Title,
			"version":   req.Version,
			"file_path": req.FilePath,
			"file_size": req.File.Size,
		},
		IPAddress: actor.IP,
	})

	return &model.FinalizeTemplateResponse{
		TemplateID: template.ID,
		VersionID:  version.ID,
	}, nil
}

func (s *uploadService) RequestMediaUpload(ctx context.Context, actor Actor, req model.MediaUploadRequest) (*model.MediaUploadResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.storage == nil {
		return &model.MediaUploadResponse{Validated: true, Message: degradedMessage}, nil
	}

	if err := s.requireUploader(ctx, actor); err != nil {
		return nil, err
	}

	uploads := make([]model.UploadTarget, len(req.Items))
	for i, item := range req.Items {
		path := fmt.Sprintf("media/%s-%s", uuid.New(), utils.SafeObjectName(item.Name))
		signedURL, err := s.storage.PresignedUpload(ctx, s.storage.MediaBucket(), path)
		if err != nil {
			return nil, fmt.Errorf("presign media upload %d: %w", i, err)
		}
		uploads[i] = model.UploadTarget{Path: path, SignedURL: signedURL}
	}

	paths := make([]string, len(uploads))
	for i, target := range uploads {
		paths[i] = target.Path
	}
	s.audit.Record(ctx, auditModel.Entry{
		ActorID:    actor.UserID,
		ActorEmail: actor.Email,
		Action:     auditModel.ActionMediaUploadRequest,
		Entity:     "template_media",
		Metadata: map[string]interface{}{
			"media_count": len(uploads),
			"paths":       paths,
		},
		IPAddress: actor.IP,
	})

	return &model.MediaUploadResponse{Validated: true, Uploads: uploads}, nil
}

func (s *uploadService) FinalizeMedia(ctx context.Context, actor Actor, req model.FinalizeMediaRequest) (*model.FinalizeMediaResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, model.ErrStorageNotConfigured
	}
	if err := s.requireUploader(ctx, actor); err != nil {
		return nil, err
	}

	templateID := utils.ParseStringToUUID(req.TemplateID)
	if _, err := s.templates.GetDetail(ctx, templateID); err != nil {
		return nil, err
	}

	media := make([]templateModel.Media, len(req.Items))
	for i, item := range req.Items {
		width := item.Width
		height := item.Height
		media[i] = templateModel.Media{
			TemplateID: templateID,
			ImagePath:  item.Path,
			Width:      &width,
			Height:     &height,
			AltText:    item.Alt,
			SortOrder:  i,
			Status:     templateModel.MediaStatusProcessing,
		}
	}

	if err := s.templates.InsertMediaBatch(ctx, media); err != nil {
		return nil, err
	}

	mediaIDs := make([]uuid.UUID, len(media))
	for i, m := range media {
		mediaIDs[i] = m.ID
		s.enqueueThumbnail(m.ID)
	}

	s.invalidateCatalog(ctx)
	s.audit.Record(ctx, auditModel.Entry{
		ActorID:    actor.UserID,
		ActorEmail: actor.Email,
		Action:     auditModel.ActionMediaFinalize,
		Entity:     "template",
		EntityID:   templateID.String(),
		Metadata:   map[string]interface{}{"media_count": len(media)},
		IPAddress:  actor.IP,
	})

	return &model.FinalizeMediaResponse{TemplateID: templateID, MediaIDs: mediaIDs}, nil
}

func (s *uploadService) SignDownloadURL(ctx context.Context, path string) (*model.SignedURLResponse, error) {
	if s.storage == nil {
		return nil, model.ErrStorageNotConfigured
	}

	signedURL, err := s.storage.PresignedDownload(ctx, s.storage.FilesBucket(), path, signedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &model.SignedURLResponse{
		SignedURL: signedURL,
		ExpiresIn: int64(signedURLExpiry.Seconds()),
	}, nil
}

func (s *uploadService) enqueueThumbnail(mediaID uuid.UUID) {
	if s.tasks == nil {
		return
	}
	payload, err := json.Marshal(shared.ProcessMediaPayload{MediaID: mediaID.String()})
	if err != nil {
		logger.Error("marshal thumbnail task payload", err)
		return
	}
	task := asynq.NewTask(shared.TypeProcessMediaThumbnail, payload)
	if _, err := s.tasks.Enqueue(task, asynq.Queue(shared.QueueMedia), asynq.MaxRetry(3)); err != nil {
		logger.Error("enqueue thumbnail task failed: "+mediaID.String(), err)
	}
}

func (s *uploadService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "templates:*"); err != nil {
		logger.Error("catalog cache invalidation failed", err)
	}
}
