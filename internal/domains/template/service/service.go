package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	categoryModel "framecanvas-backend/internal/domains/category/model"
	categoryRepo "framecanvas-backend/internal/domains/category/repository"
	"framecanvas-backend/internal/domains/template/catalog"
	"framecanvas-backend/internal/domains/template/model"
	"framecanvas-backend/internal/domains/template/repository"
	"framecanvas-backend/pkg/cache"
	"framecanvas-backend/pkg/logger"
)

const downloadURLExpiry = 60 * time.Second

var ErrSigningUnavailable = fmt.Errorf("object storage not configured")

type templateService struct {
	repo       repository.Repository
	categories categoryRepo.Repository
	cache      cache.Cache
	cacheTTL   time.Duration
	signer     Signer // nil when object storage is not configured
}

func NewTemplateService(repo repository.Repository, categories categoryRepo.Repository, c cache.Cache, ttl time.Duration, signer Signer) Service {
	return &templateService{
		repo:       repo,
		categories: categories,
		cache:      c,
		cacheTTL:   ttl,
		signer:     signer,
	}
}

// listPublished loads the published set for a category slug, cache first.
// Filtering and sorting happen after the cache so every query and sort key
// combination shares one cached list.
func (s *templateService) listPublished(ctx context.Context, categorySlug string) ([]model.Template, error) {
	cacheKey := "templates:catalog:all"
	var categoryID *uuid.UUID

	if categorySlug != "" {
		category, err := s.categories.GetBySlugOrName(ctx, categorySlug)
		if err != nil {
			if errors.Is(err, categoryModel.ErrCategoryNotFound) {
				return []model.Template{}, nil
			}
			return nil, err
		}
		categoryID = &category.ID
		cacheKey = "templates:catalog:" + category.Slug
	}

	var cached []model.Template
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if found {
		return cached, nil
	}
	if err != nil {
		logger.Error("catalog cache read failed", err)
	}

	templates, err := s.repo.ListPublished(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []model.Template{}
	}

	if err := s.cache.Set(ctx, cacheKey, templates, s.cacheTTL); err != nil {
		logger.Error("catalog cache write failed", err)
	}

	return templates, nil
}

func (s *templateService) ListCatalog(ctx context.Context, categorySlug, query string, key catalog.SortKey) ([]model.Template, error) {
	templates, err := s.listPublished(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	return catalog.Sort(catalog.Filter(templates, query), key), nil
}

func (s *templateService) ListFeatured(ctx context.Context, limit int) ([]model.Template, error) {
	cacheKey := fmt.Sprintf("templates:featured:%d", limit)

	var cached []model.Template
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if found {
		return cached, nil
	}
	if err != nil {
		logger.Error("featured cache read failed", err)
	}

	templates, err := s.repo.ListTopDownloaded(ctx, limit)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []model.Template{}
	}

	if err := s.cache.Set(ctx, cacheKey, templates, s.cacheTTL); err != nil {
		logger.Error("featured cache write failed", err)
	}

	return templates, nil
}

func (s *templateService) GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error) {
	cacheKey := "templates:detail:" + id.String()

	var cached model.Detail
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if found {
		return &cached, nil
	}
	if err != nil {
		logger.Error("template detail cache read failed", err)
	}

	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, detail, s.cacheTTL); err != nil {
		logger.Error("template detail cache write failed", err)
	}

	return detail, nil
}

func (s *templateService) Download(ctx context.Context, id uuid.UUID) (*DownloadGrant, error) {
	if s.signer == nil {
		return nil, ErrSigningUnavailable
	}

	path, err := s.repo.CurrentVersionPath(ctx, id)
	if err != nil {
		return nil, err
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")

	if err := s.repo.InsertDownloadLog(ctx, id, format); err != nil {
		return nil, err
	}

	// The trigger bumped downloads_count, so cached lists are stale.
	if err := s.cache.DeletePattern(ctx, "templates:*"); err != nil {
		logger.Error("catalog cache invalidation failed", err)
	}

	signedURL, err := s.signer.PresignedDownload(ctx, s.signer.FilesBucket(), path, downloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign download url: %w", err)
	}

	return &DownloadGrant{
		SignedURL: signedURL,
		Format:    format,
		ExpiresIn: int64(downloadURLExpiry.Seconds()),
	}, nil
}
