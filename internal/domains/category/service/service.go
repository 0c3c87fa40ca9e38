package service

import (
	"context"
	"time"

	"framecanvas-backend/internal/domains/category/model"
	"framecanvas-backend/internal/domains/category/repository"
	"framecanvas-backend/pkg/cache"
	"framecanvas-backend/pkg/logger"
)

const cacheKeyAll = "categories:all"

type categoryService struct {
	repo     repository.Repository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewCategoryService(repo repository.Repository, c cache.Cache, ttl time.Duration) Service {
	return &categoryService{
		repo:     repo,
		cache:    c,
		cacheTTL: ttl,
	}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	found, err := s.cache.Get(ctx, cacheKeyAll, &cached)
	if found {
		return cached, nil
	}
	if err != nil {
		logger.Error("category cache read failed", err)
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyAll, categories, s.cacheTTL); err != nil {
		logger.Error("category cache write failed", err)
	}

	return categories, nil
}
