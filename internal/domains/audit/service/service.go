package service

import (
	"context"

	"framecanvas-backend/internal/domains/audit/model"
	"framecanvas-backend/internal/domains/audit/repository"
	"framecanvas-backend/pkg/logger"
)

type auditService struct {
	repo repository.Repository
}

func NewAuditService(repo repository.Repository) Service {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, entry model.Entry) {
	if err := s.repo.Insert(ctx, &entry); err != nil {
		logger.Error("audit write failed: "+entry.Action, err)
	}
}

func (s *auditService) List(ctx context.Context, limit, offset int) ([]model.Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
