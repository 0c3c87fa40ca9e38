package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"framecanvas-backend/internal/config"
	auditModel "framecanvas-backend/internal/domains/audit/model"
	auditService "framecanvas-backend/internal/domains/audit/service"
	"framecanvas-backend/internal/domains/profile/model"
	"framecanvas-backend/internal/domains/profile/repository"
)

type profileService struct {
	repo   repository.Repository
	access config.AccessConfig
	audit  auditService.Recorder
}

func NewProfileService(repo repository.Repository, access config.AccessConfig, audit auditService.Recorder) Service {
	return &profileService{
		repo:   repo,
		access: access,
		audit:  audit,
	}
}

func (s *profileService) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *profileService) CanUpload(ctx context.Context, userID uuid.UUID) (bool, error) {
	role, err := s.repo.GetRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin || role == model.RoleEditor, nil
}

// isOwner matches the actor against the configured owner identity, by user
// id or by email.
func (s *profileService) isOwner(actor Actor) bool {
	if s.access.OwnerUserID != "" && actor.UserID.String() == s.access.OwnerUserID {
		return true
	}
	if s.access.OwnerEmail != "" && strings.EqualFold(actor.Email, s.access.OwnerEmail) {
		return true
	}
	return false
}

func (s *profileService) SetRole(ctx context.Context, actor Actor, targetUserID uuid.UUID, role string) error {
	if !model.ValidRole(role) {
		return model.ErrInvalidRole
	}
	if !s.isOwner(actor) {
		return model.ErrNotOwner
	}

	// Admin stays a single-seat role bound to the owner account.
	if role == model.RoleAdmin && targetUserID != actor.UserID {
		return model.ErrAdminNotOwner
	}

	if err := s.repo.UpdateRole(ctx, targetUserID, role); err != nil {
		return err
	}

	s.audit.Record(ctx, auditModel.Entry{
		ActorID:    actor.UserID,
		ActorEmail: actor.Email,
		Action:     auditModel.ActionRoleChange,
		Entity:     "profile",
		EntityID:   targetUserID.String(),
		Metadata:   map[string]interface{}{"role": role},
		IPAddress:  actor.IP,
	})
	return nil
}
