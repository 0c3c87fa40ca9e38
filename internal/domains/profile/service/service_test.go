package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framecanvas-backend/internal/config"
	auditModel "framecanvas-backend/internal/domains/audit/model"
	"framecanvas-backend/internal/domains/profile/model"
)

type fakeRepo struct {
	roles   map[uuid.UUID]string
	updated map[uuid.UUID]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{roles: map[uuid.UUID]string{}, updated: map[uuid.UUID]string{}}
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	role, ok := f.roles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return &model.Profile{ID: id, Role: role}, nil
}

func (f *fakeRepo) GetRole(ctx context.Context, id uuid.UUID) (string, error) {
	role, ok := f.roles[id]
	if !ok {
		return "", model.ErrProfileNotFound
	}
	return role, nil
}

func (f *fakeRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	if _, ok := f.roles[id]; !ok {
		return model.ErrProfileNotFound
	}
	f.roles[id] = role
	f.updated[id] = role
	return nil
}

type fakeRecorder struct {
	entries []auditModel.Entry
}

func (f *fakeRecorder) Record(ctx context.Context, entry auditModel.Entry) {
	f.entries = append(f.entries, entry)
}

func setup(t *testing.T) (Service, *fakeRepo, *fakeRecorder, Actor) {
	t.Helper()
	repo := newFakeRepo()
	audit := &fakeRecorder{}
	ownerID := uuid.New()
	repo.roles[ownerID] = model.RoleAdmin

	access := config.AccessConfig{
		OwnerEmail:  "owner@framecanvas.io",
		OwnerUserID: ownerID.String(),
	}
	svc := NewProfileService(repo, access, audit)
	owner := Actor{UserID: ownerID, Email: "owner@framecanvas.io"}
	return svc, repo, audit, owner
}

func TestCanUpload(t *testing.T) {
	svc, repo, _, _ := setup(t)

	editor := uuid.New()
	viewer := uuid.New()
	repo.roles[editor] = model.RoleEditor
	repo.roles[viewer] = model.RoleViewer

	ok, err := svc.CanUpload(context.Background(), editor)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanUpload(context.Background(), viewer)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CanUpload(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestSetRoleOnlyOwnerMayCall(t *testing.T) {
	svc, repo, _, _ := setup(t)

	target := uuid.New()
	repo.roles[target] = model.RoleViewer

	stranger := Actor{UserID: uuid.New(), Email: "stranger@x.io"}
	err := svc.SetRole(context.Background(), stranger, target, model.RoleEditor)
	assert.ErrorIs(t, err, model.ErrNotOwner)
	assert.Empty(t, repo.updated)
}

func TestSetRoleOwnerGrantsEditor(t *testing.T) {
	svc, repo, audit, owner := setup(t)

	target := uuid.New()
	repo.roles[target] = model.RoleViewer

	require.NoError(t, svc.SetRole(context.Background(), owner, target, model.RoleEditor))
	assert.Equal(t, model.RoleEditor, repo.roles[target])

	require.Len(t, audit.entries, 1)
	assert.Equal(t, auditModel.ActionRoleChange, audit.entries[0].Action)
	assert.Equal(t, target.String(), audit.entries[0].EntityID)
}

func TestSetRoleAdminReservedForOwnerAccount(t *testing.T) {
	svc, repo, _, owner := setup(t)

	target := uuid.New()
	repo.roles[target] = model.RoleEditor

	err := svc.SetRole(context.Background(), owner, target, model.RoleAdmin)
	assert.ErrorIs(t, err, model.ErrAdminNotOwner)

	// granting admin to the owner's own account is allowed
	require.NoError(t, svc.SetRole(context.Background(), owner, owner.UserID, model.RoleAdmin))
}

func TestSetRoleMatchesOwnerByEmail(t *testing.T) {
	svc, repo, _, owner := setup(t)

	// same owner, identified only by email with different casing
	byEmail := Actor{UserID: owner.UserID, Email: "OWNER@framecanvas.io"}
	target := uuid.New()
	repo.roles[target] = model.RoleViewer

	require.NoError(t, svc.SetRole(context.Background(), byEmail, target, model.RoleViewer))
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	svc, _, _, owner := setup(t)

	err := svc.SetRole(context.Background(), owner, uuid.New(), "superuser")
	assert.ErrorIs(t, err, model.ErrInvalidRole)
}
