package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categoryModel "framecanvas-backend/internal/domains/category/model"
	"framecanvas-backend/internal/domains/template/catalog"
	"framecanvas-backend/internal/domains/template/model"
)

type fakeRepo struct {
	published    []model.Template
	downloadLogs int
	versionPath  string
	versionErr   error
}

func (f *fakeRepo) ListPublished(ctx context.Context, categoryID *uuid.UUID) ([]model.Template, error) {
	return f.published, nil
}
func (f *fakeRepo) ListTopDownloaded(ctx context.Context, limit int) ([]model.Template, error) {
	if limit < len(f.published) {
		return f.published[:limit], nil
	}
	return f.published, nil
}
func (f *fakeRepo) GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error) {
	return &model.Detail{Template: model.Template{ID: id}}, nil
}
func (f *fakeRepo) CreateWithVersion(ctx context.Context, t *model.Template, v *model.Version) error {
	return nil
}
func (f *fakeRepo) InsertMediaBatch(ctx context.Context, media []model.Media) error { return nil }
func (f *fakeRepo) InsertDownloadLog(ctx context.Context, templateID uuid.UUID, format string) error {
	f.downloadLogs++
	return nil
}
func (f *fakeRepo) CurrentVersionPath(ctx context.Context, templateID uuid.UUID) (string, error) {
	if f.versionErr != nil {
		return "", f.versionErr
	}
	return f.versionPath, nil
}
func (f *fakeRepo) GetMediaByID(ctx context.Context, id uuid.UUID) (*model.Media, error) {
	return nil, nil
}
func (f *fakeRepo) SetMediaThumbnail(ctx context.Context, id uuid.UUID, thumbnailPath string, width, height int) error {
	return nil
}
func (f *fakeRepo) SetMediaStatus(ctx context.Context, id uuid.UUID, status, errorMessage string) error {
	return nil
}
func (f *fakeRepo) PathReferenced(ctx context.Context, path string) (bool, error) { return false, nil }

type fakeCategories struct{}

func (fakeCategories) List(ctx context.Context) ([]categoryModel.Category, error) { return nil, nil }
func (fakeCategories) GetBySlugOrName(ctx context.Context, key string) (*categoryModel.Category, error) {
	return nil, categoryModel.ErrCategoryNotFound
}
func (fakeCategories) GetByID(ctx context.Context, id uuid.UUID) (*categoryModel.Category, error) {
	return nil, categoryModel.ErrCategoryNotFound
}

// memoryCache is a minimal in-process cache for tests.
type memoryCache struct {
	store map[string]interface{}
}

func newMemoryCache() *memoryCache { return &memoryCache{store: map[string]interface{}{}} }

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	v, ok := m.store[key]
	if !ok {
		return false, nil
	}
	if templates, ok := v.([]model.Template); ok {
		if p, ok := dest.(*[]model.Template); ok {
			*p = templates
			return true, nil
		}
	}
	return false, nil
}
func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.store[key] = value
	return nil
}
func (m *memoryCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	m.store = map[string]interface{}{}
	return nil
}
func (m *memoryCache) Ping(ctx context.Context) error { return nil }

type fakeSigner struct {
	signedKeys []string
}

func (f *fakeSigner) PresignedDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	f.signedKeys = append(f.signedKeys, key)
	return "https://storage.test/" + bucket + "/" + key, nil
}
func (f *fakeSigner) FilesBucket() string { return "template-files" }

func tpl(title string, downloads int) model.Template {
	return model.Template{ID: uuid.New(), Title: title, DownloadsCount: downloads, CreatedAt: time.Now()}
}

func TestListCatalogFiltersAndSortsAfterCache(t *testing.T) {
	repo := &fakeRepo{published: []model.Template{
		tpl("Wedding Invite", 5),
		tpl("Minimal Resume", 20),
		tpl("Wedding Album", 1),
	}}
	svc := NewTemplateService(repo, fakeCategories{}, newMemoryCache(), time.Minute, nil)

	out, err := svc.ListCatalog(context.Background(), "", "wedding", catalog.SortPopular)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "Wedding Invite", out[0].Title)
	assert.Equal(t, "Wedding Album", out[1].Title)

	// a different query against the same cached list
	out, err = svc.ListCatalog(context.Background(), "", "resume", catalog.SortPopular)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Minimal Resume", out[0].Title)
}

func TestListCatalogUnknownCategoryIsEmpty(t *testing.T) {
	repo := &fakeRepo{published: []model.Template{tpl("anything", 1)}}
	svc := NewTemplateService(repo, fakeCategories{}, newMemoryCache(), time.Minute, nil)

	out, err := svc.ListCatalog(context.Background(), "no-such-category", "", catalog.SortPopular)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDownloadWithoutSigner(t *testing.T) {
	svc := NewTemplateService(&fakeRepo{}, fakeCategories{}, newMemoryCache(), time.Minute, nil)

	_, err := svc.Download(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSigningUnavailable)
}

func TestDownloadSignsCurrentVersion(t *testing.T) {
	repo := &fakeRepo{versionPath: "templates/x/resume.zip"}
	signer := &fakeSigner{}
	svc := NewTemplateService(repo, fakeCategories{}, newMemoryCache(), time.Minute, signer)

	grant, err := svc.Download(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.downloadLogs)
	assert.Equal(t, "zip", grant.Format)
	assert.Equal(t, int64(60), grant.ExpiresIn)
	assert.Contains(t, grant.SignedURL, "templates/x/resume.zip")
	require.Len(t, signer.signedKeys, 1)
}

func TestDownloadWithoutCurrentVersion(t *testing.T) {
	repo := &fakeRepo{versionErr: model.ErrNoCurrentVersion}
	svc := NewTemplateService(repo, fakeCategories{}, newMemoryCache(), time.Minute, &fakeSigner{})

	_, err := svc.Download(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrNoCurrentVersion)
	assert.Equal(t, 0, repo.downloadLogs)
}
