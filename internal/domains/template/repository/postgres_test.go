package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framecanvas-backend/internal/domains/template/model"
)

var templateCols = []string{
	"id", "title", "description", "category_id",
	"name", "slug",
	"tags", "file_formats", "license", "preview_url",
	"downloads_count", "is_published", "current_version_id",
	"created_by", "created_at", "updated_at",
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresRepository(mock)
}

func templateRow(id uuid.UUID, title string, downloads int) []any {
	now := time.Now()
	return []any{
		id, title, "a description", nil,
		"", "",
		[]string{"tag"}, []string{"zip"}, "standard", "",
		downloads, true, nil,
		uuid.New(), now, now,
	}
}

func TestListPublished(t *testing.T) {
	mock, repo := newMock(t)

	a, b := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM templates t\s+LEFT JOIN categories c ON c.id = t.category_id\s+WHERE t.is_published = true`).
		WillReturnRows(pgxmock.NewRows(templateCols).
			AddRow(templateRow(a, "first", 3)...).
			AddRow(templateRow(b, "second", 1)...))

	templates, err := repo.ListPublished(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, a, templates[0].ID)
	assert.Equal(t, "second", templates[1].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublishedByCategory(t *testing.T) {
	mock, repo := newMock(t)

	categoryID := uuid.New()
	mock.ExpectQuery(`WHERE t.is_published = true AND t.category_id = \$1`).
		WithArgs(categoryID).
		WillReturnRows(pgxmock.NewRows(templateCols))

	templates, err := repo.ListPublished(context.Background(), &categoryID)
	require.NoError(t, err)
	assert.Empty(t, templates)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTopDownloaded(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(`ORDER BY t.downloads_count DESC\s+LIMIT \$1`).
		WithArgs(8).
		WillReturnRows(pgxmock.NewRows(templateCols).
			AddRow(templateRow(uuid.New(), "top", 42)...))

	templates, err := repo.ListTopDownloaded(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, 42, templates[0].DownloadsCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetailNotFound(t *testing.T) {
	mock, repo := newMock(t)

	id := uuid.New()
	mock.ExpectQuery(`WHERE t.id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetDetail(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrTemplateNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentVersionPath(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT v.file_path`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"file_path"}).AddRow("templates/x/file.zip"))

	path, err := repo.CurrentVersionPath(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "templates/x/file.zip", path)

	mock.ExpectQuery(`SELECT v.file_path`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.CurrentVersionPath(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrNoCurrentVersion)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertDownloadLog(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()

	mock.ExpectExec(`INSERT INTO download_logs \(template_id, format\) VALUES \(\$1, \$2\)`).
		WithArgs(id, "zip").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.InsertDownloadLog(context.Background(), id, "zip"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPathReferenced(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("templates/x/file.zip").
		WillReturnRows(pgxmock.NewRows([]string{"referenced"}).AddRow(true))

	referenced, err := repo.PathReferenced(context.Background(), "templates/x/file.zip")
	require.NoError(t, err)
	assert.True(t, referenced)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithVersionRollsBackOnFailure(t *testing.T) {
	mock, repo := newMock(t)

	tmpl := &model.Template{Title: "t", License: "standard", CreatedBy: uuid.New()}
	version := &model.Version{Version: "1.0.0", FilePath: "templates/x/f.zip", FileFormat: "zip", FileSize: 10, CreatedBy: tmpl.CreatedBy}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO templates`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assertErr{})
	mock.ExpectRollback()

	err := repo.CreateWithVersion(context.Background(), tmpl, version)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMediaStatus(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE template_media SET status = \$1, error_message = NULLIF\(\$2, ''\) WHERE id = \$3`).
		WithArgs(model.MediaStatusFailed, "too narrow", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SetMediaStatus(context.Background(), id, model.MediaStatusFailed, "too narrow"))
	require.NoError(t, mock.ExpectationsWereMet())
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
