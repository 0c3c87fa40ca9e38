package uploadflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framecanvas-backend/internal/domains/upload/model"
)

func validTemplate() model.TemplateUploadRequest {
	return model.TemplateUploadRequest{
		Title:    "Minimal Resume",
		Category: "resumes",
		License:  "standard",
		Version:  "1.0.0",
		File:     model.FileMeta{Name: "resume.zip", Size: 2048, Type: "application/zip"},
	}
}

func image(name string) model.MediaItemMeta {
	return model.MediaItemMeta{Name: name, Size: 1024, Type: "image/jpeg", Width: 1600}
}

func mediaNames(f *Flow) []string {
	items := f.Media()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Meta.Name
	}
	return out
}

func newDraft(t *testing.T, images ...string) *Flow {
	t.Helper()
	f := New(validTemplate())
	for _, name := range images {
		require.NoError(t, f.AddMedia(image(name)))
	}
	return f
}

func TestReorderIsRemoveThenInsert(t *testing.T) {
	f := newDraft(t, "A", "B", "C", "D")

	require.NoError(t, f.Reorder(0, 2))
	assert.Equal(t, []string{"B", "C", "A", "D"}, mediaNames(f))
}

func TestReorderBounds(t *testing.T) {
	f := newDraft(t, "A", "B", "C")

	assert.ErrorIs(t, f.Reorder(3, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.Reorder(-1, 0), ErrIndexOutOfRange)
	assert.NoError(t, f.Reorder(2, 0))
	assert.Equal(t, []string{"C", "A", "B"}, mediaNames(f))
}

func TestRemoveMedia(t *testing.T) {
	f := newDraft(t, "A", "B", "C")

	require.NoError(t, f.RemoveMedia(1))
	assert.Equal(t, []string{"A", "C"}, mediaNames(f))
	assert.ErrorIs(t, f.RemoveMedia(5), ErrIndexOutOfRange)
}

func TestHappyPath(t *testing.T) {
	f := newDraft(t, "A", "B", "C")
	assert.Equal(t, StateDraft, f.State())

	require.NoError(t, f.Begin())
	assert.Equal(t, StateRequestingUpload, f.State())

	targets := []model.UploadTarget{
		{Path: "media/a", SignedURL: "http://put/a"},
		{Path: "media/b", SignedURL: "http://put/b"},
		{Path: "media/c", SignedURL: "http://put/c"},
	}
	require.NoError(t, f.SetTargets(model.UploadTarget{Path: "templates/x", SignedURL: "http://put/x"}, targets))
	assert.Equal(t, StateAwaitingBlobTransfer, f.State())

	// targets stay index-aligned with the queue
	assert.Equal(t, "media/b", f.Media()[1].Target.Path)

	require.NoError(t, f.MarkTemplateTransferred(nil))
	for i := range targets {
		require.NoError(t, f.MarkMediaTransferred(i, nil))
	}
	assert.True(t, f.TransfersComplete())

	require.NoError(t, f.Finalize())
	assert.Equal(t, StateFinalizing, f.State())

	require.NoError(t, f.Complete())
	assert.Equal(t, StateComplete, f.State())
}

func TestBeginFailsOnRuleViolation(t *testing.T) {
	// only two images queued
	f := newDraft(t, "A", "B")

	err := f.Begin()
	assert.ErrorIs(t, err, model.ErrTooFewImages)
	assert.Equal(t, StateFailed, f.State())
	assert.ErrorIs(t, f.Err(), model.ErrTooFewImages)
}

func TestFinalizeGatesOnAllTransfers(t *testing.T) {
	f := newDraft(t, "A", "B", "C")
	require.NoError(t, f.Begin())
	require.NoError(t, f.SetTargets(model.UploadTarget{Path: "t"}, []model.UploadTarget{{Path: "a"}, {Path: "b"}, {Path: "c"}}))

	require.NoError(t, f.MarkTemplateTransferred(nil))
	require.NoError(t, f.MarkMediaTransferred(0, nil))
	require.NoError(t, f.MarkMediaTransferred(1, nil))
	// item 2 still pending

	assert.ErrorIs(t, f.Finalize(), ErrTransfersPending)
	assert.Equal(t, StateAwaitingBlobTransfer, f.State())

	require.NoError(t, f.MarkMediaTransferred(2, errors.New("network reset")))
	assert.False(t, f.TransfersComplete())
	assert.ErrorIs(t, f.Finalize(), ErrTransfersPending)

	// retry succeeds
	require.NoError(t, f.MarkMediaTransferred(2, nil))
	require.NoError(t, f.Finalize())
}

func TestSetTargetsCountMismatchFails(t *testing.T) {
	f := newDraft(t, "A", "B", "C")
	require.NoError(t, f.Begin())

	err := f.SetTargets(model.UploadTarget{Path: "t"}, []model.UploadTarget{{Path: "a"}})
	assert.ErrorIs(t, err, ErrTargetCountMismatch)
	assert.Equal(t, StateFailed, f.State())
}

func TestOperationsRejectedOutsideDraft(t *testing.T) {
	f := newDraft(t, "A", "B", "C")
	require.NoError(t, f.Begin())

	assert.ErrorIs(t, f.AddMedia(image("D")), ErrWrongState)
	assert.ErrorIs(t, f.Reorder(0, 1), ErrWrongState)
	assert.ErrorIs(t, f.RemoveMedia(0), ErrWrongState)
}

func TestResetClearsTransferBookkeeping(t *testing.T) {
	f := newDraft(t, "A", "B")
	require.ErrorIs(t, f.Begin(), model.ErrTooFewImages)

	require.NoError(t, f.Reset())
	assert.Equal(t, StateDraft, f.State())
	assert.NoError(t, f.Err())

	// metadata and queue survive the reset
	assert.Equal(t, []string{"A", "B"}, mediaNames(f))
	require.NoError(t, f.AddMedia(image("C")))
	require.NoError(t, f.Begin())
	assert.Equal(t, StateRequestingUpload, f.State())
}

func TestAddMediaEnforcesMax(t *testing.T) {
	f := New(validTemplate())
	for i := 0; i < model.MaxMediaItems; i++ {
		require.NoError(t, f.AddMedia(image("img")))
	}
	assert.ErrorIs(t, f.AddMedia(image("overflow")), model.ErrTooManyImages)
}
