package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFile() FileMeta {
	return FileMeta{Name: "poster.zip", Size: 1024, Type: "application/zip"}
}

func validImage() MediaItemMeta {
	return MediaItemMeta{Name: "cover.jpg", Size: 1024, Type: "image/jpeg", Width: 1600}
}

func TestCheckTemplateFileSizeBoundary(t *testing.T) {
	f := validFile()

	f.Size = MaxTemplateFileSize // 52428800, exactly at the limit
	assert.NoError(t, CheckTemplateFile(f))

	f.Size = MaxTemplateFileSize + 1
	assert.ErrorIs(t, CheckTemplateFile(f), ErrFileTooLarge)

	// size wins over type when both are wrong
	f.Type = "image/jpeg"
	assert.ErrorIs(t, CheckTemplateFile(f), ErrFileTooLarge)
}

func TestCheckTemplateFileTypes(t *testing.T) {
	allowed := []string{
		"application/zip",
		"application/x-zip-compressed",
		"image/vnd.adobe.photoshop",
		"application/pdf",
		"application/postscript",
	}
	for _, mime := range allowed {
		f := validFile()
		f.Type = mime
		assert.NoError(t, CheckTemplateFile(f), mime)
	}

	f := validFile()
	f.Type = "image/jpeg"
	assert.ErrorIs(t, CheckTemplateFile(f), ErrUnsupportedFileType)
}

func TestCheckTemplateFileMissingFields(t *testing.T) {
	f := validFile()
	f.Name = ""
	assert.ErrorIs(t, CheckTemplateFile(f), ErrMissingFields)

	f = validFile()
	f.Size = 0
	assert.ErrorIs(t, CheckTemplateFile(f), ErrMissingFields)
}

func TestCheckMediaItemsCountBounds(t *testing.T) {
	two := []MediaItemMeta{validImage(), validImage()}
	assert.ErrorIs(t, CheckMediaItems(two), ErrTooFewImages)

	three := append(two, validImage())
	assert.NoError(t, CheckMediaItems(three))

	eleven := make([]MediaItemMeta, 11)
	for i := range eleven {
		eleven[i] = validImage()
	}
	assert.ErrorIs(t, CheckMediaItems(eleven), ErrTooManyImages)

	ten := eleven[:10]
	assert.NoError(t, CheckMediaItems(ten))
}

func TestCheckMediaItemsWidthFloor(t *testing.T) {
	items := []MediaItemMeta{validImage(), validImage(), validImage()}

	items[1].Width = MinImageWidth // exactly 1200 passes
	assert.NoError(t, CheckMediaItems(items))

	items[1].Width = MinImageWidth - 1
	assert.ErrorIs(t, CheckMediaItems(items), ErrImageTooNarrow)
}

func TestCheckMediaItemsSizeAndType(t *testing.T) {
	items := []MediaItemMeta{validImage(), validImage(), validImage()}

	items[2].Size = MaxImageSize + 1
	assert.ErrorIs(t, CheckMediaItems(items), ErrImageTooLarge)

	items[2] = validImage()
	items[2].Type = "image/gif"
	assert.ErrorIs(t, CheckMediaItems(items), ErrUnsupportedImageType)

	items[2] = validImage()
	items[2].Type = "image/webp"
	assert.NoError(t, CheckMediaItems(items))
}

func TestTemplateUploadRequestValidate(t *testing.T) {
	req := TemplateUploadRequest{
		Title:    "Minimal Resume",
		Category: "resumes",
		License:  "standard",
		Version:  "1.0.0",
		File:     validFile(),
	}
	assert.NoError(t, req.Validate())

	missing := req
	missing.License = ""
	assert.ErrorIs(t, missing.Validate(), ErrMissingFields)

	oversized := req
	oversized.File.Size = MaxTemplateFileSize + 1
	assert.ErrorIs(t, oversized.Validate(), ErrFileTooLarge)
}

func TestFinalizeMediaRequestValidate(t *testing.T) {
	req := FinalizeMediaRequest{
		TemplateID: "4be0643f-1d98-573b-97cd-ca98a65347dd",
		Items: []MediaFinalizeItem{
			{Path: "media/a.jpg", Width: 1400},
			{Path: "media/b.jpg", Width: 1400},
			{Path: "media/c.jpg", Width: 1400},
		},
	}
	assert.NoError(t, req.Validate())

	req.Items[0].Path = ""
	assert.ErrorIs(t, req.Validate(), ErrMissingFields)

	req.Items[0].Path = "media/a.jpg"
	req.Items = req.Items[:2]
	assert.ErrorIs(t, req.Validate(), ErrTooFewImages)
}
