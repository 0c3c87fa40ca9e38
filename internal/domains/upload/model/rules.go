package model

// Upload limits. Sizes are in bytes.
const (
	MaxTemplateFileSize = 50 << 20 // 52428800
	MaxImageSize        = 5 << 20

	MinImageWidth = 1200

	MinMediaItems = 3
	MaxMediaItems = 10
)

// allowedTemplateTypes are the accepted MIME types for template source
// files: zip archives, PSD, PDF and AI/EPS.
var allowedTemplateTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"image/vnd.adobe.photoshop":    true,
	"application/pdf":              true,
	"application/postscript":       true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func AllowedTemplateType(mime string) bool { return allowedTemplateTypes[mime] }
func AllowedImageType(mime string) bool    { return allowedImageTypes[mime] }

// CheckTemplateFile validates the declared file metadata against the
// template file rules. Order matters: size before type, so an oversized
// file answers 413 even when its format is also wrong.
func CheckTemplateFile(f FileMeta) error {
	if f.Name == "" || f.Size <= 0 || f.Type == "" {
		return ErrMissingFields
	}
	if f.Size > MaxTemplateFileSize {
		return ErrFileTooLarge
	}
	if !AllowedTemplateType(f.Type) {
		return ErrUnsupportedFileType
	}
	return nil
}

// CheckMediaItems validates the declared carousel set: count bounds first,
// then per-item type, size and width.
func CheckMediaItems(items []MediaItemMeta) error {
	if len(items) < MinMediaItems {
		return ErrTooFewImages
	}
	if len(items) > MaxMediaItems {
		return ErrTooManyImages
	}
	for _, item := range items {
		if item.Name == "" || item.Size <= 0 || item.Type == "" {
			return ErrMissingFields
		}
		if !AllowedImageType(item.Type) {
			return ErrUnsupportedImageType
		}
		if item.Size > MaxImageSize {
			return ErrImageTooLarge
		}
		if item.Width < MinImageWidth {
			return ErrImageTooNarrow
		}
	}
	return nil
}
