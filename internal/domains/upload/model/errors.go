package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"framecanvas-backend/internal/shared/response"
)

var (
	ErrMissingFields        = errors.New("required fields are missing")
	ErrFileTooLarge         = errors.New("file exceeds the 50MB limit")
	ErrUnsupportedFileType  = errors.New("file type not allowed")
	ErrTooFewImages         = errors.New("at least 3 carousel images are required")
	ErrTooManyImages        = errors.New("at most 10 carousel images are allowed")
	ErrImageTooLarge        = errors.New("image exceeds the 5MB limit")
	ErrUnsupportedImageType = errors.New("image type not allowed (jpeg/png/webp)")
	ErrImageTooNarrow       = errors.New("image width below the 1200px minimum")
	ErrForbidden            = errors.New("role does not allow uploads")
	ErrStorageNotConfigured = errors.New("object storage not configured")
)

// HandleUploadError maps upload errors to HTTP responses. Returns true when
// the request was terminated.
func HandleUploadError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrMissingFields):
		response.ErrorResponse(c, http.StatusBadRequest, "MISSING_FIELDS", err.Error())
	case errors.Is(err, ErrTooFewImages), errors.Is(err, ErrTooManyImages), errors.Is(err, ErrImageTooNarrow):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrImageTooLarge):
		response.PayloadTooLarge(c, err.Error())
	case errors.Is(err, ErrUnsupportedFileType), errors.Is(err, ErrUnsupportedImageType):
		response.UnsupportedMediaType(c, err.Error())
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, ErrStorageNotConfigured):
		response.ErrorResponse(c, http.StatusInternalServerError, "STORAGE_NOT_CONFIGURED", err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
	return true
}
