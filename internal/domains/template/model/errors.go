package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"framecanvas-backend/internal/shared/response"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrNoCurrentVersion = errors.New("template has no current version")
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)

// HandleTemplateError maps domain errors to HTTP responses. Returns true
// when the request was terminated.
func HandleTemplateError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrTemplateNotFound):
		response.NotFound(c, "template not found")
	case errors.Is(err, ErrNoCurrentVersion):
		response.ErrorResponse(c, http.StatusConflict, "NO_CURRENT_VERSION", "template has no downloadable version")
	case errors.Is(err, ErrStoreUnavailable):
		response.ErrorResponse(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "catalog store unavailable")
	default:
		response.InternalServerError(c, "internal server error")
	}
	return true
}
