package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"framecanvas-backend/internal/domains/category/model"
	"framecanvas-backend/internal/domains/category/service"
	"framecanvas-backend/internal/shared/response"
)

type Handler struct {
	service service.Service
}

func NewHandler(service service.Service) *Handler {
	return &Handler{service: service}
}

// List - GET /v1/categories
func (h *Handler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		if errors.Is(err, model.ErrStoreUnavailable) {
			response.ErrorResponse(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "catalog store unavailable")
			return
		}
		response.InternalServerError(c, "failed to list categories")
		return
	}

	response.Success(c, http.StatusOK, categories)
}
