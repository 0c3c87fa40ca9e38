package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"framecanvas-backend/internal/domains/audit/model"
	"framecanvas-backend/internal/domains/audit/service"
	"framecanvas-backend/internal/shared/response"
)

type Handler struct {
	service service.Service
}

func NewHandler(service service.Service) *Handler {
	return &Handler{service: service}
}

// List - GET /v1/admin/audit-logs?limit=&offset=
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrStoreUnavailable) {
			response.ErrorResponse(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "audit store unavailable")
			return
		}
		response.InternalServerError(c, "failed to list audit logs")
		return
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	response.Success(c, http.StatusOK, entries)
}
