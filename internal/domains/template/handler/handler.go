package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"framecanvas-backend/internal/domains/template/catalog"
	"framecanvas-backend/internal/domains/template/model"
	"framecanvas-backend/internal/domains/template/service"
	"framecanvas-backend/internal/shared/response"
	"framecanvas-backend/internal/shared/utils"
)

const (
	defaultFeaturedLimit = 8
	maxFeaturedLimit     = 50
)

type Handler struct {
	service service.Service
}

func NewHandler(service service.Service) *Handler {
	return &Handler{service: service}
}

// List - GET /v1/templates?category=&q=&sort=
func (h *Handler) List(c *gin.Context) {
	templates, err := h.service.ListCatalog(
		c.Request.Context(),
		c.Query("category"),
		c.Query("q"),
		catalog.ParseSortKey(c.Query("sort")),
	)
	if model.HandleTemplateError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, templates)
}

// ListFeatured - GET /v1/templates/featured?limit=
func (h *Handler) ListFeatured(c *gin.Context) {
	limit := defaultFeaturedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxFeaturedLimit {
			response.BadRequest(c, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	templates, err := h.service.ListFeatured(c.Request.Context(), limit)
	if model.HandleTemplateError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, templates)
}

// GetDetail - GET /v1/templates/:id
func (h *Handler) GetDetail(c *gin.Context) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.BadRequest(c, "invalid template id")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if model.HandleTemplateError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// Download - POST /v1/templates/:id/download
func (h *Handler) Download(c *gin.Context) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.BadRequest(c, "invalid template id")
		return
	}

	grant, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSigningUnavailable) {
			response.InternalServerError(c, "object storage not configured")
			return
		}
		if model.HandleTemplateError(c, err) {
			return
		}
	}

	response.Success(c, http.StatusOK, grant)
}
