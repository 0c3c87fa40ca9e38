package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	templateModel "framecanvas-backend/internal/domains/template/model"
	"framecanvas-backend/internal/domains/upload/model"
	"framecanvas-backend/internal/domains/upload/service"
	"framecanvas-backend/internal/shared/middleware"
	"framecanvas-backend/internal/shared/response"
)

type Handler struct {
	service service.Service
}

func NewHandler(service service.Service) *Handler {
	return &Handler{service: service}
}

func actorFrom(c *gin.Context) (service.Actor, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID: userID,
		Email:  c.GetString(middleware.CtxEmail),
		IP:     c.ClientIP(),
	}, true
}

// RequestTemplateUpload - POST /v1/uploads/template
func (h *Handler) RequestTemplateUpload(c *gin.Context) {
	var req model.TemplateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.RequestTemplateUpload(c.Request.Context(), actor, req)
	if model.HandleUploadError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// FinalizeTemplate - POST /v1/uploads/template/finalize
func (h *Handler) FinalizeTemplate(c *gin.Context) {
	var req model.FinalizeTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.FinalizeTemplate(c.Request.Context(), actor, req)
	if err != nil {
		if templateModel.HandleTemplateError(c, filterTemplateErr(err)) {
			return
		}
		model.HandleUploadError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// RequestMediaUpload - POST /v1/uploads/media
func (h *Handler) RequestMediaUpload(c *gin.Context) {
	var req model.MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.RequestMediaUpload(c.Request.Context(), actor, req)
	if model.HandleUploadError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// FinalizeMedia - POST /v1/uploads/media/finalize
func (h *Handler) FinalizeMedia(c *gin.Context) {
	var req model.FinalizeMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.FinalizeMedia(c.Request.Context(), actor, req)
	if err != nil {
		if templateModel.HandleTemplateError(c, filterTemplateErr(err)) {
			return
		}
		model.HandleUploadError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// SignDownloadURL - POST /v1/storage/signed-url
// Deliberately public: paths are unguessable and the URL expires quickly.
func (h *Handler) SignDownloadURL(c *gin.Context) {
	var req model.SignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "path is required")
		return
	}

	resp, err := h.service.SignDownloadURL(c.Request.Context(), req.Path)
	if model.HandleUploadError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// filterTemplateErr passes through only catalog-store errors so upload
// errors keep their own mapping.
func filterTemplateErr(err error) error {
	if errors.Is(err, templateModel.ErrTemplateNotFound) || errors.Is(err, templateModel.ErrStoreUnavailable) {
		return err
	}
	return nil
}
