package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"framecanvas-backend/internal/domains/profile/model"
	"framecanvas-backend/internal/domains/profile/service"
	"framecanvas-backend/internal/shared/middleware"
	"framecanvas-backend/internal/shared/response"
)

type Handler struct {
	service service.Service
}

func NewHandler(service service.Service) *Handler {
	return &Handler{service: service}
}

type setRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (r setRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.Role, validation.Required, validation.In(
			model.RoleAdmin, model.RoleEditor, model.RoleViewer)),
	)
}

// SetRole - POST /v1/admin/users/role
func (h *Handler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", err.Error())
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	actor := service.Actor{
		UserID: userID,
		Email:  c.GetString(middleware.CtxEmail),
		IP:     c.ClientIP(),
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	err = h.service.SetRole(c.Request.Context(), actor, targetID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidRole):
			response.BadRequest(c, "invalid role")
		case errors.Is(err, model.ErrNotOwner), errors.Is(err, model.ErrAdminNotOwner):
			response.Forbidden(c, err.Error())
		case errors.Is(err, model.ErrProfileNotFound):
			response.NotFound(c, "profile not found")
		case errors.Is(err, model.ErrStoreUnavailable):
			response.ErrorResponse(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "profile store unavailable")
		default:
			response.InternalServerError(c, "failed to update role")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user_id": req.UserID, "role": req.Role})
}
