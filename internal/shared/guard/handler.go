package guard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"framecanvas-backend/internal/shared/response"
	"framecanvas-backend/pkg/jwt"
)

// Handler exposes the admission decision over HTTP so clients render admin
// affordances from the same policy the server enforces.
type Handler struct {
	policy         Policy
	featureEnabled bool
	jwtManager     *jwt.Manager
}

func NewHandler(policy Policy, featureEnabled bool, jwtManager *jwt.Manager) *Handler {
	return &Handler{
		policy:         policy,
		featureEnabled: featureEnabled,
		jwtManager:     jwtManager,
	}
}

// Evaluate - GET /v1/access/evaluate
// Public: an anonymous caller simply gets IsAdmin=false.
func (h *Handler) Evaluate(c *gin.Context) {
	session := h.sessionFrom(c)
	decision := h.policy.Evaluate(session, h.featureEnabled, false)
	response.Success(c, http.StatusOK, decision)
}

// sessionFrom parses the bearer token when one is present. An invalid or
// missing token means no session, not an error.
func (h *Handler) sessionFrom(c *gin.Context) *Session {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	claims, err := h.jwtManager.ValidateAccessToken(parts[1])
	if err != nil {
		return nil
	}
	return &Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}
