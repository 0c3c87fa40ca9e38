package guard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framecanvas-backend/pkg/jwt"
)

func evaluateWith(t *testing.T, h *Handler, token string) Decision {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/access/evaluate", h.Evaluate)

	req := httptest.NewRequest(http.MethodGet, "/access/evaluate", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data Decision `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestEvaluateEndpoint(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	h := NewHandler(NewPolicy("owner@framecanvas.io"), true, manager)

	ownerToken, err := manager.GenerateAccessToken(uuid.NewString(), "owner@framecanvas.io", "admin")
	require.NoError(t, err)
	otherToken, err := manager.GenerateAccessToken(uuid.NewString(), "editor@framecanvas.io", "editor")
	require.NoError(t, err)

	assert.True(t, evaluateWith(t, h, ownerToken).IsAdmin)
	assert.False(t, evaluateWith(t, h, otherToken).IsAdmin)
	assert.False(t, evaluateWith(t, h, "").IsAdmin)
	assert.False(t, evaluateWith(t, h, "garbage").IsAdmin)
}

func TestEvaluateEndpointFeatureDisabled(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	h := NewHandler(NewPolicy("owner@framecanvas.io"), false, manager)

	ownerToken, err := manager.GenerateAccessToken(uuid.NewString(), "owner@framecanvas.io", "admin")
	require.NoError(t, err)

	decision := evaluateWith(t, h, ownerToken)
	assert.False(t, decision.IsAdmin)
	assert.False(t, decision.IsChecking)
}
