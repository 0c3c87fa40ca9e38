package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framecanvas-backend/internal/domains/upload/model"
	"framecanvas-backend/internal/domains/upload/service"
	"framecanvas-backend/internal/shared/middleware"
)

type fakeService struct {
	mediaResp  *model.MediaUploadResponse
	mediaErr   error
	signedResp *model.SignedURLResponse
	signedErr  error

	gotMediaReq model.MediaUploadRequest
	gotActor    service.Actor
}

func (f *fakeService) RequestTemplateUpload(ctx context.Context, actor service.Actor, req model.TemplateUploadRequest) (*model.TemplateUploadResponse, error) {
	return &model.TemplateUploadResponse{Validated: true}, nil
}

func (f *fakeService) FinalizeTemplate(ctx context.Context, actor service.Actor, req model.FinalizeTemplateRequest) (*model.FinalizeTemplateResponse, error) {
	return &model.FinalizeTemplateResponse{}, nil
}

func (f *fakeService) RequestMediaUpload(ctx context.Context, actor service.Actor, req model.MediaUploadRequest) (*model.MediaUploadResponse, error) {
	f.gotMediaReq = req
	f.gotActor = actor
	if f.mediaErr != nil {
		return nil, f.mediaErr
	}
	return f.mediaResp, nil
}

func (f *fakeService) FinalizeMedia(ctx context.Context, actor service.Actor, req model.FinalizeMediaRequest) (*model.FinalizeMediaResponse, error) {
	return &model.FinalizeMediaResponse{}, nil
}

func (f *fakeService) SignDownloadURL(ctx context.Context, path string) (*model.SignedURLResponse, error) {
	if f.signedErr != nil {
		return nil, f.signedErr
	}
	return f.signedResp, nil
}

func setupRouter(svc service.Service, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(svc)

	authed := router.Group("/", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxEmail, "editor@framecanvas.io")
	})
	authed.POST("/uploads/media", h.RequestMediaUpload)
	router.POST("/storage/signed-url", h.SignDownloadURL)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestMediaUploadReturnsOneTargetPerItem(t *testing.T) {
	svc := &fakeService{
		mediaResp: &model.MediaUploadResponse{
			Validated: true,
			Uploads: []model.UploadTarget{
				{Path: "media/1-one.jpg", SignedURL: "https://storage.test/put/1"},
				{Path: "media/2-two.jpg", SignedURL: "https://storage.test/put/2"},
				{Path: "media/3-three.jpg", SignedURL: "https://storage.test/put/3"},
			},
		},
	}
	userID := uuid.New()
	router := setupRouter(svc, userID)

	body := model.MediaUploadRequest{Items: []model.MediaItemMeta{
		{Name: "one.jpg", Size: 1024, Type: "image/jpeg", Width: 1600},
		{Name: "two.jpg", Size: 1024, Type: "image/jpeg", Width: 1600},
		{Name: "three.jpg", Size: 1024, Type: "image/jpeg", Width: 1600},
	}}

	w := postJSON(t, router, "/uploads/media", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool                      `json:"success"`
		Data    model.MediaUploadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Uploads, 3)
	assert.Equal(t, "media/2-two.jpg", resp.Data.Uploads[1].Path)

	// actor and payload reached the service intact and in order
	assert.Equal(t, userID, svc.gotActor.UserID)
	require.Len(t, svc.gotMediaReq.Items, 3)
	assert.Equal(t, "two.jpg", svc.gotMediaReq.Items[1].Name)
}

func TestRequestMediaUploadErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"too few images", model.ErrTooFewImages, http.StatusBadRequest, "BAD_REQUEST"},
		{"image too large", model.ErrImageTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"bad type", model.ErrUnsupportedImageType, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"forbidden", model.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{mediaErr: tt.err}
			router := setupRouter(svc, uuid.New())

			w := postJSON(t, router, "/uploads/media", model.MediaUploadRequest{})
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestRequestMediaUploadRequiresAuth(t *testing.T) {
	svc := &fakeService{}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// no auth middleware: context carries no user
	router.POST("/uploads/media", NewHandler(svc).RequestMediaUpload)

	w := postJSON(t, router, "/uploads/media", model.MediaUploadRequest{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignDownloadURLPublic(t *testing.T) {
	svc := &fakeService{signedResp: &model.SignedURLResponse{SignedURL: "https://storage.test/get/x", ExpiresIn: 60}}
	router := setupRouter(svc, uuid.New())

	w := postJSON(t, router, "/storage/signed-url", model.SignedURLRequest{Path: "templates/x/file.zip"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.SignedURLResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(60), resp.Data.ExpiresIn)
}

func TestSignDownloadURLWithoutStorage(t *testing.T) {
	svc := &fakeService{signedErr: model.ErrStorageNotConfigured}
	router := setupRouter(svc, uuid.New())

	w := postJSON(t, router, "/storage/signed-url", model.SignedURLRequest{Path: "templates/x/file.zip"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSignDownloadURLRequiresPath(t *testing.T) {
	svc := &fakeService{}
	router := setupRouter(svc, uuid.New())

	w := postJSON(t, router, "/storage/signed-url", model.SignedURLRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
