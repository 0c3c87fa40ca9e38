package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	profileModel "framecanvas-backend/internal/domains/profile/model"
	"framecanvas-backend/internal/shared/middleware"
	"framecanvas-backend/internal/shared/response"
	"framecanvas-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCatalogRoutes(v1, c)
		setupUploadRoutes(v1, c)
		setupAccessRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// CATALOG ROUTES (public)
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.CategoryHandler.List)

	templates := v1.Group("/templates")
	{
		templates.GET("", c.TemplateHandler.List)
		templates.GET("/featured", c.TemplateHandler.ListFeatured)
		templates.GET("/:id", c.TemplateHandler.GetDetail)
		templates.POST("/:id/download", c.TemplateHandler.Download)
	}

	// Public by design: paths are unguessable and the URL expires in 60s.
	v1.POST("/storage/signed-url", c.UploadHandler.SignDownloadURL)
}

// ========================================
// UPLOAD ROUTES (authenticated; role enforced in the service)
// ========================================
func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	uploads := v1.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		uploads.POST("/template", c.UploadHandler.RequestTemplateUpload)
		uploads.POST("/template/finalize", c.UploadHandler.FinalizeTemplate)
		uploads.POST("/media", c.UploadHandler.RequestMediaUpload)
		uploads.POST("/media/finalize", c.UploadHandler.FinalizeMedia)
	}
}

// ========================================
// ACCESS ROUTES
// ========================================
func setupAccessRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/access/evaluate", c.GuardHandler.Evaluate)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		// SetRole enforces the owner allow-list inside the service.
		admin.POST("/users/role", c.ProfileHandler.SetRole)

		admin.GET("/audit-logs", requireAdmin(c), c.AuditHandler.List)
	}
}

// requireAdmin re-derives the caller's role from the profiles table; the
// token's role claim is not trusted.
func requireAdmin(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middleware.UserID(ctx)
		if !ok {
			response.Unauthorized(ctx, "authentication required")
			ctx.Abort()
			return
		}

		role, err := c.ProfileRepo.GetRole(ctx.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, profileModel.ErrProfileNotFound) {
				response.Forbidden(ctx, "admin role required")
			} else {
				response.InternalServerError(ctx, "failed to check role")
			}
			ctx.Abort()
			return
		}
		if role != profileModel.RoleAdmin {
			response.Forbidden(ctx, "admin role required")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}
		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus,
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
			"storage":  c.Storage != nil,
		})
	}
}
