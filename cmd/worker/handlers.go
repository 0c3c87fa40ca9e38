package main

import (
	"log"

	"github.com/hibiken/asynq"

	templateJob "framecanvas-backend/internal/domains/template/job"
	"framecanvas-backend/internal/infrastructure/storage"
	"framecanvas-backend/internal/shared"
	"framecanvas-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	processMedia     *templateJob.ProcessMediaHandler
	reconcileOrphans *templateJob.ReconcileOrphansHandler
}

// initializeHandlers creates all job handlers with their dependencies.
// Storage-bound handlers are skipped when object storage is not configured;
// their tasks stay queued until a configured worker picks them up.
func initializeHandlers(c *container.Container) *HandlerRegistry {
	h := &HandlerRegistry{}

	if c.Storage == nil {
		log.Println("[Worker] ⚠️  Object storage not configured, media handlers disabled")
		return h
	}

	h.processMedia = templateJob.NewProcessMediaHandler(
		c.TemplateRepo,
		c.Storage,
		storage.NewImageProcessor(),
	)
	h.reconcileOrphans = templateJob.NewReconcileOrphansHandler(c.TemplateRepo, c.Storage)

	return h
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	if h.processMedia != nil {
		mux.HandleFunc(shared.TypeProcessMediaThumbnail, h.processMedia.ProcessTask)
	}
	if h.reconcileOrphans != nil {
		mux.HandleFunc(shared.TypeReconcileOrphans, h.reconcileOrphans.ProcessTask)
	}
}
