package service

import (
	"context"

	"framecanvas-backend/internal/domains/audit/model"
)

// Recorder is the write-only surface other domains use. Recording never
// fails the caller's request; failures are logged and dropped.
type Recorder interface {
	Record(ctx context.Context, entry model.Entry)
}

type Service interface {
	Recorder

	List(ctx context.Context, limit, offset int) ([]model.Entry, error)
}
