package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrStoreUnavailable = errors.New("audit store unavailable")

// Actions recorded in the audit trail. Both phases of the upload protocol
// leave a trace: requesting a signed URL and finalizing the rows.
const (
	ActionTemplateUploadRequest = "template_upload_request"
	ActionTemplateUpload        = "template_upload"
	ActionMediaUploadRequest    = "media_upload_request"
	ActionMediaFinalize         = "media_finalize"
	ActionRoleChange            = "role_change"
)

// Entry is one append-only audit row. Every privileged mutation writes one.
type Entry struct {
	ID         uuid.UUID              `json:"id"`
	ActorID    uuid.UUID              `json:"actor_id"`
	ActorEmail string                 `json:"actor_email"`
	Action     string                 `json:"action"`
	Entity     string                 `json:"entity"`
	EntityID   string                 `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
