package shared

// Asynq task types
const (
	TypeProcessMediaThumbnail = "media:process_thumbnail"
	TypeReconcileOrphans      = "storage:reconcile_orphans"
)

// Queue names
const (
	QueueDefault = "default"
	QueueMedia   = "media"
	QueueLow     = "low"
)

// ProcessMediaPayload is the payload for media:process_thumbnail.
type ProcessMediaPayload struct {
	MediaID string `json:"media_id"`
}

// ReconcileOrphansPayload is the payload for storage:reconcile_orphans.
type ReconcileOrphansPayload struct {
	OlderThanHours int `json:"older_than_hours"`
}
