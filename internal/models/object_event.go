package models

import "time"

const (
	EventUploadIssued = "object.upload_issued"
	EventDeleted      = "object.deleted"
)

// ObjectEvent is published when the object API changes or is about to change
// the bucket.
type ObjectEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Bucket      string    `json:"bucket"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
