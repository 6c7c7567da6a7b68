package models

import "time"

// AttachmentStatus tracks the upload lifecycle of a selected file.
// Transitions are idle -> uploading -> {success, error}; a terminal state
// never regresses to uploading for the same attempt.
type AttachmentStatus string

const (
	AttachmentStatusIdle      AttachmentStatus = "idle"
	AttachmentStatusUploading AttachmentStatus = "uploading"
	AttachmentStatusSuccess   AttachmentStatus = "success"
	AttachmentStatusError     AttachmentStatus = "error"
)

// Attachment represents one selected file. RequisitionLineID stays empty
// until the owning line identifier is known.
type Attachment struct {
	ID                string           `db:"id" json:"id"`
	Name              string           `db:"file_name" json:"name"`
	RequisitionLineID string           `db:"requisition_line_id" json:"requisitionLineId"`
	Status            AttachmentStatus `db:"status" json:"status"`
	Progress          int              `db:"-" json:"progress"`
	SizeBytes         int64            `db:"size_bytes" json:"sizeBytes"`
	StoredPath        string           `db:"file_path" json:"-"`
	StagedPath        string           `db:"-" json:"-"`
	CreatedAt         time.Time        `db:"created_at" json:"createdAt"`
}
