package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/purchase-req-api/internal/models"
)

// AttachmentRepository persists attachment metadata for uploaded files.
type AttachmentRepository struct {
	db *sqlx.DB
}

// NewAttachmentRepository constructs the repository.
func NewAttachmentRepository(db *sqlx.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create inserts a metadata row for a successfully stored file.
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}
	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attachments
	(id, requisition_line_id, file_name, file_path, size_bytes, status, created_at)
	VALUES (:id, :requisition_line_id, :file_name, :file_path, :size_bytes, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, attachment); err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	return nil
}

// DeleteByLineAndName removes the metadata row. Missing rows are not an
// error; deletion is idempotent.
func (r *AttachmentRepository) DeleteByLineAndName(ctx context.Context, lineID, fileName string) error {
	const query = `DELETE FROM attachments WHERE requisition_line_id = $1 AND file_name = $2`
	if _, err := r.db.ExecContext(ctx, query, lineID, fileName); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

// ListByLineID returns stored attachments for one requisition line.
func (r *AttachmentRepository) ListByLineID(ctx context.Context, lineID string) ([]models.Attachment, error) {
	const query = `SELECT id, requisition_line_id, file_name, file_path, size_bytes, status, created_at
	FROM attachments WHERE requisition_line_id = $1 ORDER BY created_at ASC`
	var attachments []models.Attachment
	if err := r.db.SelectContext(ctx, &attachments, query, lineID); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return attachments, nil
}
