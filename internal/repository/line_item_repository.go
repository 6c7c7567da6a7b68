package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/purchase-req-api/internal/models"
)

const lineItemColumns = `id, requisition_line_id, requisition_id, requester, phone_extension,
       date_requested, date_needed, order_type, budget_object_code, fund, location,
       price_each, quantity, item_description, justification, additional_comments,
       tracking_id, status, created_at, submitted_at`

// LineItemRepository persists submitted requisition lines.
type LineItemRepository struct {
	db *sqlx.DB
}

// NewLineItemRepository constructs the repository.
func NewLineItemRepository(db *sqlx.DB) *LineItemRepository {
	return &LineItemRepository{db: db}
}

// CreateBatch inserts every line of one requisition inside a single
// transaction so a partial submission never becomes visible.
func (r *LineItemRepository) CreateBatch(ctx context.Context, items []models.LineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("create requisition: no items")
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin requisition tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO requisition_lines
	(id, requisition_line_id, requisition_id, requester, phone_extension, date_requested,
	 date_needed, order_type, budget_object_code, fund, location, price_each, quantity,
	 item_description, justification, additional_comments, tracking_id, status, created_at, submitted_at)
	VALUES (:id, :requisition_line_id, :requisition_id, :requester, :phone_extension, :date_requested,
	 :date_needed, :order_type, :budget_object_code, :fund, :location, :price_each, :quantity,
	 :item_description, :justification, :additional_comments, :tracking_id, :status, :created_at, :submitted_at)`

	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now().UTC()
		}
		if _, err := tx.NamedExecContext(ctx, query, item); err != nil {
			return fmt.Errorf("insert requisition line %s: %w", item.RequisitionLineID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit requisition tx: %w", err)
	}
	return nil
}

// ListSubmitted returns submitted lines, optionally filtered by a search term
// over requester, description, and justification. Ordered by submission time
// so queue grouping is stable.
func (r *LineItemRepository) ListSubmitted(ctx context.Context, search string) ([]models.LineItem, error) {
	query := `SELECT ` + lineItemColumns + `
	FROM requisition_lines WHERE requisition_id IS NOT NULL`
	args := make([]interface{}, 0, 1)
	if search != "" {
		query += ` AND (requester ILIKE $1 OR item_description ILIKE $1 OR justification ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY submitted_at ASC, requisition_id ASC, created_at ASC`

	var items []models.LineItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list submitted lines: %w", err)
	}
	return items, nil
}

// ListByRequisitionID fetches all lines of one requisition.
func (r *LineItemRepository) ListByRequisitionID(ctx context.Context, requisitionID string) ([]models.LineItem, error) {
	query := `SELECT ` + lineItemColumns + `
	FROM requisition_lines WHERE requisition_id = $1 ORDER BY created_at ASC`
	var items []models.LineItem
	if err := r.db.SelectContext(ctx, &items, query, requisitionID); err != nil {
		return nil, fmt.Errorf("list requisition lines: %w", err)
	}
	return items, nil
}

// GetByLineID fetches one line by its backend-issued identifier.
func (r *LineItemRepository) GetByLineID(ctx context.Context, lineID string) (*models.LineItem, error) {
	query := `SELECT ` + lineItemColumns + `
	FROM requisition_lines WHERE requisition_line_id = $1`
	var item models.LineItem
	if err := r.db.GetContext(ctx, &item, query, lineID); err != nil {
		return nil, err
	}
	return &item, nil
}

// AssignTracking stores the tracking identifier and moves the line to
// PENDING. The correlation UUID must match the row id and the guard rejects
// lines that already carry a tracking identifier.
func (r *LineItemRepository) AssignTracking(ctx context.Context, lineID, correlationID, trackingID string) error {
	const query = `UPDATE requisition_lines
	SET tracking_id = $1, status = $2
	WHERE requisition_line_id = $3 AND id = $4 AND tracking_id IS NULL`
	result, err := r.db.ExecContext(ctx, query, trackingID, models.LineItemStatusPending, lineID, correlationID)
	if err != nil {
		return fmt.Errorf("assign tracking id: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check tracking update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetStatus applies an approval decision. The guard refuses to re-apply the
// current status, which keeps concurrent identical decisions idempotent.
func (r *LineItemRepository) SetStatus(ctx context.Context, lineID string, status models.LineItemStatus) error {
	const query = `UPDATE requisition_lines
	SET status = $1 WHERE requisition_line_id = $2 AND status <> $1`
	result, err := r.db.ExecContext(ctx, query, status, lineID)
	if err != nil {
		return fmt.Errorf("set line status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check status update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
