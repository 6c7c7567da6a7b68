package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SequenceRepository issues monotonically increasing identifiers for
// requisition lines and requisitions from PostgreSQL sequences.
type SequenceRepository struct {
	db *sqlx.DB
}

// NewSequenceRepository constructs the repository.
func NewSequenceRepository(db *sqlx.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextLineID returns a fresh requisition line identifier.
func (r *SequenceRepository) NextLineID(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT nextval('requisition_line_id_seq')`); err != nil {
		return "", fmt.Errorf("issue line id: %w", err)
	}
	return fmt.Sprintf("%06d", n), nil
}

// NextRequisitionID returns a fresh requisition identifier.
func (r *SequenceRepository) NextRequisitionID(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT nextval('requisition_id_seq')`); err != nil {
		return "", fmt.Errorf("issue requisition id: %w", err)
	}
	return fmt.Sprintf("REQ-%06d", n), nil
}
