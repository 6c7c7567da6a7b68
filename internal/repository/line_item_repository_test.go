package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/purchase-req-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sampleLine(lineID string) models.LineItem {
	reqID := "REQ-000001"
	submittedAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	return models.LineItem{
		ID:                "corr-" + lineID,
		RequisitionLineID: lineID,
		RequisitionID:     &reqID,
		Requester:         "Pat Smith",
		PhoneExtension:    "4402",
		DateRequested:     submittedAt,
		OrderType:         models.OrderTypeQuarterly,
		BudgetObjectCode:  "3101",
		Fund:              "0010",
		Location:          "Main Office",
		PriceEach:         10,
		Quantity:          2,
		ItemDescription:   "Copy paper",
		Justification:     "Restock supplies",
		Status:            models.LineItemStatusNewRequest,
		CreatedAt:         submittedAt,
		SubmittedAt:       &submittedAt,
	}
}

func TestLineItemRepositoryCreateBatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLineItemRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO requisition_lines")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO requisition_lines")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	items := []models.LineItem{sampleLine("000001"), sampleLine("000002")}
	require.NoError(t, repo.CreateBatch(context.Background(), items))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLineItemRepositoryCreateBatchRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLineItemRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO requisition_lines")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO requisition_lines")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	items := []models.LineItem{sampleLine("000001"), sampleLine("000002")}
	require.Error(t, repo.CreateBatch(context.Background(), items))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLineItemRepositoryCreateBatchRejectsEmpty(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLineItemRepository(db)
	require.Error(t, repo.CreateBatch(context.Background(), nil))
}

func TestLineItemRepositoryListSubmittedWithSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLineItemRepository(db)
	item := sampleLine("000001")
	rows := sqlmock.NewRows([]string{
		"id", "requisition_line_id", "requisition_id", "requester", "phone_extension",
		"date_requested", "date_needed", "order_type", "budget_object_code", "fund", "location",
		"price_each", "quantity", "item_description", "justification", "additional_comments",
		"tracking_id", "status", "created_at", "submitted_at",
	}).AddRow(
		item.ID, item.RequisitionLineID, item.RequisitionID, item.Requester, item.PhoneExtension,
		item.DateRequested, nil, item.OrderType, item.BudgetObjectCode, item.Fund, item.Location,
		item.PriceEach, item.Quantity, item.ItemDescription, item.Justification, "",
		nil, item.Status, item.CreatedAt, item.SubmittedAt,
	)
	mock.ExpectQuery("SELECT id, requisition_line_id").
		WithArgs("%paper%").
		WillReturnRows(rows)

	items, err := repo.ListSubmitted(context.Background(), "paper")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "000001", items[0].RequisitionLineID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLineItemRepositoryAssignTracking(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLineItemRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE requisition_lines")).
		WithArgs("IRQ1-77", models.LineItemStatusPending, "000001", "corr-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AssignTracking(context.Background(), "000001", "corr-1", "IRQ1-77"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLineItemRepositoryAssignTrackingAlreadySet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLineItemRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE requisition_lines")).
		WithArgs("IRQ1-77", models.LineItemStatusPending, "000001", "corr-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AssignTracking(context.Background(), "000001", "corr-1", "IRQ1-77")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLineItemRepositorySetStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLineItemRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE requisition_lines")).
		WithArgs(models.LineItemStatusApproved, "000001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus(context.Background(), "000001", models.LineItemStatusApproved))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLineItemRepositorySetStatusUnchanged(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLineItemRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE requisition_lines")).
		WithArgs(models.LineItemStatusApproved, "000001").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetStatus(context.Background(), "000001", models.LineItemStatusApproved)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
