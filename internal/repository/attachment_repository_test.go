package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/purchase-req-api/internal/models"
)

func TestAttachmentRepositoryCreateAssignsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttachmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attachments")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	attachment := &models.Attachment{
		Name:              "quote.pdf",
		RequisitionLineID: "000001",
		Status:            models.AttachmentStatusSuccess,
		SizeBytes:         2048,
		StoredPath:        "files/000001/quote.pdf",
	}
	require.NoError(t, repo.Create(context.Background(), attachment))
	require.NotEmpty(t, attachment.ID)
	require.False(t, attachment.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepositoryDeleteIsIdempotent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttachmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attachments")).
		WithArgs("000001", "quote.pdf").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteByLineAndName(context.Background(), "000001", "quote.pdf"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepositoryListByLineID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttachmentRepository(db)
	rows := sqlmock.NewRows([]string{"id", "requisition_line_id", "file_name", "file_path", "size_bytes", "status", "created_at"}).
		AddRow("att-1", "000001", "quote.pdf", "files/000001/quote.pdf", 2048, "success", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, requisition_line_id, file_name")).
		WithArgs("000001").
		WillReturnRows(rows)

	attachments, err := repo.ListByLineID(context.Background(), "000001")
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	require.Equal(t, "quote.pdf", attachments[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
