package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSequenceRepositoryNextLineID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nextval('requisition_line_id_seq')")).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(42))

	lineID, err := repo.NextLineID(context.Background())
	require.NoError(t, err)
	require.Equal(t, "000042", lineID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepositoryNextRequisitionID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nextval('requisition_id_seq')")).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(7))

	reqID, err := repo.NextRequisitionID(context.Background())
	require.NoError(t, err)
	require.Equal(t, "REQ-000007", reqID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepositoryPropagatesErrors(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nextval('requisition_line_id_seq')")).
		WillReturnError(context.DeadlineExceeded)

	_, err := repo.NextLineID(context.Background())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
