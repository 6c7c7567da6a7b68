package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/purchase-req-api/internal/correlation"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
)

type lineItemWriterStub struct {
	batches [][]models.LineItem
	err     error
}

func (w *lineItemWriterStub) CreateBatch(ctx context.Context, items []models.LineItem) error {
	if w.err != nil {
		return w.err
	}
	w.batches = append(w.batches, items)
	return nil
}

type attachmentFinalizerStub struct {
	ensureErr error
	ensured   []string
	cleared   []string
}

func (a *attachmentFinalizerStub) EnsureUploaded(ctx context.Context, owner string) error {
	a.ensured = append(a.ensured, owner)
	return a.ensureErr
}

func (a *attachmentFinalizerStub) Clear(owner string) {
	a.cleared = append(a.cleared, owner)
}

type queueInvalidatorStub struct {
	calls int
}

func (q *queueInvalidatorStub) InvalidateQueue(ctx context.Context) {
	q.calls++
}

func buildDraft(t *testing.T, seq *sequenceStub) *DraftService {
	t.Helper()
	return NewDraftService(seq, correlation.NewMemoryStore(), nil)
}

func TestSubmitEmptyBuffer(t *testing.T) {
	drafts := buildDraft(t, &sequenceStub{})
	svc := NewSubmissionService(drafts, &attachmentFinalizerStub{}, &lineItemWriterStub{}, &sequenceStub{}, nil, nil, nil)

	_, err := svc.Submit(context.Background(), "user-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
}

func TestSubmitSuccessClearsBuffer(t *testing.T) {
	seq := &sequenceStub{}
	drafts := buildDraft(t, seq)
	_, err := drafts.AddItem(context.Background(), "user-1", validItemRequest())
	require.NoError(t, err)
	_, err = drafts.AddItem(context.Background(), "user-1", validItemRequest())
	require.NoError(t, err)

	writer := &lineItemWriterStub{}
	attachments := &attachmentFinalizerStub{}
	queue := &queueInvalidatorStub{}
	svc := NewSubmissionService(drafts, attachments, writer, seq, queue, nil, nil)

	result, err := svc.Submit(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, result.ItemCount)
	require.Equal(t, "60.00", result.GrandTotal)
	require.NotEmpty(t, result.RequisitionID)

	require.Len(t, writer.batches, 1)
	for _, item := range writer.batches[0] {
		require.NotNil(t, item.RequisitionID)
		require.Equal(t, result.RequisitionID, *item.RequisitionID)
		require.NotNil(t, item.SubmittedAt)
	}

	require.Zero(t, drafts.Buffer("user-1").Len())
	require.Equal(t, []string{"user-1"}, attachments.cleared)
	require.Equal(t, 1, queue.calls)
}

func TestSubmitPersistFailureRetainsBuffer(t *testing.T) {
	seq := &sequenceStub{}
	drafts := buildDraft(t, seq)
	_, err := drafts.AddItem(context.Background(), "user-1", validItemRequest())
	require.NoError(t, err)

	writer := &lineItemWriterStub{err: errors.New("insert failed")}
	attachments := &attachmentFinalizerStub{}
	svc := NewSubmissionService(drafts, attachments, writer, seq, nil, nil, nil)

	_, err = svc.Submit(context.Background(), "user-1")
	require.Error(t, err)
	require.Equal(t, 1, drafts.Buffer("user-1").Len())
	require.Empty(t, attachments.cleared)
}

func TestSubmitBlockedByUnresolvedAttachments(t *testing.T) {
	seq := &sequenceStub{}
	drafts := buildDraft(t, seq)
	_, err := drafts.AddItem(context.Background(), "user-1", validItemRequest())
	require.NoError(t, err)

	writer := &lineItemWriterStub{}
	attachments := &attachmentFinalizerStub{
		ensureErr: appErrors.Clone(appErrors.ErrPreconditionFailed, "attachments not uploaded: quote.pdf"),
	}
	svc := NewSubmissionService(drafts, attachments, writer, seq, nil, nil, nil)

	_, err = svc.Submit(context.Background(), "user-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)

	// Nothing persisted and the buffer is intact.
	require.Empty(t, writer.batches)
	require.Equal(t, 1, drafts.Buffer("user-1").Len())
}

func TestSubmitFallsBackToTemporaryRequisitionID(t *testing.T) {
	seq := &sequenceStub{}
	drafts := buildDraft(t, seq)
	_, err := drafts.AddItem(context.Background(), "user-1", validItemRequest())
	require.NoError(t, err)

	writer := &lineItemWriterStub{}
	svc := NewSubmissionService(drafts, &attachmentFinalizerStub{}, writer, &sequenceStub{reqErr: errors.New("sequence down")}, nil, nil, nil)

	result, err := svc.Submit(context.Background(), "user-1")
	require.NoError(t, err)
	require.Contains(t, result.RequisitionID, "REQ-")
	require.Len(t, writer.batches, 1)
}
