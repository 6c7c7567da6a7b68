package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/purchase-req-api/internal/dto"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
)

type lineItemWriter interface {
	CreateBatch(ctx context.Context, items []models.LineItem) error
}

type requisitionIDIssuer interface {
	NextRequisitionID(ctx context.Context) (string, error)
}

type attachmentFinalizer interface {
	EnsureUploaded(ctx context.Context, owner string) error
	Clear(owner string)
}

type queueInvalidator interface {
	InvalidateQueue(ctx context.Context)
}

// SubmissionService turns a pending buffer into a persisted requisition.
// Attachments are resolved first, then every buffered line receives the
// same requisition id; the buffer survives untouched unless the whole
// batch persists.
type SubmissionService struct {
	drafts      *DraftService
	attachments attachmentFinalizer
	repo        lineItemWriter
	seq         requisitionIDIssuer
	queue       queueInvalidator
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
}

// NewSubmissionService constructs the service.
func NewSubmissionService(drafts *DraftService, attachments attachmentFinalizer, repo lineItemWriter, seq requisitionIDIssuer, queue queueInvalidator, metrics *MetricsService, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		drafts:      drafts,
		attachments: attachments,
		repo:        repo,
		seq:         seq,
		queue:       queue,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit sends the owner's buffered lines to the approval queue.
func (s *SubmissionService) Submit(ctx context.Context, owner string) (*dto.SubmitResponse, error) {
	buffer := s.drafts.Buffer(owner)
	items := buffer.Items()
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "nothing to submit")
	}

	// Attachments upload under the line each file was selected against; an
	// unresolved or unassigned file blocks the submission before anything
	// is written.
	if err := s.attachments.EnsureUploaded(ctx, owner); err != nil {
		return nil, err
	}

	reqID, err := s.seq.NextRequisitionID(ctx)
	if err != nil {
		reqID = models.TemporaryRequisitionID(s.now())
		s.logger.Warn("requisition id sequence unavailable, using temporary id",
			zap.Error(err),
			zap.String("requisition_id", reqID),
		)
	}

	submittedAt := s.now().UTC()
	for i := range items {
		items[i].RequisitionID = &reqID
		items[i].SubmittedAt = &submittedAt
		items[i].Status = models.LineItemStatusNewRequest
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit requisition")
	}

	grandTotal := buffer.GrandTotalString()
	buffer.Clear()
	s.attachments.Clear(owner)
	if s.queue != nil {
		s.queue.InvalidateQueue(ctx)
	}
	s.metrics.IncSubmission()

	s.logger.Info("requisition submitted",
		zap.String("requisition_id", reqID),
		zap.Int("items", len(items)),
	)

	return &dto.SubmitResponse{
		RequisitionID: reqID,
		ItemCount:     len(items),
		GrandTotal:    grandTotal,
	}, nil
}
