package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/purchase-req-api/internal/correlation"
	"github.com/noah-isme/purchase-req-api/internal/dto"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
	"github.com/noah-isme/purchase-req-api/pkg/export"
)

const approvalQueueCacheKey = "purchase_req:approval_queue"

type approvalStore interface {
	ListSubmitted(ctx context.Context, search string) ([]models.LineItem, error)
	ListByRequisitionID(ctx context.Context, requisitionID string) ([]models.LineItem, error)
	GetByLineID(ctx context.Context, lineID string) (*models.LineItem, error)
	AssignTracking(ctx context.Context, lineID, correlationID, trackingID string) error
	SetStatus(ctx context.Context, lineID string, status models.LineItemStatus) error
}

type attachmentLister interface {
	ListByLineID(ctx context.Context, lineID string) ([]models.Attachment, error)
}

type approvalCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ApprovalServiceConfig carries display and caching knobs.
type ApprovalServiceConfig struct {
	TruncateLength int
	CacheTTL       time.Duration
}

// ApprovalService serves the reviewer-facing queue: grouped submitted lines,
// tracking id assignment, and approve/deny decisions. Every mutation is
// guarded by the line's current persisted state, not the state the grid was
// rendered from.
type ApprovalService struct {
	repo        approvalStore
	attachments attachmentLister
	corr        correlation.Store
	cache       approvalCache
	metrics     *MetricsService
	logger      *zap.Logger
	cfg         ApprovalServiceConfig
}

// NewApprovalService constructs the service.
func NewApprovalService(repo approvalStore, attachments attachmentLister, corr correlation.Store, cache approvalCache, metrics *MetricsService, logger *zap.Logger, cfg ApprovalServiceConfig) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TruncateLength <= 0 {
		cfg.TruncateLength = 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	return &ApprovalService{
		repo:        repo,
		attachments: attachments,
		corr:        corr,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// Queue returns submitted lines grouped by requisition id in submission
// order. Unfiltered responses are cached briefly; searches always hit the
// database.
func (s *ApprovalService) Queue(ctx context.Context, search string, actor *models.JWTClaims) ([]dto.ApprovalGroup, error) {
	if !actor.CanReview() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "approver role required")
	}

	search = strings.TrimSpace(search)
	if search == "" && s.cache != nil {
		var cached []dto.ApprovalGroup
		if err := s.cache.Get(ctx, approvalQueueCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("approval queue cache read failed", zap.Error(err))
		}
	}

	items, err := s.repo.ListSubmitted(ctx, search)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load approval queue")
	}

	groups := s.group(items)

	if search == "" && s.cache != nil {
		if err := s.cache.Set(ctx, approvalQueueCacheKey, groups, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("approval queue cache write failed", zap.Error(err))
		}
	}
	return groups, nil
}

func (s *ApprovalService) group(items []models.LineItem) []dto.ApprovalGroup {
	groups := make([]dto.ApprovalGroup, 0)
	index := make(map[string]int)
	for i := range items {
		item := &items[i]
		reqID := ""
		if item.RequisitionID != nil {
			reqID = *item.RequisitionID
		}
		pos, ok := index[reqID]
		if !ok {
			pos = len(groups)
			index[reqID] = pos
			groups = append(groups, dto.ApprovalGroup{
				RequisitionID: reqID,
				Requester:     item.Requester,
				SubmittedAt:   item.SubmittedAt,
			})
		}
		groups[pos].Lines = append(groups[pos].Lines, s.line(item))
	}
	for i := range groups {
		total := 0.0
		for _, line := range groups[i].Lines {
			total += line.LineTotal
		}
		groups[i].GrandTotal = models.FormatAmount(total)
	}
	return groups
}

func (s *ApprovalService) line(item *models.LineItem) dto.ApprovalLine {
	return dto.ApprovalLine{
		RequisitionLineID: item.RequisitionLineID,
		Requester:         item.Requester,
		PhoneExtension:    item.PhoneExtension,
		DateRequested:     item.DateRequested,
		DateNeeded:        item.DateNeeded,
		OrderType:         item.OrderType,
		BudgetObjectCode:  item.BudgetObjectCode,
		BudgetObjectName:  models.DescribeBudgetObjectCode(item.BudgetObjectCode),
		Fund:              item.Fund,
		Location:          item.Location,
		PriceEach:         item.PriceEach,
		Quantity:          item.Quantity,
		LineTotal:         item.LineTotal(),
		ItemDescription:   truncate(item.ItemDescription, s.cfg.TruncateLength),
		Justification:     truncate(item.Justification, s.cfg.TruncateLength),
		TrackingID:        item.TrackingID,
		Status:            item.Status,
		CanAssignTracking: item.TrackingID == nil,
		CanApprove:        item.Status != models.LineItemStatusApproved,
		CanDeny:           item.Status != models.LineItemStatusDenied,
	}
}

// Detail returns the untruncated long-text fields for one line.
func (s *ApprovalService) Detail(ctx context.Context, lineID string, actor *models.JWTClaims) (*dto.ApprovalLineDetail, error) {
	if !actor.CanReview() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "approver role required")
	}

	item, err := s.repo.GetByLineID(ctx, lineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "requisition line not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requisition line")
	}

	detail := &dto.ApprovalLineDetail{
		RequisitionLineID:  item.RequisitionLineID,
		ItemDescription:    item.ItemDescription,
		Justification:      item.Justification,
		AdditionalComments: item.AdditionalComments,
	}
	if s.attachments != nil {
		stored, err := s.attachments.ListByLineID(ctx, lineID)
		if err != nil {
			s.logger.Warn("attachment lookup failed", zap.Error(err), zap.String("line_id", lineID))
		}
		for i := range stored {
			detail.Attachments = append(detail.Attachments, stored[i].Name)
		}
	}
	return detail, nil
}

// AssignTrackingID attaches the external tracking identifier to a line and
// moves it to PENDING. Assignment happens at most once per line and requires
// a recorded correlation id for the target.
func (s *ApprovalService) AssignTrackingID(ctx context.Context, req dto.AssignTrackingRequest, actor *models.JWTClaims) error {
	if !actor.CanReview() {
		return appErrors.Clone(appErrors.ErrForbidden, "approver role required")
	}

	item, err := s.repo.GetByLineID(ctx, req.RequisitionLineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "requisition line not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requisition line")
	}
	if item.TrackingID != nil {
		return appErrors.Clone(appErrors.ErrConflict, "tracking id already assigned")
	}

	correlationID, err := s.corr.Get(ctx, req.RequisitionLineID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve correlation id")
	}
	if correlationID == "" {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "no correlation id on record for line")
	}

	if err := s.repo.AssignTracking(ctx, req.RequisitionLineID, correlationID, req.TrackingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrConflict, "tracking id already assigned")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign tracking id")
	}

	s.invalidate(ctx)
	s.logger.Info("tracking id assigned",
		zap.String("line_id", req.RequisitionLineID),
		zap.String("tracking_id", req.TrackingID),
	)
	return nil
}

// SetApprovalStatus records an approve or deny decision for a line. The only
// rejected transition is a decision equal to the line's current state, so a
// denied line can still be approved later and vice versa.
func (s *ApprovalService) SetApprovalStatus(ctx context.Context, req dto.ApproveDenyRequest, actor *models.JWTClaims) error {
	if !actor.CanReview() {
		return appErrors.Clone(appErrors.ErrForbidden, "approver role required")
	}

	var target models.LineItemStatus
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "approve":
		target = models.LineItemStatusApproved
	case "deny":
		target = models.LineItemStatusDenied
	default:
		return appErrors.Clone(appErrors.ErrValidation, "action must be approve or deny")
	}

	item, err := s.repo.GetByLineID(ctx, req.RequisitionLineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "requisition line not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requisition line")
	}
	if item.Status == target {
		return appErrors.Clone(appErrors.ErrConflict, "line already "+strings.ToLower(string(target)))
	}

	if err := s.repo.SetStatus(ctx, req.RequisitionLineID, target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrConflict, "line already "+strings.ToLower(string(target)))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update approval status")
	}

	s.invalidate(ctx)
	s.metrics.IncApprovalDecision(strings.ToLower(string(target)))
	s.logger.Info("approval decision recorded",
		zap.String("line_id", req.RequisitionLineID),
		zap.String("status", string(target)),
	)
	return nil
}

// InvalidateQueue drops the cached queue payload; called after submissions.
func (s *ApprovalService) InvalidateQueue(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *ApprovalService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, approvalQueueCacheKey); err != nil {
		s.logger.Warn("approval queue cache invalidation failed", zap.Error(err))
	}
}

// RequisitionDataset flattens one requisition into an export table, used by
// both the CSV and PDF renderers.
func (s *ApprovalService) RequisitionDataset(ctx context.Context, requisitionID string, actor *models.JWTClaims) (*export.Dataset, string, error) {
	if !actor.CanReview() {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "approver role required")
	}

	items, err := s.repo.ListByRequisitionID(ctx, requisitionID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requisition")
	}
	if len(items) == 0 {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "requisition not found")
	}

	dataset := &export.Dataset{
		Headers: []string{"Line ID", "Requester", "Budget Code", "Fund", "Location", "Description", "Price Each", "Qty", "Line Total", "Status"},
	}
	total := 0.0
	for i := range items {
		item := &items[i]
		total += item.LineTotal()
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Line ID":     item.RequisitionLineID,
			"Requester":   item.Requester,
			"Budget Code": item.BudgetObjectCode,
			"Fund":        item.Fund,
			"Location":    item.Location,
			"Description": item.ItemDescription,
			"Price Each":  models.FormatAmount(item.PriceEach),
			"Qty":         strconv.Itoa(item.Quantity),
			"Line Total":  models.FormatAmount(item.LineTotal()),
			"Status":      string(item.Status),
		})
	}
	return dataset, "Grand Total: " + models.FormatAmount(total), nil
}

// truncate shortens long grid text to limit runes plus an ellipsis marker.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
