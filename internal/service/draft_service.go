package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/purchase-req-api/internal/correlation"
	"github.com/noah-isme/purchase-req-api/internal/dto"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type lineIDIssuer interface {
	NextLineID(ctx context.Context) (string, error)
}

// DraftService validates purchase-request form input and accumulates
// completed items into per-requester pending buffers.
type DraftService struct {
	seq    lineIDIssuer
	corr   correlation.Store
	logger *zap.Logger

	mu      sync.Mutex
	buffers map[string]*Buffer
}

// NewDraftService constructs the service.
func NewDraftService(seq lineIDIssuer, corr correlation.Store, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		seq:     seq,
		corr:    corr,
		logger:  logger,
		buffers: make(map[string]*Buffer),
	}
}

// Buffer returns the pending buffer for an owner, creating it on first use.
func (s *DraftService) Buffer(owner string) *Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf, ok := s.buffers[owner]
	if !ok {
		buf = NewBuffer()
		s.buffers[owner] = buf
	}
	return buf
}

// IssueLineID obtains a fresh requisition line identifier from the sequence
// store.
func (s *DraftService) IssueLineID(ctx context.Context) (string, error) {
	lineID, err := s.seq.NextLineID(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue line identifier")
	}
	return lineID, nil
}

// AddItem validates the form, obtains a line identifier, records the
// correlation UUID, and appends the completed item to the owner's buffer.
// Identifier issuance failure aborts the add with nothing appended.
func (s *DraftService) AddItem(ctx context.Context, owner string, req dto.CreateLineItemRequest) (*models.LineItem, error) {
	item, err := s.buildItem(req)
	if err != nil {
		return nil, err
	}

	lineID, err := s.seq.NextLineID(ctx)
	if err != nil {
		s.logger.Error("line identifier issuance failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue line identifier")
	}

	item.ID = uuid.NewString()
	item.RequisitionLineID = lineID
	if err := s.corr.Put(ctx, lineID, item.ID); err != nil {
		s.logger.Error("correlation record failed", zap.Error(err), zap.String("line_id", lineID))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record correlation id")
	}

	s.Buffer(owner).Append(*item)
	return item, nil
}

// RemoveItem drops the item with the given correlation id from the owner's
// buffer.
func (s *DraftService) RemoveItem(owner, id string) error {
	if !s.Buffer(owner).Remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "item not found in pending buffer")
	}
	return nil
}

// View projects the owner's buffer into the review table shape.
func (s *DraftService) View(owner string) dto.BufferView {
	return dto.BufferViewFrom(s.Buffer(owner).Items())
}

func (s *DraftService) buildItem(req dto.CreateLineItemRequest) (*models.LineItem, error) {
	fields := make(map[string]string)

	requireField(fields, "requester", req.Requester)
	requireField(fields, "phoneExtension", req.PhoneExtension)
	requireField(fields, "itemDescription", req.ItemDescription)
	requireField(fields, "justification", req.Justification)
	requireField(fields, "budgetObjCode", req.BudgetObjectCode)
	requireField(fields, "fund", req.Fund)
	requireField(fields, "location", req.Location)

	if req.PriceEach < 0 {
		fields["priceEach"] = "price must not be negative"
	}
	if req.Quantity <= 0 {
		fields["quantity"] = "quantity must be greater than zero"
	}

	dateRequested := time.Now().UTC().Truncate(24 * time.Hour)
	if strings.TrimSpace(req.DateRequested) != "" {
		parsed, err := time.Parse(dateLayout, req.DateRequested)
		if err != nil {
			fields["dateRequested"] = "date must use YYYY-MM-DD"
		} else {
			dateRequested = parsed
		}
	}

	orderType := models.OrderType(strings.TrimSpace(req.OrderType))
	switch orderType {
	case models.OrderTypeNone, models.OrderTypeQuarterly, models.OrderTypeNoRush:
	default:
		fields["orderType"] = "order type must be quarterly or no-rush"
		orderType = models.OrderTypeNone
	}

	var dateNeeded *time.Time
	if strings.TrimSpace(req.DateNeeded) != "" {
		parsed, err := time.Parse(dateLayout, req.DateNeeded)
		if err != nil {
			fields["dateNeeded"] = "date must use YYYY-MM-DD"
		} else {
			dateNeeded = &parsed
		}
	}

	// Exactly one of dateNeeded and orderType must be set before submission.
	hasDate := strings.TrimSpace(req.DateNeeded) != ""
	hasOrderType := orderType != models.OrderTypeNone
	if hasDate == hasOrderType {
		fields["dateNeeded"] = "set a needed-by date or an order type, not both or neither"
	}

	if len(fields) > 0 {
		return nil, appErrors.Validation(fields)
	}

	return &models.LineItem{
		Requester:          strings.TrimSpace(req.Requester),
		PhoneExtension:     strings.TrimSpace(req.PhoneExtension),
		DateRequested:      dateRequested,
		DateNeeded:         dateNeeded,
		OrderType:          orderType,
		BudgetObjectCode:   strings.TrimSpace(req.BudgetObjectCode),
		Fund:               strings.TrimSpace(req.Fund),
		Location:           strings.TrimSpace(req.Location),
		PriceEach:          req.PriceEach,
		Quantity:           req.Quantity,
		ItemDescription:    strings.TrimSpace(req.ItemDescription),
		Justification:      strings.TrimSpace(req.Justification),
		AdditionalComments: strings.TrimSpace(req.AdditionalComments),
		Status:             models.LineItemStatusNewRequest,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

func requireField(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "required"
	}
}
