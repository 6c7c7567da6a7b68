package dto

import (
	"time"

	"github.com/noah-isme/purchase-req-api/internal/models"
)

// ApprovalLine is one row of the approval grid. Description and justification
// are truncated for the grid; the detail endpoint returns the full text.
type ApprovalLine struct {
	RequisitionLineID string                `json:"requisitionLineId"`
	Requester         string                `json:"requester"`
	PhoneExtension    string                `json:"phoneExtension"`
	DateRequested     time.Time             `json:"dateRequested"`
	DateNeeded        *time.Time            `json:"dateNeeded,omitempty"`
	OrderType         models.OrderType      `json:"orderType"`
	BudgetObjectCode  string                `json:"budgetObjCode"`
	BudgetObjectName  string                `json:"budgetObjName"`
	Fund              string                `json:"fund"`
	Location          string                `json:"location"`
	PriceEach         float64               `json:"priceEach"`
	Quantity          int                   `json:"quantity"`
	LineTotal         float64               `json:"lineTotal"`
	ItemDescription   string                `json:"itemDescription"`
	Justification     string                `json:"justification"`
	TrackingID        *string               `json:"trackingId,omitempty"`
	Status            models.LineItemStatus `json:"status"`
	CanAssignTracking bool                  `json:"canAssignTracking"`
	CanApprove        bool                  `json:"canApprove"`
	CanDeny           bool                  `json:"canDeny"`
}

// ApprovalGroup bundles lines sharing one requisition identifier; only the
// header row is expanded by default on the client.
type ApprovalGroup struct {
	RequisitionID string         `json:"requisitionId"`
	Requester     string         `json:"requester"`
	SubmittedAt   *time.Time     `json:"submittedAt,omitempty"`
	GrandTotal    string         `json:"grandTotal"`
	Lines         []ApprovalLine `json:"lines"`
}

// ApprovalLineDetail carries untruncated long-text fields for the modal view.
type ApprovalLineDetail struct {
	RequisitionLineID  string   `json:"requisitionLineId"`
	ItemDescription    string   `json:"itemDescription"`
	Justification      string   `json:"justification"`
	AdditionalComments string   `json:"additionalComments"`
	Attachments        []string `json:"attachments"`
}

// AssignTrackingRequest assigns an IRQ1 tracking identifier to a line.
type AssignTrackingRequest struct {
	RequisitionLineID string `json:"requisitionLineId" binding:"required"`
	TrackingID        string `json:"trackingId" binding:"required"`
}

// ApproveDenyRequest records an approver decision for a line.
type ApproveDenyRequest struct {
	RequisitionLineID string `json:"requisitionLineId" binding:"required"`
	Action            string `json:"action" binding:"required"`
}
