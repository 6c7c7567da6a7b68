package models

import (
	"fmt"
	"time"
)

// LineItemStatus captures workflow states for a purchase request line.
type LineItemStatus string

const (
	LineItemStatusDraft      LineItemStatus = "DRAFT"
	LineItemStatusNewRequest LineItemStatus = "NEW_REQUEST"
	LineItemStatusPending    LineItemStatus = "PENDING"
	LineItemStatusApproved   LineItemStatus = "APPROVED"
	LineItemStatusDenied     LineItemStatus = "DENIED"
)

// OrderType enumerates the rush designations a line can carry instead of a
// needed-by date.
type OrderType string

const (
	OrderTypeNone      OrderType = ""
	OrderTypeQuarterly OrderType = "quarterly"
	OrderTypeNoRush    OrderType = "no-rush"
)

// LineItem is one requested purchase line. ID is the client-side correlation
// key assigned at creation and never reused; RequisitionLineID is issued by
// the sequence store before the item enters the pending buffer.
type LineItem struct {
	ID                 string         `db:"id" json:"id"`
	RequisitionLineID  string         `db:"requisition_line_id" json:"requisitionLineId"`
	RequisitionID      *string        `db:"requisition_id" json:"requisitionId,omitempty"`
	Requester          string         `db:"requester" json:"requester"`
	PhoneExtension     string         `db:"phone_extension" json:"phoneExtension"`
	DateRequested      time.Time      `db:"date_requested" json:"dateRequested"`
	DateNeeded         *time.Time     `db:"date_needed" json:"dateNeeded,omitempty"`
	OrderType          OrderType      `db:"order_type" json:"orderType"`
	BudgetObjectCode   string         `db:"budget_object_code" json:"budgetObjCode"`
	Fund               string         `db:"fund" json:"fund"`
	Location           string         `db:"location" json:"location"`
	PriceEach          float64        `db:"price_each" json:"priceEach"`
	Quantity           int            `db:"quantity" json:"quantity"`
	ItemDescription    string         `db:"item_description" json:"itemDescription"`
	Justification      string         `db:"justification" json:"justification"`
	AdditionalComments string         `db:"additional_comments" json:"additionalComments"`
	TrackingID         *string        `db:"tracking_id" json:"trackingId,omitempty"`
	Status             LineItemStatus `db:"status" json:"status"`
	CreatedAt          time.Time      `db:"created_at" json:"createdAt"`
	SubmittedAt        *time.Time     `db:"submitted_at" json:"submittedAt,omitempty"`
}

// LineTotal is always derived, never stored independently.
func (li *LineItem) LineTotal() float64 {
	return li.PriceEach * float64(li.Quantity)
}

// FormatAmount renders a money value the way the review table displays it.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
