package dto

import "github.com/noah-isme/purchase-req-api/internal/models"

// CreateLineItemRequest carries the purchase-request form fields. Cross-field
// rules (dateNeeded vs orderType, numeric ranges) are enforced by the draft
// service so each violation maps back to its field.
type CreateLineItemRequest struct {
	Requester          string  `json:"requester"`
	PhoneExtension     string  `json:"phoneExtension"`
	DateRequested      string  `json:"dateRequested"`
	DateNeeded         string  `json:"dateNeeded"`
	OrderType          string  `json:"orderType"`
	BudgetObjectCode   string  `json:"budgetObjCode"`
	Fund               string  `json:"fund"`
	Location           string  `json:"location"`
	PriceEach          float64 `json:"priceEach"`
	Quantity           int     `json:"quantity"`
	ItemDescription    string  `json:"itemDescription"`
	Justification      string  `json:"justification"`
	AdditionalComments string  `json:"additionalComments"`
}

// LineItemView is one row of the review table.
type LineItemView struct {
	ID                string  `json:"id"`
	RequisitionLineID string  `json:"requisitionLineId"`
	ItemDescription   string  `json:"itemDescription"`
	BudgetObjectCode  string  `json:"budgetObjCode"`
	Fund              string  `json:"fund"`
	Location          string  `json:"location"`
	PriceEach         float64 `json:"priceEach"`
	Quantity          int     `json:"quantity"`
	LineTotal         float64 `json:"lineTotal"`
}

// BufferView is the pending buffer plus its computed totals.
type BufferView struct {
	Items      []LineItemView `json:"items"`
	GrandTotal string         `json:"grandTotal"`
	CanSubmit  bool           `json:"canSubmit"`
}

// NewLineIDResponse is the payload of the identifier issuance endpoint.
type NewLineIDResponse struct {
	RequisitionLineID string `json:"reqId"`
}

// BufferViewFrom projects buffer items into the review table shape.
func BufferViewFrom(items []models.LineItem) BufferView {
	view := BufferView{Items: make([]LineItemView, 0, len(items))}
	var total float64
	for i := range items {
		item := &items[i]
		lineTotal := item.LineTotal()
		total += lineTotal
		view.Items = append(view.Items, LineItemView{
			ID:                item.ID,
			RequisitionLineID: item.RequisitionLineID,
			ItemDescription:   item.ItemDescription,
			BudgetObjectCode:  item.BudgetObjectCode,
			Fund:              item.Fund,
			Location:          item.Location,
			PriceEach:         item.PriceEach,
			Quantity:          item.Quantity,
			LineTotal:         lineTotal,
		})
	}
	view.GrandTotal = models.FormatAmount(total)
	view.CanSubmit = len(items) > 0
	return view
}
