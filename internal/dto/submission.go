package dto

// SubmitResponse reports the outcome of sending the pending buffer to the
// approval queue.
type SubmitResponse struct {
	RequisitionID string `json:"requisitionId"`
	ItemCount     int    `json:"itemCount"`
	GrandTotal    string `json:"grandTotal"`
}
