package models

import (
	"fmt"
	"time"
)

// Requisition groups LineItems sharing one submission event.
type Requisition struct {
	ID          string     `json:"id"`
	Requester   string     `json:"requester"`
	SubmittedAt time.Time  `json:"submittedAt"`
	Items       []LineItem `json:"items"`
}

// GrandTotal sums line totals over all items.
func (r *Requisition) GrandTotal() float64 {
	var total float64
	for i := range r.Items {
		total += r.Items[i].LineTotal()
	}
	return total
}

// TemporaryRequisitionID builds the time-based fallback identifier used when
// the sequence store cannot supply one ahead of submission.
func TemporaryRequisitionID(t time.Time) string {
	return fmt.Sprintf("REQ-%s", t.UTC().Format("20060102150405"))
}
