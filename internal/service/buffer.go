package service

import (
	"sync"

	"github.com/noah-isme/purchase-req-api/internal/models"
)

// Buffer is the ordered pending collection of drafted line items awaiting
// submission. Insertion order is display order. Totals are recomputed on
// every read, never stored.
type Buffer struct {
	mu    sync.Mutex
	items []models.LineItem
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a completed item at the end of the buffer.
func (b *Buffer) Append(item models.LineItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, item)
}

// Remove filters out the item with the given correlation id, preserving the
// relative order of all other items. Reports whether an item was removed.
func (b *Buffer) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the buffered items in insertion order.
func (b *Buffer) Items() []models.LineItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]models.LineItem, len(b.items))
	copy(items, b.items)
	return items
}

// Len reports the number of buffered items.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// GrandTotal sums line totals over all current items.
func (b *Buffer) GrandTotal() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	var total float64
	for i := range b.items {
		total += b.items[i].LineTotal()
	}
	return total
}

// GrandTotalString renders the grand total to two decimal places, matching
// the review table display.
func (b *Buffer) GrandTotalString() string {
	return models.FormatAmount(b.GrandTotal())
}

// Clear drops every buffered item.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
}
