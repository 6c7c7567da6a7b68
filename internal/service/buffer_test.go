package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/purchase-req-api/internal/models"
)

func TestBufferTotals(t *testing.T) {
	buf := NewBuffer()
	require.Equal(t, "0.00", buf.GrandTotalString())

	buf.Append(models.LineItem{ID: "a", PriceEach: 10, Quantity: 3})
	buf.Append(models.LineItem{ID: "b", PriceEach: 5, Quantity: 4})

	require.Equal(t, 2, buf.Len())
	require.InDelta(t, 50.0, buf.GrandTotal(), 0.001)
	require.Equal(t, "50.00", buf.GrandTotalString())
}

func TestBufferRemovePreservesOrder(t *testing.T) {
	buf := NewBuffer()
	buf.Append(models.LineItem{ID: "a"})
	buf.Append(models.LineItem{ID: "b"})
	buf.Append(models.LineItem{ID: "c"})

	require.True(t, buf.Remove("b"))
	require.False(t, buf.Remove("b"))

	items := buf.Items()
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].ID)
	require.Equal(t, "c", items[1].ID)
}

func TestBufferRemoveAdjustsTotal(t *testing.T) {
	buf := NewBuffer()
	buf.Append(models.LineItem{ID: "a", PriceEach: 12.5, Quantity: 2})
	buf.Append(models.LineItem{ID: "b", PriceEach: 25, Quantity: 1})

	require.Equal(t, "50.00", buf.GrandTotalString())
	require.True(t, buf.Remove("a"))
	require.Equal(t, "25.00", buf.GrandTotalString())
}

func TestBufferClear(t *testing.T) {
	buf := NewBuffer()
	buf.Append(models.LineItem{ID: "a", PriceEach: 1, Quantity: 1})
	buf.Clear()
	require.Zero(t, buf.Len())
	require.Empty(t, buf.Items())
}
