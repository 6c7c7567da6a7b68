package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLineTotalAndFormatting(t *testing.T) {
	item := LineItem{PriceEach: 10, Quantity: 3}
	require.InDelta(t, 30.0, item.LineTotal(), 0.001)
	require.Equal(t, "30.00", FormatAmount(item.LineTotal()))
	require.Equal(t, "1234.57", FormatAmount(1234.567))
}

func TestRequisitionGrandTotal(t *testing.T) {
	req := Requisition{Items: []LineItem{
		{PriceEach: 12.5, Quantity: 2},
		{PriceEach: 25, Quantity: 1},
	}}
	require.InDelta(t, 50.0, req.GrandTotal(), 0.001)
}

func TestTemporaryRequisitionID(t *testing.T) {
	ts := time.Date(2026, 8, 20, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "REQ-20260820150405", TemporaryRequisitionID(ts))
}

func TestDescribeBudgetObjectCode(t *testing.T) {
	require.Equal(t, "Office Supplies", DescribeBudgetObjectCode("3101"))
	require.Equal(t, "9999", DescribeBudgetObjectCode("9999"))
}
