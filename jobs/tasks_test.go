package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderReceiptTaskCarriesPayload(t *testing.T) {
	task, err := NewOrderReceiptTask(OrderReceiptPayload{OrderNumber: "ORD-42"})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeOrderReceipt, task.Type())
	assert.Contains(t, string(task.Payload()), "ORD-42")
}

func TestFormatReceipt(t *testing.T) {
	when := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	lines := FormatReceipt(OrderReceiptPayload{
		OrderNumber: "ORD-1710512345",
		StoreName:   "GreenMart",
		StoreBranch: "Downtown",
		OrderDate:   when,
		Lines: []ReceiptLine{
			{Name: "Organic Broccoli", Quantity: 1, Price: 2.49},
			{Name: "Whole Grain Bread", Quantity: 2, Price: 3.99},
		},
		Subtotal:     10.47,
		TotalTax:     0.58,
		TotalSavings: 0.80,
		TotalAmount:  10.25,
	})

	require.Len(t, lines, 8)
	assert.Equal(t, "GreenMart - Downtown", lines[0])
	assert.Contains(t, lines[1], "ORD-1710512345")
	assert.Equal(t, "1 x Organic Broccoli @ $2.49 = $2.49", lines[2])
	assert.Equal(t, "2 x Whole Grain Bread @ $3.99 = $7.98", lines[3])
	assert.Equal(t, "Total: $10.25", lines[7])
}
