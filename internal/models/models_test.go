package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDebtType(t *testing.T) {
	t.Parallel()

	t.Run("valid types", func(t *testing.T) {
		t.Parallel()
		require.True(t, DebtTypeReceive.Valid())
		require.True(t, DebtTypeGive.Valid())
		require.False(t, DebtType("borrow").Valid())
		require.False(t, DebtType("").Valid())
	})

	t.Run("default titles", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Money to Receive", DebtTypeReceive.DefaultTitle())
		require.Equal(t, "Money to Give", DebtTypeGive.DefaultTitle())
	})
}

func TestExpenseJSON(t *testing.T) {
	t.Parallel()

	expense := Expense{
		ID:           "e-1",
		MerchantName: "Sharma General Store",
		Date:         time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount:  decimal.NewFromFloat(542.50),
		Currency:     DefaultCurrency,
		Category:     "Groceries",
		Items: []ReceiptItem{
			{Name: "Rice 5kg", Amount: decimal.NewFromInt(380)},
		},
		ImageURLs: []string{"file://receipts/1.jpg"},
		Status:    ExpenseStatusScanned,
	}

	data, err := json.Marshal(expense)
	require.NoError(t, err)

	var decoded Expense
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, expense.ID, decoded.ID)
	require.Equal(t, expense.MerchantName, decoded.MerchantName)
	require.True(t, expense.TotalAmount.Equal(decoded.TotalAmount))
	require.Equal(t, expense.ImageURLs, decoded.ImageURLs)
	require.Len(t, decoded.Items, 1)
	require.True(t, decimal.NewFromInt(380).Equal(decoded.Items[0].Amount))
}

func TestDebtJSONAcceptsNumericAmounts(t *testing.T) {
	t.Parallel()

	// Snapshots written by the original mobile client carry plain JSON
	// numbers; the decimal type must accept them.
	raw := `{
		"id": "d-1",
		"type": "receive",
		"amount": 500.25,
		"currency": "INR",
		"title": "Money to Receive",
		"personName": "Ravi",
		"isPaid": false,
		"createdAt": "2026-08-01T10:00:00Z"
	}`

	var debt Debt
	require.NoError(t, json.Unmarshal([]byte(raw), &debt))
	require.Equal(t, DebtTypeReceive, debt.Type)
	require.True(t, decimal.NewFromFloat(500.25).Equal(debt.Amount))
	require.False(t, debt.IsPaid)
}
