// Package models defines the domain entities for the receipt ledger.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency assumed when a record carries none.
const DefaultCurrency = "INR"

// DefaultCategory is the bucket for expenses without a category.
const DefaultCategory = "Uncategorized"

// Expense provenance markers. They record where the data came from, not
// a workflow state; no transitions are enforced between them.
const (
	ExpenseStatusScanned  = "scanned"
	ExpenseStatusVerified = "verified"
	ExpenseStatusManual   = "manual"
)

// ReceiptItem is a single line item on a receipt.
type ReceiptItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Expense represents a recorded spending transaction, optionally backed
// by one or more scanned receipt images.
type Expense struct {
	ID           string `json:"id"`
	MerchantName string `json:"merchantName"`
	// Date is the transaction date, not the creation date.
	Date        time.Time       `json:"date"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Items       []ReceiptItem   `json:"items"`
	ImageURLs   []string        `json:"imageUrls"`
	Status      string          `json:"status"`
	Confidence  float64         `json:"confidence,omitempty"`
}

// DebtType is the directionality of an informal debt.
type DebtType string

const (
	// DebtTypeReceive means the counterparty owes the user.
	DebtTypeReceive DebtType = "receive"
	// DebtTypeGive means the user owes the counterparty.
	DebtTypeGive DebtType = "give"
)

// Valid reports whether t is one of the two known debt types.
func (t DebtType) Valid() bool {
	return t == DebtTypeReceive || t == DebtTypeGive
}

// DefaultTitle returns the title applied to a debt created without one.
func (t DebtType) DefaultTitle() string {
	if t == DebtTypeReceive {
		return "Money to Receive"
	}
	return "Money to Give"
}

// Debt is an informal record of money owed between the user and a named
// counterparty. PersonName is a plain label, not a reference to any
// user or contact entity.
type Debt struct {
	ID         string          `json:"id"`
	Type       DebtType        `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Title      string          `json:"title"`
	PersonName string          `json:"personName"`
	DueDate    string          `json:"dueDate,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	IsPaid     bool            `json:"isPaid"`
	CreatedAt  time.Time       `json:"createdAt"`
}
