// Package analytics computes derived figures over the expense and debt
// collections. Everything here is a pure function over the snapshot it
// is handed: no state, no caching, safe to call on every render.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/receipt-ledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// CategoryShare is one row of the category breakdown.
type CategoryShare struct {
	Category string
	Amount   decimal.Decimal
	// Percent is the share of total spend, rounded to one decimal
	// place. Zero for every row when total spend is zero.
	Percent decimal.Decimal
}

// SpendSummary is the derived view over the expense collection.
type SpendSummary struct {
	Total                 decimal.Decimal
	AveragePerTransaction decimal.Decimal
	CategoryTotals        map[string]decimal.Decimal
	// CategoryShares is sorted descending by amount; ties keep the
	// order categories first appeared in the input.
	CategoryShares []CategoryShare
	TopCategory    *CategoryShare
}

// ComputeSpendSummary aggregates the given expenses. An empty input
// yields zero totals, an empty breakdown, and no top category.
func ComputeSpendSummary(expenses []models.Expense) SpendSummary {
	summary := SpendSummary{
		CategoryTotals: make(map[string]decimal.Decimal),
		CategoryShares: []CategoryShare{},
	}

	var order []string
	for _, e := range expenses {
		summary.Total = summary.Total.Add(e.TotalAmount)

		category := e.Category
		if category == "" {
			category = models.DefaultCategory
		}
		if existing, ok := summary.CategoryTotals[category]; ok {
			summary.CategoryTotals[category] = existing.Add(e.TotalAmount)
		} else {
			summary.CategoryTotals[category] = e.TotalAmount
			order = append(order, category)
		}
	}

	if len(expenses) > 0 {
		summary.AveragePerTransaction = summary.Total.Div(decimal.NewFromInt(int64(len(expenses))))
	}

	for _, category := range order {
		amount := summary.CategoryTotals[category]
		share := CategoryShare{Category: category, Amount: amount}
		if !summary.Total.IsZero() {
			share.Percent = amount.Mul(hundred).Div(summary.Total).Round(1)
		}
		summary.CategoryShares = append(summary.CategoryShares, share)
	}
	sort.SliceStable(summary.CategoryShares, func(i, j int) bool {
		return summary.CategoryShares[i].Amount.GreaterThan(summary.CategoryShares[j].Amount)
	})

	if len(summary.CategoryShares) > 0 {
		summary.TopCategory = &summary.CategoryShares[0]
	}

	return summary
}

// DebtSummary is the derived view over the debt collection. The two
// totals accumulate unpaid debts only; the counts cover the full set.
type DebtSummary struct {
	TotalToReceive decimal.Decimal
	TotalToGive    decimal.Decimal
	NetBalance     decimal.Decimal
	PendingCount   int
	PaidCount      int
}

// ComputeDebtSummary aggregates the given debts. Paid debts are
// excluded from both totals but counted in PaidCount.
func ComputeDebtSummary(debts []models.Debt) DebtSummary {
	var summary DebtSummary

	for _, d := range debts {
		if d.IsPaid {
			summary.PaidCount++
			continue
		}
		summary.PendingCount++
		if d.Type == models.DebtTypeReceive {
			summary.TotalToReceive = summary.TotalToReceive.Add(d.Amount)
		} else {
			summary.TotalToGive = summary.TotalToGive.Add(d.Amount)
		}
	}

	summary.NetBalance = summary.TotalToReceive.Sub(summary.TotalToGive)
	return summary
}
