package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/receipt-ledger/internal/models"
)

func expense(category string, amount float64) models.Expense {
	return models.Expense{Category: category, TotalAmount: decimal.NewFromFloat(amount)}
}

func TestComputeSpendSummary(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields zeroes and no top category", func(t *testing.T) {
		t.Parallel()
		summary := ComputeSpendSummary(nil)

		require.True(t, summary.Total.IsZero())
		require.True(t, summary.AveragePerTransaction.IsZero())
		require.Empty(t, summary.CategoryTotals)
		require.Empty(t, summary.CategoryShares)
		require.Nil(t, summary.TopCategory)
	})

	t.Run("groups blank categories under Uncategorized", func(t *testing.T) {
		t.Parallel()
		summary := ComputeSpendSummary([]models.Expense{
			expense("Food", 300),
			expense("Food", 200),
			expense("", 100),
		})

		require.True(t, decimal.NewFromInt(600).Equal(summary.Total))
		require.Len(t, summary.CategoryTotals, 2)
		require.True(t, decimal.NewFromInt(500).Equal(summary.CategoryTotals["Food"]))
		require.True(t, decimal.NewFromInt(100).Equal(summary.CategoryTotals["Uncategorized"]))

		require.NotNil(t, summary.TopCategory)
		require.Equal(t, "Food", summary.TopCategory.Category)
		require.Equal(t, "83.3", summary.TopCategory.Percent.String())
	})

	t.Run("average is total over count", func(t *testing.T) {
		t.Parallel()
		summary := ComputeSpendSummary([]models.Expense{
			expense("Travel", 100),
			expense("Travel", 200),
		})

		require.True(t, decimal.NewFromInt(150).Equal(summary.AveragePerTransaction))
	})

	t.Run("shares sort descending with ties in input order", func(t *testing.T) {
		t.Parallel()
		summary := ComputeSpendSummary([]models.Expense{
			expense("Utilities", 100),
			expense("Shopping", 250),
			expense("Food", 100),
		})

		require.Len(t, summary.CategoryShares, 3)
		require.Equal(t, "Shopping", summary.CategoryShares[0].Category)
		// Utilities appeared before Food; the tie keeps that order.
		require.Equal(t, "Utilities", summary.CategoryShares[1].Category)
		require.Equal(t, "Food", summary.CategoryShares[2].Category)
	})

	t.Run("zero total keeps every share at zero percent", func(t *testing.T) {
		t.Parallel()
		summary := ComputeSpendSummary([]models.Expense{
			expense("Food", 0),
			expense("Travel", 0),
		})

		require.True(t, summary.Total.IsZero())
		for _, share := range summary.CategoryShares {
			require.True(t, share.Percent.IsZero())
		}
	})

	t.Run("percentages round to one decimal place", func(t *testing.T) {
		t.Parallel()
		summary := ComputeSpendSummary([]models.Expense{
			expense("A", 1),
			expense("B", 2),
		})

		require.Equal(t, "33.3", summary.CategoryShares[1].Percent.String())
		require.Equal(t, "66.7", summary.CategoryShares[0].Percent.String())
	})
}

func debt(debtType models.DebtType, amount int64, paid bool) models.Debt {
	return models.Debt{Type: debtType, Amount: decimal.NewFromInt(amount), IsPaid: paid}
}

func TestComputeDebtSummary(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields zeroes", func(t *testing.T) {
		t.Parallel()
		summary := ComputeDebtSummary(nil)

		require.True(t, summary.TotalToReceive.IsZero())
		require.True(t, summary.TotalToGive.IsZero())
		require.True(t, summary.NetBalance.IsZero())
		require.Zero(t, summary.PendingCount)
		require.Zero(t, summary.PaidCount)
	})

	t.Run("paid debts are excluded from totals but counted", func(t *testing.T) {
		t.Parallel()
		summary := ComputeDebtSummary([]models.Debt{
			debt(models.DebtTypeReceive, 500, false),
			debt(models.DebtTypeGive, 200, false),
			debt(models.DebtTypeReceive, 1000, true),
		})

		require.True(t, decimal.NewFromInt(500).Equal(summary.TotalToReceive))
		require.True(t, decimal.NewFromInt(200).Equal(summary.TotalToGive))
		require.True(t, decimal.NewFromInt(300).Equal(summary.NetBalance))
		require.Equal(t, 2, summary.PendingCount)
		require.Equal(t, 1, summary.PaidCount)
	})

	t.Run("net balance can go negative", func(t *testing.T) {
		t.Parallel()
		summary := ComputeDebtSummary([]models.Debt{
			debt(models.DebtTypeGive, 800, false),
			debt(models.DebtTypeReceive, 300, false),
		})

		require.True(t, decimal.NewFromInt(-500).Equal(summary.NetBalance))
	})
}

func TestComputeSpendSummaryIsPure(t *testing.T) {
	t.Parallel()

	input := []models.Expense{
		expense("Food", 120),
		expense("", 30),
	}

	first := ComputeSpendSummary(input)
	second := ComputeSpendSummary(input)

	require.Equal(t, first.Total.String(), second.Total.String())
	require.Equal(t, len(first.CategoryShares), len(second.CategoryShares))
	// Input order and contents are untouched.
	require.Equal(t, "Food", input[0].Category)
	require.Equal(t, "", input[1].Category)
}
