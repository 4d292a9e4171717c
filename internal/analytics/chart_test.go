package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/receipt-ledger/internal/models"
)

func TestCategoryPieChart(t *testing.T) {
	t.Parallel()

	t.Run("renders PNG bytes for a breakdown", func(t *testing.T) {
		t.Parallel()
		summary := ComputeSpendSummary([]models.Expense{
			expense("Food", 450),
			expense("Transport", 120),
			expense("", 80),
		})

		data, err := CategoryPieChart(summary, "Spending by Category")
		require.NoError(t, err)
		require.NotEmpty(t, data)
		// PNG magic bytes.
		require.Equal(t, byte(0x89), data[0])
		require.Equal(t, byte('P'), data[1])
	})

	t.Run("errors on an empty breakdown", func(t *testing.T) {
		t.Parallel()
		summary := ComputeSpendSummary(nil)

		_, err := CategoryPieChart(summary, "Spending by Category")
		require.Error(t, err)
	})
}
