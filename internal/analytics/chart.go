package analytics

import (
	"fmt"

	"github.com/go-analyze/charts"
)

// CategoryPieChart renders the category breakdown of a spend summary
// as a pie chart. Returns PNG image bytes.
func CategoryPieChart(summary SpendSummary, title string) ([]byte, error) {
	if len(summary.CategoryShares) == 0 {
		return nil, fmt.Errorf("no expense data to chart")
	}

	values := make([]float64, 0, len(summary.CategoryShares))
	names := make([]string, 0, len(summary.CategoryShares))
	for _, share := range summary.CategoryShares {
		values = append(values, share.Amount.InexactFloat64())
		names = append(names, share.Category)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}
