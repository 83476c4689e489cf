package app

import (
	"cartsight/domain/metrics"
)

// Chart payload derivation. These are pure reshapes of the summary and
// breakdown contracts; no aggregation happens here.

// maxBarLabelLen is where long group labels get cut for axis readability.
const maxBarLabelLen = 20

// categoryBarGroups is how many of the top categories the bar chart shows.
const categoryBarGroups = 8

// AbandonmentPie derives the completed-vs-abandoned pie payload.
func (s *ReportService) AbandonmentPie() metrics.PieChart {
	summary := s.Summary()
	return metrics.PieChart{
		Title:  "Order Completion vs Abandonment",
		Labels: []string{"Completed Orders", "Abandoned Orders"},
		Values: []float64{float64(summary.CompletedOrders), float64(summary.AbandonedOrders)},
	}
}

// CategoryBar derives the top-categories bar payload from the category
// breakdown, keeping the first 8 groups and shortening long labels.
func (s *ReportService) CategoryBar() (metrics.BarChart, error) {
	rows, err := s.Categories()
	if err != nil {
		return metrics.BarChart{}, err
	}
	if len(rows) > categoryBarGroups {
		rows = rows[:categoryBarGroups]
	}
	chart := barChart("Top Categories by Abandonment Rate", "Product Category", rows)
	for i, label := range chart.Labels {
		chart.Labels[i] = truncateLabel(label)
	}
	return chart, nil
}

// PaymentBar derives the payment-method bar payload.
func (s *ReportService) PaymentBar() (metrics.BarChart, error) {
	rows, err := s.Payments()
	if err != nil {
		return metrics.BarChart{}, err
	}
	return barChart("Abandonment Rate by Payment Method", "Payment Method", rows), nil
}

// StateBar derives the geographic bar payload over the top topN states.
func (s *ReportService) StateBar(topN int) (metrics.BarChart, error) {
	rows, err := s.States(topN)
	if err != nil {
		return metrics.BarChart{}, err
	}
	return barChart("Top States by Abandonment Rate", "State", rows), nil
}

func barChart(title, xLabel string, rows []metrics.BreakdownRow) metrics.BarChart {
	chart := metrics.BarChart{
		Title:  title,
		XLabel: xLabel,
		YLabel: "Abandonment Rate",
		Labels: make([]string, len(rows)),
		Values: make([]float64, len(rows)),
	}
	for i, row := range rows {
		chart.Labels[i] = row.GroupKey
		chart.Values[i] = row.AbandonmentRate
	}
	return chart
}

// truncateLabel cuts by runes, not bytes, so multi-byte category names never
// get split mid-character.
func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) > maxBarLabelLen {
		return string(runes[:maxBarLabelLen]) + "..."
	}
	return label
}
