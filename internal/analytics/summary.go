package analytics

import (
	"github.com/montanaflynn/stats"

	"cartsight/domain/metrics"
	"cartsight/domain/order"
)

// Summarize computes the flat dashboard summary over the whole table.
//
// Missing flags and cart values are zero-filled on a working copy first.
// Revenue figures are restricted to the completed/abandoned subsets while
// the average cart value spans all rows regardless of outcome; that
// asymmetry matches the business definition (overall basket size vs
// outcome-specific revenue) and is intentional. An empty table yields the
// zero Summary with no division error.
func Summarize(rows []order.Order) metrics.Summary {
	cleaned := zeroFillCopy(rows)

	total := len(cleaned)
	if total == 0 {
		return metrics.Summary{}
	}

	flagsAbandoned := make([]float64, 0, total)
	flagsCompleted := make([]float64, 0, total)
	cartValues := make([]float64, 0, total)
	var completedValues, abandonedValues []float64

	for _, row := range cleaned {
		flagsAbandoned = append(flagsAbandoned, row.Abandoned)
		flagsCompleted = append(flagsCompleted, row.Completed)
		cartValues = append(cartValues, row.CartValue)
		if row.Completed == 1 {
			completedValues = append(completedValues, row.CartValue)
		}
		if row.Abandoned == 1 {
			abandonedValues = append(abandonedValues, row.CartValue)
		}
	}

	abandonedSum, _ := stats.Sum(flagsAbandoned)
	completedSum, _ := stats.Sum(flagsCompleted)
	avgCart, _ := stats.Mean(cartValues)

	abandoned := int(abandonedSum)
	completed := int(completedSum)

	lostRevenue := sumOrZero(abandonedValues)

	return metrics.Summary{
		TotalOrders:         total,
		AbandonedOrders:     abandoned,
		CompletedOrders:     completed,
		AbandonmentRate:     float64(abandoned) / float64(total),
		TotalRevenue:        sumOrZero(completedValues),
		LostRevenue:         lostRevenue,
		AvgCartValue:        avgCart,
		PotentialRecovery10: lostRevenue * 0.10,
	}
}

// sumOrZero sums values, treating the empty subset as 0 rather than an error.
func sumOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum, _ := stats.Sum(values)
	return sum
}
