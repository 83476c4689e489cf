package analytics

import (
	"math"

	"cartsight/domain/order"
)

// zeroFillCopy returns a copy of rows with missing numeric cells replaced by
// zero. Every aggregation runs against such a copy; the caller's slice is
// never mutated.
func zeroFillCopy(rows []order.Order) []order.Order {
	cleaned := make([]order.Order, len(rows))
	copy(cleaned, rows)
	for i := range cleaned {
		if math.IsNaN(cleaned[i].Abandoned) {
			cleaned[i].Abandoned = 0
		}
		if math.IsNaN(cleaned[i].Completed) {
			cleaned[i].Completed = 0
		}
		if math.IsNaN(cleaned[i].CartValue) {
			cleaned[i].CartValue = 0
		}
	}
	return cleaned
}

// round3 rounds to 3 decimal places, half away from zero.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
