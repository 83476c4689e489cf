package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"cartsight/domain/metrics"
	"cartsight/domain/order"
)

// HistogramBins is the bin count used by the cart-value distribution chart.
const HistogramBins = 30

// CartValueHistogram bins the cart values of all rows into a fixed-width
// histogram. Missing values are zero-filled first, consistent with every
// other aggregation. An empty table yields an empty histogram.
func CartValueHistogram(rows []order.Order, bins int) metrics.Histogram {
	if bins <= 0 {
		bins = HistogramBins
	}

	cleaned := zeroFillCopy(rows)
	if len(cleaned) == 0 {
		return metrics.Histogram{Title: "Cart Value Distribution"}
	}

	values := make([]float64, len(cleaned))
	for i, row := range cleaned {
		values[i] = row.CartValue
	}
	sort.Float64s(values)

	min := values[0]
	max := values[len(values)-1]
	if max == min {
		// Degenerate single-value distribution still gets one visible bin.
		max = min + 1
	}

	edges := make([]float64, bins+1)
	floats.Span(edges, min, max)
	// The last edge must be strictly greater than the maximum value or
	// stat.Histogram panics. A relative nudge can underflow to a no-op when
	// the spread is tiny next to the magnitude, so step to the next float.
	edges[bins] = math.Nextafter(edges[bins], math.Inf(1))

	counts := stat.Histogram(nil, edges, values, nil)

	return metrics.Histogram{
		Title:  "Cart Value Distribution",
		Edges:  edges,
		Counts: counts,
	}
}
