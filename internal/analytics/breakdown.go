package analytics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"cartsight/domain/core"
	"cartsight/domain/metrics"
	"cartsight/domain/order"
)

// Breakdown policy values used by the dashboard callers. They are passed in
// explicitly; the engine itself applies whatever it is given.
const (
	CategoryMinGroupSize = 50
	StateMinGroupSize    = 100

	CategoryTopN     = 10
	StateReportTopN  = 10
	StateExploreTopN = 15
)

// Breakdown partitions the table by the given dimension and aggregates each
// group, as an explicit five-stage pipeline: partition, aggregate, filter,
// sort, truncate.
//
// Groups smaller than minGroupSize are dropped; topN <= 0 disables
// truncation. The result is ordered by abandonment rate descending, ties
// keeping the group's first-appearance order in the input, so identical
// input always produces the identical sequence. An unknown dimension is a
// schema error; an input that filters down to nothing is an empty slice,
// not an error.
func Breakdown(rows []order.Order, dim order.Dimension, minGroupSize, topN int) ([]metrics.BreakdownRow, error) {
	if _, ok := dim.Column(); !ok {
		return nil, core.NewUnknownDimensionError(string(dim))
	}

	cleaned := zeroFillCopy(rows)

	// Partition, preserving the first-appearance order of keys.
	index := make(map[string]int)
	var keys []string
	var groups [][]order.Order
	for _, row := range cleaned {
		key, _ := dim.Key(row)
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			keys = append(keys, key)
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], row)
	}

	// Aggregate.
	out := make([]metrics.BreakdownRow, 0, len(groups))
	for i, g := range groups {
		out = append(out, aggregateGroup(keys[i], g))
	}

	// Filter small groups.
	if minGroupSize > 0 {
		kept := out[:0]
		for _, row := range out {
			if row.TotalOrders >= minGroupSize {
				kept = append(kept, row)
			}
		}
		out = kept
	}

	// Stable sort, abandonment rate descending.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AbandonmentRate > out[j].AbandonmentRate
	})

	// Truncate.
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// aggregateGroup computes the per-group statistics. Rows are already
// zero-filled, and a group always has at least one row.
func aggregateGroup(key string, rows []order.Order) metrics.BreakdownRow {
	flags := make([]float64, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		flags[i] = row.Abandoned
		values[i] = row.CartValue
	}

	abandonedSum, _ := stats.Sum(flags)
	revenue, _ := stats.Sum(values)
	avg, _ := stats.Mean(values)

	total := len(rows)
	abandoned := int(abandonedSum)

	return metrics.BreakdownRow{
		GroupKey:        key,
		TotalOrders:     total,
		AbandonedOrders: abandoned,
		AbandonmentRate: round3(float64(abandoned) / float64(total)),
		TotalRevenue:    round3(revenue),
		AvgCartValue:    round3(avg),
	}
}
