package metrics

// Summary is the flat dashboard-level statistics record computed over the
// whole table. AvgCartValue is the mean cart value over ALL rows, not just
// completed or abandoned ones; on an empty table it is 0, never NaN.
type Summary struct {
	TotalOrders          int     `json:"total_orders"`
	AbandonedOrders      int     `json:"abandoned_orders"`
	CompletedOrders      int     `json:"completed_orders"`
	AbandonmentRate      float64 `json:"abandonment_rate"`
	TotalRevenue         float64 `json:"total_revenue"`
	LostRevenue          float64 `json:"lost_revenue"`
	AvgCartValue         float64 `json:"avg_cart_value"`
	PotentialRecovery10  float64 `json:"potential_recovery_10pct"`
}

// BreakdownRow is one group of a grouped aggregation. Rate, revenue and
// average are rounded to 3 decimals (half away from zero); the summary
// record is deliberately left unrounded.
type BreakdownRow struct {
	GroupKey        string  `json:"group_key"`
	TotalOrders     int     `json:"total_orders"`
	AbandonedOrders int     `json:"abandoned_orders"`
	AbandonmentRate float64 `json:"abandonment_rate"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgCartValue    float64 `json:"avg_cart_value"`
}

// PieChart is the completed-vs-abandoned chart payload derived from Summary.
type PieChart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BarChart is a group-key vs abandonment-rate chart payload derived from a
// breakdown. Labels may be truncated for display; Values align by index.
type BarChart struct {
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Histogram is the cart-value distribution payload. Edges has one more
// element than Counts; bin i spans [Edges[i], Edges[i+1]).
type Histogram struct {
	Title  string    `json:"title"`
	Edges  []float64 `json:"edges"`
	Counts []float64 `json:"counts"`
}
