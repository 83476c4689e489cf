package order

import (
	"math"
	"time"
)

// Column names as they appear in the analysis dataset file.
const (
	ColAbandoned   = "is_abandoned"
	ColCompleted   = "is_completed"
	ColCartValue   = "cart_value"
	ColCategory    = "product_category_name_english"
	ColPaymentType = "payment_type"
	ColState       = "customer_state"
	ColPurchasedAt = "order_purchase_timestamp"
)

// RequiredColumns lists the columns the aggregation engine depends on.
// A dataset missing any of these is rejected with a schema error at load
// time; extra columns are carried through untouched.
func RequiredColumns() []string {
	return []string{
		ColAbandoned,
		ColCompleted,
		ColCartValue,
		ColCategory,
		ColPaymentType,
		ColState,
	}
}

// Dimension selects the categorical column a breakdown groups by.
type Dimension string

const (
	DimCategory Dimension = "category"
	DimPayment  Dimension = "payment"
	DimState    Dimension = "state"
)

// Column returns the dataset column backing this dimension.
func (d Dimension) Column() (string, bool) {
	switch d {
	case DimCategory:
		return ColCategory, true
	case DimPayment:
		return ColPaymentType, true
	case DimState:
		return ColState, true
	}
	return "", false
}

// Key extracts the group key for this dimension from a row.
func (d Dimension) Key(o Order) (string, bool) {
	switch d {
	case DimCategory:
		return o.Category, true
	case DimPayment:
		return o.PaymentType, true
	case DimState:
		return o.State, true
	}
	return "", false
}

// Order is a single row of the analysis dataset mapped onto the typed
// schema. The abandonment and completion flags are 0/1 and cart value is a
// non-negative amount; a missing cell in any of the three numeric columns is
// represented as NaN and zero-filled by the engine before aggregation.
type Order struct {
	Abandoned   float64
	Completed   float64
	CartValue   float64
	Category    string
	PaymentType string
	State       string
	PurchasedAt time.Time
}

// HasMissing reports whether any numeric field of the row is missing.
func (o Order) HasMissing() bool {
	return math.IsNaN(o.Abandoned) || math.IsNaN(o.Completed) || math.IsNaN(o.CartValue)
}

// Table is a loaded analysis dataset plus the provenance the UI displays.
// The engine treats Orders as immutable; aggregations work on local copies.
type Table struct {
	Orders []Order

	SourcePath string
	LoadedAt   time.Time

	// Columns preserves the raw header order of the source file.
	Columns []string

	// MissingCells counts empty cells per raw column, for the data-quality view.
	MissingCells map[string]int
}

// Len returns the number of rows. Safe on a nil table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Orders)
}

// PurchaseRange returns the earliest and latest purchase timestamps.
// Rows with a zero timestamp are skipped; ok is false when none remain.
func (t *Table) PurchaseRange() (min, max time.Time, ok bool) {
	if t == nil {
		return time.Time{}, time.Time{}, false
	}
	for _, o := range t.Orders {
		if o.PurchasedAt.IsZero() {
			continue
		}
		if !ok {
			min, max, ok = o.PurchasedAt, o.PurchasedAt, true
			continue
		}
		if o.PurchasedAt.Before(min) {
			min = o.PurchasedAt
		}
		if o.PurchasedAt.After(max) {
			max = o.PurchasedAt
		}
	}
	return min, max, ok
}
