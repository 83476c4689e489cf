package app

import (
	"context"
	"sync"
	"time"

	"cartsight/domain/core"
	"cartsight/domain/metrics"
	"cartsight/domain/order"
	"cartsight/internal"
	"cartsight/internal/analytics"
	"cartsight/ports"
)

// ReportService owns the currently loaded dataset and exposes every
// aggregate view the dashboard needs. The engine itself holds no state:
// the service loads the table once, hands it explicitly into each engine
// call, and swaps it atomically on refresh.
//
// When no dataset can be loaded every aggregation degrades to empty or
// zeroed results so page rendering never fails on absent data; the load
// error is kept separately for the UI notice.
type ReportService struct {
	loader ports.DatasetLoader

	mu       sync.RWMutex
	table    *order.Table
	loadErr  error
	loadedAt time.Time
}

// NewReportService creates a service around the given loader. Call Reload
// (or RefreshLoop) before serving.
func NewReportService(loader ports.DatasetLoader) *ReportService {
	return &ReportService{loader: loader}
}

// Reload re-discovers the newest dataset and swaps it in. Schema and
// coercion failures are surfaced; a merely missing dataset is recorded and
// leaves the service serving empty results.
func (s *ReportService) Reload(ctx context.Context) error {
	table, err := s.loader.LoadLatest(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.loadErr = err
		if core.IsDataUnavailable(err) {
			s.table = nil
			internal.DefaultLogger.Warn("[ReportService] No analysis dataset found: %v", err)
			return nil
		}
		return err
	}

	s.table = table
	s.loadErr = nil
	s.loadedAt = time.Now()
	internal.DefaultLogger.Info("[ReportService] Serving %s (%d rows)", table.SourcePath, table.Len())
	return nil
}

// RefreshLoop reloads the dataset on a fixed interval until ctx is done.
func (s *ReportService) RefreshLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Reload(ctx); err != nil {
				internal.DefaultLogger.Error("[ReportService] Dataset refresh failed: %v", err)
			}
		}
	}
}

// Status reports whether a dataset is loaded, plus its provenance.
type Status struct {
	Loaded     bool      `json:"loaded"`
	SourcePath string    `json:"source_path,omitempty"`
	LoadedAt   time.Time `json:"loaded_at,omitempty"`
	RowCount   int       `json:"row_count"`
	Notice     string    `json:"notice,omitempty"`
}

// Status returns the current dataset status for the UI.
func (s *ReportService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{RowCount: s.table.Len()}
	if s.table != nil {
		st.Loaded = true
		st.SourcePath = s.table.SourcePath
		st.LoadedAt = s.loadedAt
	} else {
		st.Notice = "No analysis dataset found. Please run the analysis first."
	}
	return st
}

// snapshot returns the current table pointer; aggregations read it without
// holding the lock since loaded tables are never mutated.
func (s *ReportService) snapshot() *order.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Table exposes the current table for views that need raw rows (sample
// display, CSV export). May be nil.
func (s *ReportService) Table() *order.Table {
	return s.snapshot()
}

// Summary computes the dashboard summary over the current table.
func (s *ReportService) Summary() metrics.Summary {
	table := s.snapshot()
	if table == nil {
		return metrics.Summary{}
	}
	return analytics.Summarize(table.Orders)
}

// Categories returns the category breakdown with the report policy:
// groups of at least 50 orders, top 10 by abandonment rate.
func (s *ReportService) Categories() ([]metrics.BreakdownRow, error) {
	return s.breakdown(order.DimCategory, analytics.CategoryMinGroupSize, analytics.CategoryTopN)
}

// Payments returns the payment-method breakdown: no minimum group size, no
// truncation.
func (s *ReportService) Payments() ([]metrics.BreakdownRow, error) {
	return s.breakdown(order.DimPayment, 0, 0)
}

// States returns the geographic breakdown: groups of at least 100 orders,
// truncated to topN (10 for the report view, 15 for the interactive view).
func (s *ReportService) States(topN int) ([]metrics.BreakdownRow, error) {
	return s.breakdown(order.DimState, analytics.StateMinGroupSize, topN)
}

func (s *ReportService) breakdown(dim order.Dimension, minGroupSize, topN int) ([]metrics.BreakdownRow, error) {
	table := s.snapshot()
	if table == nil {
		return []metrics.BreakdownRow{}, nil
	}
	return analytics.Breakdown(table.Orders, dim, minGroupSize, topN)
}

// CartValueHistogram bins the cart values of the current table for the
// distribution chart.
func (s *ReportService) CartValueHistogram() metrics.Histogram {
	table := s.snapshot()
	if table == nil {
		return metrics.Histogram{}
	}
	return analytics.CartValueHistogram(table.Orders, analytics.HistogramBins)
}
