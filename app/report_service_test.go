package app

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"cartsight/domain/core"
	"cartsight/domain/order"
	"cartsight/internal/testkit"
)

// stubLoader serves a fixed table or error, standing in for file discovery.
type stubLoader struct {
	table *order.Table
	err   error
}

func (s *stubLoader) LoadLatest(ctx context.Context) (*order.Table, error) {
	return s.table, s.err
}

func syntheticTable(t *testing.T, count int) *order.Table {
	t.Helper()
	config := testkit.DefaultGeneratorConfig()
	config.OrderCount = count
	return &order.Table{
		Orders:     testkit.NewOrderGenerator(config).Generate(),
		SourcePath: "reports/analysis_dataset_test.csv",
	}
}

func TestReportService_DegradesWhenDataUnavailable(t *testing.T) {
	service := NewReportService(&stubLoader{err: core.ErrDataUnavailable})

	if err := service.Reload(context.Background()); err != nil {
		t.Fatalf("missing dataset must not fail Reload, got %v", err)
	}

	summary := service.Summary()
	if summary.TotalOrders != 0 || summary.AbandonmentRate != 0 {
		t.Errorf("expected zeroed summary, got %+v", summary)
	}

	rows, err := service.Categories()
	if err != nil {
		t.Fatalf("breakdown over absent data must not error, got %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty breakdown, got %d rows", len(rows))
	}

	status := service.Status()
	if status.Loaded {
		t.Error("status should report no dataset loaded")
	}
	if status.Notice == "" {
		t.Error("status should carry a user-facing notice")
	}
}

func TestReportService_SchemaErrorSurfacesFromReload(t *testing.T) {
	service := NewReportService(&stubLoader{err: core.NewMissingColumnError(order.ColCartValue)})

	err := service.Reload(context.Background())
	if err == nil {
		t.Fatal("schema errors must not be swallowed by Reload")
	}
	if !core.IsSchemaError(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestReportService_ServesLoadedTable(t *testing.T) {
	table := syntheticTable(t, 3000)
	service := NewReportService(&stubLoader{table: table})
	if err := service.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	summary := service.Summary()
	if summary.TotalOrders != 3000 {
		t.Errorf("TotalOrders = %d, want 3000", summary.TotalOrders)
	}

	payments, err := service.Payments()
	if err != nil {
		t.Fatalf("Payments failed: %v", err)
	}
	if len(payments) == 0 {
		t.Fatal("expected payment groups")
	}
	for i := 1; i < len(payments); i++ {
		if payments[i].AbandonmentRate > payments[i-1].AbandonmentRate {
			t.Errorf("payments not sorted descending at index %d", i)
		}
	}

	states, err := service.States(15)
	if err != nil {
		t.Fatalf("States failed: %v", err)
	}
	if len(states) > 15 {
		t.Errorf("state breakdown exceeds topN: %d", len(states))
	}
}

func TestReportService_ChartsDeriveFromContracts(t *testing.T) {
	service := NewReportService(&stubLoader{table: syntheticTable(t, 3000)})
	if err := service.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	pie := service.AbandonmentPie()
	summary := service.Summary()
	if pie.Values[0] != float64(summary.CompletedOrders) || pie.Values[1] != float64(summary.AbandonedOrders) {
		t.Errorf("pie values %v disagree with summary %+v", pie.Values, summary)
	}

	bar, err := service.CategoryBar()
	if err != nil {
		t.Fatalf("CategoryBar failed: %v", err)
	}
	if len(bar.Labels) > 8 {
		t.Errorf("category bar should keep at most 8 groups, got %d", len(bar.Labels))
	}
	for _, label := range bar.Labels {
		if len(label) > 23 { // 20 chars + ellipsis
			t.Errorf("label %q not truncated", label)
		}
	}

	hist := service.CartValueHistogram()
	total := 0.0
	for _, c := range hist.Counts {
		total += c
	}
	if total != 3000 {
		t.Errorf("histogram counts sum %v, want 3000", total)
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("short"); got != "short" {
		t.Errorf("short label changed: %q", got)
	}
	long := strings.Repeat("x", 25)
	if got := truncateLabel(long); got != strings.Repeat("x", 20)+"..." {
		t.Errorf("long label truncation wrong: %q", got)
	}

	// Truncation counts characters, not bytes, so a multi-byte category name
	// is never split mid-rune.
	accented := strings.Repeat("é", 25)
	got := truncateLabel(accented)
	if !utf8.ValidString(got) {
		t.Errorf("truncated label is not valid UTF-8: %q", got)
	}
	if got != strings.Repeat("é", 20)+"..." {
		t.Errorf("multi-byte truncation wrong: %q", got)
	}
}
