package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"cartsight/domain/metrics"
	"cartsight/domain/order"
)

// breakdownHeader is the column order for every breakdown sheet.
var breakdownHeader = []interface{}{
	"group_key", "total_orders", "abandoned_orders",
	"abandonment_rate", "total_revenue", "avg_cart_value",
}

// Report bundles everything that goes into a generated report artifact.
type Report struct {
	Summary    metrics.Summary
	Categories []metrics.BreakdownRow
	Payments   []metrics.BreakdownRow
	States     []metrics.BreakdownRow
}

// BuildWorkbook renders a report into an xlsx workbook with one sheet for
// the summary and one per breakdown. The caller owns closing the file.
func BuildWorkbook(report Report) (*excelize.File, error) {
	f := excelize.NewFile()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"total_orders", report.Summary.TotalOrders},
		{"abandoned_orders", report.Summary.AbandonedOrders},
		{"completed_orders", report.Summary.CompletedOrders},
		{"abandonment_rate", report.Summary.AbandonmentRate},
		{"total_revenue", report.Summary.TotalRevenue},
		{"lost_revenue", report.Summary.LostRevenue},
		{"avg_cart_value", report.Summary.AvgCartValue},
		{"potential_recovery_10pct", report.Summary.PotentialRecovery10},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	sheets := []struct {
		name string
		rows []metrics.BreakdownRow
	}{
		{"Categories", report.Categories},
		{"Payments", report.Payments},
		{"States", report.States},
	}
	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}
		if err := f.SetSheetRow(sheet.name, "A1", &breakdownHeader); err != nil {
			return nil, err
		}
		for i, row := range sheet.rows {
			values := []interface{}{
				row.GroupKey, row.TotalOrders, row.AbandonedOrders,
				row.AbandonmentRate, row.TotalRevenue, row.AvgCartValue,
			}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(sheet.name, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write %s row: %w", sheet.name, err)
			}
		}
	}

	return f, nil
}

// SaveWorkbook writes the report into the reports directory under a unique
// name and returns the generated filename, so the /reports pass-through can
// serve it afterwards.
func SaveWorkbook(report Report, reportsDir string) (string, error) {
	f, err := BuildWorkbook(report)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := fmt.Sprintf("abandonment_report_%s.xlsx", uuid.NewString())
	if err := f.SaveAs(filepath.Join(reportsDir, name)); err != nil {
		return "", fmt.Errorf("failed to save report workbook: %w", err)
	}
	return name, nil
}

// WriteOrdersCSV streams the loaded table back out as CSV, in the dataset's
// canonical column order. Missing numeric cells are written empty, matching
// how they arrived.
func WriteOrdersCSV(w io.Writer, table *order.Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		order.ColPurchasedAt,
		order.ColAbandoned,
		order.ColCompleted,
		order.ColCartValue,
		order.ColCategory,
		order.ColPaymentType,
		order.ColState,
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if table == nil {
		return cw.Error()
	}

	for _, o := range table.Orders {
		record := []string{
			formatTimestamp(o),
			formatFlag(o.Abandoned),
			formatFlag(o.Completed),
			formatValue(o.CartValue),
			o.Category,
			o.PaymentType,
			o.State,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return cw.Error()
}

func formatTimestamp(o order.Order) string {
	if o.PurchasedAt.IsZero() {
		return ""
	}
	return o.PurchasedAt.Format("2006-01-02 15:04:05")
}

func formatFlag(v float64) string {
	if v != v { // NaN
		return ""
	}
	return strconv.Itoa(int(v))
}

func formatValue(v float64) string {
	if v != v { // NaN
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
