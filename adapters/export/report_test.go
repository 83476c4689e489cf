package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartsight/domain/metrics"
	"cartsight/domain/order"
)

func sampleReport() Report {
	return Report{
		Summary: metrics.Summary{
			TotalOrders:     4,
			AbandonedOrders: 1,
			CompletedOrders: 3,
			AbandonmentRate: 0.25,
			TotalRevenue:    300,
			LostRevenue:     50,
			AvgCartValue:    87.5,
		},
		Categories: []metrics.BreakdownRow{
			{GroupKey: "toys", TotalOrders: 4, AbandonedOrders: 1, AbandonmentRate: 0.25, TotalRevenue: 300, AvgCartValue: 87.5},
		},
		Payments: []metrics.BreakdownRow{
			{GroupKey: "credit_card", TotalOrders: 4, AbandonedOrders: 1, AbandonmentRate: 0.25, TotalRevenue: 300, AvgCartValue: 87.5},
		},
	}
}

func TestBuildWorkbook_SheetLayout(t *testing.T) {
	f, err := BuildWorkbook(sampleReport())
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Summary", "Categories", "Payments", "States"},
		f.GetSheetList())

	rate, err := f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "0.25", rate)

	header, err := f.GetCellValue("Categories", "A1")
	require.NoError(t, err)
	assert.Equal(t, "group_key", header)

	group, err := f.GetCellValue("Categories", "A2")
	require.NoError(t, err)
	assert.Equal(t, "toys", group)

	// States was empty in the report: header only.
	empty, err := f.GetCellValue("States", "A2")
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestSaveWorkbook_UniqueFilenames(t *testing.T) {
	dir := t.TempDir()

	first, err := SaveWorkbook(sampleReport(), dir)
	require.NoError(t, err)
	second, err := SaveWorkbook(sampleReport(), dir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "abandonment_report_"))

	saved, err := filepath.Glob(filepath.Join(dir, "abandonment_report_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestWriteOrdersCSV_MissingCellsStayEmpty(t *testing.T) {
	table := &order.Table{
		Orders: []order.Order{
			{
				Abandoned: 0, Completed: 1, CartValue: 120.5,
				Category: "toys", PaymentType: "boleto", State: "SP",
				PurchasedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			},
			{
				Abandoned: 1, Completed: 0, CartValue: math.NaN(),
				Category: "auto", PaymentType: "voucher", State: "RJ",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, table))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, order.ColPurchasedAt, records[0][0])
	assert.Equal(t, "2024-03-01 10:00:00", records[1][0])
	assert.Equal(t, "120.5", records[1][3])

	// NaN cart value and zero timestamp round-trip as empty cells.
	assert.Equal(t, "", records[2][0])
	assert.Equal(t, "", records[2][3])
	assert.Equal(t, "1", records[2][1])
}

func TestWriteOrdersCSV_NilTableWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
