package dataset

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartsight/domain/core"
)

const fullHeader = "order_purchase_timestamp,is_abandoned,is_completed,cart_value,product_category_name_english,payment_type,customer_state\n"

func writeDataset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLatest_NoDataset(t *testing.T) {
	loader := NewLoader(t.TempDir())

	_, err := loader.LoadLatest(context.Background())

	require.Error(t, err)
	assert.True(t, core.IsDataUnavailable(err), "expected data-unavailable, got %v", err)
}

func TestLoadLatest_ParsesTypedRows(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "analysis_dataset_20240131.csv", fullHeader+
		"2024-01-05 10:30:00,1,0,120.50,toys,credit_card,SP\n"+
		"2024-01-06 11:00:00,0,1,,books,boleto,RJ\n")

	loader := NewLoader(dir)
	table, err := loader.LoadLatest(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())

	first := table.Orders[0]
	assert.Equal(t, 1.0, first.Abandoned)
	assert.Equal(t, 120.50, first.CartValue)
	assert.Equal(t, "toys", first.Category)
	assert.Equal(t, "credit_card", first.PaymentType)
	assert.Equal(t, "SP", first.State)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC), first.PurchasedAt)

	// Empty cart_value is missing, not zero: the engine decides the fill.
	assert.True(t, math.IsNaN(table.Orders[1].CartValue))
	assert.Equal(t, 1, table.MissingCells["cart_value"])
}

func TestLoadLatest_PicksNewestFile(t *testing.T) {
	dir := t.TempDir()
	older := writeDataset(t, dir, "analysis_dataset_20240101.csv", fullHeader+
		",1,0,10,old,credit_card,SP\n")
	newer := writeDataset(t, dir, "analysis_dataset_20240201.csv", fullHeader+
		",0,1,20,new,boleto,RJ\n")

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))
	now := time.Now()
	require.NoError(t, os.Chtimes(newer, now, now))

	loader := NewLoader(dir)
	table, err := loader.LoadLatest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, newer, table.SourcePath)
	assert.Equal(t, "new", table.Orders[0].Category)
}

func TestLoadLatest_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "analysis_dataset_1.csv",
		"is_abandoned,is_completed,cart_value\n1,0,10\n")

	loader := NewLoader(dir)
	_, err := loader.LoadLatest(context.Background())

	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err), "expected schema error, got %v", err)
	assert.Contains(t, err.Error(), "product_category_name_english")
}

func TestLoadLatest_MalformedNumericCell(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "analysis_dataset_1.csv", fullHeader+
		",1,0,not-a-number,toys,credit_card,SP\n")

	loader := NewLoader(dir)
	_, err := loader.LoadLatest(context.Background())

	require.Error(t, err)
	assert.True(t, core.IsComputationError(err), "expected computation error, got %v", err)
}

func TestLoadLatest_HeaderOnlyFileIsEmptyTable(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "analysis_dataset_empty.csv", fullHeader)

	loader := NewLoader(dir)
	table, err := loader.LoadLatest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestDataReader_UnknownExtensionTreatedAsExcel(t *testing.T) {
	r := NewDataReader("reports/analysis_dataset_1.xlsx")
	assert.Equal(t, "xlsx", r.fileType)

	r = NewDataReader("reports/analysis_dataset_1.csv")
	assert.Equal(t, "csv", r.fileType)
}
