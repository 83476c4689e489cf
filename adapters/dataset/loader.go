package dataset

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cartsight/domain/core"
	"cartsight/domain/order"
)

// datasetGlob matches the files the analysis pipeline drops into the
// reports directory, e.g. analysis_dataset_20240131.csv.
const datasetGlob = "analysis_dataset_*"

// timestampLayouts are tried in order when parsing order_purchase_timestamp.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Loader discovers and parses the most recent analysis dataset under a
// reports directory and maps it onto the typed order schema.
type Loader struct {
	reportsDir string
}

// NewLoader creates a loader rooted at the given reports directory.
func NewLoader(reportsDir string) *Loader {
	return &Loader{reportsDir: reportsDir}
}

// LoadLatest implements ports.DatasetLoader. Column lookup by string name
// happens only here; everything downstream works with the typed schema.
func (l *Loader) LoadLatest(ctx context.Context) (*order.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := l.latestDatasetFile()
	if err != nil {
		return nil, err
	}

	raw, err := NewDataReader(path).ReadData()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDataUnavailable, err)
	}

	table, err := mapTable(path, raw)
	if err != nil {
		return nil, err
	}

	log.Printf("[Loader] Loaded analysis data: %s (%d rows)", path, table.Len())
	return table, nil
}

// latestDatasetFile returns the newest matching dataset file by
// modification time.
func (l *Loader) latestDatasetFile() (string, error) {
	var candidates []string
	for _, ext := range []string{".csv", ".xlsx"} {
		matches, err := filepath.Glob(filepath.Join(l.reportsDir, datasetGlob+ext))
		if err != nil {
			return "", fmt.Errorf("%w: bad reports glob: %v", core.ErrDataUnavailable, err)
		}
		candidates = append(candidates, matches...)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no %s files in %s", core.ErrDataUnavailable, datasetGlob, l.reportsDir)
	}

	newest := ""
	var newestMod time.Time
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = path
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("%w: dataset files in %s are unreadable", core.ErrDataUnavailable, l.reportsDir)
	}
	return newest, nil
}

// mapTable maps raw string rows onto the typed Order schema, failing fast
// when a required column is absent or a non-empty numeric cell cannot be
// coerced. Empty numeric cells become NaN; the engine zero-fills them.
func mapTable(path string, raw *TableData) (*order.Table, error) {
	present := make(map[string]bool, len(raw.Headers))
	for _, h := range raw.Headers {
		present[h] = true
	}
	for _, col := range order.RequiredColumns() {
		if !present[col] {
			return nil, core.NewMissingColumnError(col)
		}
	}

	missing := make(map[string]int, len(raw.Headers))
	orders := make([]order.Order, 0, len(raw.Rows))

	for i, row := range raw.Rows {
		for _, h := range raw.Headers {
			if row[h] == "" {
				missing[h]++
			}
		}

		abandoned, err := parseNumericCell(order.ColAbandoned, i, row[order.ColAbandoned])
		if err != nil {
			return nil, err
		}
		completed, err := parseNumericCell(order.ColCompleted, i, row[order.ColCompleted])
		if err != nil {
			return nil, err
		}
		cartValue, err := parseNumericCell(order.ColCartValue, i, row[order.ColCartValue])
		if err != nil {
			return nil, err
		}

		orders = append(orders, order.Order{
			Abandoned:   abandoned,
			Completed:   completed,
			CartValue:   cartValue,
			Category:    row[order.ColCategory],
			PaymentType: row[order.ColPaymentType],
			State:       row[order.ColState],
			PurchasedAt: parseTimestampCell(row[order.ColPurchasedAt]),
		})
	}

	return &order.Table{
		Orders:       orders,
		SourcePath:   path,
		LoadedAt:     time.Now(),
		Columns:      raw.Headers,
		MissingCells: missing,
	}, nil
}

// parseNumericCell coerces a cell to float64. Empty means missing (NaN);
// anything else that fails to parse is a computation error, not a silent
// default.
func parseNumericCell(column string, rowIdx int, raw string) (float64, error) {
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewCoercionError(column, rowIdx, raw)
	}
	return v, nil
}

// parseTimestampCell parses the purchase timestamp, used only for range
// display. Unparseable values degrade to the zero time rather than failing
// the load.
func parseTimestampCell(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
