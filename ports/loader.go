package ports

import (
	"context"

	"cartsight/domain/order"
)

// DatasetLoader locates the most recent analysis dataset file and parses it
// into the typed order table. Implementations return
// core.ErrDataUnavailable when no matching file exists and core.ErrSchema
// when a file is present but missing required columns.
type DatasetLoader interface {
	LoadLatest(ctx context.Context) (*order.Table, error)
}
