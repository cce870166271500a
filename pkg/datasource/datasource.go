// Package datasource declares the pull-based collaborator contract (§6):
// a fetch-only DataSource and the mutable extension a façade can drive
// writes through. Reference implementations live in the memsource,
// sqlstore, and kvstore subpackages; the core grid never imports any of
// them directly.
package datasource

import (
	"context"

	"github.com/kasuganosora/vtgrid/pkg/model"
)

// DataSource is the minimal read contract (§6). Destroy is optional;
// implementations that hold no resources may leave it a no-op.
type DataSource interface {
	Fetch(ctx context.Context, req model.FetchRequest) (model.FetchResponse, error)
	Destroy() error
}

// Unsubscribe is returned by MutableDataSource.Subscribe; calling it
// stops delivery.
type Unsubscribe func()

// MutationEvent is delivered to subscribers after a mutation is applied,
// independent of the transaction-manager's own TRANSACTION_PROCESSED
// bus instruction (§4.10); collaborators that implement their own
// storage (e.g. kvstore) use this to tell the façade to refresh without
// going through pkg/txn.
type MutationEvent struct {
	Added   int
	Removed int
	Updated int
}

// MutableDataSource extends DataSource with the write operations and
// transaction hooks a caller-implemented collaborator may offer (§6).
type MutableDataSource interface {
	DataSource

	AddRows(ctx context.Context, rows []map[string]any) ([]model.Row, error)
	RemoveRows(ctx context.Context, ids []any) (int, error)
	UpdateCell(ctx context.Context, id any, field string, value any) (bool, error)
	UpdateRow(ctx context.Context, id any, partial map[string]any) (bool, error)

	FlushTransactions(ctx context.Context) error
	HasPendingTransactions() bool

	GetDistinctValues(ctx context.Context, field string, maxValues int) ([]any, error)
	GetRowByID(ctx context.Context, id any) (model.Row, bool, error)
	GetTotalRowCount(ctx context.Context) (int, error)

	Subscribe(listener func(MutationEvent)) Unsubscribe
	Clear(ctx context.Context) error
}
