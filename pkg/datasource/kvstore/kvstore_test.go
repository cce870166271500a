package kvstore

import (
	"context"
	"testing"

	"github.com/kasuganosora/vtgrid/pkg/datasource"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/stretchr/testify/require"
)

func TestAddFetchRemoveRoundTrip(t *testing.T) {
	src, err := Open("")
	require.NoError(t, err)
	defer src.Destroy()

	ctx := context.Background()
	inserted, err := src.AddRows(ctx, []map[string]any{{"name": "Bob", "age": float64(30)}})
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	resp, err := src.Fetch(ctx, model.FetchRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	count, err := src.RemoveRows(ctx, []any{inserted[0].ID})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	resp, err = src.Fetch(ctx, model.FetchRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Rows)
}

func TestUpdateCellWritesThroughAndNotifies(t *testing.T) {
	src, err := Open("")
	require.NoError(t, err)
	defer src.Destroy()

	ctx := context.Background()
	inserted, err := src.AddRows(ctx, []map[string]any{{"name": "Bob"}})
	require.NoError(t, err)

	var events []datasource.MutationEvent
	src.Subscribe(func(ev datasource.MutationEvent) { events = append(events, ev) })

	ok, err := src.UpdateCell(ctx, inserted[0].ID, "name", "Bobby")
	require.NoError(t, err)
	require.True(t, ok)

	row, found, err := src.GetRowByID(ctx, inserted[0].ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Bobby", row.Fields["name"])
	require.NotEmpty(t, events)
	require.Equal(t, 1, events[len(events)-1].Updated)
}

func TestHasPendingTransactionsAlwaysFalse(t *testing.T) {
	src, err := Open("")
	require.NoError(t, err)
	defer src.Destroy()
	require.False(t, src.HasPendingTransactions())
}
