package sqlstore

import (
	"context"
	"testing"

	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/stretchr/testify/require"
)

func TestFetchAppliesSortOverSQLiteBackedRows(t *testing.T) {
	src, err := Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	defer src.Destroy()

	ctx := context.Background()
	require.NoError(t, src.Insert(ctx, "1", map[string]any{"name": "Bob", "age": float64(30)}))
	require.NoError(t, src.Insert(ctx, "2", map[string]any{"name": "Alice", "age": float64(25)}))

	resp, err := src.Fetch(ctx, model.FetchRequest{
		Sort: model.SortModel{{ColId: "age", Direction: model.SortAsc}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)
	require.Equal(t, "Alice", resp.Rows[0].Fields["name"])
	require.Equal(t, "Bob", resp.Rows[1].Fields["name"])
}

func TestDeleteByIDRemovesRow(t *testing.T) {
	src, err := Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	defer src.Destroy()

	ctx := context.Background()
	require.NoError(t, src.Insert(ctx, "1", map[string]any{"name": "Bob"}))
	require.NoError(t, src.DeleteByID(ctx, "1"))

	resp, err := src.Fetch(ctx, model.FetchRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Rows)
}
