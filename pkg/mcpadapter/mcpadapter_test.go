package mcpadapter

import (
	"context"
	"strings"
	"testing"

	"github.com/kasuganosora/vtgrid/pkg/datasource/memsource"
	"github.com/kasuganosora/vtgrid/pkg/grid"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func newTestGrid(t *testing.T) *grid.Facade {
	t.Helper()
	src := memsource.New(nil, nil, 0)
	_, err := src.AddRows(context.Background(), []map[string]any{
		{"name": "Bob", "age": float64(30)},
		{"name": "Alice", "age": float64(25)},
	})
	require.NoError(t, err)
	src.FlushTransactions(context.Background())

	g, err := grid.New(grid.Config{
		Columns: []model.ColumnDef{
			{Field: "name", ColId: "name", HeaderName: "Name"},
			{Field: "age", ColId: "age", HeaderName: "Age"},
		},
		DataSource: src,
		RowHeight:  32,
	})
	require.NoError(t, err)
	require.NoError(t, g.Initialize(context.Background()))
	return g
}

func TestHandleListColumnsReportsHeaders(t *testing.T) {
	g := newTestGrid(t)
	deps := &ToolDeps{Grid: g}
	result, err := deps.HandleListColumns(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	text := result.Content[0].(mcp.TextContent).Text
	require.Contains(t, text, "Name")
	require.Contains(t, text, "Age")
}

func TestHandleGetVisibleRowsReturnsTabSeparatedText(t *testing.T) {
	g := newTestGrid(t)
	deps := &ToolDeps{Grid: g}
	result, err := deps.HandleGetVisibleRows(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	text := result.Content[0].(mcp.TextContent).Text
	require.True(t, strings.Contains(text, "Bob") || strings.Contains(text, "Alice"))
}
