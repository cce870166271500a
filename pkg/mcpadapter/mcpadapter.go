// Package mcpadapter exposes read-only grid operations (§6: listing
// columns, reading the visible window, changing sort/filter) as MCP
// tools over mark3labs/mcp-go, so an agent can drive a grid the same way
// a presentation layer does.
//
// Grounded on the teacher's server/mcp package: the ToolDeps-holds-
// dependencies shape, mcp.NewTool/mcp.WithString/mcp.WithDescription
// tool declarations, and the tab-separated-text result convention for
// tabular output are all carried over from HandleQuery/HandleListTables.
package mcpadapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kasuganosora/vtgrid/pkg/grid"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ToolDeps holds the grid a tool call operates against.
type ToolDeps struct {
	Grid *grid.Facade
}

// Register builds the tool set and attaches it to srv.
func Register(srv *mcpserver.MCPServer, deps *ToolDeps) {
	listColumnsTool := mcp.NewTool("list_columns",
		mcp.WithDescription("List the grid's columns, including field name, header, type, and whether each is sortable/filterable/editable"),
	)
	getVisibleRowsTool := mcp.NewTool("get_visible_rows",
		mcp.WithDescription("Read a window of the grid's current row cache as tab-separated text"),
		mcp.WithNumber("start", mcp.Description("First row index to read (inclusive, 0-based)")),
		mcp.WithNumber("count", mcp.Description("Maximum number of rows to read")),
	)
	setSortTool := mcp.NewTool("set_sort",
		mcp.WithDescription("Set (or clear) the sort key for a column"),
		mcp.WithString("colId", mcp.Description("Column id to sort by"), mcp.Required()),
		mcp.WithString("direction", mcp.Description("One of asc, desc, or none")),
	)
	setFilterTool := mcp.NewTool("set_filter",
		mcp.WithDescription("Set a simple equality filter for a column, or clear it when value is omitted"),
		mcp.WithString("colId", mcp.Description("Column id to filter"), mcp.Required()),
		mcp.WithString("value", mcp.Description("Value to match; omit to clear the filter")),
	)

	srv.AddTool(listColumnsTool, deps.HandleListColumns)
	srv.AddTool(getVisibleRowsTool, deps.HandleGetVisibleRows)
	srv.AddTool(setSortTool, deps.HandleSetSort)
	srv.AddTool(setFilterTool, deps.HandleSetFilter)
}

// HandleListColumns reports every column's field, header, type, and flags.
func (d *ToolDeps) HandleListColumns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString("field\theader\ttype\tsortable\tfilterable\teditable\n")
	for _, col := range d.Grid.Columns() {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%v\t%v\t%v\n",
			col.Field, col.HeaderName, col.CellDataType, col.IsSortable(), col.IsFilterable(), col.Editable)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// HandleGetVisibleRows reads [start, start+count) from the row cache as
// tab-separated text, one column per the grid's visible column order.
func (d *ToolDeps) HandleGetVisibleRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := int(request.GetFloat("start", 0))
	count := int(request.GetFloat("count", 50))
	if start < 0 {
		start = 0
	}
	if count <= 0 {
		count = 50
	}

	cols := model.VisibleColumns(d.Grid.Columns())
	var sb strings.Builder
	for i, col := range cols {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(col.Field)
	}
	sb.WriteByte('\n')

	total := d.Grid.TotalRows()
	end := start + count
	if end > total {
		end = total
	}
	for r := start; r < end; r++ {
		row, ok := d.Grid.RowAt(r)
		if !ok {
			break
		}
		for i, col := range cols {
			if i > 0 {
				sb.WriteByte('\t')
			}
			fmt.Fprintf(&sb, "%v", row.Get(col.Field))
		}
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// HandleSetSort parses direction and drives grid.SetSort.
func (d *ToolDeps) HandleSetSort(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	colId := request.GetString("colId", "")
	if colId == "" {
		return mcp.NewToolResultError("colId parameter is required"), nil
	}
	dirStr := strings.ToLower(request.GetString("direction", "asc"))
	var dir model.SortDirection
	switch dirStr {
	case "asc":
		dir = model.SortAsc
	case "desc":
		dir = model.SortDesc
	case "none", "":
		dir = ""
	default:
		return mcp.NewToolResultError("direction must be one of asc, desc, none"), nil
	}
	d.Grid.SetSort(ctx, colId, dir)
	return mcp.NewToolResultText("ok"), nil
}

// HandleSetFilter sets or clears an equality filter for colId.
func (d *ToolDeps) HandleSetFilter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	colId := request.GetString("colId", "")
	if colId == "" {
		return mcp.NewToolResultError("colId parameter is required"), nil
	}
	value := request.GetString("value", "")
	var cf model.ColumnFilterModel
	if value != "" {
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			cf = model.ColumnFilterModel{Conditions: []model.FilterCondition{
				{Kind: model.FilterKindNumber, NumberOp: model.NumberEqual, Value: n},
			}}
		} else {
			cf = model.ColumnFilterModel{Conditions: []model.FilterCondition{
				{Kind: model.FilterKindText, TextOperator: model.TextEquals, Value: value},
			}}
		}
	}
	d.Grid.SetFilter(ctx, colId, cf)
	return mcp.NewToolResultText("ok"), nil
}
