// Command griddemo wires a grid.Facade to an in-memory data source, runs
// a few representative operations against it (initial load, sort,
// filter, export), and prints every instruction the façade emits.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kasuganosora/vtgrid/pkg/bus"
	"github.com/kasuganosora/vtgrid/pkg/datasource/memsource"
	"github.com/kasuganosora/vtgrid/pkg/exportutil"
	"github.com/kasuganosora/vtgrid/pkg/grid"
	"github.com/kasuganosora/vtgrid/pkg/model"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	src := memsource.New(nil, nil, 50)
	if _, err := src.AddRows(ctx, seedRows()); err != nil {
		return fmt.Errorf("seed rows: %w", err)
	}
	src.FlushTransactions(ctx)

	g, err := grid.New(grid.Config{
		Columns: []model.ColumnDef{
			{Field: "name", ColId: "name", HeaderName: "Name", Editable: true},
			{Field: "department", ColId: "department", HeaderName: "Department"},
			{Field: "salary", ColId: "salary", HeaderName: "Salary", CellDataType: model.CellDataTypeNumber},
		},
		DataSource: src,
		RowHeight:  32,
	})
	if err != nil {
		return fmt.Errorf("construct grid: %w", err)
	}
	defer g.Destroy()

	stop := g.Bus().Subscribe(func(instr bus.Instruction) {
		fmt.Printf("[instruction] %s\n", instr.Kind)
	})
	defer stop()

	if err := g.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	g.SetViewport(model.Viewport{Height: 320, ScrollTop: 0})

	g.SetSort(ctx, "salary", model.SortDesc)
	fmt.Println("--- sorted by salary desc ---")
	printRows(g)

	g.SetFilter(ctx, "department", model.ColumnFilterModel{
		Conditions: []model.FilterCondition{
			{Kind: model.FilterKindText, TextOperator: model.TextEquals, Value: "Engineering"},
		},
	})
	fmt.Println("--- filtered to Engineering ---")
	printRows(g)

	g.SetFilter(ctx, "department", model.ColumnFilterModel{})

	outPath := "griddemo_export.xlsx"
	if err := exportutil.WriteXLSX(outPath, g.Columns(), allRows(g), exportutil.Options{}); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func seedRows() []map[string]any {
	return []map[string]any{
		{"name": "Ada Lovelace", "department": "Engineering", "salary": float64(142000)},
		{"name": "Grace Hopper", "department": "Engineering", "salary": float64(151000)},
		{"name": "Margaret Hamilton", "department": "Flight Software", "salary": float64(138000)},
		{"name": "Katherine Johnson", "department": "Research", "salary": float64(129000)},
	}
}

func printRows(g *grid.Facade) {
	for _, row := range allRows(g) {
		fmt.Fprintf(os.Stdout, "  %v\n", row.Fields)
	}
}

func allRows(g *grid.Facade) []model.Row {
	rows := make([]model.Row, 0, g.TotalRows())
	for i := 0; i < g.TotalRows(); i++ {
		if row, ok := g.RowAt(i); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
