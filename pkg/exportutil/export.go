// Package exportutil writes a grid's visible columns and row cache to an
// XLSX workbook via excelize (§6: export is a presentation-adapter
// concern, not a DataSource one — it reads whatever the façade currently
// has cached, it never triggers a fetch).
//
// Grounded on the teacher's pkg/resource/excel.ExcelAdapter.writeBack:
// same SetCellValue-per-coordinate loop, same header-row-then-data-rows
// layout, same SaveAs finish. The teacher's version reads back from its
// own MVCC table snapshot; this one reads straight from the rows/columns
// the caller passes in, since this module has no on-disk table concept.
package exportutil

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/kasuganosora/vtgrid/pkg/cellvalue"
	"github.com/kasuganosora/vtgrid/pkg/model"
)

const defaultSheetName = "Sheet1"

// Options controls the exported workbook.
type Options struct {
	// SheetName defaults to "Sheet1" when empty.
	SheetName string
	// RawValues writes cell values as-is via SetCellValue; when false,
	// every value is rendered through cellvalue.ToText first so exported
	// cells always match what the grid displays.
	RawValues bool
}

// WriteXLSX renders columns/rows as a single-sheet workbook and saves it
// to path. Hidden columns are skipped; row order is whatever the caller
// passed (the façade's current sort order).
func WriteXLSX(path string, columns []model.ColumnDef, rows []model.Row, opts Options) error {
	sheet := opts.SheetName
	if sheet == "" {
		sheet = defaultSheetName
	}

	visible := model.VisibleColumns(columns)
	f := excelize.NewFile()
	defer f.Close()

	if sheet != defaultSheetName {
		index, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("exportutil: create sheet: %w", err)
		}
		f.SetActiveSheet(index)
		f.DeleteSheet(defaultSheetName)
	}

	for i, col := range visible {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("exportutil: header cell: %w", err)
		}
		header := col.HeaderName
		if header == "" {
			header = col.Field
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("exportutil: write header: %w", err)
		}
	}

	for r, row := range rows {
		rowNum := r + 2 // header occupies row 1
		for c, col := range visible {
			cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
			if err != nil {
				return fmt.Errorf("exportutil: data cell: %w", err)
			}
			value := row.Get(col.Field)
			if cellvalue.IsEmpty(value) {
				continue
			}
			if !opts.RawValues {
				value = cellvalue.ToText(value)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("exportutil: write cell: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("exportutil: save %s: %w", path, err)
	}
	return nil
}
