package xlsx

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/bennyboer/table-engine-sub001/pkg/table"
)

// Save writes the model to a new workbook at path. An empty sheet name
// writes to "Sheet1".
func Save(m *table.CellModel, path, sheetName string, opts SaveOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return &SheetError{Sheet: sheetName, Part: "cells", Err: err}
		}
	}

	if err := ToFile(f, m, sheetName, opts); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// ToFile writes the model's cells, merges, sizes, hidden flags and borders
// into the given sheet of an open workbook.
func ToFile(f *excelize.File, m *table.CellModel, sheetName string, opts SaveOptions) error {
	seen := make(map[*table.Cell]struct{})
	for r := 0; r < m.GetRowCount(); r++ {
		for c := 0; c < m.GetColumnCount(); c++ {
			cell := m.GetCell(r, c, false)
			if cell == nil {
				continue
			}
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}

			if err := writeCell(f, sheetName, cell, opts); err != nil {
				return err
			}
		}
	}

	if opts.ShouldIncludeSizes() {
		if err := writeSizes(f, m, sheetName); err != nil {
			return err
		}
	}
	if opts.ShouldIncludeHidden() {
		if err := writeVisibility(f, m, sheetName); err != nil {
			return err
		}
	}
	return nil
}

func writeCell(f *excelize.File, sheetName string, cell *table.Cell, opts SaveOptions) error {
	start, err := excelize.CoordinatesToCellName(cell.Range.StartColumn+1, cell.Range.StartRow+1)
	if err != nil {
		return &SheetError{Sheet: sheetName, Part: "cells", Err: err}
	}

	if cell.Value != nil {
		if err := f.SetCellValue(sheetName, start, cell.Value); err != nil {
			return &SheetError{Sheet: sheetName, Part: "cells", Err: err}
		}
	}

	if !cell.Range.IsSingle() {
		end, err := excelize.CoordinatesToCellName(cell.Range.EndColumn+1, cell.Range.EndRow+1)
		if err != nil {
			return &SheetError{Sheet: sheetName, Part: "merges", Err: err}
		}
		if err := f.MergeCell(sheetName, start, end); err != nil {
			return &SheetError{Sheet: sheetName, Part: "merges", Err: err}
		}
	}

	if opts.ShouldIncludeBorders() && !cell.Border.IsEmpty() {
		if err := writeBorder(f, sheetName, cell, start); err != nil {
			// A failing style is cosmetic; keep the cell data.
			log.Warn().Err(err).Str("sheet", sheetName).Str("cell", start).
				Msg("writing cell border failed")
		}
	}
	return nil
}

func writeBorder(f *excelize.File, sheetName string, cell *table.Cell, start string) error {
	var defs []excelize.Border
	add := func(kind string, side *table.BorderSide) {
		if side == nil {
			return
		}
		defs = append(defs, excelize.Border{
			Type:  kind,
			Style: excelBorderStyle(*side),
			Color: side.Color.Hex(),
		})
	}
	add("top", cell.Border.Top)
	add("bottom", cell.Border.Bottom)
	add("left", cell.Border.Left)
	add("right", cell.Border.Right)

	styleID, err := f.NewStyle(&excelize.Style{Border: defs})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, start, start, styleID)
}

func writeSizes(f *excelize.File, m *table.CellModel, sheetName string) error {
	for r := 0; r < m.GetRowCount(); r++ {
		if err := f.SetRowHeight(sheetName, r+1, PixelsToRowHeight(m.GetRowSize(r))); err != nil {
			return &SheetError{Sheet: sheetName, Part: "sizes", Err: err}
		}
	}
	for c := 0; c < m.GetColumnCount(); c++ {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return &SheetError{Sheet: sheetName, Part: "sizes", Err: err}
		}
		if err := f.SetColWidth(sheetName, name, name, PixelsToColumnWidth(m.GetColumnSize(c))); err != nil {
			return &SheetError{Sheet: sheetName, Part: "sizes", Err: err}
		}
	}
	return nil
}

func writeVisibility(f *excelize.File, m *table.CellModel, sheetName string) error {
	for r := 0; r < m.GetRowCount(); r++ {
		if !m.IsRowHidden(r) {
			continue
		}
		if err := f.SetRowVisible(sheetName, r+1, false); err != nil {
			return &SheetError{Sheet: sheetName, Part: "visibility", Err: err}
		}
	}
	for c := 0; c < m.GetColumnCount(); c++ {
		if !m.IsColumnHidden(c) {
			continue
		}
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return &SheetError{Sheet: sheetName, Part: "visibility", Err: err}
		}
		if err := f.SetColVisible(sheetName, name, false); err != nil {
			return &SheetError{Sheet: sheetName, Part: "visibility", Err: err}
		}
	}
	return nil
}
