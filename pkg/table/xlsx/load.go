package xlsx

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/bennyboer/table-engine-sub001/pkg/table"
)

// Load opens the workbook at path and builds a CellModel from the given
// sheet. An empty sheet name selects the workbook's first sheet.
func Load(path, sheetName string, opts LoadOptions) (*table.CellModel, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return FromFile(f, sheetName, opts)
}

// FromFile builds a CellModel from an already opened workbook.
func FromFile(f *excelize.File, sheetName string, opts LoadOptions) (*table.CellModel, error) {
	sheetName, err := resolveSheet(f, sheetName)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &SheetError{Sheet: sheetName, Part: "cells", Err: err}
	}

	rowCount := len(rows)
	columnCount := 0
	for _, row := range rows {
		if len(row) > columnCount {
			columnCount = len(row)
		}
	}

	entries := make(map[table.CellPos]*table.Cell)
	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			entries[table.CellPos{Row: r, Column: c}] = &table.Cell{
				Range:    table.SingleCellRange(r, c),
				Renderer: opts.RendererName(),
				Value:    parseValue(value),
			}
		}
	}

	rowCount, columnCount = applyMerges(f, sheetName, opts, entries, rowCount, columnCount)

	if opts.ShouldIncludeBorders() {
		loadBorders(f, sheetName, entries)
	}

	cells := make([]*table.Cell, 0, len(entries))
	for _, cell := range entries {
		cells = append(cells, cell)
	}

	var rowSize, columnSize table.SizeSupplier
	if opts.ShouldIncludeSizes() {
		heights := make([]float64, rowCount)
		for r := 0; r < rowCount; r++ {
			height, err := f.GetRowHeight(sheetName, r+1)
			if err != nil {
				log.Warn().Err(err).Str("sheet", sheetName).Int("row", r).
					Msg("reading row height failed, using default")
				heights[r] = table.DefaultRowSize
				continue
			}
			heights[r] = RowHeightToPixels(height)
		}
		widths := make([]float64, columnCount)
		for c := 0; c < columnCount; c++ {
			name, _ := excelize.ColumnNumberToName(c + 1)
			width, err := f.GetColWidth(sheetName, name)
			if err != nil {
				log.Warn().Err(err).Str("sheet", sheetName).Int("column", c).
					Msg("reading column width failed, using default")
				widths[c] = table.DefaultColumnSize
				continue
			}
			widths[c] = ColumnWidthToPixels(width)
		}
		rowSize = func(index int) float64 {
			if index < len(heights) {
				return heights[index]
			}
			return table.DefaultRowSize
		}
		columnSize = func(index int) float64 {
			if index < len(widths) {
				return widths[index]
			}
			return table.DefaultColumnSize
		}
	}

	var hiddenRows, hiddenColumns []int
	if opts.ShouldIncludeHidden() {
		for r := 0; r < rowCount; r++ {
			visible, err := f.GetRowVisible(sheetName, r+1)
			if err == nil && !visible {
				hiddenRows = append(hiddenRows, r)
			}
		}
		for c := 0; c < columnCount; c++ {
			name, _ := excelize.ColumnNumberToName(c + 1)
			visible, err := f.GetColVisible(sheetName, name)
			if err == nil && !visible {
				hiddenColumns = append(hiddenColumns, c)
			}
		}
	}

	return table.Generate(cells, nil, nil, rowSize, columnSize, hiddenRows, hiddenColumns), nil
}

func resolveSheet(f *excelize.File, sheetName string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrNoSheet
	}
	if sheetName == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == sheetName {
			return sheetName, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSheetNotFound, sheetName)
}

// applyMerges expands entry ranges per the sheet's merged cells, dropping
// single entries swallowed by a merge. Returns the possibly grown counts.
func applyMerges(
	f *excelize.File, sheetName string, opts LoadOptions,
	entries map[table.CellPos]*table.Cell, rowCount, columnCount int,
) (int, int) {
	merges, err := f.GetMergeCells(sheetName)
	if err != nil {
		log.Warn().Err(err).Str("sheet", sheetName).
			Msg("reading merged cells failed, continuing without merges")
		return rowCount, columnCount
	}

	for _, merge := range merges {
		startColumn, startRow, err := excelize.CellNameToCoordinates(merge.GetStartAxis())
		if err != nil {
			log.Warn().Err(err).Str("sheet", sheetName).Str("axis", merge.GetStartAxis()).
				Msg("skipping merged cell with unparsable start")
			continue
		}
		endColumn, endRow, err := excelize.CellNameToCoordinates(merge.GetEndAxis())
		if err != nil {
			log.Warn().Err(err).Str("sheet", sheetName).Str("axis", merge.GetEndAxis()).
				Msg("skipping merged cell with unparsable end")
			continue
		}

		rng := table.NewCellRange(startRow-1, startColumn-1, endRow-1, endColumn-1)
		if rng.EndRow+1 > rowCount {
			rowCount = rng.EndRow + 1
		}
		if rng.EndColumn+1 > columnCount {
			columnCount = rng.EndColumn + 1
		}

		anchorPos := table.CellPos{Row: rng.StartRow, Column: rng.StartColumn}
		anchor := entries[anchorPos]
		if anchor == nil {
			anchor = &table.Cell{Renderer: opts.RendererName()}
			if value := merge.GetCellValue(); value != "" {
				anchor.Value = parseValue(value)
			}
			entries[anchorPos] = anchor
		}
		anchor.Range = rng

		for r := rng.StartRow; r <= rng.EndRow; r++ {
			for c := rng.StartColumn; c <= rng.EndColumn; c++ {
				if r == rng.StartRow && c == rng.StartColumn {
					continue
				}
				delete(entries, table.CellPos{Row: r, Column: c})
			}
		}
	}
	return rowCount, columnCount
}

// loadBorders reads the border part of each entry's cell style.
func loadBorders(f *excelize.File, sheetName string, entries map[table.CellPos]*table.Cell) {
	for pos, cell := range entries {
		name, err := excelize.CoordinatesToCellName(pos.Column+1, pos.Row+1)
		if err != nil {
			continue
		}
		styleID, err := f.GetCellStyle(sheetName, name)
		if err != nil {
			log.Warn().Err(err).Str("sheet", sheetName).Str("cell", name).
				Msg("reading cell style failed, skipping borders")
			continue
		}
		style, err := f.GetStyle(styleID)
		if err != nil || style == nil {
			continue
		}

		border := &table.Border{}
		for _, def := range style.Border {
			mapped, ok := borderStyleFromExcel[def.Style]
			if !ok {
				continue
			}
			side := &table.BorderSide{
				Style: mapped.style,
				Size:  mapped.size,
				Color: parseHexColor(def.Color),
			}
			switch def.Type {
			case "top":
				border.Top = side
			case "bottom":
				border.Bottom = side
			case "left":
				border.Left = side
			case "right":
				border.Right = side
			}
		}
		if !border.IsEmpty() {
			cell.Border = border
		}
	}
}

// parseValue attempts to parse a cell string as a number. Returns int64
// for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
