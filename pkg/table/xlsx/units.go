// Package xlsx bridges CellModels to .xlsx workbooks via excelize: Load
// builds a model from a workbook sheet (values, merges, row and column
// sizes, hidden flags), Save writes a model back including cell borders.
package xlsx

import "math"

// Excel stores column widths in character units of the workbook's default
// font and row heights in points; the grid engine works in pixels at
// 96 DPI.
const (
	// PixelsPerCharUnit approximates the pixel width of one column-width
	// character unit for the default Calibri 11 font.
	PixelsPerCharUnit = 7.0
	// ColumnPaddingPixels is the fixed padding Excel adds to each column.
	ColumnPaddingPixels = 5.0
	// PixelsPerPoint converts points to pixels at 96 DPI (96/72).
	PixelsPerPoint = 96.0 / 72.0
)

// ColumnWidthToPixels converts an Excel column width to pixels.
func ColumnWidthToPixels(width float64) float64 {
	return math.Round(width*PixelsPerCharUnit + ColumnPaddingPixels)
}

// PixelsToColumnWidth converts pixels back to an Excel column width.
func PixelsToColumnWidth(pixels float64) float64 {
	width := (pixels - ColumnPaddingPixels) / PixelsPerCharUnit
	if width < 0 {
		return 0
	}
	return width
}

// RowHeightToPixels converts a row height in points to pixels.
func RowHeightToPixels(points float64) float64 {
	return math.Round(points * PixelsPerPoint)
}

// PixelsToRowHeight converts pixels back to a row height in points.
func PixelsToRowHeight(pixels float64) float64 {
	if pixels < 0 {
		return 0
	}
	return pixels / PixelsPerPoint
}
