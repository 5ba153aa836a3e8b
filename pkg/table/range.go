// Package table implements the stateful core of a spreadsheet-style grid:
// a sparse, merge-aware cell storage and geometry engine (CellModel), a
// multi-range selection engine (SelectionModel), and an edge-based border
// model with priority conflict resolution (BorderModel). Rendering and
// input capture are external collaborators that consume these models
// through their query and mutation methods.
package table

// CellRange is a rectangular cell region. All bounds are inclusive and
// 0-indexed; a single cell has StartRow == EndRow and
// StartColumn == EndColumn.
type CellRange struct {
	StartRow    int `json:"start_row"`
	EndRow      int `json:"end_row"`
	StartColumn int `json:"start_column"`
	EndColumn   int `json:"end_column"`
}

// SingleCellRange returns the range covering exactly one cell.
func SingleCellRange(row, column int) CellRange {
	return CellRange{StartRow: row, EndRow: row, StartColumn: column, EndColumn: column}
}

// NewCellRange returns the range spanning both corner points, normalizing
// the corner order.
func NewCellRange(row1, column1, row2, column2 int) CellRange {
	if row2 < row1 {
		row1, row2 = row2, row1
	}
	if column2 < column1 {
		column1, column2 = column2, column1
	}
	return CellRange{StartRow: row1, EndRow: row2, StartColumn: column1, EndColumn: column2}
}

// Rows returns the number of rows the range spans.
func (r CellRange) Rows() int {
	return r.EndRow - r.StartRow + 1
}

// Columns returns the number of columns the range spans.
func (r CellRange) Columns() int {
	return r.EndColumn - r.StartColumn + 1
}

// Size returns the number of cells the range covers.
func (r CellRange) Size() int {
	return r.Rows() * r.Columns()
}

// IsSingle reports whether the range covers exactly one cell.
func (r CellRange) IsSingle() bool {
	return r.StartRow == r.EndRow && r.StartColumn == r.EndColumn
}

// Contains reports whether the given position lies within the range.
func (r CellRange) Contains(row, column int) bool {
	return row >= r.StartRow && row <= r.EndRow &&
		column >= r.StartColumn && column <= r.EndColumn
}

// ContainsRange reports whether other lies fully within the range.
func (r CellRange) ContainsRange(other CellRange) bool {
	return other.StartRow >= r.StartRow && other.EndRow <= r.EndRow &&
		other.StartColumn >= r.StartColumn && other.EndColumn <= r.EndColumn
}

// Overlaps reports whether the two ranges share at least one cell.
func (r CellRange) Overlaps(other CellRange) bool {
	return r.StartRow <= other.EndRow && r.EndRow >= other.StartRow &&
		r.StartColumn <= other.EndColumn && r.EndColumn >= other.StartColumn
}

// Intersect returns the overlapping region of both ranges.
// The second return value is false when the ranges do not overlap.
func (r CellRange) Intersect(other CellRange) (CellRange, bool) {
	if !r.Overlaps(other) {
		return CellRange{}, false
	}
	return CellRange{
		StartRow:    maxInt(r.StartRow, other.StartRow),
		EndRow:      minInt(r.EndRow, other.EndRow),
		StartColumn: maxInt(r.StartColumn, other.StartColumn),
		EndColumn:   minInt(r.EndColumn, other.EndColumn),
	}, true
}

// Union returns the smallest range enclosing both ranges.
func (r CellRange) Union(other CellRange) CellRange {
	return CellRange{
		StartRow:    minInt(r.StartRow, other.StartRow),
		EndRow:      maxInt(r.EndRow, other.EndRow),
		StartColumn: minInt(r.StartColumn, other.StartColumn),
		EndColumn:   maxInt(r.EndColumn, other.EndColumn),
	}
}

// Subtract decomposes the range minus inner into up to four disjoint
// rectangles: a top strip and bottom strip at the range's full width, and
// a left and right strip limited to the rows spanned by inner. Strips with
// zero extent are omitted; the surviving strips tile the range minus inner
// exactly. The second return value is false when inner is not fully
// contained in the range, in which case no decomposition takes place.
func (r CellRange) Subtract(inner CellRange) ([]CellRange, bool) {
	if !r.ContainsRange(inner) {
		return nil, false
	}

	var parts []CellRange
	if inner.StartRow > r.StartRow {
		parts = append(parts, CellRange{
			StartRow:    r.StartRow,
			EndRow:      inner.StartRow - 1,
			StartColumn: r.StartColumn,
			EndColumn:   r.EndColumn,
		})
	}
	if inner.EndRow < r.EndRow {
		parts = append(parts, CellRange{
			StartRow:    inner.EndRow + 1,
			EndRow:      r.EndRow,
			StartColumn: r.StartColumn,
			EndColumn:   r.EndColumn,
		})
	}
	if inner.StartColumn > r.StartColumn {
		parts = append(parts, CellRange{
			StartRow:    inner.StartRow,
			EndRow:      inner.EndRow,
			StartColumn: r.StartColumn,
			EndColumn:   inner.StartColumn - 1,
		})
	}
	if inner.EndColumn < r.EndColumn {
		parts = append(parts, CellRange{
			StartRow:    inner.StartRow,
			EndRow:      inner.EndRow,
			StartColumn: inner.EndColumn + 1,
			EndColumn:   r.EndColumn,
		})
	}

	return parts, true
}

// Xor returns the symmetric difference of both ranges as a list of
// disjoint rectangles. Non-overlapping ranges are returned unchanged.
func (r CellRange) Xor(other CellRange) []CellRange {
	overlap, ok := r.Intersect(other)
	if !ok {
		return []CellRange{r, other}
	}

	var parts []CellRange
	if p, ok := r.Subtract(overlap); ok {
		parts = append(parts, p...)
	}
	if p, ok := other.Subtract(overlap); ok {
		parts = append(parts, p...)
	}
	return parts
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
