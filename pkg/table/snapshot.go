package table

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Snapshot returns an independent deep copy of the model, suitable for the
// externally layered undo described in the package documentation. Cell
// values are deep-copied with go-deepcopy since they are arbitrary object
// graphs; the lookup aliasing of merged cells is rebuilt so that the copy
// preserves the one-object-per-merge invariant. Change listeners are not
// carried over.
func (m *CellModel) Snapshot() (*CellModel, error) {
	out := &CellModel{
		rowSizes:      append([]float64{}, m.rowSizes...),
		columnSizes:   append([]float64{}, m.columnSizes...),
		rowOffsets:    append([]float64{}, m.rowOffsets...),
		columnOffsets: append([]float64{}, m.columnOffsets...),
		hiddenRows:    make(map[int]struct{}, len(m.hiddenRows)),
		hiddenColumns: make(map[int]struct{}, len(m.hiddenColumns)),
		emptyValue:    m.emptyValue,
		emptyRenderer: m.emptyRenderer,
	}
	for idx := range m.hiddenRows {
		out.hiddenRows[idx] = struct{}{}
	}
	for idx := range m.hiddenColumns {
		out.hiddenColumns[idx] = struct{}{}
	}

	out.lookup = make([][]*Cell, len(m.lookup))
	for r := range m.lookup {
		out.lookup[r] = make([]*Cell, len(m.lookup[r]))
	}

	for _, cell := range m.uniqueCells() {
		copied := &Cell{
			Range:    cell.Range,
			Renderer: cell.Renderer,
			Border:   cell.Border.clone(),
		}
		if cell.Value != nil {
			var value any
			if err := deepcopy.Copy(&value, cell.Value); err != nil {
				return nil, fmt.Errorf("snapshot cell value at row %d, column %d: %w",
					cell.Range.StartRow, cell.Range.StartColumn, err)
			}
			copied.Value = value
		}
		out.writeRange(copied)
	}

	return out, nil
}
