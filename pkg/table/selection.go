package table

// CellPos is a single cell position.
type CellPos struct {
	Row    int
	Column int
}

// Selection is a rectangular range plus an optional "initial" anchor
// marking where the selection began (e.g. where a drag started).
type Selection struct {
	Range   CellRange
	Initial *CellPos
}

// initialPos returns the selection's anchor, falling back to the range's
// top-left position.
func (s *Selection) initialPos() CellPos {
	if s.Initial != nil {
		return *s.Initial
	}
	return CellPos{Row: s.Range.StartRow, Column: s.Range.StartColumn}
}

// SelectionTransform is run on every candidate selection before it is
// accepted. It may rewrite the selection; returning false rejects it.
type SelectionTransform func(Selection) (Selection, bool)

// SelectionOptions configures a SelectionModel.
type SelectionOptions struct {
	// AllowMultiSelection permits more than one selection at a time. When
	// false, adding a selection replaces the existing one.
	AllowMultiSelection bool
	// AllowRangeSelection permits selections spanning more than one cell.
	// When false, candidate ranges collapse to their initial cell.
	AllowRangeSelection bool
	// Transform is an optional hook run on every candidate selection.
	Transform SelectionTransform
}

// DefaultSelectionOptions allows multi and range selection with no
// transform.
func DefaultSelectionOptions() SelectionOptions {
	return SelectionOptions{
		AllowMultiSelection: true,
		AllowRangeSelection: true,
	}
}

// SelectionModel owns an ordered list of selections over a CellModel. One
// selection is "primary" (the keyboard focus), tracked by an explicit
// index rather than list order. Entries are created, removed and modified
// by explicit calls only. Like the CellModel, it requires external
// serialization of mutating calls.
type SelectionModel struct {
	cells      *CellModel
	opts       SelectionOptions
	selections []*Selection
	primary    int
}

// NewSelectionModel creates an empty selection model over the given cells.
func NewSelectionModel(cells *CellModel, opts SelectionOptions) *SelectionModel {
	return &SelectionModel{
		cells:   cells,
		opts:    opts,
		primary: -1,
	}
}

// GetSelections returns the current selections in order.
func (m *SelectionModel) GetSelections() []*Selection {
	return m.selections
}

// GetPrimary returns the primary selection, or nil if there is none.
func (m *SelectionModel) GetPrimary() *Selection {
	if m.primary < 0 || m.primary >= len(m.selections) {
		return nil
	}
	return m.selections[m.primary]
}

// GetPrimaryIndex returns the index of the primary selection, -1 if none.
func (m *SelectionModel) GetPrimaryIndex() int {
	if m.primary < 0 || m.primary >= len(m.selections) {
		return -1
	}
	return m.primary
}

// SetPrimary makes the selection at the given index primary. Out-of-range
// indices are ignored.
func (m *SelectionModel) SetPrimary(index int) {
	if index >= 0 && index < len(m.selections) {
		m.primary = index
	}
}

// IsSelected reports whether any selection's range contains the position.
func (m *SelectionModel) IsSelected(row, column int) bool {
	for _, sel := range m.selections {
		if sel.Range.Contains(row, column) {
			return true
		}
	}
	return false
}

// AddSelection adds a selection to the model. With validate set, the range
// is grown minimally until it fully encloses every merged cell it
// partially touches. With subtract set and the candidate range lying fully
// inside an existing selection, that selection is replaced by the
// rectangle decomposition of its range minus the candidate instead of
// adding an overlapping entry. The added (or kept) selection becomes
// primary. Candidates rejected by the configured transform leave the model
// unchanged.
func (m *SelectionModel) AddSelection(sel *Selection, validate, subtract bool) {
	if sel == nil {
		return
	}

	if validate {
		sel.Range = m.validateRange(sel.Range)
	}
	if !m.opts.AllowRangeSelection {
		pos := sel.initialPos()
		sel.Range = SingleCellRange(pos.Row, pos.Column)
		sel.Initial = &pos
	}
	if m.opts.Transform != nil {
		transformed, ok := m.opts.Transform(*sel)
		if !ok {
			return
		}
		*sel = transformed
	}

	if !m.opts.AllowMultiSelection {
		m.selections = append(m.selections[:0], sel)
		m.primary = 0
		return
	}

	if subtract {
		for i, existing := range m.selections {
			if !existing.Range.ContainsRange(sel.Range) {
				continue
			}
			parts, _ := existing.Range.Subtract(sel.Range)
			replacement := make([]*Selection, 0, len(parts))
			for _, part := range parts {
				next := &Selection{Range: part}
				if existing.Initial != nil && part.Contains(existing.Initial.Row, existing.Initial.Column) {
					pos := *existing.Initial
					next.Initial = &pos
				}
				replacement = append(replacement, next)
			}

			tail := append([]*Selection{}, m.selections[i+1:]...)
			m.selections = append(append(m.selections[:i], replacement...), tail...)

			switch {
			case len(replacement) > 0:
				m.primary = i
			case len(m.selections) > 0:
				m.primary = minInt(i, len(m.selections)-1)
			default:
				m.primary = -1
			}
			return
		}
	}

	m.selections = append(m.selections, sel)
	m.primary = len(m.selections) - 1
}

// RemoveSelection removes the given selection from the model. Removing an
// unknown selection is a no-op. When the primary selection is removed, the
// last remaining selection becomes primary.
func (m *SelectionModel) RemoveSelection(sel *Selection) {
	for i, existing := range m.selections {
		if existing != sel {
			continue
		}
		m.selections = append(m.selections[:i], m.selections[i+1:]...)
		switch {
		case len(m.selections) == 0:
			m.primary = -1
		case i == m.primary || m.primary >= len(m.selections):
			m.primary = len(m.selections) - 1
		case i < m.primary:
			m.primary--
		}
		return
	}
}

// ModifySelection replaces the selection's range and anchor. With validate
// set, the range is grown to enclose partially touched merges first. An
// anchor outside the new range is reset to the range's top-left cell.
func (m *SelectionModel) ModifySelection(sel *Selection, rng CellRange, initial *CellPos, validate bool) {
	if sel == nil {
		return
	}
	if validate {
		rng = m.validateRange(rng)
	}
	sel.Range = rng
	sel.Initial = initial
	if initial != nil && !rng.Contains(initial.Row, initial.Column) {
		sel.Initial = &CellPos{Row: rng.StartRow, Column: rng.StartColumn}
	}
}

// validateRange grows the range repeatedly until it fully encloses every
// merged cell it partially touches, clamped to the grid.
func (m *SelectionModel) validateRange(rng CellRange) CellRange {
	clamped, ok := m.cells.clampRange(rng)
	if !ok {
		return rng
	}
	rng = clamped

	for {
		grown := rng
		for r := grown.StartRow; r <= grown.EndRow; r++ {
			for c := grown.StartColumn; c <= grown.EndColumn; c++ {
				cell := m.cells.GetCell(r, c, false)
				if cell != nil && !grown.ContainsRange(cell.Range) {
					grown = grown.Union(cell.Range)
				}
			}
		}
		if grown == rng {
			return rng
		}
		rng = grown
	}
}

// MoveSelection moves the selection one cell in the requested direction,
// or to the table boundary with jump set. The destination keeps the
// anchor's row for horizontal moves and its column for vertical moves;
// landing inside a merged cell selects the merge's full range with the
// anchor at the specific entry cell. Hidden rows and columns are skipped.
// A move that cannot proceed returns false and leaves the selection
// unchanged.
func (m *SelectionModel) MoveSelection(sel *Selection, deltaColumn, deltaRow int, jump bool) bool {
	if sel == nil || (deltaColumn == 0 && deltaRow == 0) {
		return false
	}

	anchor := sel.initialPos()
	row, column := anchor.Row, anchor.Column
	switch {
	case deltaColumn > 0:
		if jump {
			column = m.cells.FindPreviousVisibleColumn(m.cells.GetColumnCount() - 1)
		} else {
			column = m.cells.FindNextVisibleColumn(sel.Range.EndColumn + 1)
		}
	case deltaColumn < 0:
		if jump {
			column = m.cells.FindNextVisibleColumn(0)
		} else {
			column = m.cells.FindPreviousVisibleColumn(sel.Range.StartColumn - 1)
		}
	case deltaRow > 0:
		if jump {
			row = m.cells.FindPreviousVisibleRow(m.cells.GetRowCount() - 1)
		} else {
			row = m.cells.FindNextVisibleRow(sel.Range.EndRow + 1)
		}
	default:
		if jump {
			row = m.cells.FindNextVisibleRow(0)
		} else {
			row = m.cells.FindPreviousVisibleRow(sel.Range.StartRow - 1)
		}
	}
	if row < 0 || column < 0 {
		return false
	}

	newRange := SingleCellRange(row, column)
	if cell := m.cells.GetCell(row, column, false); cell != nil && !cell.Range.IsSingle() {
		newRange = cell.Range
	}
	newInitial := CellPos{Row: row, Column: column}

	if newRange == sel.Range && sel.Initial != nil && *sel.Initial == newInitial {
		return false
	}
	sel.Range = newRange
	sel.Initial = &newInitial
	return true
}

// ExtendSelection grows or shrinks the side of the range away from the
// anchor. A side that can shrink one step without crossing the anchor
// shrinks; otherwise the range grows one step (or to the boundary with
// jump) in the requested direction. Boundaries crossing a merged cell
// expand the range to fully enclose the merge. A no-op at the table
// boundary returns false.
func (m *SelectionModel) ExtendSelection(sel *Selection, deltaColumn, deltaRow int, jump bool) bool {
	if sel == nil || (deltaColumn == 0 && deltaRow == 0) {
		return false
	}

	anchor := sel.initialPos()
	anchorRange := SingleCellRange(anchor.Row, anchor.Column)
	if cell := m.cells.GetCell(anchor.Row, anchor.Column, false); cell != nil {
		anchorRange = cell.Range
	}

	rng := sel.Range
	switch {
	case deltaColumn > 0:
		if rng.StartColumn < anchorRange.StartColumn {
			next := anchorRange.StartColumn
			if !jump {
				if v := m.cells.FindNextVisibleColumn(rng.StartColumn + 1); v >= 0 && v < next {
					next = v
				}
			}
			rng.StartColumn = next
		} else {
			next := m.cells.FindNextVisibleColumn(rng.EndColumn + 1)
			if jump {
				next = m.cells.FindPreviousVisibleColumn(m.cells.GetColumnCount() - 1)
			}
			if next <= rng.EndColumn {
				return false
			}
			rng.EndColumn = next
		}
	case deltaColumn < 0:
		if rng.EndColumn > anchorRange.EndColumn {
			next := anchorRange.EndColumn
			if !jump {
				if v := m.cells.FindPreviousVisibleColumn(rng.EndColumn - 1); v > next {
					next = v
				}
			}
			rng.EndColumn = next
		} else {
			next := m.cells.FindPreviousVisibleColumn(rng.StartColumn - 1)
			if jump {
				next = m.cells.FindNextVisibleColumn(0)
			}
			if next < 0 || next >= rng.StartColumn {
				return false
			}
			rng.StartColumn = next
		}
	case deltaRow > 0:
		if rng.StartRow < anchorRange.StartRow {
			next := anchorRange.StartRow
			if !jump {
				if v := m.cells.FindNextVisibleRow(rng.StartRow + 1); v >= 0 && v < next {
					next = v
				}
			}
			rng.StartRow = next
		} else {
			next := m.cells.FindNextVisibleRow(rng.EndRow + 1)
			if jump {
				next = m.cells.FindPreviousVisibleRow(m.cells.GetRowCount() - 1)
			}
			if next <= rng.EndRow {
				return false
			}
			rng.EndRow = next
		}
	default:
		if rng.EndRow > anchorRange.EndRow {
			next := anchorRange.EndRow
			if !jump {
				if v := m.cells.FindPreviousVisibleRow(rng.EndRow - 1); v > next {
					next = v
				}
			}
			rng.EndRow = next
		} else {
			next := m.cells.FindPreviousVisibleRow(rng.StartRow - 1)
			if jump {
				next = m.cells.FindNextVisibleRow(0)
			}
			if next < 0 || next >= rng.StartRow {
				return false
			}
			rng.StartRow = next
		}
	}

	rng = m.validateRange(rng)
	if rng == sel.Range {
		return false
	}
	sel.Range = rng
	return true
}

// MoveInitial relocates the primary selection's anchor within its range,
// wrapping row-major for horizontal movement and column-major for
// vertical movement. When the movement would leave the range, the next
// (or previous) selection in the list becomes primary and the scan
// continues there. An anchor landing inside a merged cell snaps to the
// merge's top-left cell; positions covered by the anchor's current cell
// are skipped so a wide merge is crossed in one step.
func (m *SelectionModel) MoveInitial(deltaColumn, deltaRow int) {
	primary := m.GetPrimary()
	if primary == nil || (deltaColumn == 0 && deltaRow == 0) {
		return
	}

	pos := primary.initialPos()
	startCell := m.cells.GetCell(pos.Row, pos.Column, false)

	limit := 0
	for _, sel := range m.selections {
		limit += sel.Range.Size()
	}

	for step := 0; step < limit; step++ {
		pos = m.stepInitial(pos, deltaColumn, deltaRow)
		cell := m.cells.GetCell(pos.Row, pos.Column, false)
		if cell != nil && startCell != nil && cell == startCell {
			continue // still inside the cell the anchor came from
		}
		if cell != nil && !cell.Range.IsSingle() {
			pos = CellPos{Row: cell.Range.StartRow, Column: cell.Range.StartColumn}
		}
		m.GetPrimary().Initial = &pos
		return
	}
}

// stepInitial advances the anchor by one position in the scan direction,
// wrapping within the primary range and advancing the primary selection
// when the range is left entirely.
func (m *SelectionModel) stepInitial(pos CellPos, deltaColumn, deltaRow int) CellPos {
	rng := m.GetPrimary().Range
	switch {
	case deltaColumn > 0:
		pos.Column++
		if pos.Column > rng.EndColumn {
			pos.Column = rng.StartColumn
			pos.Row++
			if pos.Row > rng.EndRow {
				rng = m.advancePrimary(1)
				pos = CellPos{Row: rng.StartRow, Column: rng.StartColumn}
			}
		}
	case deltaColumn < 0:
		pos.Column--
		if pos.Column < rng.StartColumn {
			pos.Column = rng.EndColumn
			pos.Row--
			if pos.Row < rng.StartRow {
				rng = m.advancePrimary(-1)
				pos = CellPos{Row: rng.EndRow, Column: rng.EndColumn}
			}
		}
	case deltaRow > 0:
		pos.Row++
		if pos.Row > rng.EndRow {
			pos.Row = rng.StartRow
			pos.Column++
			if pos.Column > rng.EndColumn {
				rng = m.advancePrimary(1)
				pos = CellPos{Row: rng.StartRow, Column: rng.StartColumn}
			}
		}
	default:
		pos.Row--
		if pos.Row < rng.StartRow {
			pos.Row = rng.EndRow
			pos.Column--
			if pos.Column < rng.StartColumn {
				rng = m.advancePrimary(-1)
				pos = CellPos{Row: rng.EndRow, Column: rng.EndColumn}
			}
		}
	}
	return pos
}

// advancePrimary moves the primary index by one in the given direction,
// wrapping around the selection list, and returns the new primary range.
func (m *SelectionModel) advancePrimary(direction int) CellRange {
	n := len(m.selections)
	m.primary = ((m.primary+direction)%n + n) % n
	return m.selections[m.primary].Range
}
