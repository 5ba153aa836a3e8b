package table

import "sort"

// Default sizes in pixels, used when no size supplier is given and as the
// fallback for inserts into an empty axis.
const (
	DefaultRowSize    = 25.0
	DefaultColumnSize = 100.0
)

// ValueSupplier yields the value for an otherwise empty cell position.
// Returning nil means the position has no value.
type ValueSupplier func(row, column int) any

// RendererSupplier yields the renderer name for an otherwise empty cell
// position. Returning "" means the position has no renderer of its own.
type RendererSupplier func(row, column int) string

// SizeSupplier yields the size in pixels for a row or column index.
type SizeSupplier func(index int) float64

// CellInitializer yields cells for positions created by an insert.
// Returning nil leaves the position empty.
type CellInitializer func(row, column int) *Cell

// Rect is an axis-aligned pixel rectangle in grid coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// CellModel owns the grid: the cell lookup matrix, row and column sizes,
// pixel offsets and hidden sets. An empty lookup position is a nil *Cell;
// every position covered by a merged cell references the identical Cell.
//
// The model is not safe for concurrent mutation; callers must serialize
// all calls externally (a single UI event loop).
type CellModel struct {
	lookup [][]*Cell

	rowSizes    []float64
	columnSizes []float64

	// offsets[i] is the pixel offset at which index i starts. Hidden
	// indices contribute nothing, so their entry equals the next one.
	rowOffsets    []float64
	columnOffsets []float64

	hiddenRows    map[int]struct{}
	hiddenColumns map[int]struct{}

	emptyValue    ValueSupplier
	emptyRenderer RendererSupplier

	stream changeStream
}

// Generate builds a CellModel from an explicit cell list. Row and column
// counts derive from the largest end indices over the given cells. Every
// position of each given cell's range references that cell; for any
// position left unfilled a synthetic single-cell entry is created only if
// the empty-cell suppliers yield a usable value or renderer name,
// otherwise the position stays empty.
//
// Suppliers may be nil: sizes then fall back to DefaultRowSize and
// DefaultColumnSize, and unfilled positions stay empty.
func Generate(
	cells []*Cell,
	emptyValue ValueSupplier,
	emptyRenderer RendererSupplier,
	rowSize SizeSupplier,
	columnSize SizeSupplier,
	hiddenRows []int,
	hiddenColumns []int,
) *CellModel {
	rowCount := 0
	columnCount := 0
	for _, cell := range cells {
		if cell.Range.EndRow+1 > rowCount {
			rowCount = cell.Range.EndRow + 1
		}
		if cell.Range.EndColumn+1 > columnCount {
			columnCount = cell.Range.EndColumn + 1
		}
	}

	m := &CellModel{
		rowSizes:      make([]float64, rowCount),
		columnSizes:   make([]float64, columnCount),
		hiddenRows:    make(map[int]struct{}),
		hiddenColumns: make(map[int]struct{}),
		emptyValue:    emptyValue,
		emptyRenderer: emptyRenderer,
	}

	for i := 0; i < rowCount; i++ {
		if rowSize != nil {
			m.rowSizes[i] = rowSize(i)
		} else {
			m.rowSizes[i] = DefaultRowSize
		}
	}
	for i := 0; i < columnCount; i++ {
		if columnSize != nil {
			m.columnSizes[i] = columnSize(i)
		} else {
			m.columnSizes[i] = DefaultColumnSize
		}
	}

	for _, idx := range hiddenRows {
		if idx >= 0 && idx < rowCount {
			m.hiddenRows[idx] = struct{}{}
		}
	}
	for _, idx := range hiddenColumns {
		if idx >= 0 && idx < columnCount {
			m.hiddenColumns[idx] = struct{}{}
		}
	}

	m.lookup = make([][]*Cell, rowCount)
	for r := range m.lookup {
		m.lookup[r] = make([]*Cell, columnCount)
	}
	for _, cell := range cells {
		m.writeRange(cell)
	}

	// Fill remaining positions only where the suppliers produce something;
	// absence is encoded as nil, not as an empty object.
	for r := 0; r < rowCount; r++ {
		for c := 0; c < columnCount; c++ {
			if m.lookup[r][c] != nil {
				continue
			}
			if cell := m.synthesizeCell(r, c); cell != nil {
				m.lookup[r][c] = cell
			}
		}
	}

	m.recomputeRowOffsets()
	m.recomputeColumnOffsets()
	return m
}

// synthesizeCell builds a single-cell entry from the empty-cell suppliers,
// or nil when they yield neither a value nor a renderer name.
func (m *CellModel) synthesizeCell(row, column int) *Cell {
	var value any
	if m.emptyValue != nil {
		value = m.emptyValue(row, column)
	}
	renderer := ""
	if m.emptyRenderer != nil {
		renderer = m.emptyRenderer(row, column)
	}
	if value == nil && renderer == "" {
		return nil
	}
	return &Cell{
		Range:    SingleCellRange(row, column),
		Renderer: renderer,
		Value:    value,
	}
}

// writeRange writes the cell reference into every lookup position of its
// range. Positions outside the current matrix are ignored.
func (m *CellModel) writeRange(cell *Cell) {
	for r := cell.Range.StartRow; r <= cell.Range.EndRow; r++ {
		if r < 0 || r >= len(m.lookup) {
			continue
		}
		for c := cell.Range.StartColumn; c <= cell.Range.EndColumn; c++ {
			if c < 0 || c >= len(m.lookup[r]) {
				continue
			}
			m.lookup[r][c] = cell
		}
	}
}

// clearRange empties every lookup position of the given range.
func (m *CellModel) clearRange(rng CellRange) {
	for r := rng.StartRow; r <= rng.EndRow; r++ {
		if r < 0 || r >= len(m.lookup) {
			continue
		}
		for c := rng.StartColumn; c <= rng.EndColumn; c++ {
			if c < 0 || c >= len(m.lookup[r]) {
				continue
			}
			m.lookup[r][c] = nil
		}
	}
}

// uniqueCells returns every distinct cell in the lookup matrix.
func (m *CellModel) uniqueCells() []*Cell {
	var cells []*Cell
	seen := make(map[*Cell]struct{})
	for r := range m.lookup {
		for _, cell := range m.lookup[r] {
			if cell == nil {
				continue
			}
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}
			cells = append(cells, cell)
		}
	}
	return cells
}

func (m *CellModel) recomputeRowOffsets() {
	m.rowOffsets = recomputeOffsets(m.rowSizes, m.hiddenRows)
}

func (m *CellModel) recomputeColumnOffsets() {
	m.columnOffsets = recomputeOffsets(m.columnSizes, m.hiddenColumns)
}

// recomputeOffsets builds the prefix sums of sizes, skipping hidden
// indices' contribution. The size value of a hidden index is retained for
// later un-hiding; only its share of the offsets is dropped.
func recomputeOffsets(sizes []float64, hidden map[int]struct{}) []float64 {
	offsets := make([]float64, len(sizes))
	sum := 0.0
	for i, size := range sizes {
		offsets[i] = sum
		if _, ok := hidden[i]; !ok {
			sum += size
		}
	}
	return offsets
}

// GetRowCount returns the number of rows, hidden rows included.
func (m *CellModel) GetRowCount() int {
	return len(m.rowSizes)
}

// GetColumnCount returns the number of columns, hidden columns included.
func (m *CellModel) GetColumnCount() int {
	return len(m.columnSizes)
}

// GetWidth returns the total width in pixels of all visible columns.
func (m *CellModel) GetWidth() float64 {
	n := len(m.columnSizes)
	if n == 0 {
		return 0
	}
	return m.columnOffsets[n-1] + m.visibleColumnSize(n-1)
}

// GetHeight returns the total height in pixels of all visible rows.
func (m *CellModel) GetHeight() float64 {
	n := len(m.rowSizes)
	if n == 0 {
		return 0
	}
	return m.rowOffsets[n-1] + m.visibleRowSize(n-1)
}

// GetRowSize returns the size of the row, whether hidden or not.
func (m *CellModel) GetRowSize(row int) float64 {
	if row < 0 || row >= len(m.rowSizes) {
		return 0
	}
	return m.rowSizes[row]
}

// GetColumnSize returns the size of the column, whether hidden or not.
func (m *CellModel) GetColumnSize(column int) float64 {
	if column < 0 || column >= len(m.columnSizes) {
		return 0
	}
	return m.columnSizes[column]
}

// visibleRowSize is the row's pixel contribution, 0 when hidden.
func (m *CellModel) visibleRowSize(row int) float64 {
	if m.IsRowHidden(row) {
		return 0
	}
	return m.rowSizes[row]
}

func (m *CellModel) visibleColumnSize(column int) float64 {
	if m.IsColumnHidden(column) {
		return 0
	}
	return m.columnSizes[column]
}

// IsRowHidden reports whether the row is hidden.
func (m *CellModel) IsRowHidden(row int) bool {
	_, ok := m.hiddenRows[row]
	return ok
}

// IsColumnHidden reports whether the column is hidden.
func (m *CellModel) IsColumnHidden(column int) bool {
	_, ok := m.hiddenColumns[column]
	return ok
}

// FindNextVisibleRow returns the first visible row at or after the given
// index, or -1 if there is none.
func (m *CellModel) FindNextVisibleRow(from int) int {
	return findVisible(from, len(m.rowSizes), 1, m.hiddenRows)
}

// FindPreviousVisibleRow returns the last visible row at or before the
// given index, or -1 if there is none.
func (m *CellModel) FindPreviousVisibleRow(from int) int {
	return findVisible(from, len(m.rowSizes), -1, m.hiddenRows)
}

// FindNextVisibleColumn returns the first visible column at or after the
// given index, or -1 if there is none.
func (m *CellModel) FindNextVisibleColumn(from int) int {
	return findVisible(from, len(m.columnSizes), 1, m.hiddenColumns)
}

// FindPreviousVisibleColumn returns the last visible column at or before
// the given index, or -1 if there is none.
func (m *CellModel) FindPreviousVisibleColumn(from int) int {
	return findVisible(from, len(m.columnSizes), -1, m.hiddenColumns)
}

func findVisible(from, count, step int, hidden map[int]struct{}) int {
	for i := from; i >= 0 && i < count; i += step {
		if _, ok := hidden[i]; !ok {
			return i
		}
	}
	return -1
}

// GetCell returns the cell at the given position, or nil when the position
// is empty or out of range. With fill set, an empty in-range position is
// materialized as a default single-cell entry, stored and returned.
func (m *CellModel) GetCell(row, column int, fill bool) *Cell {
	if row < 0 || row >= len(m.lookup) || column < 0 || column >= len(m.columnSizes) {
		return nil
	}
	cell := m.lookup[row][column]
	if cell == nil && fill {
		cell = m.synthesizeCell(row, column)
		if cell == nil {
			cell = &Cell{Range: SingleCellRange(row, column)}
		}
		m.lookup[row][column] = cell
	}
	return cell
}

// GetCells returns every distinct cell within the range, skipping hidden
// rows and columns. A merged cell appears once even when it covers several
// positions of the range. The range is clamped to the matrix bounds.
func (m *CellModel) GetCells(rng CellRange) []*Cell {
	rng, ok := m.clampRange(rng)
	if !ok {
		return nil
	}

	var cells []*Cell
	visited := make(map[*Cell]struct{})
	for r := rng.StartRow; r <= rng.EndRow; r++ {
		if m.IsRowHidden(r) {
			continue
		}
		for c := rng.StartColumn; c <= rng.EndColumn; c++ {
			if m.IsColumnHidden(c) {
				continue
			}
			cell := m.lookup[r][c]
			if cell == nil {
				continue
			}
			if _, ok := visited[cell]; ok {
				continue
			}
			visited[cell] = struct{}{}
			cells = append(cells, cell)
		}
	}
	return cells
}

// GetCellsForRect returns every distinct cell intersecting the given pixel
// rectangle. It panics when the model has zero rows or columns.
func (m *CellModel) GetCellsForRect(rect Rect) []*Cell {
	return m.GetCells(m.rangeForRect(rect))
}

// GetRange returns the range covering the whole grid.
func (m *CellModel) GetRange() CellRange {
	return CellRange{
		StartRow:    0,
		EndRow:      maxInt(len(m.rowSizes)-1, 0),
		StartColumn: 0,
		EndColumn:   maxInt(len(m.columnSizes)-1, 0),
	}
}

func (m *CellModel) rangeForRect(rect Rect) CellRange {
	return CellRange{
		StartRow:    m.GetRowAtOffset(rect.Top),
		EndRow:      m.GetRowAtOffset(rect.Top + rect.Height),
		StartColumn: m.GetColumnAtOffset(rect.Left),
		EndColumn:   m.GetColumnAtOffset(rect.Left + rect.Width),
	}
}

func (m *CellModel) clampRange(rng CellRange) (CellRange, bool) {
	if len(m.rowSizes) == 0 || len(m.columnSizes) == 0 {
		return CellRange{}, false
	}
	rng.StartRow = maxInt(rng.StartRow, 0)
	rng.StartColumn = maxInt(rng.StartColumn, 0)
	rng.EndRow = minInt(rng.EndRow, len(m.rowSizes)-1)
	rng.EndColumn = minInt(rng.EndColumn, len(m.columnSizes)-1)
	if rng.StartRow > rng.EndRow || rng.StartColumn > rng.EndColumn {
		return CellRange{}, false
	}
	return rng, true
}

// GetRowAtOffset resolves the row containing the given vertical pixel
// offset. Out-of-range offsets clamp to the first or last row. It panics
// when the model has zero rows.
func (m *CellModel) GetRowAtOffset(y float64) int {
	if len(m.rowSizes) == 0 {
		panic("table: cannot resolve offset in a model without rows")
	}
	return resolveIndexAtOffset(y, m.rowOffsets, m.rowSizes, m.hiddenRows)
}

// GetColumnAtOffset resolves the column containing the given horizontal
// pixel offset. Out-of-range offsets clamp to the first or last column. It
// panics when the model has zero columns.
func (m *CellModel) GetColumnAtOffset(x float64) int {
	if len(m.columnSizes) == 0 {
		panic("table: cannot resolve offset in a model without columns")
	}
	return resolveIndexAtOffset(x, m.columnOffsets, m.columnSizes, m.hiddenColumns)
}

// GetCellAtOffset returns the cell at the given pixel position, resolving
// the row and column via the offset arrays. The fill flag behaves as in
// GetCell. It panics when the model has zero rows or columns.
func (m *CellModel) GetCellAtOffset(x, y float64, fill bool) *Cell {
	row := m.GetRowAtOffset(y)
	column := m.GetColumnAtOffset(x)
	return m.GetCell(row, column, fill)
}

// resolveIndexAtOffset starts from a linear guess assuming uniform sizes
// and walks the offsets array until the bracketing interval contains the
// target offset.
func resolveIndexAtOffset(offset float64, offsets []float64, sizes []float64, hidden map[int]struct{}) int {
	n := len(offsets)
	last := n - 1
	if offset <= 0 {
		return 0
	}

	total := offsets[last]
	if _, ok := hidden[last]; !ok {
		total += sizes[last]
	}
	if offset >= total {
		return last
	}

	guess := 0
	if total > 0 {
		guess = int(offset / (total / float64(n)))
		if guess > last {
			guess = last
		}
	}

	for guess > 0 && offsets[guess] > offset {
		guess--
	}
	for guess < last && offsets[guess+1] <= offset {
		guess++
	}
	return guess
}

// GetBounds returns the pixel rectangle of the given range. Hidden rows
// and columns contribute no extent. The range is clamped to the matrix.
func (m *CellModel) GetBounds(rng CellRange) Rect {
	rng, ok := m.clampRange(rng)
	if !ok {
		return Rect{}
	}
	top := m.rowOffsets[rng.StartRow]
	left := m.columnOffsets[rng.StartColumn]
	return Rect{
		Left:   left,
		Top:    top,
		Width:  m.columnOffsets[rng.EndColumn] + m.visibleColumnSize(rng.EndColumn) - left,
		Height: m.rowOffsets[rng.EndRow] + m.visibleRowSize(rng.EndRow) - top,
	}
}

// ResizeRows sets the size of the given rows and shifts all later offsets
// accordingly in a single pass. Hidden rows keep the new size but do not
// move any offsets until shown again.
func (m *CellModel) ResizeRows(indices []int, size float64) {
	if m.resizeAxis(indices, size, m.rowSizes, m.rowOffsets, m.hiddenRows) {
		m.stream.publish(Change{Kind: ChangeResize, Axis: AxisRow, Range: axisRange(indices, AxisRow, m)})
	}
}

// ResizeColumns sets the size of the given columns, see ResizeRows.
func (m *CellModel) ResizeColumns(indices []int, size float64) {
	if m.resizeAxis(indices, size, m.columnSizes, m.columnOffsets, m.hiddenColumns) {
		m.stream.publish(Change{Kind: ChangeResize, Axis: AxisColumn, Range: axisRange(indices, AxisColumn, m)})
	}
}

func (m *CellModel) resizeAxis(indices []int, size float64, sizes, offsets []float64, hidden map[int]struct{}) bool {
	targets := normalizeIndices(indices, len(sizes))
	if len(targets) == 0 {
		return false
	}

	delta := 0.0
	j := 0
	for i := targets[0]; i < len(sizes); i++ {
		offsets[i] += delta
		if j < len(targets) && targets[j] == i {
			if _, ok := hidden[i]; !ok {
				delta += size - sizes[i]
			}
			sizes[i] = size
			j++
		}
	}
	return true
}

// normalizeIndices sorts ascending, deduplicates and drops out-of-range
// entries.
func normalizeIndices(indices []int, count int) []int {
	targets := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < count {
			targets = append(targets, idx)
		}
	}
	sort.Ints(targets)
	out := targets[:0]
	for i, idx := range targets {
		if i == 0 || targets[i-1] != idx {
			out = append(out, idx)
		}
	}
	return out
}

func axisRange(indices []int, axis Axis, m *CellModel) CellRange {
	lo, hi := -1, -1
	for _, idx := range indices {
		if lo < 0 || idx < lo {
			lo = idx
		}
		if idx > hi {
			hi = idx
		}
	}
	if lo < 0 {
		lo, hi = 0, 0
	}
	if axis == AxisRow {
		return CellRange{StartRow: lo, EndRow: hi, StartColumn: 0, EndColumn: maxInt(m.GetColumnCount()-1, 0)}
	}
	return CellRange{StartRow: 0, EndRow: maxInt(m.GetRowCount()-1, 0), StartColumn: lo, EndColumn: hi}
}

// InsertRows inserts count rows before the given index. Merged cells
// straddling the insertion boundary are split first and re-merged over
// their expanded range afterwards, so the merge grows with the insert. The
// new rows take the neighboring row's size. The optional initializer is
// asked for a cell at every new position.
func (m *CellModel) InsertRows(beforeIndex, count int, init CellInitializer) {
	rows := len(m.rowSizes)
	if count <= 0 || beforeIndex < 0 || beforeIndex > rows {
		return
	}
	columns := len(m.columnSizes)

	// Merged cells crossing the boundary are detached up front.
	var straddlers []*Cell
	if beforeIndex > 0 && beforeIndex < rows {
		seen := make(map[*Cell]struct{})
		for c := 0; c < columns; c++ {
			cell := m.lookup[beforeIndex][c]
			if cell == nil || cell.Range.StartRow >= beforeIndex {
				continue
			}
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}
			straddlers = append(straddlers, cell)
		}
		for _, cell := range straddlers {
			m.clearRange(cell.Range)
		}
	}

	size := DefaultRowSize
	if beforeIndex > 0 {
		size = m.rowSizes[beforeIndex-1]
	} else if rows > 0 {
		size = m.rowSizes[0]
	}

	m.rowSizes = spliceFloats(m.rowSizes, beforeIndex, count, size)

	newRows := make([][]*Cell, count)
	for i := range newRows {
		newRows[i] = make([]*Cell, columns)
	}
	tail := append([][]*Cell{}, m.lookup[beforeIndex:]...)
	m.lookup = append(append(m.lookup[:beforeIndex], newRows...), tail...)

	m.hiddenRows = shiftHidden(m.hiddenRows, beforeIndex, count)

	for _, cell := range m.uniqueCells() {
		if cell.Range.StartRow >= beforeIndex {
			cell.Range.StartRow += count
			cell.Range.EndRow += count
		}
	}

	if init != nil {
		for r := beforeIndex; r < beforeIndex+count; r++ {
			for c := 0; c < columns; c++ {
				if cell := init(r, c); cell != nil {
					cell.Range = SingleCellRange(r, c)
					m.lookup[r][c] = cell
				}
			}
		}
	}

	for _, cell := range straddlers {
		cell.Range.EndRow += count
		m.writeRange(cell)
	}

	m.recomputeRowOffsets()
	m.stream.publish(Change{
		Kind:  ChangeInsert,
		Axis:  AxisRow,
		Range: CellRange{StartRow: beforeIndex, EndRow: beforeIndex + count - 1, StartColumn: 0, EndColumn: maxInt(columns-1, 0)},
	})
}

// InsertColumns inserts count columns before the given index, see
// InsertRows.
func (m *CellModel) InsertColumns(beforeIndex, count int, init CellInitializer) {
	columns := len(m.columnSizes)
	if count <= 0 || beforeIndex < 0 || beforeIndex > columns {
		return
	}
	rows := len(m.rowSizes)

	var straddlers []*Cell
	if beforeIndex > 0 && beforeIndex < columns {
		seen := make(map[*Cell]struct{})
		for r := 0; r < rows; r++ {
			cell := m.lookup[r][beforeIndex]
			if cell == nil || cell.Range.StartColumn >= beforeIndex {
				continue
			}
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}
			straddlers = append(straddlers, cell)
		}
		for _, cell := range straddlers {
			m.clearRange(cell.Range)
		}
	}

	size := DefaultColumnSize
	if beforeIndex > 0 {
		size = m.columnSizes[beforeIndex-1]
	} else if columns > 0 {
		size = m.columnSizes[0]
	}

	m.columnSizes = spliceFloats(m.columnSizes, beforeIndex, count, size)

	for r := range m.lookup {
		tail := append([]*Cell{}, m.lookup[r][beforeIndex:]...)
		m.lookup[r] = append(append(m.lookup[r][:beforeIndex], make([]*Cell, count)...), tail...)
	}

	m.hiddenColumns = shiftHidden(m.hiddenColumns, beforeIndex, count)

	for _, cell := range m.uniqueCells() {
		if cell.Range.StartColumn >= beforeIndex {
			cell.Range.StartColumn += count
			cell.Range.EndColumn += count
		}
	}

	if init != nil {
		for r := 0; r < rows; r++ {
			for c := beforeIndex; c < beforeIndex+count; c++ {
				if cell := init(r, c); cell != nil {
					cell.Range = SingleCellRange(r, c)
					m.lookup[r][c] = cell
				}
			}
		}
	}

	for _, cell := range straddlers {
		cell.Range.EndColumn += count
		m.writeRange(cell)
	}

	m.recomputeColumnOffsets()
	m.stream.publish(Change{
		Kind:  ChangeInsert,
		Axis:  AxisColumn,
		Range: CellRange{StartRow: 0, EndRow: maxInt(rows-1, 0), StartColumn: beforeIndex, EndColumn: beforeIndex + count - 1},
	})
}

// DeleteRows removes count rows starting at the given index. Merged cells
// are truncated, clipped or shifted depending on how they intersect the
// deleted span; cells lying fully inside it are dropped.
func (m *CellModel) DeleteRows(fromIndex, count int) {
	rows := len(m.rowSizes)
	if count <= 0 || fromIndex < 0 || fromIndex >= rows {
		return
	}
	if fromIndex+count > rows {
		count = rows - fromIndex
	}
	end := fromIndex + count
	columns := len(m.columnSizes)

	cells := m.uniqueCells()
	for _, cell := range cells {
		m.clearRange(cell.Range)
	}

	m.lookup = append(m.lookup[:fromIndex], m.lookup[end:]...)
	m.rowSizes = append(m.rowSizes[:fromIndex], m.rowSizes[end:]...)
	m.hiddenRows = dropHidden(m.hiddenRows, fromIndex, count)

	for _, cell := range cells {
		rng := cell.Range
		switch {
		case rng.EndRow < fromIndex:
			// fully before, untouched
		case rng.StartRow < fromIndex && rng.EndRow < end:
			rng.EndRow = fromIndex - 1
		case rng.StartRow < fromIndex:
			rng.EndRow -= count
		case rng.StartRow < end && rng.EndRow < end:
			continue // fully inside the deleted span
		case rng.StartRow < end:
			rng.StartRow = fromIndex
			rng.EndRow -= count
		default:
			rng.StartRow -= count
			rng.EndRow -= count
		}
		cell.Range = rng
		m.writeRange(cell)
	}

	m.recomputeRowOffsets()
	m.stream.publish(Change{
		Kind:  ChangeDelete,
		Axis:  AxisRow,
		Range: CellRange{StartRow: fromIndex, EndRow: end - 1, StartColumn: 0, EndColumn: maxInt(columns-1, 0)},
	})
}

// DeleteColumns removes count columns starting at the given index, see
// DeleteRows.
func (m *CellModel) DeleteColumns(fromIndex, count int) {
	columns := len(m.columnSizes)
	if count <= 0 || fromIndex < 0 || fromIndex >= columns {
		return
	}
	if fromIndex+count > columns {
		count = columns - fromIndex
	}
	end := fromIndex + count
	rows := len(m.rowSizes)

	cells := m.uniqueCells()
	for _, cell := range cells {
		m.clearRange(cell.Range)
	}

	for r := range m.lookup {
		m.lookup[r] = append(m.lookup[r][:fromIndex], m.lookup[r][end:]...)
	}
	m.columnSizes = append(m.columnSizes[:fromIndex], m.columnSizes[end:]...)
	m.hiddenColumns = dropHidden(m.hiddenColumns, fromIndex, count)

	for _, cell := range cells {
		rng := cell.Range
		switch {
		case rng.EndColumn < fromIndex:
			// fully before, untouched
		case rng.StartColumn < fromIndex && rng.EndColumn < end:
			rng.EndColumn = fromIndex - 1
		case rng.StartColumn < fromIndex:
			rng.EndColumn -= count
		case rng.StartColumn < end && rng.EndColumn < end:
			continue
		case rng.StartColumn < end:
			rng.StartColumn = fromIndex
			rng.EndColumn -= count
		default:
			rng.StartColumn -= count
			rng.EndColumn -= count
		}
		cell.Range = rng
		m.writeRange(cell)
	}

	m.recomputeColumnOffsets()
	m.stream.publish(Change{
		Kind:  ChangeDelete,
		Axis:  AxisColumn,
		Range: CellRange{StartRow: 0, EndRow: maxInt(rows-1, 0), StartColumn: fromIndex, EndColumn: end - 1},
	})
}

// MergeCells merges the given range into one cell. It returns false
// without mutating when the range exceeds the grid, covers at most one
// cell, or any covered position already belongs to a multi-cell merge. On
// success the top-left cell's range is expanded over the whole region and
// every covered position references it.
func (m *CellModel) MergeCells(rng CellRange) bool {
	clamped, ok := m.clampRange(rng)
	if !ok || clamped != rng || rng.IsSingle() {
		return false
	}

	for r := rng.StartRow; r <= rng.EndRow; r++ {
		for c := rng.StartColumn; c <= rng.EndColumn; c++ {
			cell := m.lookup[r][c]
			if cell != nil && !cell.Range.IsSingle() {
				return false
			}
		}
	}

	anchor := m.GetCell(rng.StartRow, rng.StartColumn, true)
	anchor.Range = rng
	m.writeRange(anchor)

	m.stream.publish(Change{Kind: ChangeMerge, Axis: AxisRow, Range: rng})
	return true
}

// SplitCell splits the merged cell at the given position back into single
// cells. The top-left anchor keeps the cell's content; every other covered
// position becomes empty, except that border edges lying on the outer
// boundary of the old merge are preserved by materializing minimal
// single-cell entries where the edge was. Splitting an unmerged cell is a
// no-op.
func (m *CellModel) SplitCell(row, column int) {
	cell := m.GetCell(row, column, false)
	if cell == nil || cell.Range.IsSingle() {
		return
	}

	old := cell.Range
	border := cell.Border

	m.clearRange(old)
	cell.Range = SingleCellRange(old.StartRow, old.StartColumn)
	cell.Border = anchorBorderAfterSplit(border, old)
	m.lookup[old.StartRow][old.StartColumn] = cell

	if border != nil {
		m.preserveSplitBorders(border, old)
	}

	m.stream.publish(Change{Kind: ChangeSplit, Axis: AxisRow, Range: old})
}

// anchorBorderAfterSplit trims a merged cell's border to the edges that
// still touch the anchor's single-cell range.
func anchorBorderAfterSplit(border *Border, old CellRange) *Border {
	if border == nil {
		return nil
	}
	trimmed := &Border{
		Top:  cloneSide(border.Top),
		Left: cloneSide(border.Left),
	}
	if old.StartRow == old.EndRow {
		trimmed.Bottom = cloneSide(border.Bottom)
	}
	if old.StartColumn == old.EndColumn {
		trimmed.Right = cloneSide(border.Right)
	}
	if trimmed.IsEmpty() {
		return nil
	}
	return trimmed
}

// preserveSplitBorders re-creates the old merge's outer border edges on
// minimal single-cell entries along the boundary.
func (m *CellModel) preserveSplitBorders(border *Border, old CellRange) {
	stamp := func(row, column int, set func(*Border)) {
		if row == old.StartRow && column == old.StartColumn {
			return // the anchor keeps its own trimmed border
		}
		cell := m.GetCell(row, column, true)
		if cell.Border == nil {
			cell.Border = &Border{}
		}
		set(cell.Border)
	}

	if border.Top != nil {
		for c := old.StartColumn; c <= old.EndColumn; c++ {
			side := cloneSide(border.Top)
			stamp(old.StartRow, c, func(b *Border) { b.Top = side })
		}
	}
	if border.Bottom != nil {
		for c := old.StartColumn; c <= old.EndColumn; c++ {
			side := cloneSide(border.Bottom)
			stamp(old.EndRow, c, func(b *Border) { b.Bottom = side })
		}
	}
	if border.Left != nil {
		for r := old.StartRow; r <= old.EndRow; r++ {
			side := cloneSide(border.Left)
			stamp(r, old.StartColumn, func(b *Border) { b.Left = side })
		}
	}
	if border.Right != nil {
		for r := old.StartRow; r <= old.EndRow; r++ {
			side := cloneSide(border.Right)
			stamp(r, old.EndColumn, func(b *Border) { b.Right = side })
		}
	}
}

// HideRows hides the given rows. Rows already hidden are ignored. The size
// of a hidden row is retained for later showing.
func (m *CellModel) HideRows(indices []int) {
	if m.setHidden(indices, m.hiddenRows, len(m.rowSizes), true) {
		m.recomputeRowOffsets()
		m.stream.publish(Change{Kind: ChangeVisibility, Axis: AxisRow, Range: axisRange(indices, AxisRow, m)})
	}
}

// HideColumns hides the given columns, see HideRows.
func (m *CellModel) HideColumns(indices []int) {
	if m.setHidden(indices, m.hiddenColumns, len(m.columnSizes), true) {
		m.recomputeColumnOffsets()
		m.stream.publish(Change{Kind: ChangeVisibility, Axis: AxisColumn, Range: axisRange(indices, AxisColumn, m)})
	}
}

// ShowRows shows the given rows. Rows not hidden are ignored.
func (m *CellModel) ShowRows(indices []int) {
	if m.setHidden(indices, m.hiddenRows, len(m.rowSizes), false) {
		m.recomputeRowOffsets()
		m.stream.publish(Change{Kind: ChangeVisibility, Axis: AxisRow, Range: axisRange(indices, AxisRow, m)})
	}
}

// ShowColumns shows the given columns, see ShowRows.
func (m *CellModel) ShowColumns(indices []int) {
	if m.setHidden(indices, m.hiddenColumns, len(m.columnSizes), false) {
		m.recomputeColumnOffsets()
		m.stream.publish(Change{Kind: ChangeVisibility, Axis: AxisColumn, Range: axisRange(indices, AxisColumn, m)})
	}
}

// ShowAll shows every hidden row and column.
func (m *CellModel) ShowAll() {
	if len(m.hiddenRows) == 0 && len(m.hiddenColumns) == 0 {
		return
	}
	m.hiddenRows = make(map[int]struct{})
	m.hiddenColumns = make(map[int]struct{})
	m.recomputeRowOffsets()
	m.recomputeColumnOffsets()
	m.stream.publish(Change{Kind: ChangeVisibility, Axis: AxisRow, Range: m.GetRange()})
}

// setHidden toggles hidden-set membership for indices that actually change
// state and reports whether anything changed.
func (m *CellModel) setHidden(indices []int, hidden map[int]struct{}, count int, hide bool) bool {
	changed := false
	for _, idx := range normalizeIndices(indices, count) {
		_, isHidden := hidden[idx]
		if hide && !isHidden {
			hidden[idx] = struct{}{}
			changed = true
		} else if !hide && isHidden {
			delete(hidden, idx)
			changed = true
		}
	}
	return changed
}

// Subscribe registers a listener for structural changes. The returned
// function removes the listener again. Dispatch is synchronous within the
// mutating call.
func (m *CellModel) Subscribe(fn ChangeListener) func() {
	return m.stream.subscribe(fn)
}

// Cleanup releases the model: all listeners are dropped and the cell
// matrix is cleared. The model must not be used afterwards.
func (m *CellModel) Cleanup() {
	m.stream.close()
	m.lookup = nil
	m.rowSizes = nil
	m.columnSizes = nil
	m.rowOffsets = nil
	m.columnOffsets = nil
	m.hiddenRows = nil
	m.hiddenColumns = nil
}

func spliceFloats(values []float64, at, count int, value float64) []float64 {
	out := make([]float64, 0, len(values)+count)
	out = append(out, values[:at]...)
	for i := 0; i < count; i++ {
		out = append(out, value)
	}
	return append(out, values[at:]...)
}

// shiftHidden moves every hidden index at or after the insertion point up
// by count.
func shiftHidden(hidden map[int]struct{}, at, count int) map[int]struct{} {
	out := make(map[int]struct{}, len(hidden))
	for idx := range hidden {
		if idx >= at {
			out[idx+count] = struct{}{}
		} else {
			out[idx] = struct{}{}
		}
	}
	return out
}

// dropHidden removes hidden indices inside the deleted span and shifts
// later ones down by count.
func dropHidden(hidden map[int]struct{}, from, count int) map[int]struct{} {
	out := make(map[int]struct{}, len(hidden))
	for idx := range hidden {
		switch {
		case idx < from:
			out[idx] = struct{}{}
		case idx >= from+count:
			out[idx-count] = struct{}{}
		}
	}
	return out
}
