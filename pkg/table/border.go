package table

import "errors"

// ErrNilResolver indicates that a BorderModel was constructed without a
// collision resolver. There is no default policy; the caller must choose
// one (see HighestPriorityResolver for the common choice).
var ErrNilResolver = errors.New("table: border collision resolver is required")

// ErrNilCellModel indicates that a BorderModel was constructed without a
// cell model.
var ErrNilCellModel = errors.New("table: cell model is required")

// BorderCollisionResolver decides which side wins a contested shared edge.
// mine is the side stored on the cell the query is looking at, theirs the
// opposing side stored on the adjacent cell. Both are non-nil when called.
type BorderCollisionResolver func(mine, theirs *BorderSide) *BorderSide

// HighestPriorityResolver picks the side assigned later, i.e. the one with
// the higher priority counter value.
func HighestPriorityResolver(mine, theirs *BorderSide) *BorderSide {
	if theirs.Priority > mine.Priority {
		return theirs
	}
	return mine
}

// DefaultBorderSupplier yields the default border for a position without a
// stored border. Returning nil means no default applies there.
type DefaultBorderSupplier func(row, column int) *Border

// BorderModelOptions configures a BorderModel.
type BorderModelOptions struct {
	// Resolver decides contested shared edges. Required.
	Resolver BorderCollisionResolver
	// DefaultBorder is used for cells without a stored border when
	// DefaultBorderSupplier is nil.
	DefaultBorder *Border
	// DefaultBorderSupplier yields per-position default borders; it takes
	// precedence over DefaultBorder when set.
	DefaultBorderSupplier DefaultBorderSupplier
}

// SideMask selects which edges of a cell a SetBorderLine call stamps.
type SideMask struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// BorderModel assigns and derives per-edge borders on top of a CellModel's
// cells. Borders live denormalized on the cells themselves; the model only
// holds the priority counter and the resolution configuration. The counter
// is scoped to one instance, so independent grids never interfere.
type BorderModel struct {
	cells    *CellModel
	opts     BorderModelOptions
	priority int
}

// NewBorderModel creates a BorderModel over the given cells. The options'
// Resolver is required.
func NewBorderModel(cells *CellModel, opts BorderModelOptions) (*BorderModel, error) {
	if cells == nil {
		return nil, ErrNilCellModel
	}
	if opts.Resolver == nil {
		return nil, ErrNilResolver
	}
	return &BorderModel{cells: cells, opts: opts}, nil
}

func (m *BorderModel) nextPriority() int {
	m.priority++
	return m.priority
}

// SetBorder stamps the border's sides onto the four outer edges of the
// range: the top side along the range's top row, the bottom side along its
// bottom row and so on. Each touched edge receives one fresh priority;
// a side that already carries that exact priority is left alone.
func (m *BorderModel) SetBorder(border Border, rng CellRange) {
	rng, ok := m.cells.clampRange(rng)
	if !ok {
		return
	}

	if border.Top != nil {
		priority := m.nextPriority()
		m.stampEdge(rng.StartRow, rng.StartRow, rng.StartColumn, rng.EndColumn, *border.Top, priority,
			func(b *Border, s *BorderSide) { b.Top = s }, func(b *Border) *BorderSide { return b.Top })
	}
	if border.Bottom != nil {
		priority := m.nextPriority()
		m.stampEdge(rng.EndRow, rng.EndRow, rng.StartColumn, rng.EndColumn, *border.Bottom, priority,
			func(b *Border, s *BorderSide) { b.Bottom = s }, func(b *Border) *BorderSide { return b.Bottom })
	}
	if border.Left != nil {
		priority := m.nextPriority()
		m.stampEdge(rng.StartRow, rng.EndRow, rng.StartColumn, rng.StartColumn, *border.Left, priority,
			func(b *Border, s *BorderSide) { b.Left = s }, func(b *Border) *BorderSide { return b.Left })
	}
	if border.Right != nil {
		priority := m.nextPriority()
		m.stampEdge(rng.StartRow, rng.EndRow, rng.EndColumn, rng.EndColumn, *border.Right, priority,
			func(b *Border, s *BorderSide) { b.Right = s }, func(b *Border) *BorderSide { return b.Right })
	}
}

// stampEdge writes the side onto every cell touching the edge strip. A
// merged cell covering several strip positions is stamped once.
func (m *BorderModel) stampEdge(
	rowFrom, rowTo, columnFrom, columnTo int,
	side BorderSide, priority int,
	set func(*Border, *BorderSide), get func(*Border) *BorderSide,
) {
	visited := make(map[*Cell]struct{})
	for r := rowFrom; r <= rowTo; r++ {
		for c := columnFrom; c <= columnTo; c++ {
			cell := m.cells.GetCell(r, c, true)
			if cell == nil {
				continue
			}
			if _, ok := visited[cell]; ok {
				continue
			}
			visited[cell] = struct{}{}

			if cell.Border == nil {
				cell.Border = &Border{}
			}
			if existing := get(cell.Border); existing != nil && existing.Priority == priority {
				continue
			}
			stamped := side
			stamped.Priority = priority
			set(cell.Border, &stamped)
		}
	}
}

// SetBorderLine stamps the side onto the masked edges of one cell. Every
// stamped edge receives its own fresh priority.
func (m *BorderModel) SetBorderLine(row, column int, side BorderSide, mask SideMask) {
	cell := m.cells.GetCell(row, column, true)
	if cell == nil {
		return
	}
	if cell.Border == nil {
		cell.Border = &Border{}
	}

	stamp := func() *BorderSide {
		s := side
		s.Priority = m.nextPriority()
		return &s
	}
	if mask.Top {
		cell.Border.Top = stamp()
	}
	if mask.Bottom {
		cell.Border.Bottom = stamp()
	}
	if mask.Left {
		cell.Border.Left = stamp()
	}
	if mask.Right {
		cell.Border.Right = stamp()
	}
}

// GetBorders returns a dense matrix sized to the range with the resolved
// border of every position. Each edge is derived from the position's own
// stored (or default) border and the adjacent position's opposing edge;
// when both sides assert a border the configured resolver decides. For
// positions on the queried rectangle's boundary this inspects cells
// outside the rectangle as well.
func (m *BorderModel) GetBorders(rng CellRange) [][]Border {
	rng, ok := m.cells.clampRange(rng)
	if !ok {
		return nil
	}

	borders := make([][]Border, rng.Rows())
	for i := range borders {
		borders[i] = make([]Border, rng.Columns())
		for j := range borders[i] {
			r := rng.StartRow + i
			c := rng.StartColumn + j
			borders[i][j] = Border{
				Top:    m.resolveEdge(m.sideAt(r, c, edgeTop), m.sideAt(r-1, c, edgeBottom)),
				Bottom: m.resolveEdge(m.sideAt(r, c, edgeBottom), m.sideAt(r+1, c, edgeTop)),
				Left:   m.resolveEdge(m.sideAt(r, c, edgeLeft), m.sideAt(r, c-1, edgeRight)),
				Right:  m.resolveEdge(m.sideAt(r, c, edgeRight), m.sideAt(r, c+1, edgeLeft)),
			}
		}
	}
	return borders
}

type edge int

const (
	edgeTop edge = iota
	edgeBottom
	edgeLeft
	edgeRight
)

// sideAt returns the border side a position asserts on the given edge, or
// nil. A merged cell asserts its top side only along its top row, and so
// on; interior merge positions assert nothing.
func (m *BorderModel) sideAt(row, column int, e edge) *BorderSide {
	if row < 0 || column < 0 || row >= m.cells.GetRowCount() || column >= m.cells.GetColumnCount() {
		return nil
	}

	border := m.defaultBorderAt(row, column)
	rng := SingleCellRange(row, column)
	if cell := m.cells.GetCell(row, column, false); cell != nil {
		rng = cell.Range
		if cell.Border != nil {
			border = cell.Border
		}
	}
	if border == nil {
		return nil
	}

	switch e {
	case edgeTop:
		if row == rng.StartRow {
			return border.Top
		}
	case edgeBottom:
		if row == rng.EndRow {
			return border.Bottom
		}
	case edgeLeft:
		if column == rng.StartColumn {
			return border.Left
		}
	case edgeRight:
		if column == rng.EndColumn {
			return border.Right
		}
	}
	return nil
}

func (m *BorderModel) defaultBorderAt(row, column int) *Border {
	if m.opts.DefaultBorderSupplier != nil {
		return m.opts.DefaultBorderSupplier(row, column)
	}
	return m.opts.DefaultBorder
}

// resolveEdge combines the two assertions on a shared edge. Only a
// contested edge is delegated to the resolver.
func (m *BorderModel) resolveEdge(mine, theirs *BorderSide) *BorderSide {
	switch {
	case mine == nil && theirs == nil:
		return nil
	case theirs == nil:
		return cloneSide(mine)
	case mine == nil:
		return cloneSide(theirs)
	default:
		return cloneSide(m.opts.Resolver(mine, theirs))
	}
}
