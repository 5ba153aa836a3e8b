package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBorderFixture(t *testing.T) (*CellModel, *BorderModel) {
	t.Helper()
	m := fullGrid([]float64{25, 25, 25}, []float64{50, 50, 50})
	b, err := NewBorderModel(m, BorderModelOptions{Resolver: HighestPriorityResolver})
	require.NoError(t, err)
	return m, b
}

func TestNewBorderModelRequiresResolver(t *testing.T) {
	m := fullGrid([]float64{25}, []float64{50})

	_, err := NewBorderModel(m, BorderModelOptions{})
	assert.ErrorIs(t, err, ErrNilResolver)

	_, err = NewBorderModel(nil, BorderModelOptions{Resolver: HighestPriorityResolver})
	assert.ErrorIs(t, err, ErrNilCellModel)
}

func TestSetBorderStampsOuterEdgesOnly(t *testing.T) {
	m, b := newBorderFixture(t)

	side := BorderSide{Style: BorderStyleSolid, Size: 1, Color: Color{R: 255}}
	b.SetBorder(Border{Top: &side, Bottom: &side, Left: &side, Right: &side}, CellRange{0, 2, 0, 2})

	// Corner cell carries top and left, nothing else.
	corner := m.GetCell(0, 0, false).Border
	require.NotNil(t, corner)
	assert.NotNil(t, corner.Top)
	assert.NotNil(t, corner.Left)
	assert.Nil(t, corner.Bottom)
	assert.Nil(t, corner.Right)

	// The center cell is interior to the range and gets nothing.
	assert.True(t, m.GetCell(1, 1, false).Border.IsEmpty())

	// Each edge received its own priority, identical along the edge.
	topLeft := m.GetCell(0, 0, false).Border.Top
	topRight := m.GetCell(0, 2, false).Border.Top
	assert.Equal(t, topLeft.Priority, topRight.Priority)
	bottom := m.GetCell(2, 0, false).Border.Bottom
	assert.Greater(t, bottom.Priority, topLeft.Priority)
}

func TestSetBorderLine(t *testing.T) {
	m, b := newBorderFixture(t)

	side := BorderSide{Style: BorderStyleDotted, Size: 2}
	b.SetBorderLine(1, 1, side, SideMask{Top: true, Right: true})

	border := m.GetCell(1, 1, false).Border
	require.NotNil(t, border)
	assert.NotNil(t, border.Top)
	assert.NotNil(t, border.Right)
	assert.Nil(t, border.Bottom)
	assert.Nil(t, border.Left)
	assert.NotEqual(t, border.Top.Priority, border.Right.Priority)
}

func TestGetBordersResolvesSharedEdge(t *testing.T) {
	_, b := newBorderFixture(t)

	// Cell A (0,0) asserts its bottom first, then the cell below (B)
	// asserts its top with a later (higher) priority.
	b.SetBorderLine(0, 0, BorderSide{Style: BorderStyleSolid, Size: 1, Color: Color{R: 255}}, SideMask{Bottom: true})
	b.SetBorderLine(1, 0, BorderSide{Style: BorderStyleDashed, Size: 2, Color: Color{B: 255}}, SideMask{Top: true})

	borders := b.GetBorders(CellRange{0, 1, 0, 0})
	require.Len(t, borders, 2)

	// The highest-priority policy picks B's side on both views of the
	// shared edge.
	require.NotNil(t, borders[0][0].Bottom)
	assert.Equal(t, BorderStyleDashed, borders[0][0].Bottom.Style)
	require.NotNil(t, borders[1][0].Top)
	assert.Equal(t, BorderStyleDashed, borders[1][0].Top.Style)
}

func TestGetBordersInspectsNeighborsOutsideRange(t *testing.T) {
	_, b := newBorderFixture(t)

	// Only the neighbor above the queried rectangle asserts the edge.
	b.SetBorderLine(0, 1, BorderSide{Style: BorderStyleSolid, Size: 3}, SideMask{Bottom: true})

	borders := b.GetBorders(CellRange{1, 2, 0, 2})
	require.NotNil(t, borders[0][1].Top)
	assert.Equal(t, 3, borders[0][1].Top.Size)
	assert.Nil(t, borders[0][0].Top)
}

func TestGetBordersDefaultSupplier(t *testing.T) {
	m := fullGrid([]float64{25, 25}, []float64{50, 50})
	def := &Border{Left: &BorderSide{Style: BorderStyleDotted, Size: 1}}
	b, err := NewBorderModel(m, BorderModelOptions{
		Resolver:              HighestPriorityResolver,
		DefaultBorderSupplier: func(row, column int) *Border { return def },
	})
	require.NoError(t, err)

	borders := b.GetBorders(CellRange{0, 0, 0, 0})
	require.NotNil(t, borders[0][0].Left)
	assert.Equal(t, BorderStyleDotted, borders[0][0].Left.Style)
	assert.Nil(t, borders[0][0].Top)
}

func TestBorderPriorityCounterIsPerInstance(t *testing.T) {
	m1, b1 := newBorderFixture(t)
	_, b2 := newBorderFixture(t)

	b1.SetBorderLine(0, 0, BorderSide{Style: BorderStyleSolid}, SideMask{Top: true})
	b1.SetBorderLine(0, 1, BorderSide{Style: BorderStyleSolid}, SideMask{Top: true})
	b2.SetBorderLine(0, 0, BorderSide{Style: BorderStyleSolid}, SideMask{Top: true})

	// The second model starts its own counter at 1 regardless of the
	// first model's progress.
	first := m1.GetCell(0, 0, false).Border.Top.Priority
	assert.Equal(t, 1, first)
}

func TestGetBordersMergedCellEdges(t *testing.T) {
	m, b := newBorderFixture(t)
	require.True(t, m.MergeCells(CellRange{0, 1, 0, 1}))

	b.SetBorder(Border{Bottom: &BorderSide{Style: BorderStyleSolid, Size: 2}}, CellRange{0, 1, 0, 1})

	borders := b.GetBorders(CellRange{0, 2, 0, 2})
	// The merge's bottom edge runs along row 1 only.
	require.NotNil(t, borders[1][0].Bottom)
	require.NotNil(t, borders[1][1].Bottom)
	assert.Nil(t, borders[0][0].Bottom)
	// The cell below sees the shared edge as its top.
	require.NotNil(t, borders[2][0].Top)
}
