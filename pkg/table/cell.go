package table

import "fmt"

// Cell is a rectangular grid region (possibly a single cell) holding a
// value and a renderer identity. A merged cell spans more than one row or
// column; every lookup position it covers references the same Cell.
type Cell struct {
	// Range is the region the cell covers, a single position unless merged.
	Range CellRange
	// Renderer names the renderer responsible for drawing the cell.
	Renderer string
	// Value is the cell content. nil means the cell holds no value.
	Value any
	// Border carries the cell's edge styling, if any.
	Border *Border
}

// BorderStyle is the line style of a border side.
type BorderStyle int

const (
	// BorderStyleSolid draws a continuous line.
	BorderStyleSolid BorderStyle = iota
	// BorderStyleDashed draws a dashed line.
	BorderStyleDashed
	// BorderStyleDotted draws a dotted line.
	BorderStyleDotted
)

// Color is an RGB color used for border sides.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Hex returns the color as an uppercase RRGGBB hex string.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// BorderSide describes the styling of one edge of a cell.
type BorderSide struct {
	Style BorderStyle
	// Size is the line width in pixels.
	Size int
	Color Color
	// Priority orders competing assignments of a shared edge. It is
	// assigned from a BorderModel's monotonic counter; a higher value means
	// the side was assigned later.
	Priority int
}

// Border holds up to four optional edges of a cell. A nil side means the
// cell does not assert a border on that edge.
type Border struct {
	Top    *BorderSide
	Bottom *BorderSide
	Left   *BorderSide
	Right  *BorderSide
}

// IsEmpty reports whether no side is set.
func (b *Border) IsEmpty() bool {
	return b == nil || (b.Top == nil && b.Bottom == nil && b.Left == nil && b.Right == nil)
}

// clone returns a deep copy of the border, or nil for a nil border.
func (b *Border) clone() *Border {
	if b == nil {
		return nil
	}
	return &Border{
		Top:    cloneSide(b.Top),
		Bottom: cloneSide(b.Bottom),
		Left:   cloneSide(b.Left),
		Right:  cloneSide(b.Right),
	}
}

func cloneSide(s *BorderSide) *BorderSide {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
