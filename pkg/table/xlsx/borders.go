package xlsx

import (
	"strconv"

	"github.com/bennyboer/table-engine-sub001/pkg/table"
)

// borderStyleFromExcel maps OOXML border style numbers to engine border
// styles and line widths.
var borderStyleFromExcel = map[int]struct {
	style table.BorderStyle
	size  int
}{
	1: {table.BorderStyleSolid, 1},  // thin
	2: {table.BorderStyleSolid, 2},  // medium
	3: {table.BorderStyleDashed, 1}, // dashed
	4: {table.BorderStyleDotted, 1}, // dotted
	5: {table.BorderStyleSolid, 3},  // thick
	7: {table.BorderStyleDotted, 1}, // hair
	8: {table.BorderStyleDashed, 2}, // medium dashed
}

// excelBorderStyle maps an engine border side to the closest OOXML border
// style number.
func excelBorderStyle(side table.BorderSide) int {
	switch side.Style {
	case table.BorderStyleDashed:
		if side.Size >= 2 {
			return 8
		}
		return 3
	case table.BorderStyleDotted:
		return 4
	default:
		switch {
		case side.Size >= 3:
			return 5
		case side.Size >= 2:
			return 2
		default:
			return 1
		}
	}
}

// parseHexColor parses an RGB or ARGB hex string. Invalid input yields
// black.
func parseHexColor(s string) table.Color {
	if len(s) == 8 {
		s = s[2:] // drop the alpha channel
	}
	if len(s) != 6 {
		return table.Color{}
	}
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return table.Color{}
	}
	return table.Color{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
	}
}
