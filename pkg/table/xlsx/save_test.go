package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/bennyboer/table-engine-sub001/pkg/table"
)

// buildModel creates a small model with a merged header, a border, a
// custom column width and a hidden row.
func buildModel(t *testing.T) *table.CellModel {
	t.Helper()
	cells := []*table.Cell{
		{
			Range:    table.CellRange{StartRow: 0, EndRow: 0, StartColumn: 0, EndColumn: 1},
			Renderer: "text",
			Value:    "Title",
			Border: &table.Border{
				Bottom: &table.BorderSide{
					Style: table.BorderStyleDashed,
					Size:  1,
					Color: table.Color{R: 255},
				},
			},
		},
		{Range: table.SingleCellRange(1, 0), Renderer: "text", Value: int64(7)},
		{Range: table.SingleCellRange(2, 1), Renderer: "text", Value: "tail"},
	}
	columnSize := func(index int) float64 {
		if index == 0 {
			return 75
		}
		return table.DefaultColumnSize
	}
	return table.Generate(cells, nil, nil, nil, columnSize, []int{1}, nil)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	m := buildModel(t)
	path := filepath.Join(t.TempDir(), "roundtrip.xlsx")

	if err := Save(m, path, "Data", DefaultSaveOptions()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	opts := DefaultLoadOptions()
	includeBorders := true
	opts.IncludeBorders = &includeBorders

	loaded, err := Load(path, "Data", opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.GetRowCount() != 3 || loaded.GetColumnCount() != 2 {
		t.Fatalf("Expected 3x2 grid, got %dx%d", loaded.GetRowCount(), loaded.GetColumnCount())
	}

	// The merge survives with its value at the anchor.
	anchor := loaded.GetCell(0, 0, false)
	if anchor == nil {
		t.Fatal("Expected merged cell at (0, 0)")
	}
	expected := table.CellRange{StartRow: 0, EndRow: 0, StartColumn: 0, EndColumn: 1}
	if anchor.Range != expected {
		t.Errorf("Expected range %v, got %v", expected, anchor.Range)
	}
	if anchor.Value != "Title" {
		t.Errorf("Expected 'Title', got %v", anchor.Value)
	}
	if loaded.GetCell(0, 1, false) != anchor {
		t.Error("Expected (0, 1) to reference the merged cell")
	}

	// Values keep their parsed types.
	if got := loaded.GetCell(1, 0, false).Value; got != int64(7) {
		t.Errorf("Expected int64(7), got %v (type: %T)", got, got)
	}

	// The border style maps back to dashed with its color.
	if anchor.Border == nil || anchor.Border.Bottom == nil {
		t.Fatal("Expected bottom border on the merged cell")
	}
	if anchor.Border.Bottom.Style != table.BorderStyleDashed {
		t.Errorf("Expected dashed border, got %v", anchor.Border.Bottom.Style)
	}
	if anchor.Border.Bottom.Color != (table.Color{R: 255}) {
		t.Errorf("Expected red border, got %v", anchor.Border.Bottom.Color)
	}

	// Sizes and visibility survive the unit conversions.
	if got := loaded.GetColumnSize(0); got != 75 {
		t.Errorf("Expected column size 75, got %f", got)
	}
	if !loaded.IsRowHidden(1) {
		t.Error("Expected row 1 to stay hidden")
	}
	if loaded.IsRowHidden(0) {
		t.Error("Expected row 0 to stay visible")
	}
}

func TestSaveWithoutOptionalParts(t *testing.T) {
	m := buildModel(t)
	path := filepath.Join(t.TempDir(), "plain.xlsx")

	off := false
	opts := SaveOptions{IncludeSizes: &off, IncludeHidden: &off, IncludeBorders: &off}
	if err := Save(m, path, "", opts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path, "", DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.IsRowHidden(1) {
		t.Error("Expected hidden flags to be skipped")
	}
	if got := loaded.GetColumnSize(0); got == 75 {
		t.Error("Expected column width to be skipped")
	}
}
