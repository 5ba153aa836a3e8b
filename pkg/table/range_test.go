package table

import "testing"

func TestCellRangeContains(t *testing.T) {
	tests := []struct {
		name     string
		rng      CellRange
		row, col int
		expected bool
	}{
		{"inside", CellRange{1, 3, 1, 3}, 2, 2, true},
		{"top-left corner", CellRange{1, 3, 1, 3}, 1, 1, true},
		{"bottom-right corner", CellRange{1, 3, 1, 3}, 3, 3, true},
		{"above", CellRange{1, 3, 1, 3}, 0, 2, false},
		{"right of", CellRange{1, 3, 1, 3}, 2, 4, false},
	}

	for _, tt := range tests {
		if got := tt.rng.Contains(tt.row, tt.col); got != tt.expected {
			t.Errorf("%s: Contains(%d, %d) = %v, expected %v", tt.name, tt.row, tt.col, got, tt.expected)
		}
	}
}

func TestCellRangeIntersect(t *testing.T) {
	a := CellRange{0, 4, 0, 4}
	b := CellRange{2, 6, 3, 8}

	overlap, ok := a.Intersect(b)
	if !ok {
		t.Fatal("expected overlap")
	}
	expected := CellRange{2, 4, 3, 4}
	if overlap != expected {
		t.Errorf("Intersect = %+v, expected %+v", overlap, expected)
	}

	if _, ok := a.Intersect(CellRange{5, 6, 0, 4}); ok {
		t.Error("expected no overlap for disjoint ranges")
	}
}

func TestCellRangeSubtract(t *testing.T) {
	outer := CellRange{1, 4, 1, 4}
	inner := CellRange{2, 3, 2, 3}

	parts, ok := outer.Subtract(inner)
	if !ok {
		t.Fatal("expected inner to be contained in outer")
	}
	if len(parts) != 4 {
		t.Fatalf("expected 4 rectangles, got %d", len(parts))
	}

	// The strips must exactly tile outer minus inner: every outer cell is
	// covered exactly once unless it lies in inner.
	for row := 0; row <= 5; row++ {
		for col := 0; col <= 5; col++ {
			covered := 0
			for _, part := range parts {
				if part.Contains(row, col) {
					covered++
				}
			}
			expected := 0
			if outer.Contains(row, col) && !inner.Contains(row, col) {
				expected = 1
			}
			if covered != expected {
				t.Errorf("position (%d, %d) covered %d times, expected %d", row, col, covered, expected)
			}
		}
	}
}

func TestCellRangeSubtractNotContained(t *testing.T) {
	outer := CellRange{1, 4, 1, 4}
	if _, ok := outer.Subtract(CellRange{3, 6, 3, 6}); ok {
		t.Error("expected no decomposition for a range not fully contained")
	}
}

func TestCellRangeSubtractEdgeStrips(t *testing.T) {
	tests := []struct {
		name     string
		inner    CellRange
		expected int
	}{
		{"inner equals outer", CellRange{0, 3, 0, 3}, 0},
		{"inner at top-left corner", CellRange{0, 1, 0, 1}, 2},
		{"inner spans full width", CellRange{1, 2, 0, 3}, 2},
		{"inner spans full height", CellRange{0, 3, 1, 2}, 2},
		{"inner centered", CellRange{1, 2, 1, 2}, 4},
	}

	outer := CellRange{0, 3, 0, 3}
	for _, tt := range tests {
		parts, ok := outer.Subtract(tt.inner)
		if !ok {
			t.Errorf("%s: expected containment", tt.name)
			continue
		}
		if len(parts) != tt.expected {
			t.Errorf("%s: got %d rectangles, expected %d", tt.name, len(parts), tt.expected)
		}
	}
}

func TestCellRangeXor(t *testing.T) {
	a := CellRange{0, 1, 0, 1}
	b := CellRange{1, 2, 1, 2}

	parts := a.Xor(b)
	for row := 0; row <= 3; row++ {
		for col := 0; col <= 3; col++ {
			covered := 0
			for _, part := range parts {
				if part.Contains(row, col) {
					covered++
				}
			}
			expected := 0
			if a.Contains(row, col) != b.Contains(row, col) {
				expected = 1
			}
			if covered != expected {
				t.Errorf("position (%d, %d) covered %d times, expected %d", row, col, covered, expected)
			}
		}
	}
}

func TestNewCellRangeNormalizesCorners(t *testing.T) {
	rng := NewCellRange(4, 3, 1, 0)
	expected := CellRange{1, 4, 0, 3}
	if rng != expected {
		t.Errorf("NewCellRange = %+v, expected %+v", rng, expected)
	}
}

func TestCellRangeSize(t *testing.T) {
	rng := CellRange{1, 2, 0, 3}
	if rng.Size() != 8 {
		t.Errorf("Size = %d, expected 8", rng.Size())
	}
	if !SingleCellRange(2, 2).IsSingle() {
		t.Error("expected single-cell range")
	}
	if rng.IsSingle() {
		t.Error("expected multi-cell range")
	}
}
