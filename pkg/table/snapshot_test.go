package table

import "testing"

func TestSnapshotIsIndependent(t *testing.T) {
	m := fullGrid([]float64{25, 25, 25}, []float64{50, 50, 50})
	if !m.MergeCells(CellRange{0, 1, 0, 1}) {
		t.Fatal("expected merge to succeed")
	}
	original := m.GetCell(2, 2, false)
	original.Value = map[string]int{"count": 1}
	m.HideRows([]int{2})

	snapshot, err := m.Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.GetRowCount() != 3 || snapshot.GetColumnCount() != 3 {
		t.Fatalf("unexpected dimensions %dx%d", snapshot.GetRowCount(), snapshot.GetColumnCount())
	}
	if !snapshot.IsRowHidden(2) {
		t.Error("expected hidden row to survive the snapshot")
	}

	// Merged positions alias one cell in the copy as well.
	a := snapshot.GetCell(0, 0, false)
	b := snapshot.GetCell(1, 1, false)
	if a == nil || a != b {
		t.Error("expected merged positions to share one cell")
	}
	if a == m.GetCell(0, 0, false) {
		t.Error("expected the snapshot to hold its own cells")
	}

	// Values are deep copies.
	copied := snapshot.GetCell(2, 2, false)
	original.Value.(map[string]int)["count"] = 99
	if got := copied.Value.(map[string]int)["count"]; got != 1 {
		t.Errorf("expected snapshot value to stay at 1, got %d", got)
	}

	// Mutating the snapshot leaves the original untouched.
	snapshot.ResizeRows([]int{0}, 80)
	if m.GetRowSize(0) != 25 {
		t.Errorf("expected original row size 25, got %f", m.GetRowSize(0))
	}
}

func TestSnapshotCopiesBorders(t *testing.T) {
	m := fullGrid([]float64{25, 25}, []float64{50, 50})
	cell := m.GetCell(0, 0, false)
	cell.Border = &Border{Top: &BorderSide{Style: BorderStyleSolid, Size: 1, Priority: 1}}

	snapshot, err := m.Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	copied := snapshot.GetCell(0, 0, false)
	if copied.Border == nil || copied.Border.Top == nil {
		t.Fatal("expected border to be copied")
	}
	if copied.Border == cell.Border || copied.Border.Top == cell.Border.Top {
		t.Error("expected border copies, not shared pointers")
	}

	cell.Border.Top.Size = 9
	if copied.Border.Top.Size != 1 {
		t.Errorf("expected copied border size 1, got %d", copied.Border.Top.Size)
	}
}
