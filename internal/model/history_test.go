package model

import "testing"

func piecesN(n int) []PlacedPiece {
	out := make([]PlacedPiece, n)
	for i := range out {
		out[i] = PlacedPiece{ID: string(rune('a' + i)), PieceID: "road-straight", X: float64(i * 2)}
	}
	return out
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, "initial"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	restored, ok := h.Undo(MakeSnapshot(piecesN(1), "current"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Pieces) != 0 {
		t.Errorf("expected 0 pieces after undo, got %d", len(restored.Pieces))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, "empty"))

	if _, ok := h.Undo(MakeSnapshot(piecesN(1), "one piece")); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(nil, "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}
	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(nil, ""))
	}
	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, "current")
	if _, ok := h.Undo(current); ok {
		t.Error("undo on empty history should return false")
	}
	if _, ok := h.Redo(current); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, "a"))
	h.Push(MakeSnapshot(nil, "b"))
	h.Undo(MakeSnapshot(nil, "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	original := piecesN(1)
	snap := MakeSnapshot(original, "test")

	original[0].X = 999
	if snap.Pieces[0].X != 0 {
		t.Error("snapshot should be independent of original slice")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, "empty"))
	h.Push(MakeSnapshot(piecesN(1), "1 piece"))
	h.Push(MakeSnapshot(piecesN(2), "2 pieces"))
	current := MakeSnapshot(piecesN(3), "3 pieces")

	s, ok := h.Undo(current)
	if !ok || len(s.Pieces) != 2 {
		t.Fatalf("first undo: expected 2 pieces, got %d", len(s.Pieces))
	}
	s, ok = h.Undo(s)
	if !ok || len(s.Pieces) != 1 {
		t.Fatalf("second undo: expected 1 piece, got %d", len(s.Pieces))
	}
	s, ok = h.Undo(s)
	if !ok || len(s.Pieces) != 0 {
		t.Fatalf("third undo: expected 0 pieces, got %d", len(s.Pieces))
	}
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	for want := 1; want <= 3; want++ {
		s, ok = h.Redo(s)
		if !ok || len(s.Pieces) != want {
			t.Fatalf("redo: expected %d pieces, got %d", want, len(s.Pieces))
		}
	}
	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
