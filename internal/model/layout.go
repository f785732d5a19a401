package model

// Layout is the editor-owned collection of placed pieces. It is the only
// place pieces are mutated; everything else works on copies from Pieces.
type Layout struct {
	pieces []PlacedPiece
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{}
}

// LayoutFrom creates a layout holding a copy of the given pieces.
func LayoutFrom(pieces []PlacedPiece) *Layout {
	return &Layout{pieces: copyPieces(pieces)}
}

// Add appends a piece in insertion order.
func (l *Layout) Add(p PlacedPiece) {
	p.Rotation = NormalizeRotation(p.Rotation)
	l.pieces = append(l.pieces, p)
}

// Remove deletes the piece with the given instance ID. Returns true if found.
func (l *Layout) Remove(id string) bool {
	for i := range l.pieces {
		if l.pieces[i].ID == id {
			l.pieces = append(l.pieces[:i], l.pieces[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns a copy of the piece with the given instance ID.
func (l *Layout) Find(id string) (PlacedPiece, bool) {
	if i := l.index(id); i >= 0 {
		return l.pieces[i], true
	}
	return PlacedPiece{}, false
}

// Rotate turns a piece by delta degrees about its centre.
func (l *Layout) Rotate(id string, delta float64) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.pieces[i].Rotation = NormalizeRotation(l.pieces[i].Rotation + delta)
	return true
}

// Move sets a piece's centre.
func (l *Layout) Move(id string, x, z float64) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.pieces[i].X = x
	l.pieces[i].Z = z
	return true
}

// Nudge shifts a piece's centre by the given offset.
func (l *Layout) Nudge(id string, dx, dz float64) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.pieces[i].X += dx
	l.pieces[i].Z += dz
	return true
}

// SetScale changes a piece's render scale.
func (l *Layout) SetScale(id string, scale float64) bool {
	i := l.index(id)
	if i < 0 || scale <= 0 {
		return false
	}
	l.pieces[i].Scale = scale
	return true
}

// Clear removes every piece.
func (l *Layout) Clear() {
	l.pieces = nil
}

// Len returns the number of placed pieces.
func (l *Layout) Len() int {
	return len(l.pieces)
}

// Pieces returns a snapshot of the layout in insertion order.
func (l *Layout) Pieces() []PlacedPiece {
	return copyPieces(l.pieces)
}

// Replace swaps the whole contents, e.g. when restoring from history.
func (l *Layout) Replace(pieces []PlacedPiece) {
	l.pieces = copyPieces(pieces)
}

func (l *Layout) index(id string) int {
	for i := range l.pieces {
		if l.pieces[i].ID == id {
			return i
		}
	}
	return -1
}

func copyPieces(pieces []PlacedPiece) []PlacedPiece {
	if pieces == nil {
		return []PlacedPiece{}
	}
	cp := make([]PlacedPiece, len(pieces))
	copy(cp, pieces)
	return cp
}
