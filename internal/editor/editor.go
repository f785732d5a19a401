// Package editor is the single owner of a city layout. It turns pointer
// events into snap queries and commits placements, keeping undo history.
// It is not safe for concurrent use; the UI thread drives it.
package editor

import (
	"fmt"

	"github.com/piwi3910/citysnap/internal/catalog"
	"github.com/piwi3910/citysnap/internal/engine"
	"github.com/piwi3910/citysnap/internal/model"
)

// Editor ties a catalog, a snap engine, a layout and its history together.
type Editor struct {
	catalog  *catalog.Catalog
	snapper  *engine.Engine
	settings model.SnapSettings
	layout   *model.Layout
	history  *model.History

	selected string  // piece type to place next
	rotation float64 // rotation for the next placement
}

// New creates an editor with an empty layout.
func New(cat *catalog.Catalog, settings model.SnapSettings) *Editor {
	return &Editor{
		catalog:  cat,
		snapper:  engine.New(cat, settings),
		settings: settings,
		layout:   model.NewLayout(),
		history:  model.NewHistory(),
	}
}

// Load replaces the layout with pieces and clears history. Every piece must
// resolve in the catalog.
func (ed *Editor) Load(pieces []model.PlacedPiece) error {
	for _, p := range pieces {
		if _, err := ed.catalog.Lookup(p.PieceID); err != nil {
			return fmt.Errorf("piece %s: %w", p.ID, err)
		}
	}
	ed.layout.Replace(pieces)
	ed.history.Clear()
	return nil
}

// Select sets the piece type used by Preview and Commit.
func (ed *Editor) Select(pieceID string) error {
	if _, err := ed.catalog.Lookup(pieceID); err != nil {
		return err
	}
	ed.selected = pieceID
	return nil
}

// Selection returns the selected piece type and its pending rotation.
func (ed *Editor) Selection() (string, float64) {
	return ed.selected, ed.rotation
}

// RotateSelection turns the pending placement by steps rotation steps.
// Negative steps turn counter-clockwise.
func (ed *Editor) RotateSelection(steps int) {
	ed.rotation = model.NormalizeRotation(ed.rotation + float64(steps)*ed.settings.RotationStep)
}

// SetRotation sets the pending placement rotation in degrees.
func (ed *Editor) SetRotation(deg float64) {
	ed.rotation = model.NormalizeRotation(deg)
}

// Preview returns the ghost position for the current selection.
func (ed *Editor) Preview(cursorX, cursorZ float64) engine.Result {
	return ed.snapper.FindSnapPosition(cursorX, cursorZ, ed.selected, ed.rotation, ed.layout.Pieces())
}

// Commit places the current selection at the snapped cursor position.
func (ed *Editor) Commit(cursorX, cursorZ float64) (model.PlacedPiece, error) {
	if _, err := ed.catalog.Lookup(ed.selected); err != nil {
		return model.PlacedPiece{}, fmt.Errorf("commit: %w", err)
	}
	pos := ed.Preview(cursorX, cursorZ)
	p := model.NewPlacedPiece(ed.selected, pos.X, pos.Z, ed.rotation)

	ed.record("Place " + ed.selected)
	ed.layout.Add(p)
	return p, nil
}

// Stamp adds a blueprint at origin as one undoable step.
func (ed *Editor) Stamp(b model.Blueprint, origin model.Point2D) ([]model.PlacedPiece, error) {
	pieces := b.Stamp(origin)
	for _, p := range pieces {
		if _, err := ed.catalog.Lookup(p.PieceID); err != nil {
			return nil, fmt.Errorf("blueprint %s: %w", b.Name, err)
		}
	}
	ed.record("Stamp " + b.Name)
	for _, p := range pieces {
		ed.layout.Add(p)
	}
	return pieces, nil
}

// Rotate turns a placed piece by steps rotation steps.
func (ed *Editor) Rotate(id string, steps int) bool {
	if _, ok := ed.layout.Find(id); !ok {
		return false
	}
	ed.record("Rotate")
	return ed.layout.Rotate(id, float64(steps)*ed.settings.RotationStep)
}

// Nudge moves a placed piece by whole nudge steps along X and Z.
func (ed *Editor) Nudge(id string, stepsX, stepsZ int) bool {
	if _, ok := ed.layout.Find(id); !ok {
		return false
	}
	ed.record("Nudge")
	return ed.layout.Nudge(id, float64(stepsX)*ed.settings.NudgeStep, float64(stepsZ)*ed.settings.NudgeStep)
}

// Delete removes a placed piece.
func (ed *Editor) Delete(id string) bool {
	if _, ok := ed.layout.Find(id); !ok {
		return false
	}
	ed.record("Delete")
	return ed.layout.Remove(id)
}

// Clear removes every placed piece as one undoable step.
func (ed *Editor) Clear() {
	if ed.layout.Len() == 0 {
		return
	}
	ed.record("Clear")
	ed.layout.Clear()
}

// Undo restores the previous layout. Returns false if there is nothing to undo.
func (ed *Editor) Undo() bool {
	prev, ok := ed.history.Undo(model.MakeSnapshot(ed.layout.Pieces(), "current"))
	if !ok {
		return false
	}
	ed.layout.Replace(prev.Pieces)
	return true
}

// Redo re-applies an undone change. Returns false if there is nothing to redo.
func (ed *Editor) Redo() bool {
	next, ok := ed.history.Redo(model.MakeSnapshot(ed.layout.Pieces(), "current"))
	if !ok {
		return false
	}
	ed.layout.Replace(next.Pieces)
	return true
}

// Pieces returns a snapshot of the layout.
func (ed *Editor) Pieces() []model.PlacedPiece {
	return ed.layout.Pieces()
}

// Overlaps reports pairs of placed pieces whose footprints intersect.
// Free placement and nudging can produce them.
func (ed *Editor) Overlaps() []engine.Overlap {
	return ed.snapper.Overlaps(ed.layout.Pieces())
}

// Find returns a placed piece by instance ID.
func (ed *Editor) Find(id string) (model.PlacedPiece, bool) {
	return ed.layout.Find(id)
}

func (ed *Editor) record(label string) {
	ed.history.Push(model.MakeSnapshot(ed.layout.Pieces(), label))
}
