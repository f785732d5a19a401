package editor

import (
	"testing"

	"github.com/piwi3910/citysnap/internal/catalog"
	"github.com/piwi3910/citysnap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	cat, err := catalog.New([]model.PieceDefinition{
		{ID: "A", Width: 2, Depth: 2},
		{ID: "B", Width: 4, Depth: 2},
	})
	require.NoError(t, err)
	return New(cat, model.DefaultSnapSettings())
}

func TestCommitSnapsAgainstExistingPiece(t *testing.T) {
	ed := newTestEditor(t)
	require.NoError(t, ed.Select("A"))

	first, err := ed.Commit(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.X)
	assert.Equal(t, 0.0, first.Z)

	preview := ed.Preview(0, 1.9)
	assert.True(t, preview.Snapped)

	second, err := ed.Commit(0, 1.9)
	require.NoError(t, err)
	assert.Equal(t, model.Point2D{X: 0, Z: 2}, second.Center())
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, ed.Pieces(), 2)
}

func TestCommitWithoutSelectionFails(t *testing.T) {
	ed := newTestEditor(t)

	_, err := ed.Commit(0, 0)
	assert.ErrorIs(t, err, catalog.ErrUnknownPiece)
	assert.Empty(t, ed.Pieces())
}

func TestSelectUnknownPiece(t *testing.T) {
	ed := newTestEditor(t)

	assert.ErrorIs(t, ed.Select("nope"), catalog.ErrUnknownPiece)
	id, _ := ed.Selection()
	assert.Equal(t, "", id)
}

func TestRotateSelectionWraps(t *testing.T) {
	ed := newTestEditor(t)
	require.NoError(t, ed.Select("B"))

	ed.RotateSelection(1)
	_, rot := ed.Selection()
	assert.Equal(t, 90.0, rot)

	ed.RotateSelection(-2)
	_, rot = ed.Selection()
	assert.Equal(t, 270.0, rot)

	ed.RotateSelection(5)
	_, rot = ed.Selection()
	assert.Equal(t, 0.0, rot)
}

func TestSetRotationChangesPreview(t *testing.T) {
	ed := newTestEditor(t)
	require.NoError(t, ed.Select("A"))
	_, err := ed.Commit(0, 0)
	require.NoError(t, err)
	require.NoError(t, ed.Select("B"))

	ed.SetRotation(-270)
	_, rot := ed.Selection()
	assert.Equal(t, 90.0, rot)

	// Against A's east side, quarter-turned B hangs 2 units toward -Z.
	res := ed.Preview(1.3, -2.4)
	assert.True(t, res.Snapped)
	assert.InDelta(t, 1.0, res.X, 1e-9)
	assert.InDelta(t, -2.0, res.Z, 1e-9)
}

func TestRotateNudgeDelete(t *testing.T) {
	ed := newTestEditor(t)
	require.NoError(t, ed.Select("A"))
	p, err := ed.Commit(5, 5)
	require.NoError(t, err)

	assert.True(t, ed.Rotate(p.ID, 3))
	got, ok := ed.Find(p.ID)
	require.True(t, ok)
	assert.Equal(t, 270.0, got.Rotation)

	assert.True(t, ed.Nudge(p.ID, 2, -1))
	got, _ = ed.Find(p.ID)
	assert.Equal(t, 6.0, got.X)
	assert.Equal(t, 4.5, got.Z)

	assert.True(t, ed.Delete(p.ID))
	assert.Empty(t, ed.Pieces())
	assert.False(t, ed.Delete(p.ID))
	assert.False(t, ed.Rotate("missing", 1))
	assert.False(t, ed.Nudge("missing", 1, 1))
}

func TestUndoRedo(t *testing.T) {
	ed := newTestEditor(t)
	require.NoError(t, ed.Select("A"))
	p, err := ed.Commit(0, 0)
	require.NoError(t, err)
	require.True(t, ed.Nudge(p.ID, 1, 0))

	require.True(t, ed.Undo())
	got, ok := ed.Find(p.ID)
	require.True(t, ok)
	assert.Equal(t, 0.0, got.X)

	require.True(t, ed.Undo())
	assert.Empty(t, ed.Pieces())
	assert.False(t, ed.Undo())

	require.True(t, ed.Redo())
	require.True(t, ed.Redo())
	got, _ = ed.Find(p.ID)
	assert.Equal(t, 0.5, got.X)
	assert.False(t, ed.Redo())
}

func TestClearIsUndoable(t *testing.T) {
	ed := newTestEditor(t)
	require.NoError(t, ed.Select("A"))
	_, _ = ed.Commit(0, 0)
	_, _ = ed.Commit(10, 10)

	ed.Clear()
	assert.Empty(t, ed.Pieces())
	require.True(t, ed.Undo())
	assert.Len(t, ed.Pieces(), 2)
}

func TestLoadRejectsUnknownPieces(t *testing.T) {
	ed := newTestEditor(t)

	err := ed.Load([]model.PlacedPiece{{ID: "x", PieceID: "ghost"}})
	assert.ErrorIs(t, err, catalog.ErrUnknownPiece)

	err = ed.Load([]model.PlacedPiece{model.NewPlacedPiece("A", 1, 1, 0)})
	require.NoError(t, err)
	assert.Len(t, ed.Pieces(), 1)
	assert.False(t, ed.Undo())
}

func TestStampBlueprint(t *testing.T) {
	ed := newTestEditor(t)
	bp := model.NewBlueprint("pair", "", []model.PlacedPiece{
		model.NewPlacedPiece("A", 10, 10, 0),
		model.NewPlacedPiece("B", 13, 10, 90),
	}, model.Point2D{X: 10, Z: 10})

	pieces, err := ed.Stamp(bp, model.Point2D{X: -5, Z: 0})
	require.NoError(t, err)
	require.Len(t, pieces, 2)
	assert.Equal(t, model.Point2D{X: -5, Z: 0}, pieces[0].Center())
	assert.Equal(t, model.Point2D{X: -2, Z: 0}, pieces[1].Center())

	require.True(t, ed.Undo())
	assert.Empty(t, ed.Pieces())

	bad := model.NewBlueprint("bad", "", []model.PlacedPiece{{PieceID: "ghost"}}, model.Point2D{})
	_, err = ed.Stamp(bad, model.Point2D{})
	assert.ErrorIs(t, err, catalog.ErrUnknownPiece)
}

func TestOverlapsAfterNudge(t *testing.T) {
	ed := newTestEditor(t)
	require.NoError(t, ed.Select("A"))
	a, err := ed.Commit(0, 0)
	require.NoError(t, err)
	b, err := ed.Commit(0.1, 1.9)
	require.NoError(t, err)
	assert.Empty(t, ed.Overlaps())

	// One nudge step toward a pushes b half a unit into it.
	require.True(t, ed.Nudge(b.ID, 0, -1))
	got := ed.Overlaps()
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].First)
	assert.InDelta(t, 0.5, got[0].Depth, 1e-9)
}
