// Package engine computes where a new piece should drop so that one of its
// sides sits flush against the nearest side of an already placed piece.
package engine

import (
	"math"

	"github.com/piwi3910/citysnap/internal/model"
)

// pruneSlack absorbs rounding in the reach bound so pruning never drops a
// candidate the full scan would have kept.
const pruneSlack = 1e-9

// Resolver looks up piece footprints. *catalog.Catalog implements it.
type Resolver interface {
	Lookup(pieceID string) (model.PieceDefinition, error)
}

// Result is the drop position for a new piece.
type Result struct {
	X       float64 `json:"x"`
	Z       float64 `json:"z"`
	Snapped bool    `json:"snapped"`
}

// Point returns the drop position as a Point2D.
func (r Result) Point() model.Point2D {
	return model.Point2D{X: r.X, Z: r.Z}
}

// Candidate is one flush position considered by the search.
type Candidate struct {
	PlacedID string     // instance the new piece would join
	Edge     model.Edge // side of the placed piece
	Center   model.Point2D
	Distance float64 // from the cursor to Center
}

// Engine runs snap queries against a piece catalog. It holds no mutable
// state; every call reads only its arguments.
type Engine struct {
	Pieces   Resolver
	Settings model.SnapSettings
}

func New(pieces Resolver, settings model.SnapSettings) *Engine {
	return &Engine{Pieces: pieces, Settings: settings}
}

// FindSnapPosition returns the flush position nearest the cursor when it is
// strictly inside both the consideration and commit distances, and the raw
// cursor otherwise. Placed pieces whose PieceID does not resolve are
// skipped. An unresolved newPieceType never snaps. Ties keep the first
// candidate found, in placed order and then north, south, east, west.
func (e *Engine) FindSnapPosition(cursorX, cursorZ float64, newPieceType string, newRotation float64, placed []model.PlacedPiece) Result {
	raw := Result{X: cursorX, Z: cursorZ}

	best, ok := e.nearest(model.Point2D{X: cursorX, Z: cursorZ}, newPieceType, newRotation, placed)
	if !ok {
		return raw
	}
	if best.Distance < e.Settings.ConsiderDistance() && best.Distance < e.Settings.CommitDistance() {
		return Result{X: best.Center.X, Z: best.Center.Z, Snapped: true}
	}
	return raw
}

// Nearest returns the closest candidate inside the consideration distance,
// whether or not it is close enough to commit.
func (e *Engine) Nearest(cursorX, cursorZ float64, newPieceType string, newRotation float64, placed []model.PlacedPiece) (Candidate, bool) {
	return e.nearest(model.Point2D{X: cursorX, Z: cursorZ}, newPieceType, newRotation, placed)
}

func (e *Engine) nearest(cursor model.Point2D, newPieceType string, newRotation float64, placed []model.PlacedPiece) (Candidate, bool) {
	newDef, err := e.Pieces.Lookup(newPieceType)
	if err != nil {
		return Candidate{}, false
	}

	consider := e.Settings.ConsiderDistance()
	best := Candidate{Distance: math.Inf(1)}
	found := false

	for _, p := range placed {
		def, err := e.Pieces.Lookup(p.PieceID)
		if err != nil {
			continue
		}
		// Every candidate lies within both half diagonals of p's centre.
		reach := def.HalfDiagonal() + newDef.HalfDiagonal()
		if cursor.DistanceTo(p.Center())-reach > consider+pruneSlack {
			continue
		}

		edges := ComputeEdgePoints(p, def)
		for _, side := range model.Edges {
			center := FlushCenter(edges.Get(side), newDef, newRotation)
			d := cursor.DistanceTo(center)
			if d < best.Distance {
				best = Candidate{PlacedID: p.ID, Edge: side, Center: center, Distance: d}
				found = true
			}
		}
	}

	if !found || !(best.Distance < consider) {
		return Candidate{}, false
	}
	return best, true
}

// Candidates lists every flush position for newPieceType against placed,
// without distance filtering, in search order.
func (e *Engine) Candidates(cursorX, cursorZ float64, newPieceType string, newRotation float64, placed []model.PlacedPiece) []Candidate {
	newDef, err := e.Pieces.Lookup(newPieceType)
	if err != nil {
		return nil
	}
	cursor := model.Point2D{X: cursorX, Z: cursorZ}

	var out []Candidate
	for _, p := range placed {
		def, err := e.Pieces.Lookup(p.PieceID)
		if err != nil {
			continue
		}
		edges := ComputeEdgePoints(p, def)
		for _, side := range model.Edges {
			center := FlushCenter(edges.Get(side), newDef, newRotation)
			out = append(out, Candidate{
				PlacedID: p.ID,
				Edge:     side,
				Center:   center,
				Distance: cursor.DistanceTo(center),
			})
		}
	}
	return out
}
