package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/citysnap/internal/model"
)

// overlapTolerance is how far two footprints must interpenetrate on every
// axis before they count as overlapping. Flush neighbours touch at 0.
const overlapTolerance = 1e-6

// Overlap reports two placed pieces whose footprints intersect.
type Overlap struct {
	First  string  // instance ID, earlier in placed order
	Second string  // instance ID
	Depth  float64 // smallest penetration across the separating axes
}

// footprint is a placed piece's rectangle in world space.
type footprint struct {
	center       model.Point2D
	axisX, axisZ model.Point2D // unit vectors of the local X and Z directions
	halfW, halfD float64
}

func newFootprint(p model.PlacedPiece, def model.PieceDefinition) footprint {
	halfW, halfD := def.HalfExtents()
	sin, cos := model.SinCos(p.Rotation)
	return footprint{
		center: p.Center(),
		axisX:  model.Point2D{X: cos, Z: -sin},
		axisZ:  model.Point2D{X: sin, Z: cos},
		halfW:  halfW,
		halfD:  halfD,
	}
}

// radius returns the half extent of f projected onto axis.
func (f footprint) radius(axis model.Point2D) float64 {
	return f.halfW*math.Abs(dot(f.axisX, axis)) + f.halfD*math.Abs(dot(f.axisZ, axis))
}

// penetration runs the separating axis test on two rectangles and returns
// the minimum overlap across the four candidate axes. A value <= 0 means
// they are separated or only touching.
func penetration(a, b footprint) float64 {
	d := model.Point2D{X: b.center.X - a.center.X, Z: b.center.Z - a.center.Z}
	minDepth := math.Inf(1)
	for _, axis := range [4]model.Point2D{a.axisX, a.axisZ, b.axisX, b.axisZ} {
		depth := a.radius(axis) + b.radius(axis) - math.Abs(dot(d, axis))
		if depth < minDepth {
			minDepth = depth
		}
	}
	return minDepth
}

func dot(a, b model.Point2D) float64 {
	return a.X*b.X + a.Z*b.Z
}

// Overlaps lists every pair of pieces in placed whose footprints intersect.
// Pieces that do not resolve are skipped, as in the snap search.
func (e *Engine) Overlaps(placed []model.PlacedPiece) []Overlap {
	type entry struct {
		id   string
		fp   footprint
		diag float64
	}
	entries := make([]entry, 0, len(placed))
	for _, p := range placed {
		def, err := e.Pieces.Lookup(p.PieceID)
		if err != nil {
			continue
		}
		entries = append(entries, entry{id: p.ID, fp: newFootprint(p, def), diag: def.HalfDiagonal()})
	}

	var out []Overlap
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if a.fp.center.DistanceTo(b.fp.center) >= a.diag+b.diag {
				continue
			}
			if depth := penetration(a.fp, b.fp); depth > overlapTolerance {
				out = append(out, Overlap{First: a.id, Second: b.id, Depth: depth})
			}
		}
	}
	return out
}

// OverlapsWith lists the pieces in placed that the candidate piece would intersect.
func (e *Engine) OverlapsWith(candidate model.PlacedPiece, placed []model.PlacedPiece) []Overlap {
	def, err := e.Pieces.Lookup(candidate.PieceID)
	if err != nil {
		return nil
	}
	fp := newFootprint(candidate, def)

	var out []Overlap
	for _, p := range placed {
		if p.ID == candidate.ID {
			continue
		}
		pd, err := e.Pieces.Lookup(p.PieceID)
		if err != nil {
			continue
		}
		if depth := penetration(newFootprint(p, pd), fp); depth > overlapTolerance {
			out = append(out, Overlap{First: p.ID, Second: candidate.ID, Depth: depth})
		}
	}
	return out
}

// FormatOverlapWarnings produces human-readable messages for overlaps.
func FormatOverlapWarnings(overlaps []Overlap) []string {
	warnings := make([]string, 0, len(overlaps))
	for _, o := range overlaps {
		warnings = append(warnings, fmt.Sprintf("pieces %s and %s overlap by %.2f units", o.First, o.Second, o.Depth))
	}
	return warnings
}
