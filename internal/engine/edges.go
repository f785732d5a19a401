package engine

import "github.com/piwi3910/citysnap/internal/model"

// EdgePoint is the world-space midpoint of one side of a placed piece.
// Opposing names the side of a new piece that must face it for a flush join.
type EdgePoint struct {
	X        float64
	Z        float64
	Opposing model.Edge
}

// Point returns the edge midpoint as a Point2D.
func (e EdgePoint) Point() model.Point2D {
	return model.Point2D{X: e.X, Z: e.Z}
}

// EdgePoints holds the four side midpoints of a placed piece.
type EdgePoints struct {
	North EdgePoint
	South EdgePoint
	East  EdgePoint
	West  EdgePoint
}

// Get returns the midpoint of the given side.
func (ep EdgePoints) Get(e model.Edge) EdgePoint {
	switch e {
	case model.EdgeNorth:
		return ep.North
	case model.EdgeSouth:
		return ep.South
	case model.EdgeEast:
		return ep.East
	default:
		return ep.West
	}
}

// ComputeEdgePoints rotates the four face offsets (0, ±halfD) and (±halfW, 0)
// of def about the piece centre. The piece's Scale is ignored: footprints
// are always in catalog units.
func ComputeEdgePoints(p model.PlacedPiece, def model.PieceDefinition) EdgePoints {
	halfW, halfD := def.HalfExtents()
	sin, cos := model.SinCos(p.Rotation)

	return EdgePoints{
		North: EdgePoint{X: p.X - sin*halfD, Z: p.Z - cos*halfD, Opposing: model.EdgeSouth},
		South: EdgePoint{X: p.X + sin*halfD, Z: p.Z + cos*halfD, Opposing: model.EdgeNorth},
		East:  EdgePoint{X: p.X + cos*halfW, Z: p.Z - sin*halfW, Opposing: model.EdgeWest},
		West:  EdgePoint{X: p.X - cos*halfW, Z: p.Z + sin*halfW, Opposing: model.EdgeEast},
	}
}

// FlushCenter returns where a new piece of def at rotation must sit so that
// its edge.Opposing side touches the edge point.
func FlushCenter(edge EdgePoint, def model.PieceDefinition, rotation float64) model.Point2D {
	halfW, halfD := def.HalfExtents()
	sin, cos := model.SinCos(rotation)

	var dx, dz float64
	switch edge.Opposing {
	case model.EdgeNorth:
		dx, dz = sin*halfD, cos*halfD
	case model.EdgeSouth:
		dx, dz = -sin*halfD, -cos*halfD
	case model.EdgeWest:
		dx, dz = cos*halfW, -sin*halfW
	case model.EdgeEast:
		dx, dz = -cos*halfW, sin*halfW
	}
	return model.Point2D{X: edge.X + dx, Z: edge.Z + dz}
}
