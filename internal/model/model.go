package model

import (
	"math"

	"github.com/google/uuid"
)

// Edge identifies one of the four local sides of a piece footprint.
type Edge int

const (
	EdgeNorth Edge = iota // local -Z side
	EdgeSouth             // local +Z side
	EdgeEast              // local +X side
	EdgeWest              // local -X side
)

func (e Edge) String() string {
	switch e {
	case EdgeNorth:
		return "north"
	case EdgeSouth:
		return "south"
	case EdgeEast:
		return "east"
	case EdgeWest:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the side that faces this one across a flush join.
func (e Edge) Opposite() Edge {
	switch e {
	case EdgeNorth:
		return EdgeSouth
	case EdgeSouth:
		return EdgeNorth
	case EdgeEast:
		return EdgeWest
	default:
		return EdgeEast
	}
}

// Edges lists the four sides in the order the snap search visits them.
var Edges = [4]Edge{EdgeNorth, EdgeSouth, EdgeEast, EdgeWest}

// Point2D is a position on the ground plane in world units.
type Point2D struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point2D) DistanceTo(o Point2D) float64 {
	return math.Hypot(p.X-o.X, p.Z-o.Z)
}

// PieceDefinition is an immutable catalog entry describing a building piece.
type PieceDefinition struct {
	ID       string  `json:"id" toml:"id"`
	Label    string  `json:"label,omitempty" toml:"label,omitempty"`
	Width    float64 `json:"width" toml:"width"` // local X extent, world units
	Depth    float64 `json:"depth" toml:"depth"` // local Z extent, world units
	Category string  `json:"category,omitempty" toml:"category,omitempty"`
}

// HalfExtents returns half the width and half the depth.
func (d PieceDefinition) HalfExtents() (halfW, halfD float64) {
	return d.Width / 2, d.Depth / 2
}

// HalfDiagonal returns the distance from the centre to any corner.
func (d PieceDefinition) HalfDiagonal() float64 {
	return math.Hypot(d.Width, d.Depth) / 2
}

// PlacedPiece is one instance of a catalog piece dropped into a layout.
type PlacedPiece struct {
	ID       string  `json:"id"`
	PieceID  string  `json:"piece_id"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"` // degrees clockwise from +Z, in [0, 360)
	Scale    float64 `json:"scale"`    // render only; footprint math ignores it
}

// NewPlacedPiece creates a placed piece with a fresh instance ID.
func NewPlacedPiece(pieceID string, x, z, rotation float64) PlacedPiece {
	return PlacedPiece{
		ID:       uuid.New().String()[:8],
		PieceID:  pieceID,
		X:        x,
		Z:        z,
		Rotation: NormalizeRotation(rotation),
		Scale:    1,
	}
}

// Center returns the piece position as a point.
func (p PlacedPiece) Center() Point2D {
	return Point2D{X: p.X, Z: p.Z}
}

// NormalizeRotation maps any angle in degrees into [0, 360).
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 || r == 0 {
		return 0 // also folds -0
	}
	return r
}

// SinCos returns the sine and cosine of a heading in degrees. Quarter turns
// are returned exactly so axis-aligned layouts stay on integer coordinates.
func SinCos(deg float64) (sin, cos float64) {
	r := NormalizeRotation(deg)
	switch r {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(r * math.Pi / 180)
}
