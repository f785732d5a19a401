package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-360, 0},
		{720.5, 0.5},
		{-1e-20, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRotation(tt.in), "NormalizeRotation(%v)", tt.in)
	}
}

func TestSinCosQuarterTurnsAreExact(t *testing.T) {
	cases := map[float64][2]float64{
		0:    {0, 1},
		90:   {1, 0},
		180:  {0, -1},
		270:  {-1, 0},
		-90:  {-1, 0},
		450:  {1, 0},
		1080: {0, 1},
	}
	for deg, want := range cases {
		s, c := SinCos(deg)
		assert.Equal(t, want[0], s, "sin(%v)", deg)
		assert.Equal(t, want[1], c, "cos(%v)", deg)
	}
}

func TestSinCosArbitraryAngle(t *testing.T) {
	s, c := SinCos(30)
	assert.InDelta(t, 0.5, s, 1e-12)
	assert.InDelta(t, math.Sqrt(3)/2, c, 1e-12)

	s2, c2 := SinCos(390)
	assert.Equal(t, s, s2)
	assert.Equal(t, c, c2)
}

func TestEdgeOpposite(t *testing.T) {
	assert.Equal(t, EdgeSouth, EdgeNorth.Opposite())
	assert.Equal(t, EdgeNorth, EdgeSouth.Opposite())
	assert.Equal(t, EdgeWest, EdgeEast.Opposite())
	assert.Equal(t, EdgeEast, EdgeWest.Opposite())
	for _, e := range Edges {
		assert.Equal(t, e, e.Opposite().Opposite())
	}
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "north", EdgeNorth.String())
	assert.Equal(t, "west", EdgeWest.String())
	assert.Equal(t, "unknown", Edge(42).String())
}

func TestNewPlacedPiece(t *testing.T) {
	p := NewPlacedPiece("tower", 1, 2, -90)
	assert.Len(t, p.ID, 8)
	assert.Equal(t, "tower", p.PieceID)
	assert.Equal(t, 270.0, p.Rotation)
	assert.Equal(t, 1.0, p.Scale)
	assert.Equal(t, Point2D{X: 1, Z: 2}, p.Center())

	q := NewPlacedPiece("tower", 1, 2, 0)
	assert.NotEqual(t, p.ID, q.ID)
}

func TestPieceDefinitionExtents(t *testing.T) {
	d := PieceDefinition{ID: "x", Width: 6, Depth: 8}
	hw, hd := d.HalfExtents()
	assert.Equal(t, 3.0, hw)
	assert.Equal(t, 4.0, hd)
	assert.Equal(t, 5.0, d.HalfDiagonal())
}

func TestPointDistance(t *testing.T) {
	assert.Equal(t, 5.0, Point2D{X: 0, Z: 0}.DistanceTo(Point2D{X: 3, Z: 4}))
}
