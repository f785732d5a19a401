package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/citysnap/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// outline is a closed polygon in drawing units. DXF Y maps to world Z.
type outline []model.Point2D

// bounds returns the min and max corners of the outline.
func (o outline) bounds() (min, max model.Point2D) {
	if len(o) == 0 {
		return model.Point2D{}, model.Point2D{}
	}
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Z = math.Max(max.Z, p.Z)
	}
	return min, max
}

// area computes the absolute polygon area using the shoelace formula.
func (o outline) area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += o[i].X*o[j].Z - o[j].X*o[i].Z
	}
	return math.Abs(a) / 2
}

// segment is a line between two points, used for chaining loose LINE and
// ARC entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// ImportDXF reads footprints from a DXF drawing. Each closed shape
// (LWPOLYLINE, CIRCLE, or chain of LINEs/ARCs) becomes one piece whose
// width and depth are the shape's bounding box. scale converts drawing
// units to world units and must be positive.
func ImportDXF(path string, scale float64) ImportResult {
	result := ImportResult{}
	if !(scale > 0) {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid scale %v", scale))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := make(outline, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				o = append(o, model.Point2D{X: v[0], Z: v[1]})
			}
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleOutline(e.Center[0], e.Center[1], e.Radius, 32))

		case *entity.Arc:
			pts := arcPoints(e, 16)
			for i := 0; i+1 < len(pts); i++ {
				segments = append(segments, segment{start: pts[i], end: pts[i+1]})
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Z: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Z: e.End[1]},
			})
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, o := range outlines {
		min, max := o.bounds()
		width := (max.X - min.X) * scale
		depth := (max.Z - min.Z) * scale

		if width < 0.01 || depth < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", width, depth))
			continue
		}

		result.Pieces = append(result.Pieces, model.PieceDefinition{
			ID:    fmt.Sprintf("dxf-piece-%d", i+1),
			Label: fmt.Sprintf("DXF Piece %d", i+1),
			Width: width,
			Depth: depth,
		})
	}

	return result
}

// circleOutline approximates a circle as a regular polygon.
func circleOutline(cx, cz, r float64, n int) outline {
	o := make(outline, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		o[i] = model.Point2D{X: cx + r*math.Cos(a), Z: cz + r*math.Sin(a)}
	}
	return o
}

// arcPoints converts a DXF ARC entity to a series of points.
func arcPoints(a *entity.Arc, n int) []model.Point2D {
	cx, cz := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]model.Point2D, n+1)
	for i := 0; i <= n; i++ {
		t := start + float64(i)/float64(n)*(end-start)
		pts[i] = model.Point2D{X: cx + r*math.Cos(t), Z: cz + r*math.Sin(t)}
	}
	return pts
}

// chainSegments connects segments whose endpoints lie within tolerance into
// closed outlines, largest first.
func chainSegments(segs []segment, tolerance float64) []outline {
	used := make([]bool, len(segs))
	var outlines []outline

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := outline{segs[start].start, segs[start].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, s := range segs {
				if used[i] {
					continue
				}
				if tail.DistanceTo(s.start) <= tolerance {
					chain = append(chain, s.end)
				} else if tail.DistanceTo(s.end) <= tolerance {
					chain = append(chain, s.start)
				} else {
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		closed := len(chain) >= 4 && chain[0].DistanceTo(chain[len(chain)-1]) <= tolerance
		if closed {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].area() > outlines[j].area()
	})
	return outlines
}
