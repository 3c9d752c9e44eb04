package geom

import (
	"encoding/json"
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// Point is a position on the page.
type Point = curve.Point

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return curve.Pt(x, y) }

// Bounds is an axis-aligned page rectangle.
type Bounds = curve.Rect

// Inset returns the drawable area of a width×height page after removing the
// horizontal and vertical margins from each side.
func Inset(width, height, horizontal, vertical float64) Bounds {
	return Bounds{
		X0: horizontal,
		Y0: vertical,
		X1: width - horizontal,
		Y1: height - vertical,
	}
}

// Finite reports whether both coordinates of p are neither NaN nor infinite.
func Finite(p Point) bool {
	return !p.IsNaN() && !p.IsInf()
}

// Segment is a straight line between two points.
type Segment struct {
	Start Point
	End   Point
}

// Seg returns the segment from (x0, y0) to (x1, y1).
func Seg(x0, y0, x1, y1 float64) Segment {
	return Segment{Start: Pt(x0, y0), End: Pt(x1, y1)}
}

// Line converts s to a curve.Line.
func (s Segment) Line() curve.Line {
	return curve.Line{P0: s.Start, P1: s.End}
}

// Empty reports whether s has zero length or a non-finite endpoint.
// Empty segments carry nothing a plotter can draw.
func (s Segment) Empty() bool {
	if !Finite(s.Start) || !Finite(s.End) {
		return true
	}
	return s.Start == s.End
}

// Vertical reports whether both endpoints share the same x coordinate.
func (s Segment) Vertical() bool {
	return s.Start.X == s.End.X
}

// MinX returns the smaller x coordinate of the endpoints.
func (s Segment) MinX() float64 { return math.Min(s.Start.X, s.End.X) }

// MaxX returns the larger x coordinate of the endpoints.
func (s Segment) MaxX() float64 { return math.Max(s.Start.X, s.End.X) }

// ParamAt returns the parameter t for which the segment's x equals x.
// The result is meaningless for vertical segments.
func (s Segment) ParamAt(x float64) float64 {
	return (x - s.Start.X) / (s.End.X - s.Start.X)
}

// YAt returns the segment's y at x by linear interpolation.
// The result is meaningless for vertical segments.
func (s Segment) YAt(x float64) float64 {
	t := s.ParamAt(x)
	return s.Start.Y + (s.End.Y-s.Start.Y)*t
}

// Sub returns the piece of s between the x coordinates x0 and x1. Endpoints
// that fall exactly on the original ends are kept bit-for-bit.
func (s Segment) Sub(x0, x1 float64) Segment {
	start, end := s.Start, s.End
	if x0 != s.Start.X {
		start = Pt(x0, s.YAt(x0))
	}
	if x1 != s.End.X {
		end = Pt(x1, s.YAt(x1))
	}
	return Segment{Start: start, End: end}
}

// Polyline is a connected run of at least two points.
type Polyline []Point

// MarshalJSON encodes the polyline as an array of [x, y] pairs.
func (p Polyline) MarshalJSON() ([]byte, error) {
	pairs := make([][2]float64, len(p))
	for i, pt := range p {
		pairs[i] = [2]float64{pt.X, pt.Y}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes an array of [x, y] pairs.
func (p *Polyline) UnmarshalJSON(data []byte) error {
	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("polyline: %w", err)
	}
	out := make(Polyline, len(pairs))
	for i, xy := range pairs {
		out[i] = Pt(xy[0], xy[1])
	}
	*p = out
	return nil
}

// Segments splits the polyline back into its segments.
func (p Polyline) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		out = append(out, Segment{Start: p[i-1], End: p[i]})
	}
	return out
}

// Length returns the summed Euclidean length of the polyline.
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i-1].Distance(p[i])
	}
	return total
}

// BoundsOf returns the smallest rectangle containing every point of every
// polyline. It returns the zero Bounds when there are no points.
func BoundsOf(lines []Polyline) Bounds {
	var (
		b     Bounds
		first = true
	)
	for _, line := range lines {
		for _, p := range line {
			if first {
				b = Bounds{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y}
				first = false
				continue
			}
			b = b.UnionPoint(p)
		}
	}
	return b
}
