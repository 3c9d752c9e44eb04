package geom

// Clip cuts s to the rectangle b using the Liang–Barsky algorithm.
// It reports false when no part of s lies inside b. Endpoints already inside
// b are returned unchanged, and cut points are clamped onto the boundary, so
// clipping an already clipped segment is a no-op.
func Clip(s Segment, b Bounds) (Segment, bool) {
	minX, maxX := b.MinX(), b.MaxX()
	minY, maxY := b.MinY(), b.MaxY()

	x0, y0 := s.Start.X, s.Start.Y
	dx := s.End.X - x0
	dy := s.End.Y - y0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - minX, maxX - x0, y0 - minY, maxY - y0}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			// Parallel to this edge: either fully outside or unconstrained.
			if q[i] < 0 {
				return Segment{}, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return Segment{}, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return Segment{}, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	if t0 == 0 && t1 == 1 {
		return s, true
	}

	line := s.Line()
	out := s
	if t0 > 0 {
		out.Start = clampTo(line.Eval(t0), minX, maxX, minY, maxY)
	}
	if t1 < 1 {
		out.End = clampTo(line.Eval(t1), minX, maxX, minY, maxY)
	}
	return out, true
}

func clampTo(p Point, minX, maxX, minY, maxY float64) Point {
	return Pt(min(max(p.X, minX), maxX), min(max(p.Y, minY), maxY))
}

// ClipAll clips every segment to b, dropping empty segments and segments
// that lie entirely outside. It also returns how many segments were cut and
// how many were dropped.
func ClipAll(segments []Segment, b Bounds) (out []Segment, cut, dropped int) {
	out = make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.Empty() {
			dropped++
			continue
		}
		c, ok := Clip(s, b)
		if !ok || c.Empty() {
			dropped++
			continue
		}
		if c != s {
			cut++
		}
		out = append(out, c)
	}
	return out, cut, dropped
}
