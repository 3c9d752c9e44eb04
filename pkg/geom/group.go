package geom

import (
	"cmp"
	"math"
	"slices"
)

// GroupTolerance is the distance under which two endpoints are treated as
// the same point when chaining segments.
const GroupTolerance = 1e-6

type pointKey struct{ x, y int64 }

func keyOf(p Point, tol float64) pointKey {
	return pointKey{int64(math.Floor(p.X / tol)), int64(math.Floor(p.Y / tol))}
}

// pointIndex buckets points on a tol-sized grid. Two points within tol of
// each other always sit in the same or adjacent cells.
type pointIndex struct {
	tol     float64
	pts     []Point
	buckets map[pointKey][]int
}

func newPointIndex(tol float64, n int) *pointIndex {
	return &pointIndex{tol: tol, pts: make([]Point, 0, n), buckets: make(map[pointKey][]int, n)}
}

func (ix *pointIndex) add(p Point) {
	k := keyOf(p, ix.tol)
	ix.buckets[k] = append(ix.buckets[k], len(ix.pts))
	ix.pts = append(ix.pts, p)
}

// first returns the smallest index within tol of p that accept allows, or -1.
func (ix *pointIndex) first(p Point, accept func(int) bool) int {
	k := keyOf(p, ix.tol)
	best := -1
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, i := range ix.buckets[pointKey{k.x + dx, k.y + dy}] {
				if best >= 0 && i >= best {
					continue
				}
				q := ix.pts[i]
				if math.Hypot(q.X-p.X, q.Y-p.Y) <= ix.tol && accept(i) {
					best = i
				}
			}
		}
	}
	return best
}

func compareSegments(a, b Segment) int {
	return cmp.Or(
		cmp.Compare(a.Start.X, b.Start.X),
		cmp.Compare(a.Start.Y, b.Start.Y),
		cmp.Compare(a.End.X, b.End.X),
		cmp.Compare(a.End.Y, b.End.Y),
	)
}

// Group chains segments into polylines. A segment is appended to a polyline
// when its start lies within Euclidean distance tol of the polyline's last
// point; among several candidates the first in canonical order wins.
// Segments are sorted into that canonical order first, so the result only
// depends on the set of segments, not on the order they were passed in.
//
// Chains start at segments whose start is not the end of any other segment;
// whatever remains afterwards belongs to closed loops, which are opened at
// their smallest segment.
func Group(segments []Segment, tol float64) []Polyline {
	if len(segments) == 0 {
		return nil
	}
	if tol <= 0 {
		tol = GroupTolerance
	}

	sorted := slices.Clone(segments)
	slices.SortFunc(sorted, compareSegments)

	starts := newPointIndex(tol, len(sorted))
	ends := newPointIndex(tol, len(sorted))
	for _, s := range sorted {
		starts.add(s.Start)
		ends.add(s.End)
	}

	used := make([]bool, len(sorted))
	unused := func(i int) bool { return !used[i] }
	always := func(int) bool { return true }
	var lines []Polyline

	follow := func(first int) Polyline {
		used[first] = true
		line := Polyline{sorted[first].Start, sorted[first].End}
		for {
			next := starts.first(line[len(line)-1], unused)
			if next < 0 {
				return line
			}
			used[next] = true
			line = append(line, sorted[next].End)
		}
	}

	for i, s := range sorted {
		if used[i] || ends.first(s.Start, always) >= 0 {
			continue
		}
		lines = append(lines, follow(i))
	}
	for i := range sorted {
		if !used[i] {
			lines = append(lines, follow(i))
		}
	}
	return lines
}
