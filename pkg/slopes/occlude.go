package slopes

import (
	"math"

	"github.com/matzehuels/slopes/pkg/geom"
)

// CandidateRows returns the rows in front of row r whose ridges can reach
// it: rows j < r whose baselines are no further apart than the sum of both
// rows' peak heights. Indices are returned nearest row first.
func CandidateRows(r int, rows []RowGeometry, rowHeight float64) []int {
	var out []int
	for j := 0; j < r && j < len(rows); j++ {
		reach := rowHeight * (rows[j].Amplification + rows[r].Amplification)
		if math.Abs(rows[j].Offset-rows[r].Offset) <= reach {
			out = append(out, j)
		}
	}
	return out
}

type span struct{ lo, hi float64 }

// Occlude returns the parts of seg that no occluder hides. A point of seg
// is hidden when it lies strictly below an occluder at the same x (y grows
// downward); touching counts as visible. The visible set does not depend on
// the order of occluders.
//
// Each visible stretch becomes its own segment, in the direction of seg.
// A fully hidden segment yields nil. Vertical segments have no x-extent to
// compare and are returned unchanged.
func Occlude(seg geom.Segment, occluders []geom.Segment) []geom.Segment {
	if seg.Vertical() {
		return []geom.Segment{seg}
	}

	visible := []span{{seg.MinX(), seg.MaxX()}}
	for _, o := range occluders {
		if o.Vertical() || o.Empty() {
			continue
		}
		h, ok := hiddenSpan(seg, o)
		if !ok {
			continue
		}
		visible = subtract(visible, h)
		if len(visible) == 0 {
			return nil
		}
	}

	out := make([]geom.Segment, 0, len(visible))
	if seg.Start.X <= seg.End.X {
		for _, v := range visible {
			out = append(out, seg.Sub(v.lo, v.hi))
		}
		return out
	}
	for i := len(visible) - 1; i >= 0; i-- {
		out = append(out, seg.Sub(visible[i].hi, visible[i].lo))
	}
	return out
}

// hiddenSpan returns the x-range over which o hides seg. Over the shared
// x-range the vertical gap between the two is linear, so the hidden part is
// a single interval bounded by the range ends or the crossing point.
func hiddenSpan(seg, o geom.Segment) (span, bool) {
	a := max(seg.MinX(), o.MinX())
	b := min(seg.MaxX(), o.MaxX())
	if a >= b {
		return span{}, false
	}

	da := seg.YAt(a) - o.YAt(a)
	db := seg.YAt(b) - o.YAt(b)

	switch {
	case da > 0 && db > 0:
		return span{a, b}, true
	case da <= 0 && db <= 0:
		return span{}, false
	}

	x := a + (b-a)*da/(da-db)
	x = min(max(x, a), b)
	if da > 0 {
		return span{a, x}, x > a
	}
	return span{x, b}, x < b
}

// subtract removes h from every span, keeping the boundary points of h on
// the visible side and dropping pieces of zero width.
func subtract(spans []span, h span) []span {
	out := make([]span, 0, len(spans)+1)
	for _, s := range spans {
		if h.hi <= s.lo || h.lo >= s.hi {
			out = append(out, s)
			continue
		}
		if h.lo > s.lo {
			out = append(out, span{s.lo, h.lo})
		}
		if h.hi < s.hi {
			out = append(out, span{h.hi, s.hi})
		}
	}
	return out
}
