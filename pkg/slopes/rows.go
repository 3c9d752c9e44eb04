package slopes

import (
	"math"

	"github.com/matzehuels/slopes/pkg/geom"
)

// RowGeometry is the sampled ridge of one row. It is computed once per run
// and never modified afterwards, so later rows may read it concurrently.
type RowGeometry struct {
	Index         int
	Offset        float64
	Amplification float64

	// Points holds one point per sample. Valid[i] is false when the height
	// of sample i was not finite; Points[i] is meaningless in that case.
	Points []geom.Point
	Valid  []bool
}

// BuildRow samples row r. It draws exactly one jitter value per sample, in
// sample order.
func BuildRow(cfg Config, env Envelope, r int, jitter Jitter) RowGeometry {
	row := RowGeometry{
		Index:         r,
		Offset:        cfg.RowOffset(r),
		Amplification: DefaultRowAmplification,
		Points:        make([]geom.Point, cfg.SamplesPerRow),
		Valid:         make([]bool, cfg.SamplesPerRow),
	}
	scale := cfg.RowHeight() * row.Amplification
	for i := range cfg.SamplesPerRow {
		h := env.Height(i, r, cfg.SamplesPerRow, cfg.PerlinRatio, jitter)
		y := h*scale + row.Offset
		row.Points[i] = geom.Pt(cfg.SampleX(i), y)
		row.Valid[i] = !math.IsNaN(y) && !math.IsInf(y, 0)
	}
	return row
}

// Segment returns the raw segment between samples i-1 and i. It reports
// false when i is out of range or either sample is invalid.
func (r *RowGeometry) Segment(i int) (geom.Segment, bool) {
	if i < 1 || i >= len(r.Points) {
		return geom.Segment{}, false
	}
	if !r.Valid[i-1] || !r.Valid[i] {
		return geom.Segment{}, false
	}
	return geom.Segment{Start: r.Points[i-1], End: r.Points[i]}, true
}

// Segments returns every valid raw segment of the row, left to right.
func (r *RowGeometry) Segments() []geom.Segment {
	out := make([]geom.Segment, 0, max(len(r.Points)-1, 0))
	for i := 1; i < len(r.Points); i++ {
		if s, ok := r.Segment(i); ok {
			out = append(out, s)
		}
	}
	return out
}

// InvalidSamples counts samples whose height was not finite.
func (r *RowGeometry) InvalidSamples() int {
	n := 0
	for _, ok := range r.Valid {
		if !ok {
			n++
		}
	}
	return n
}
