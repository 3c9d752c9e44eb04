package geom

// ProcessStats counts what post-processing did to a batch of segments.
type ProcessStats struct {
	Input     int // segments received
	Clipped   int // segments cut at the margin
	Dropped   int // empty or fully outside segments
	Polylines int // polylines produced
}

// Process clips segments to bounds and groups the survivors into polylines.
func Process(segments []Segment, bounds Bounds) []Polyline {
	lines, _ := ProcessWithStats(segments, bounds)
	return lines
}

// ProcessWithStats is like [Process] but also reports what was clipped and
// dropped along the way.
func ProcessWithStats(segments []Segment, bounds Bounds) ([]Polyline, ProcessStats) {
	clipped, cut, dropped := ClipAll(segments, bounds)
	lines := Group(clipped, GroupTolerance)
	return lines, ProcessStats{
		Input:     len(segments),
		Clipped:   cut,
		Dropped:   dropped,
		Polylines: len(lines),
	}
}
