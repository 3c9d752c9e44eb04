package slopes

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/slopes/pkg/errors"
	"github.com/matzehuels/slopes/pkg/geom"
	"github.com/matzehuels/slopes/pkg/noise"
)

// scenarioConfig is a 4-sample, 2-row page small enough to check by hand:
// samples at x = 10, 30, 50, 70 and baselines at y = 80 and 75.
func scenarioConfig() Config {
	return Config{
		Width:               100,
		Height:              100,
		Margins:             Margins{Vertical: 10, Horizontal: 10},
		DistanceBetweenRows: 5,
		PerlinRatio:         1,
		SamplesPerRow:       4,
		NumRows:             2,
		RowHeightRatio:      0.1,
	}
}

// byRow returns a different constant noise value for each row.
func byRow(values ...float64) noise.Oracle {
	return noise.Func(func(_, y float64) float64 {
		return values[int(math.Round(y/RowNoiseStep))]
	})
}

func TestBuildRowScenario(t *testing.T) {
	cfg := scenarioConfig()
	env := NewEnvelope(noise.Constant(0.5))

	tests := []struct {
		row  int
		want []geom.Point
	}{
		{0, []geom.Point{geom.Pt(10, 80), geom.Pt(30, 80.265625), geom.Pt(50, 84.25), geom.Pt(70, 80.265625)}},
		{1, []geom.Point{geom.Pt(10, 75), geom.Pt(30, 75.3125), geom.Pt(50, 80), geom.Pt(70, 75.3125)}},
	}

	for _, tt := range tests {
		row := BuildRow(cfg, env, tt.row, neutralJitter{})
		if diff := cmp.Diff(tt.want, row.Points, approx); diff != "" {
			t.Errorf("row %d points mismatch (-want +got):\n%s", tt.row, diff)
		}
		if row.InvalidSamples() != 0 {
			t.Errorf("row %d InvalidSamples() = %d, want 0", tt.row, row.InvalidSamples())
		}
		if got := len(row.Segments()); got != 3 {
			t.Errorf("row %d has %d segments, want 3", tt.row, got)
		}
	}
}

func TestRowSegmentRange(t *testing.T) {
	cfg := scenarioConfig()
	row := BuildRow(cfg, NewEnvelope(noise.Constant(0)), 0, neutralJitter{})

	for _, i := range []int{-1, 0, 4, 5} {
		if _, ok := row.Segment(i); ok {
			t.Errorf("Segment(%d) ok = true, want false", i)
		}
	}
	s, ok := row.Segment(2)
	if !ok {
		t.Fatal("Segment(2) ok = false, want true")
	}
	if s.Start != row.Points[1] || s.End != row.Points[2] {
		t.Errorf("Segment(2) = %v, want samples 1 and 2", s)
	}
}

func TestGenerateScenarioUnoccluded(t *testing.T) {
	d, err := Generate(context.Background(), scenarioConfig(), WithNoise(noise.Constant(0.5)))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Row 1 stays above row 0 everywhere, so both survive whole.
	want := []geom.Polyline{
		{geom.Pt(10, 75), geom.Pt(30, 75.3125), geom.Pt(50, 80), geom.Pt(70, 75.3125)},
		{geom.Pt(10, 80), geom.Pt(30, 80.265625), geom.Pt(50, 84.25), geom.Pt(70, 80.265625)},
	}
	if diff := cmp.Diff(want, d.Polylines, approx); diff != "" {
		t.Errorf("Polylines mismatch (-want +got):\n%s", diff)
	}
	if d.Stats.HiddenSegments != 0 || d.Stats.OccludedSegments != 0 {
		t.Errorf("Stats = %+v, want nothing occluded", d.Stats)
	}
}

func TestGenerateScenarioOccluded(t *testing.T) {
	// Row 0 rises to y = 71.5 while row 1 sinks to y = 85, so the middle of
	// row 1 falls behind row 0.
	d, err := Generate(context.Background(), scenarioConfig(), WithNoise(byRow(-1, 1)))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []geom.Polyline{
		{geom.Pt(10, 75), geom.Pt(30, 75.625), geom.Pt(30+820.0/185, 75.625+384.375/185)},
		{geom.Pt(10, 80), geom.Pt(30, 79.46875), geom.Pt(50, 71.5), geom.Pt(70, 79.46875)},
		{geom.Pt(50+2880.0/185, 85-1350.0/185), geom.Pt(70, 75.625)},
	}
	if diff := cmp.Diff(want, d.Polylines, approx); diff != "" {
		t.Errorf("Polylines mismatch (-want +got):\n%s", diff)
	}

	wantStats := Stats{
		Rows:             2,
		SamplesPerRow:    4,
		RawSegments:      6,
		OccludedSegments: 2,
		VisiblePieces:    6,
		Polylines:        3,
		Points:           9,
	}
	if diff := cmp.Diff(wantStats, d.Stats); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHidesDominatedRow(t *testing.T) {
	cfg := scenarioConfig()
	cfg.SamplesPerRow = 40

	// Row 0 rises and row 1 sinks toward the middle of the page, so the
	// center of row 1 ends up behind row 0.
	d, err := Generate(context.Background(), cfg, WithNoise(byRow(-1, 1)))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if d.Stats.HiddenSegments == 0 {
		t.Errorf("HiddenSegments = 0, want some fully hidden segments")
	}
	for _, line := range d.Polylines {
		for _, p := range line {
			if p.X > 20 && p.X < 60 && p.Y > 80 {
				t.Errorf("point %v of row 1 should be hidden behind row 0", p)
			}
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SamplesPerRow = 80
	cfg.NumRows = 20
	cfg.PerlinRatio = 0.6
	cfg.JitterSeed = 99

	ctx := context.Background()
	a, err := Generate(ctx, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, workers := range []int{1, 3, 8, 0} {
		b, err := Generate(ctx, cfg, WithWorkers(workers))
		if err != nil {
			t.Fatalf("Generate(workers=%d) error = %v", workers, err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("Generate(workers=%d) differs (-first +second):\n%s", workers, diff)
		}
	}

	cfg.JitterSeed = 100
	c, err := Generate(ctx, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if cmp.Equal(a.Polylines, c.Polylines) {
		t.Error("different jitter seeds produced identical drawings")
	}
}

func TestGeneratePerlinOnlyIgnoresJitterSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SamplesPerRow = 50
	cfg.NumRows = 10
	cfg.PerlinRatio = 1

	a := mustGenerate(t, cfg)
	cfg.JitterSeed = 12345
	b := mustGenerate(t, cfg)

	if diff := cmp.Diff(a.Polylines, b.Polylines); diff != "" {
		t.Errorf("jitter changed a perlin-only drawing (-a +b):\n%s", diff)
	}
}

func TestGenerateRanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SamplesPerRow = 120
	cfg.NumRows = 30
	cfg.JitterSeed = 5

	d := mustGenerate(t, cfg)
	if d.Stats.RawSegments != cfg.NumRows*(cfg.SamplesPerRow-1) {
		t.Errorf("RawSegments = %d, want %d", d.Stats.RawSegments, cfg.NumRows*(cfg.SamplesPerRow-1))
	}
	if len(d.Polylines) == 0 {
		t.Fatal("no polylines generated")
	}

	b := cfg.Bounds()
	lastX := cfg.SampleX(cfg.SamplesPerRow - 1)
	for _, line := range d.Polylines {
		if len(line) < 2 {
			t.Fatalf("polyline with %d points", len(line))
		}
		for _, p := range line {
			if p.X < b.MinX() || p.X > lastX || p.Y < b.MinY() || p.Y > b.MaxY() {
				t.Fatalf("point %v outside drawable area", p)
			}
		}
	}
}

func TestGenerateNonFiniteSamples(t *testing.T) {
	cfg := scenarioConfig()
	cfg.SamplesPerRow = 10
	cfg.NumRows = 3

	oracle := noise.Func(func(x, _ float64) float64 {
		if x == 5 {
			return math.NaN()
		}
		return 0
	})
	d, err := Generate(context.Background(), cfg, WithNoise(oracle))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if d.Stats.DroppedSamples != cfg.NumRows {
		t.Errorf("DroppedSamples = %d, want %d", d.Stats.DroppedSamples, cfg.NumRows)
	}
	for _, line := range d.Polylines {
		for _, p := range line {
			if !geom.Finite(p) {
				t.Fatalf("non-finite point %v in output", p)
			}
			if p.X > cfg.SampleX(4) && p.X < cfg.SampleX(6) {
				t.Errorf("point %v bridges the dropped sample", p)
			}
		}
	}
}

func TestGenerateDroppedOccluderShowsRowBehind(t *testing.T) {
	cfg := scenarioConfig()
	cfg.SamplesPerRow = 40

	// Same ridge as TestGenerateHidesDominatedRow, but row 0 loses its
	// middle sample.
	mid := 20
	gapX := float64(mid) / float64(cfg.SamplesPerRow) * NoiseRangePerRow
	oracle := noise.Func(func(x, y float64) float64 {
		if y == 0 {
			if x == gapX {
				return math.NaN()
			}
			return -1
		}
		return 1
	})
	d := mustGenerate(t, cfg, WithNoise(oracle))

	if d.Stats.DroppedSamples != 1 {
		t.Errorf("DroppedSamples = %d, want 1", d.Stats.DroppedSamples)
	}
	lo, hi := cfg.SampleX(mid-1), cfg.SampleX(mid+1)
	showsThrough := false
	for _, line := range d.Polylines {
		for _, p := range line {
			if p.Y <= 80 {
				continue
			}
			switch {
			case p.X == cfg.SampleX(mid):
				showsThrough = true
			case p.X > 20 && p.X < lo-1, p.X > hi+1 && p.X < 60:
				t.Errorf("point %v of row 1 should stay hidden behind row 0", p)
			}
		}
	}
	if !showsThrough {
		t.Errorf("row 1 is hidden at x = %v, want it visible through the gap in row 0", cfg.SampleX(mid))
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Width = -1

	d, err := Generate(context.Background(), cfg)
	if err == nil {
		t.Fatal("Generate() error = nil, want error")
	}
	if d != nil {
		t.Errorf("Generate() drawing = %v, want nil", d)
	}
	if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("code = %v, want %v", perrors.GetCode(err), perrors.ErrCodeInvalidConfig)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, DefaultConfig(), WithWorkers(4))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestSeededJitter(t *testing.T) {
	src := SeededJitter(42)
	a, b := src(3), src(3)
	for range 5 {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("row streams differ: %v != %v", x, y)
		}
	}
	if src(1).Float64() == src(2).Float64() {
		t.Error("rows 1 and 2 share a jitter stream")
	}
}

func TestNoJitterIsReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SamplesPerRow = 60
	cfg.NumRows = 8
	cfg.PerlinRatio = 0.5

	a := mustGenerate(t, cfg, WithJitter(NoJitter()))
	b := mustGenerate(t, cfg, WithJitter(NoJitter()))
	if diff := cmp.Diff(a.Polylines, b.Polylines); diff != "" {
		t.Errorf("NoJitter drawings differ (-a +b):\n%s", diff)
	}
}

func mustGenerate(t *testing.T, cfg Config, opts ...Option) *Drawing {
	t.Helper()
	d, err := Generate(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return d
}
