package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestEvalCubic(t *testing.T) {
	p0, p1, p2, p3 := Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(1, 1)

	tests := []struct {
		t    float64
		want Point
	}{
		{0, Pt(0, 0)},
		{1, Pt(1, 1)},
		{0.5, Pt(0.875, 0.5)},
	}

	for _, tt := range tests {
		got := EvalCubic(p0, p1, p2, p3, tt.t)
		if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("EvalCubic(t=%v) mismatch (-want +got):\n%s", tt.t, diff)
		}
	}
}

func TestSegmentEmpty(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want bool
	}{
		{"normal", Seg(0, 0, 1, 1), false},
		{"zero length", Seg(2, 2, 2, 2), true},
		{"nan", Seg(0, math.NaN(), 1, 1), true},
		{"inf", Seg(0, 0, math.Inf(1), 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentSub(t *testing.T) {
	s := Seg(0, 0, 10, 20)

	got := s.Sub(2, 5)
	want := Seg(2, 4, 5, 10)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Sub(2, 5) mismatch (-want +got):\n%s", diff)
	}

	if got := s.Sub(0, 10); got != s {
		t.Errorf("Sub(0, 10) = %v, want original %v", got, s)
	}
}

func TestClip(t *testing.T) {
	b := Inset(100, 100, 10, 10)

	tests := []struct {
		name   string
		seg    Segment
		want   Segment
		wantOK bool
	}{
		{"inside", Seg(20, 20, 80, 80), Seg(20, 20, 80, 80), true},
		{"on boundary", Seg(10, 50, 90, 50), Seg(10, 50, 90, 50), true},
		{"left of page", Seg(0, 50, 5, 50), Segment{}, false},
		{"below margin", Seg(20, 95, 80, 99), Segment{}, false},
		{"crosses left edge", Seg(0, 50, 20, 50), Seg(10, 50, 20, 50), true},
		{"crosses both edges", Seg(0, 50, 100, 50), Seg(10, 50, 90, 50), true},
		{"crosses bottom edge", Seg(50, 80, 50, 100), Seg(50, 80, 50, 90), true},
		{"diagonal corner cut", Seg(0, 0, 20, 20), Seg(10, 10, 20, 20), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clip(tt.seg, b)
			if ok != tt.wantOK {
				t.Fatalf("Clip() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Clip() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClipIdempotent(t *testing.T) {
	b := Inset(200, 150, 15, 12)
	rng := rand.New(rand.NewPCG(7, 11))

	for i := range 2000 {
		s := Seg(
			rng.Float64()*260-30, rng.Float64()*210-30,
			rng.Float64()*260-30, rng.Float64()*210-30,
		)
		once, ok := Clip(s, b)
		if !ok {
			continue
		}
		twice, ok := Clip(once, b)
		if !ok {
			t.Fatalf("case %d: second Clip rejected %v", i, once)
		}
		if twice != once {
			t.Fatalf("case %d: Clip not idempotent: %v then %v", i, once, twice)
		}
		if !inside(once.Start, b) || !inside(once.End, b) {
			t.Fatalf("case %d: clipped segment %v leaves bounds", i, once)
		}
	}
}

func inside(p Point, b Bounds) bool {
	return p.X >= b.MinX() && p.X <= b.MaxX() && p.Y >= b.MinY() && p.Y <= b.MaxY()
}

func TestClipAll(t *testing.T) {
	b := Inset(100, 100, 10, 10)
	segs := []Segment{
		Seg(20, 20, 30, 30),
		Seg(0, 50, 20, 50),
		Seg(0, 0, 5, 5),
		Seg(40, 40, 40, 40),
	}

	out, cut, dropped := ClipAll(segs, b)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if cut != 1 {
		t.Errorf("cut = %d, want 1", cut)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
		want []Polyline
	}{
		{
			name: "empty",
			segs: nil,
			want: nil,
		},
		{
			name: "single chain",
			segs: []Segment{Seg(1, 0, 2, 1), Seg(0, 0, 1, 0), Seg(2, 1, 3, 1)},
			want: []Polyline{{Pt(0, 0), Pt(1, 0), Pt(2, 1), Pt(3, 1)}},
		},
		{
			name: "gap splits chain",
			segs: []Segment{Seg(0, 0, 1, 0), Seg(2, 0, 3, 0)},
			want: []Polyline{{Pt(0, 0), Pt(1, 0)}, {Pt(2, 0), Pt(3, 0)}},
		},
		{
			name: "within tolerance",
			segs: []Segment{Seg(0, 0, 1, 0), Seg(1+1e-9, 0, 2, 0)},
			want: []Polyline{{Pt(0, 0), Pt(1, 0), Pt(2, 0)}},
		},
		{
			name: "within tolerance across grid cells",
			segs: []Segment{Seg(0, 0, 1.0000005-5e-10, 0), Seg(1.0000005+5e-10, 0, 2, 0)},
			want: []Polyline{{Pt(0, 0), Pt(1.0000005-5e-10, 0), Pt(2, 0)}},
		},
		{
			name: "diagonal beyond tolerance",
			segs: []Segment{Seg(0, 0, 1, 1), Seg(1+0.8e-6, 1+0.8e-6, 2, 2)},
			want: []Polyline{{Pt(0, 0), Pt(1, 1)}, {Pt(1+0.8e-6, 1+0.8e-6), Pt(2, 2)}},
		},
		{
			name: "closed loop",
			segs: []Segment{Seg(1, 0, 1, 1), Seg(0, 0, 1, 0), Seg(1, 1, 0, 0)},
			want: []Polyline{{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.segs, GroupTolerance)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Group() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupShuffleInvariant(t *testing.T) {
	var segs []Segment
	for row := range 5 {
		y := float64(row * 10)
		for i := range 20 {
			if i%7 == 3 {
				continue // gaps like hidden pieces
			}
			x := float64(i)
			segs = append(segs, Seg(x, y+float64(i%3), x+1, y+float64((i+1)%3)))
		}
	}

	want := Group(segs, GroupTolerance)
	covered := 0
	for _, line := range want {
		covered += len(line) - 1
	}
	if covered != len(segs) {
		t.Fatalf("polylines cover %d segments, want %d", covered, len(segs))
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 20 {
		shuffled := append([]Segment(nil), segs...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if diff := cmp.Diff(want, Group(shuffled, GroupTolerance)); diff != "" {
			t.Fatalf("shuffle %d changed grouping (-want +got):\n%s", i, diff)
		}
	}
}

func TestProcessWithStats(t *testing.T) {
	segs := []Segment{
		Seg(0, 50, 20, 50),
		Seg(20, 50, 40, 60),
		Seg(60, 60, 80, 60),
		Seg(95, 10, 99, 10),
		Seg(30, 30, 30, 30),
	}

	lines, stats := ProcessWithStats(segs, Inset(100, 100, 10, 10))

	want := []Polyline{
		{Pt(10, 50), Pt(20, 50), Pt(40, 60)},
		{Pt(60, 60), Pt(80, 60)},
	}
	if diff := cmp.Diff(want, lines, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("ProcessWithStats() mismatch (-want +got):\n%s", diff)
	}
	if stats.Input != 5 || stats.Clipped != 1 || stats.Dropped != 2 || stats.Polylines != 2 {
		t.Errorf("stats = %+v, want Input=5 Clipped=1 Dropped=2 Polylines=2", stats)
	}
}

func TestBoundsOf(t *testing.T) {
	lines := []Polyline{{Pt(3, 4), Pt(10, -2)}, {Pt(-1, 7), Pt(0, 0)}}
	got := BoundsOf(lines)
	want := Bounds{X0: -1, Y0: -2, X1: 10, Y1: 7}
	if got != want {
		t.Errorf("BoundsOf() = %v, want %v", got, want)
	}
	if got := BoundsOf(nil); got != (Bounds{}) {
		t.Errorf("BoundsOf(nil) = %v, want zero", got)
	}
}
