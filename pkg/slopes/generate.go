package slopes

import (
	"context"
	"io"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/slopes/pkg/geom"
	"github.com/matzehuels/slopes/pkg/noise"
)

// Drawing is the result of a generation run.
type Drawing struct {
	Config    Config          `json:"config"`
	Polylines []geom.Polyline `json:"polylines"`
	Stats     Stats           `json:"stats"`
}

// Stats counts what happened to the geometry of a run.
type Stats struct {
	Rows             int `json:"rows"`
	SamplesPerRow    int `json:"samples_per_row"`
	RawSegments      int `json:"raw_segments"`
	HiddenSegments   int `json:"hidden_segments"`   // fully occluded
	OccludedSegments int `json:"occluded_segments"` // partly occluded
	VisiblePieces    int `json:"visible_pieces"`
	ClippedSegments  int `json:"clipped_segments"` // cut at the margin
	DroppedSegments  int `json:"dropped_segments"` // empty or outside the margin
	DroppedSamples   int `json:"dropped_samples"`  // non-finite heights
	Polylines        int `json:"polylines"`
	Points           int `json:"points"`
}

// JitterSource hands out the jitter stream of each row. It is called once per
// row, possibly from several goroutines.
type JitterSource func(row int) Jitter

// SeededJitter returns the default jitter policy for seed. A non-zero seed
// gives every row its own deterministic PCG stream, so the result does not
// depend on the order rows are sampled in. Zero seeds each row from system
// entropy.
func SeededJitter(seed uint64) JitterSource {
	if seed == 0 {
		return func(int) Jitter {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}
	return func(row int) Jitter {
		return rand.New(rand.NewPCG(seed, uint64(row)))
	}
}

type neutralJitter struct{}

func (neutralJitter) Float64() float64 { return 0.5 }

// NoJitter returns a source whose samples contribute nothing to the height.
func NoJitter() JitterSource {
	return func(int) Jitter { return neutralJitter{} }
}

// Option configures a [Generate] call.
type Option func(*generator)

// WithNoise sets the noise oracle. The default is Perlin noise seeded with
// Config.Seed.
func WithNoise(o noise.Oracle) Option { return func(g *generator) { g.oracle = o } }

// WithJitter sets the jitter policy. The default is [SeededJitter] with
// Config.JitterSeed.
func WithJitter(src JitterSource) Option { return func(g *generator) { g.jitter = src } }

// WithLogger sets the logger for progress and diagnostics.
func WithLogger(l *log.Logger) Option { return func(g *generator) { g.logger = l } }

// WithWorkers sets how many rows are processed concurrently. Values below 1
// select runtime.GOMAXPROCS(0). The output does not depend on this value.
func WithWorkers(n int) Option { return func(g *generator) { g.workers = n } }

type generator struct {
	cfg     Config
	env     Envelope
	oracle  noise.Oracle
	jitter  JitterSource
	logger  *log.Logger
	workers int
}

// Generate produces the drawing described by cfg.
//
// Rows are sampled in one concurrent phase and occluded in a second one that
// starts only after every row exists; each row only reads the immutable rows
// in front of it. Cancelling ctx stops both phases early.
func Generate(ctx context.Context, cfg Config, opts ...Option) (*Drawing, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &generator{cfg: cfg, workers: 1}
	for _, opt := range opts {
		opt(g)
	}
	if g.oracle == nil {
		g.oracle = noise.NewPerlin(cfg.Seed)
	}
	if g.jitter == nil {
		g.jitter = SeededJitter(cfg.JitterSeed)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.workers < 1 {
		g.workers = runtime.GOMAXPROCS(0)
	}
	g.env = NewEnvelope(g.oracle)

	return g.run(ctx)
}

func (g *generator) run(ctx context.Context) (*Drawing, error) {
	start := time.Now()
	g.logger.Debug("generating", "rows", g.cfg.NumRows, "samples", g.cfg.SamplesPerRow,
		"noise", noise.Describe(g.oracle), "workers", g.workers)

	rows, err := g.sampleRows(ctx)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("rows sampled", "duration", time.Since(start))

	pieces, stats, err := g.occludeRows(ctx, rows)
	if err != nil {
		return nil, err
	}

	var segments []geom.Segment
	for _, p := range pieces {
		segments = append(segments, p...)
	}
	lines, ps := geom.ProcessWithStats(segments, g.cfg.Bounds())

	stats.Rows = g.cfg.NumRows
	stats.SamplesPerRow = g.cfg.SamplesPerRow
	stats.ClippedSegments = ps.Clipped
	stats.DroppedSegments = ps.Dropped
	stats.Polylines = ps.Polylines
	for _, l := range lines {
		stats.Points += len(l)
	}

	if stats.DroppedSamples > 0 {
		g.logger.Debug("dropped non-finite samples", "samples", stats.DroppedSamples)
	}
	g.logger.Debug("generated", "polylines", stats.Polylines, "hidden", stats.HiddenSegments,
		"clipped", stats.ClippedSegments, "duration", time.Since(start))

	return &Drawing{Config: g.cfg, Polylines: lines, Stats: stats}, nil
}

func (g *generator) sampleRows(ctx context.Context) ([]RowGeometry, error) {
	rows := make([]RowGeometry, g.cfg.NumRows)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for r := range rows {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[r] = BuildRow(g.cfg, g.env, r, g.jitter(r))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

type rowResult struct {
	hidden, occluded, dropped int
}

func (g *generator) occludeRows(ctx context.Context, rows []RowGeometry) ([][]geom.Segment, Stats, error) {
	pieces := make([][]geom.Segment, len(rows))
	results := make([]rowResult, len(rows))
	rowHeight := g.cfg.RowHeight()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for r := range rows {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pieces[r], results[r] = occludeRow(r, rows, rowHeight)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	for r := range rows {
		stats.RawSegments += max(len(rows[r].Points)-1, 0)
		stats.HiddenSegments += results[r].hidden
		stats.OccludedSegments += results[r].occluded
		stats.DroppedSamples += results[r].dropped
		stats.VisiblePieces += len(pieces[r])
	}
	return pieces, stats, nil
}

// occludeRow hides the parts of row r covered by the rows in front of it.
// Occluders are the raw segments of candidate rows over the same sample pair.
// A nearer row's segment that touches a dropped sample occludes nothing, so
// rows behind it show through that gap.
func occludeRow(r int, rows []RowGeometry, rowHeight float64) ([]geom.Segment, rowResult) {
	row := &rows[r]
	res := rowResult{dropped: row.InvalidSamples()}
	candidates := CandidateRows(r, rows, rowHeight)

	var out []geom.Segment
	occluders := make([]geom.Segment, 0, len(candidates))
	for i := 1; i < len(row.Points); i++ {
		seg, ok := row.Segment(i)
		if !ok {
			continue
		}
		occluders = occluders[:0]
		for _, j := range candidates {
			if o, ok := rows[j].Segment(i); ok {
				occluders = append(occluders, o)
			}
		}
		visible := Occlude(seg, occluders)
		switch {
		case len(visible) == 0:
			res.hidden++
		case len(visible) > 1 || visible[0] != seg:
			res.occluded++
		}
		out = append(out, visible...)
	}
	return out, res
}
