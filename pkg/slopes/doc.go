// Package slopes generates pseudo-3D mountain-range line art for pen
// plotters.
//
// # Overview
//
// A drawing is a stack of horizontal rows. Each row is a ridge line whose
// height follows a noise function, damped by a bell-shaped envelope so the
// peaks gather in the middle of the page. Row 0 is the nearest row and sits
// lowest on the page; every further row moves up by DistanceBetweenRows.
// Nearer ridges hide the parts of farther ridges that fall behind them, as
// opaque terrain would.
//
// The output is a flat list of polylines, ready for a plotter or any of the
// render sinks.
//
// # Pipeline
//
//  1. [BuildRow] samples every row into an immutable [RowGeometry].
//  2. [CandidateRows] picks, for each row, the nearer rows close enough to
//     overlap it, and [Occlude] cuts away what they hide.
//  3. [geom.Process] clips the visible pieces to the margins and chains
//     them into polylines.
//
// Heights come from an [Envelope]: the noise sample blended with jitter by
// PerlinRatio, damped on even rows, and multiplied by the fourth power of a
// two-piece cubic Bézier bell.
//
// # Usage
//
//	cfg := slopes.DefaultConfig()
//	cfg.JitterSeed = 7
//	d, err := slopes.Generate(ctx, cfg, slopes.WithWorkers(4))
//
// # Determinism
//
// The noise oracle is seeded from Config.Seed. Jitter comes from per-row
// streams seeded from Config.JitterSeed; with a zero JitterSeed it comes from
// system entropy. Runs are bit-identical when PerlinRatio is 1 or JitterSeed
// is non-zero, for any worker count.
//
// # Occlusion
//
// Occlusion is a 2D approximation. A sample of a farther row is hidden when
// it lies below the ridge of a nearer candidate row at the same x. Rows
// whose baselines are further apart than their combined peak heights cannot
// overlap and are never compared.
package slopes
