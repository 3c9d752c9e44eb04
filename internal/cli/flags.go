package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/slopes/pkg/pipeline"
)

// addDrawingFlags binds the generator parameters to opts.
func addDrawingFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.Float64Var(&opts.Width, "width", opts.Width, "page width")
	fs.Float64Var(&opts.Height, "height", opts.Height, "page height")
	fs.Float64Var(&opts.Margins.Vertical, "margin-v", opts.Margins.Vertical, "top and bottom margin")
	fs.Float64Var(&opts.Margins.Horizontal, "margin-h", opts.Margins.Horizontal, "left and right margin")
	fs.Float64Var(&opts.DistanceBetweenRows, "row-distance", opts.DistanceBetweenRows, "vertical distance between ridge baselines")
	fs.Float64Var(&opts.PerlinRatio, "perlin-ratio", opts.PerlinRatio, "share of smooth noise vs per-sample jitter, in [0, 1]")
	fs.IntVar(&opts.SamplesPerRow, "samples", opts.SamplesPerRow, "samples per ridge")
	fs.IntVar(&opts.NumRows, "rows", opts.NumRows, "number of ridges")
	fs.Float64Var(&opts.RowHeightRatio, "row-height", opts.RowHeightRatio, "peak ridge height as a fraction of the page height")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "noise seed")
	fs.Uint64Var(&opts.JitterSeed, "jitter-seed", opts.JitterSeed, "jitter seed (0 draws from entropy)")
	fs.StringVar(&opts.Noise, "noise", opts.Noise, "noise: perlin (default), simplex")
	fs.IntVar(&opts.Workers, "workers", opts.Workers, "generator goroutines (0 = one per CPU)")
}

// addRenderFlags binds the sink options to opts.
func addRenderFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringVar(&opts.Stroke, "stroke", opts.Stroke, "stroke color (#rrggbb)")
	fs.Float64Var(&opts.StrokeWidth, "stroke-width", opts.StrokeWidth, "stroke width in page units")
	fs.StringVar(&opts.Background, "background", opts.Background, "background color (#rrggbb, default none)")
	fs.StringVar(&opts.Unit, "unit", opts.Unit, "SVG size unit: px, pt, mm, cm, in")
	fs.IntVar(&opts.Precision, "precision", opts.Precision, "SVG coordinate decimals (0 = default)")
	fs.Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	fs.Float64Var(&opts.PenScale, "pen-scale", opts.PenScale, "HPGL plotter units per page unit")
	fs.IntVar(&opts.Pen, "pen", opts.Pen, "HPGL pen number")
}

// overlayFlags replaces *opts with base and then re-applies every flag the
// user set explicitly, so command-line values win over a config file.
func overlayFlags(fs *pflag.FlagSet, opts *pipeline.Options, base pipeline.Options) error {
	changed := map[string]string{}
	fs.Visit(func(f *pflag.Flag) { changed[f.Name] = f.Value.String() })

	*opts = base
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err == nil {
			err = f.Value.Set(changed[f.Name])
		}
	})
	return err
}
