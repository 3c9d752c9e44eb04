package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/slopes/pkg/render"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// DefaultPNGScale renders previews at twice the page size.
const DefaultPNGScale = 2.0

// MaxPNGPixels bounds the raster size. At four bytes per pixel it caps
// the image buffer at 1 GiB.
const MaxPNGPixels = 1 << 28

// PNGPixels returns the pixel count of a width x height page rendered at
// scale.
func PNGPixels(width, height, scale float64) float64 {
	return math.Ceil(width*scale) * math.Ceil(height*scale)
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	rsvg    bool
}

// WithPNGSVGOptions passes stroke and background options through. They apply
// to both the gg rasterizer and the rsvg-convert path.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRSVG converts the SVG output with rsvg-convert instead of rasterizing
// in-process.
func WithRSVG() PNGOption {
	return func(r *pngRenderer) { r.rsvg = true }
}

// RenderPNG renders the drawing as a PNG image.
func RenderPNG(d *slopes.Drawing, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, fmt.Errorf("png scale must be positive, got %v", r.scale)
	}
	if px := PNGPixels(d.Config.Width, d.Config.Height, r.scale); px > MaxPNGPixels {
		return nil, fmt.Errorf("png of %.0f pixels exceeds the limit of %d", px, MaxPNGPixels)
	}

	if r.rsvg {
		return render.ToPNG(RenderSVG(d, r.svgOpts...), r.scale)
	}
	return rasterize(d, r.scale, newSVGRenderer(r.svgOpts...))
}

func rasterize(d *slopes.Drawing, scale float64, style svgRenderer) ([]byte, error) {
	w := max(1, int(math.Ceil(d.Config.Width*scale)))
	h := max(1, int(math.Ceil(d.Config.Height*scale)))

	dc := gg.NewContext(w, h)
	if style.background != "" && style.background != "none" {
		dc.SetHexColor(style.background)
		dc.Clear()
	}

	dc.SetHexColor(style.stroke)
	dc.SetLineWidth(style.strokeWidth * scale)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for _, line := range d.Polylines {
		if len(line) < 2 {
			continue
		}
		dc.MoveTo(line[0].X*scale, line[0].Y*scale)
		for _, p := range line[1:] {
			dc.LineTo(p.X*scale, p.Y*scale)
		}
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
