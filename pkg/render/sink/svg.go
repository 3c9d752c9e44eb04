package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/slopes/pkg/slopes"
)

// Stroke defaults shared by the SVG and PNG sinks.
const (
	DefaultStroke      = "#000000"
	DefaultStrokeWidth = 1.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stroke      string
	strokeWidth float64
	background  string
	unit        string
	precision   int
}

func WithStroke(color string) SVGOption  { return func(r *svgRenderer) { r.stroke = color } }
func WithStrokeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.strokeWidth = w } }
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}
func WithUnit(unit string) SVGOption { return func(r *svgRenderer) { r.unit = unit } }
func WithPrecision(digits int) SVGOption {
	return func(r *svgRenderer) { r.precision = digits }
}

// RenderSVG renders the drawing as a standalone SVG document whose viewBox is
// the page.
func RenderSVG(d *slopes.Drawing, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := d.Config.Width, d.Config.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s%s" height="%s%s">`+"\n",
		r.coord(w), r.coord(h), r.coord(w), r.unit, r.coord(h), r.unit)

	if r.background != "" && r.background != "none" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	fmt.Fprintf(&buf, `  <g fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round">`+"\n",
		r.stroke, r.coord(r.strokeWidth))
	for _, line := range d.Polylines {
		buf.WriteString(`    <polyline points="`)
		for i, p := range line {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(r.coord(p.X))
			buf.WriteByte(',')
			buf.WriteString(r.coord(p.Y))
		}
		buf.WriteString("\"/>\n")
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		stroke:      DefaultStroke,
		strokeWidth: DefaultStrokeWidth,
		precision:   defaultPrecision,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) coord(v float64) string {
	return formatCoord(v, r.precision)
}
