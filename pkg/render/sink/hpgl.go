package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/slopes/pkg/geom"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// DefaultHPGLScale maps one page unit to plotter units. HPGL plotters step
// 0.025 mm per unit, so 40 units are one millimeter.
const DefaultHPGLScale = 40.0

// HPGLOption configures HPGL rendering.
type HPGLOption func(*hpglRenderer)

type hpglRenderer struct {
	scale float64
	pen   int
}

// WithHPGLScale sets how many plotter units one page unit spans.
func WithHPGLScale(s float64) HPGLOption { return func(r *hpglRenderer) { r.scale = s } }

// WithPen selects the pen number (default 1).
func WithPen(n int) HPGLOption { return func(r *hpglRenderer) { r.pen = n } }

// program receives plotter moves in page coordinates.
type program interface {
	Move(p geom.Point)
	Line(p geom.Point)
}

type hpglProgram struct {
	buf    *bytes.Buffer
	scale  float64
	height float64
	drawn  bool // inside a PD run
}

func (h *hpglProgram) Move(p geom.Point) {
	x, y := h.transform(p)
	if h.drawn {
		h.buf.WriteString(";\n")
		h.drawn = false
	}
	fmt.Fprintf(h.buf, "PU%d,%d;\n", x, y)
}

func (h *hpglProgram) Line(p geom.Point) {
	x, y := h.transform(p)
	if h.drawn {
		fmt.Fprintf(h.buf, ",%d,%d", x, y)
		return
	}
	fmt.Fprintf(h.buf, "PD%d,%d", x, y)
	h.drawn = true
}

func (h *hpglProgram) finish() {
	if h.drawn {
		h.buf.WriteString(";\n")
		h.drawn = false
	}
}

// transform flips y to HPGL's bottom-left origin and rounds to whole
// plotter units.
func (h *hpglProgram) transform(p geom.Point) (int, int) {
	return int(math.Round(p.X * h.scale)), int(math.Round((h.height - p.Y) * h.scale))
}

// plot feeds every polyline to p as one move followed by line runs.
func plot(lines []geom.Polyline, p program) {
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		p.Move(line[0])
		for _, pt := range line[1:] {
			p.Line(pt)
		}
	}
}

// RenderHPGL renders the drawing as HPGL commands for a pen plotter.
func RenderHPGL(d *slopes.Drawing, opts ...HPGLOption) []byte {
	r := hpglRenderer{scale: DefaultHPGLScale, pen: 1}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "IN;\nSP%d;\n", r.pen)

	prog := &hpglProgram{buf: &buf, scale: r.scale, height: d.Config.Height}
	plot(d.Polylines, prog)
	prog.finish()

	buf.WriteString("PU;\nSP0;\n")
	return buf.Bytes()
}
