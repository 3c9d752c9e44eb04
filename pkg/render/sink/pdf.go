package sink

import (
	"github.com/matzehuels/slopes/pkg/render"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// PDFOption configures RenderPDF.
type PDFOption func(*pdfConfig)

type pdfConfig struct {
	svg []SVGOption
}

// WithPDFSVGOptions styles the SVG that is converted to PDF. Use WithUnit
// to size the page in physical units.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(c *pdfConfig) { c.svg = append(c.svg, opts...) }
}

// RenderPDF renders the drawing to SVG and converts it with rsvg-convert.
// Without the converter it fails with errors.ErrCodeUnsupported.
func RenderPDF(d *slopes.Drawing, opts ...PDFOption) ([]byte, error) {
	var cfg pdfConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return render.ToPDF(RenderSVG(d, cfg.svg...))
}
