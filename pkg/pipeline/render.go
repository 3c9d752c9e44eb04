package pipeline

import (
	"fmt"

	"github.com/matzehuels/slopes/pkg/render/sink"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// RenderDrawing writes d through every format in opts.Formats.
// It also serves drawings loaded from a JSON document.
func RenderDrawing(d *slopes.Drawing, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(d, svgOpts...)
		case FormatPNG:
			if err := CheckRaster(d.Config.Width, d.Config.Height, opts.Scale); err != nil {
				return nil, err
			}
			data, err = sink.RenderPNG(d, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(d, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(d)
		case FormatHPGL:
			data = sink.RenderHPGL(d, sink.WithHPGLScale(opts.PenScale), sink.WithPen(opts.Pen))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStroke(opts.Stroke),
		sink.WithStrokeWidth(opts.StrokeWidth),
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.Unit != "" {
		svgOpts = append(svgOpts, sink.WithUnit(opts.Unit))
	}
	if opts.Precision > 0 {
		svgOpts = append(svgOpts, sink.WithPrecision(opts.Precision))
	}
	return svgOpts
}
