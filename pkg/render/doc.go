// Package render provides output rendering for generated drawings.
//
// # Overview
//
// This package contains the conversion helpers shared by the render sinks.
// The sinks themselves live in the [sink] subpackage:
//
//   - SVG: vector output for browsers and plotter toolchains
//   - HPGL: pen plotter commands
//   - PNG: raster previews
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the drawing document for re-rendering
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(d)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/slopes/pkg/render/sink
package render
