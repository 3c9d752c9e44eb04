// Package sink provides output format renderers for drawings.
//
// # Overview
//
// A "sink" transforms a generated [slopes.Drawing] into a final output
// format. This package provides renderers for:
//
//   - SVG: one <polyline> per polyline, stroke only
//   - HPGL: pen-up/pen-down commands for pen plotters
//   - PNG: raster preview drawn with gg, or via rsvg-convert
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the drawing document of [io.WriteJSON]
//
// # SVG Output
//
//	svg := sink.RenderSVG(d,
//	    sink.WithStroke("#1a1a1a"),
//	    sink.WithStrokeWidth(1.2),
//	    sink.WithUnit("mm"),
//	)
//
// # SVG Options
//
//   - [WithStroke]: Stroke color (default black)
//   - [WithStrokeWidth]: Stroke width in page units (default 1)
//   - [WithBackground]: Background fill; empty or "none" leaves it transparent
//   - [WithUnit]: Physical unit appended to width and height ("mm", "in")
//   - [WithPrecision]: Decimal places kept in coordinates (default 3)
//
// # HPGL Output
//
// [RenderHPGL] writes one pen-up move and one pen-down run per polyline.
// HPGL puts the origin at the bottom-left corner, so y is flipped.
//
// # Raster and PDF Output
//
// [RenderPNG] rasterizes with github.com/fogleman/gg by default; pass
// [WithRSVG] to convert the SVG output with rsvg-convert instead. [RenderPDF]
// always goes through rsvg-convert.
//
// [slopes.Drawing]: github.com/matzehuels/slopes/pkg/slopes.Drawing
// [io.WriteJSON]: github.com/matzehuels/slopes/pkg/io.WriteJSON
package sink
