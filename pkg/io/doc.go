// Package io provides JSON import and export for generated drawings.
//
// # Overview
//
// A drawing document stores everything needed to re-render a drawing
// without generating it again:
//
//   - The configuration it was generated with
//   - The final polylines, in page coordinates
//   - The statistics of the run
//
// Rendering a saved document is much cheaper than generating it, and the
// document doubles as an interchange format for external plotter tooling.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "config": {"width": 1100, "height": 850, ...},
//	  "polylines": [
//	    [[100, 750], [104.4, 749.8], [108.8, 749.1]],
//	    [[100, 740], [104.4, 741.2]]
//	  ],
//	  "stats": {"rows": 50, "polylines": 212, ...}
//	}
//
// Each polyline is an array of [x, y] pairs with at least two points. The y
// axis grows downward.
//
// # Import
//
// Use [ImportJSON] to read a drawing from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate the document: unknown versions, short
// polylines and non-finite coordinates are rejected.
//
// # Export
//
// Use [ExportJSON] to write a drawing to a file, or [WriteJSON] to write to
// any io.Writer. The JSON render sink writes the same format.
package io
