// Package geom provides the 2D primitives shared by the generator and the
// render sinks: points, segments, polylines and page bounds, plus the
// post-processing that turns loose segments into plotter-ready polylines.
//
// Coordinates are page units with the origin at the top-left corner and y
// growing downward, as in SVG and HPGL after the sinks flip them.
//
// # Post-processing
//
// [Process] runs the two stages every drawing goes through before it is
// rendered:
//
//  1. [Clip] cuts each segment to the margin rectangle (Liang–Barsky).
//  2. [Group] chains segments whose endpoints coincide into polylines.
//
// Both stages are deterministic and independent of input order, so the same
// set of segments always produces the same set of polylines.
//
// Points, lines and rectangles are the types of honnef.co/go/curve, so
// callers can hand geometry to that package without conversion.
package geom
