// Package connector computes backend-neutral path geometry for mind-map links.
//
// A [Path] is an ordered list of move, line and quadratic-curve commands with
// absolute coordinates. The raster and vector renderers translate the same
// Path into their native calls (gg MoveTo/LineTo/QuadraticTo and SVG
// "M"/"L"/"Q" path data), so a connector is drawn identically by both.
//
// # Elbow Connectors
//
// [Elbow] links a parent box to a child box with a rounded elbow:
//
//	parent ──────╮
//	             │
//	             ╰────── child
//
// The path leaves the parent's right-edge midpoint, runs horizontally to the
// middle of the gap between the boxes, turns with two quarter curves of
// radius [CornerRadius] and enters the child at its left-edge midpoint. When
// the vertical offset is no larger than the radius the curves would be
// degenerate, so the path falls back to straight segments through the middle
// of the gap.
package connector
