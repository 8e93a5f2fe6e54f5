// Package nodelink renders title trees as traditional node-link diagrams.
//
// # Overview
//
// This package produces left-to-right tree diagrams using Graphviz, where
// titles appear as boxes connected by arrows. It is an alternative to the
// mind-map renderer for cases where Graphviz's own layout is preferred.
//
// # Usage
//
// Convert a forest to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(forest, nodelink.Options{})
//	svg, err := nodelink.RenderSVGContext(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDFContext(ctx, dot)
//	png, err := nodelink.RenderPNGContext(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the heading level.
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR) with rounded box
// nodes. Top-level titles and their direct children are drawn with a border,
// deeper titles as plain text, mirroring the mind-map styling. Every tree of
// the forest is included.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
