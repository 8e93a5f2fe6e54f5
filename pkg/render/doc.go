// Package render provides format conversion shared by the diagram renderers.
//
// # Overview
//
// The renderers in the subpackages produce SVG (and, for the mind map, raster
// images drawn directly). This package turns SVG into the other output
// formats:
//
//   - [ToPDFContext] and [ToPNGContext] shell out to rsvg-convert (from librsvg) for
//     print-quality conversion.
//   - [Rasterize] decodes SVG in-process with oksvg and rasterx. It needs no
//     external tools and is used to compare the vector output with the
//     directly drawn raster image.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDFContext(ctx, svg)
//	img, err := render.Rasterize(svg, 0, 0)
//
// # Subpackages
//
//   - [sink]: mind-map output (SVG, raster PNG, PDF, JSON)
//   - [nodelink]: Graphviz node-link diagrams of the title tree
//
// [sink]: github.com/matzehuels/mindmap/pkg/render/sink
// [nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
package render
