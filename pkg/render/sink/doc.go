// Package sink renders mind-map layouts to output formats.
//
// # Overview
//
// A "sink" turns a computed [layout.Layout] into a final output. Two backends
// draw the diagram:
//
//   - Vector: [RenderSVG] emits a self-contained SVG document.
//   - Raster: [DrawRaster] paints onto a gg drawing context; [RenderRaster]
//     sizes a surface from its container and [RenderPNG] encodes the result.
//
// Both backends read the same scene: the connector paths produced by
// [layout.Layout.Connectors], the node boxes and the text anchors, styled by a
// [style.Theme]. Neither backend computes geometry of its own, so a box drawn
// by one is drawn at exactly the same coordinates by the other. [CheckParity]
// verifies this by rasterising the SVG and comparing it with the gg image.
//
// # Vector Output
//
// The SVG is sized to the content: width and height are the right-most and
// bottom-most box edges plus [ExportMargin]. Vector exports are laid out on a
// fixed [VectorCanvasWidth]×[VectorCanvasHeight] working canvas (see
// [VectorLayout]). An empty layout yields exactly "<svg></svg>".
//
//	l := sink.VectorLayout(forest, m)
//	svg := sink.RenderSVG(l, sink.WithTheme(theme))
//
// # Raster Output
//
// [RenderRaster] reproduces an on-screen canvas: the surface is the container
// size minus [ExportMargin], the layout is computed for that surface and the
// surface is always cleared first. An empty outline or a zero-area container
// leaves the cleared surface untouched.
//
// # Other Formats
//
// [RenderPDF] converts the SVG with rsvg-convert and [RenderJSON] exports the
// layout with its connector paths.
//
// [layout.Layout]: github.com/matzehuels/mindmap/pkg/layout.Layout
// [layout.Layout.Connectors]: github.com/matzehuels/mindmap/pkg/layout.Layout.Connectors
// [style.Theme]: github.com/matzehuels/mindmap/pkg/style.Theme
package sink
