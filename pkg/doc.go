// Package pkg provides the core libraries for mindmap diagrams.
//
// # Overview
//
// Mindmap turns the headings of a markdown document into a left-to-right
// mind map. The pkg directory is organized into three areas:
//
//  1. Domain logic: [outline], [measure], [layout], [connector]
//  2. Rendering: [render/sink], [render/nodelink], [render], [style], [fonts]
//  3. Infrastructure: [pipeline], [cache], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Markdown document
//	         ↓
//	    [outline] package (scan headings, nest them into a title forest)
//	         ↓
//	    [layout] package (subtree heights, node boxes, connector spacing)
//	         ↓
//	    [render/sink] package (vector and raster backends)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mindmap/pkg/fonts"
//	    "github.com/matzehuels/mindmap/pkg/measure"
//	    "github.com/matzehuels/mindmap/pkg/outline"
//	    "github.com/matzehuels/mindmap/pkg/render/sink"
//	    "github.com/matzehuels/mindmap/pkg/style"
//	)
//
//	forest := outline.Parse("# Project\n## Goals\n### Ship\n## Risks\n")
//
//	faces, _ := fonts.NewFaces()
//	defer faces.Close()
//	m := measure.NewFaceMeasurer(faces, style.Default())
//
//	l := sink.VectorLayout(forest, m)
//	svg := sink.RenderSVG(l, sink.WithFaces(faces))
//
// # Main Packages
//
// [outline] - Heading scanners (line regex and goldmark AST) and the
// stack-based builder that nests titles by level.
//
// [measure] - Text width providers: font-face metrics or a fixed-ratio
// estimate.
//
// [layout] - The mind-map engine: recursive subtree heights, vertical
// centering of children around their parent, boxed and plain nodes.
//
// [connector] - Rounded elbow paths between parent and child boxes, and
// rounded rectangles, as backend-neutral path commands.
//
// [render/sink] - SVG, raster (gg), PNG, PDF and JSON output, plus the
// parity check between the two drawing backends.
//
// [render/nodelink] - Graphviz rendering of the same title tree.
//
// [pipeline] - Parse → layout → render with caching, shared by the CLI and
// the HTTP API.
//
// [cache] - File, Redis, MongoDB and null caches with content-hash keys.
//
// [outline]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/outline
// [measure]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/measure
// [layout]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/layout
// [connector]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/connector
// [render]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render/nodelink
// [style]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/style
// [fonts]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/buildinfo
package pkg
