package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the heading level to node labels.
	// When false, only the title text is shown.
	Detailed bool
}

// ToDOT converts a forest to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered with [RenderSVGContext], [RenderPDFContext] or [RenderPNGContext].
//
// Nodes are numbered in depth-first order ("n0", "n1", ...) since titles need
// not be unique.
func ToDOT(forest outline.Forest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	id := 0
	var visit func(n *outline.Node, depth int, parent string)
	visit = func(n *outline.Node, depth int, parent string) {
		name := "n" + strconv.Itoa(id)
		id++
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(fmtAttrs(n, depth, opts.Detailed), ", "))
		if parent != "" {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", parent, name))
		}
		for _, c := range n.Children {
			visit(c, depth+1, name)
		}
	}
	for _, root := range forest {
		visit(root, 0, "")
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *outline.Node, detailed bool) string {
	if !detailed {
		return n.Text
	}
	return fmt.Sprintf("%s\nlevel: %d", n.Text, n.Level)
}

func fmtAttrs(n *outline.Node, depth int, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if depth >= layout.BoxedDepths {
		attrs = append(attrs, "shape=plaintext", "fontsize=12")
	}
	return attrs
}

// RenderSVGContext renders a DOT graph to SVG using Graphviz. The result can
// be converted further with [render.ToPDFContext] or [render.ToPNGContext].
func RenderSVGContext(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDFContext renders a DOT graph as PDF via SVG conversion.
// Requires librsvg (see [render.ErrNoRSVG]).
func RenderPDFContext(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVGContext(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDFContext(ctx, svg)
}

// RenderPNGContext renders a DOT graph as PNG via SVG conversion. A scale of
// 2 produces a 2x resolution image for high-DPI displays.
// Requires librsvg (see [render.ErrNoRSVG]).
func RenderPNGContext(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVGContext(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNGContext(ctx, svg, scale)
}
