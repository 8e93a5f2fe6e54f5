package sink

import (
	"github.com/matzehuels/mindmap/pkg/connector"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/style"
)

const (
	// ExportMargin is added around content in vector output and subtracted
	// from the container size for raster surfaces.
	ExportMargin = 40.0

	VectorCanvasWidth  = 1200.0
	VectorCanvasHeight = 800.0
)

// VectorLayout lays out forest on the fixed vector working canvas.
func VectorLayout(forest outline.Forest, m measure.Measurer) layout.Layout {
	return layout.Compute(forest, VectorCanvasWidth, VectorCanvasHeight, m)
}

// Size returns the vector document size for l: the largest box edges plus
// [ExportMargin]. An empty layout has size zero.
func Size(l layout.Layout) (w, h float64) {
	if l.Empty() {
		return 0, 0
	}
	maxX, maxY := l.Extent()
	return maxX + ExportMargin, maxY + ExportMargin
}

type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
)

type shape struct {
	Box    connector.Box
	Fill   string
	Stroke string
}

type label struct {
	Text   string
	X, Y   float64
	Anchor anchor
	Size   float64
	Color  string
}

// scene is everything both backends draw, in drawing order: links, then
// shapes, then labels.
type scene struct {
	Width, Height float64
	Links         []connector.Path
	Shapes        []shape
	Labels        []label
}

func newScene(l layout.Layout, t style.Theme) scene {
	w, h := Size(l)
	s := scene{Width: w, Height: h}

	for _, link := range l.Connectors() {
		s.Links = append(s.Links, link.Path)
	}

	for _, n := range l.Nodes {
		tier := t.Tier(n.Depth)
		lb := label{
			Text:  n.Text,
			Y:     n.CenterY(),
			Size:  tier.FontSize,
			Color: tier.TextColor,
		}
		if n.HasBox {
			s.Shapes = append(s.Shapes, shape{Box: n.Box(), Fill: t.Fill, Stroke: tier.BorderColor})
			lb.X, lb.Anchor = n.CenterX(), anchorMiddle
		} else {
			lb.X, lb.Anchor = n.X+t.TextInset, anchorStart
		}
		s.Labels = append(s.Labels, lb)
	}
	return s
}
