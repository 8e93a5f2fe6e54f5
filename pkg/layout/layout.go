package layout

import (
	"math"

	"github.com/matzehuels/mindmap/pkg/connector"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// Geometry constants in layout units.
const (
	BaseHeight = 50.0 // subtree height of a leaf
	RootX      = 60.0 // left edge of the root before recentering
	Margin     = 40.0 // viewport margin used by recentering

	BoxHeight   = 33.0 // height of bordered nodes
	PlainHeight = 28.0 // height of plain-text nodes

	BoxPadding   = 30.0 // horizontal text padding of bordered nodes
	PlainPadding = 16.0 // horizontal text padding of plain nodes

	RootMinWidth = 80.0 // minimum width of the root box
	BoxMinWidth  = 50.0 // minimum width of other bordered boxes

	BoxSpacing   = 95.0  // gap after a bordered parent
	PlainSpacing = 118.0 // gap after a plain parent

	// BoxedDepths is the number of depths drawn with a border.
	BoxedDepths = 2
)

// NoParent marks the root in [Node.Parent].
const NoParent = -1

// Node is the computed geometry of one title.
type Node struct {
	Text          string  `json:"text"`
	Level         int     `json:"level"` // heading level of the source title
	Depth         int     `json:"depth"` // distance from the diagram root
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	HasBox        bool    `json:"has_box"`
	SubtreeHeight float64 `json:"subtree_height"`
	Parent        int     `json:"parent"`
	Children      []int   `json:"children,omitempty"`
}

// Box returns the node's rectangle.
func (n Node) Box() connector.Box {
	return connector.Box{X: n.X, Y: n.Y, W: n.Width, H: n.Height}
}

// CenterX returns the horizontal centre of the node.
func (n Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical centre of the node.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// Right returns the right edge of the node.
func (n Node) Right() float64 { return n.X + n.Width }

// Bottom returns the bottom edge of the node.
func (n Node) Bottom() float64 { return n.Y + n.Height }

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool { return n.Parent == NoParent }

// Layout is the flat list of placed nodes for one diagram.
// Nodes[0] is the root when the layout is not empty.
type Layout struct {
	Width  float64 `json:"width"`  // viewport width used for centering
	Height float64 `json:"height"` // viewport height used for centering
	Nodes  []Node  `json:"nodes"`
}

// Empty reports whether the layout has no nodes.
func (l Layout) Empty() bool { return len(l.Nodes) == 0 }

// Box returns the rectangle of node i.
func (l Layout) Box(i int) connector.Box { return l.Nodes[i].Box() }

// ParentBox returns the current rectangle of node i's parent.
// It reports false for the root.
func (l Layout) ParentBox(i int) (connector.Box, bool) {
	n := l.Nodes[i]
	if n.IsRoot() {
		return connector.Box{}, false
	}
	return l.Nodes[n.Parent].Box(), true
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the bounding rectangle of all boxes.
// An empty layout has a zero Rect.
func (l Layout) Bounds() Rect {
	if l.Empty() {
		return Rect{}
	}
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range l.Nodes {
		r.MinX = math.Min(r.MinX, n.X)
		r.MinY = math.Min(r.MinY, n.Y)
		r.MaxX = math.Max(r.MaxX, n.Right())
		r.MaxY = math.Max(r.MaxY, n.Bottom())
	}
	return r
}

// Translate shifts every node by (dx, dy).
func (l Layout) Translate(dx, dy float64) {
	for i := range l.Nodes {
		l.Nodes[i].X += dx
		l.Nodes[i].Y += dy
	}
}

// ChildSpacing returns the gap between a parent's right edge and its children.
func ChildSpacing(parentHasBox bool) float64 {
	if parentHasBox {
		return BoxSpacing
	}
	return PlainSpacing
}

// Link is a connector between a parent and one of its children.
type Link struct {
	Parent, Child int
	Path          connector.Path
}

// Connectors returns an elbow path for every parent/child pair, in node order.
func (l Layout) Connectors() []Link {
	links := make([]Link, 0, max(0, len(l.Nodes)-1))
	for i, n := range l.Nodes {
		pb, ok := l.ParentBox(i)
		if !ok {
			continue
		}
		links = append(links, Link{
			Parent: n.Parent,
			Child:  i,
			Path:   connector.Elbow(pb, n.Box(), ChildSpacing(l.Nodes[n.Parent].HasBox)),
		})
	}
	return links
}

// Compute lays out forest[0] inside a width×height viewport.
// An empty forest yields an empty layout.
func Compute(forest outline.Forest, width, height float64, m measure.Measurer) Layout {
	l := Layout{Width: width, Height: height}
	if len(forest) == 0 || forest[0] == nil {
		return l
	}

	e := engine{measurer: m, heights: make(map[*outline.Node]float64)}
	e.place(forest[0], 0, NoParent, RootX, height/2)
	l.Nodes = e.nodes
	recenter(l)
	return l
}

// SubtreeHeight returns the vertical space n and its descendants need.
func SubtreeHeight(n *outline.Node) float64 {
	return subtreeHeight(n, nil)
}

func subtreeHeight(n *outline.Node, memo map[*outline.Node]float64) float64 {
	if h, ok := memo[n]; ok {
		return h
	}
	h := BaseHeight
	if len(n.Children) > 0 {
		var total float64
		for _, c := range n.Children {
			total += subtreeHeight(c, memo)
		}
		h = math.Max(BaseHeight, total)
	}
	if memo != nil {
		memo[n] = h
	}
	return h
}

type engine struct {
	measurer measure.Measurer
	heights  map[*outline.Node]float64
	nodes    []Node
}

func (e *engine) height(n *outline.Node) float64 {
	return subtreeHeight(n, e.heights)
}

// place appends n and its subtree with n's vertical centre at centerY and its
// left edge at x. It returns n's index.
func (e *engine) place(n *outline.Node, depth, parent int, x, centerY float64) int {
	hasBox := depth < BoxedDepths
	w, h := e.size(n.Text, depth, hasBox)

	idx := len(e.nodes)
	e.nodes = append(e.nodes, Node{
		Text:          n.Text,
		Level:         n.Level,
		Depth:         depth,
		X:             x,
		Y:             centerY - h/2,
		Width:         w,
		Height:        h,
		HasBox:        hasBox,
		SubtreeHeight: e.height(n),
		Parent:        parent,
	})

	if len(n.Children) == 0 {
		return idx
	}

	var total float64
	for _, c := range n.Children {
		total += e.height(c)
	}

	childX := x + w + ChildSpacing(hasBox)
	cursor := centerY - total/2
	for _, c := range n.Children {
		ch := e.height(c)
		ci := e.place(c, depth+1, idx, childX, cursor+ch/2)
		e.nodes[idx].Children = append(e.nodes[idx].Children, ci)
		cursor += ch
	}
	return idx
}

// size returns the box dimensions for a title.
func (e *engine) size(text string, depth int, hasBox bool) (w, h float64) {
	tw := e.measurer.Width(text, depth)
	if !hasBox {
		return tw + PlainPadding, PlainHeight
	}
	minWidth := BoxMinWidth
	if depth == 0 {
		minWidth = RootMinWidth
	}
	return math.Max(minWidth, tw+BoxPadding), BoxHeight
}

// recenter centres the content bounding box inside the viewport minus Margin.
func recenter(l Layout) {
	dx, dy := centerOffset(l.Bounds(), l.Width, l.Height)
	l.Translate(dx, dy)
}

// centerOffset returns the translation that centres b inside a width×height
// viewport inset by Margin.
func centerOffset(b Rect, width, height float64) (dx, dy float64) {
	availW := width - 2*Margin
	availH := height - 2*Margin
	dx = (availW-b.Width())/2 + Margin - b.MinX
	dy = (availH-b.Height())/2 + Margin - b.MinY
	return dx, dy
}

// Extent returns the right-most and bottom-most box edges.
func (l Layout) Extent() (maxX, maxY float64) {
	b := l.Bounds()
	return b.MaxX, b.MaxY
}
