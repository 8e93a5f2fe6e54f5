package layout

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// tenPerRune makes box widths easy to compute by hand.
var tenPerRune = measure.Func(func(text string, _ int) float64 {
	return 10 * float64(len([]rune(text)))
})

func compute(doc string, w, h float64) Layout {
	return Compute(outline.Parse(doc), w, h, tenPerRune)
}

func find(t *testing.T, l Layout, text string) Node {
	t.Helper()
	for _, n := range l.Nodes {
		if n.Text == text {
			return n
		}
	}
	t.Fatalf("node %q not found", text)
	return Node{}
}

func TestComputeEmpty(t *testing.T) {
	for _, doc := range []string{"", "no headings\njust text", "#\n##   "} {
		l := compute(doc, 800, 600)
		if !l.Empty() {
			t.Errorf("Compute(%q) = %d nodes, want empty", doc, len(l.Nodes))
		}
		if got := l.Connectors(); len(got) != 0 {
			t.Errorf("Connectors(%q) = %d, want 0", doc, len(got))
		}
	}
}

func TestComputeSymmetricChildren(t *testing.T) {
	l := compute("# A\n## B\n## C", 800, 600)
	if len(l.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(l.Nodes))
	}

	tests := []struct {
		text       string
		x, y, w, h float64
	}{
		{"A", 287.5, 283.5, 80, 33},
		{"B", 462.5, 258.5, 50, 33},
		{"C", 462.5, 308.5, 50, 33},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n := find(t, l, tt.text)
			if n.X != tt.x || n.Y != tt.y || n.Width != tt.w || n.Height != tt.h {
				t.Errorf("box = (%v,%v,%v,%v), want (%v,%v,%v,%v)",
					n.X, n.Y, n.Width, n.Height, tt.x, tt.y, tt.w, tt.h)
			}
			if !n.HasBox {
				t.Error("expected bordered node")
			}
		})
	}

	a, b, c := find(t, l, "A"), find(t, l, "B"), find(t, l, "C")
	if b.CenterY()+c.CenterY() != 2*a.CenterY() {
		t.Errorf("children not symmetric: B=%v C=%v A=%v", b.CenterY(), c.CenterY(), a.CenterY())
	}
}

func TestComputeLevelsAndDepths(t *testing.T) {
	l := compute("## A\n#### B\n##### C\n###### D", 800, 600)

	tests := []struct {
		text   string
		level  int
		depth  int
		hasBox bool
		height float64
	}{
		{"A", 2, 0, true, BoxHeight},
		{"B", 4, 1, true, BoxHeight},
		{"C", 5, 2, false, PlainHeight},
		{"D", 6, 3, false, PlainHeight},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n := find(t, l, tt.text)
			if n.Level != tt.level || n.Depth != tt.depth {
				t.Errorf("level/depth = %d/%d, want %d/%d", n.Level, n.Depth, tt.level, tt.depth)
			}
			if n.HasBox != tt.hasBox {
				t.Errorf("HasBox = %v, want %v", n.HasBox, tt.hasBox)
			}
			if n.Height != tt.height {
				t.Errorf("Height = %v, want %v", n.Height, tt.height)
			}
		})
	}
}

func TestComputeWidthsAndSpacing(t *testing.T) {
	l := compute("# Root title\n## Child title\n### Plain\n#### Deeper", 1000, 600)
	root, child := find(t, l, "Root title"), find(t, l, "Child title")
	plain, deeper := find(t, l, "Plain"), find(t, l, "Deeper")

	if root.Width != 100+BoxPadding {
		t.Errorf("root width = %v, want %v", root.Width, 100+BoxPadding)
	}
	if child.Width != 110+BoxPadding {
		t.Errorf("child width = %v, want %v", child.Width, 110+BoxPadding)
	}
	if plain.Width != 50+PlainPadding {
		t.Errorf("plain width = %v, want %v", plain.Width, 50+PlainPadding)
	}
	if got := child.X - root.Right(); got != BoxSpacing {
		t.Errorf("gap after root = %v, want %v", got, BoxSpacing)
	}
	if got := plain.X - child.Right(); got != BoxSpacing {
		t.Errorf("gap after bordered child = %v, want %v", got, BoxSpacing)
	}
	if got := deeper.X - plain.Right(); got != PlainSpacing {
		t.Errorf("gap after plain node = %v, want %v", got, PlainSpacing)
	}
}

func TestComputeMinimumWidths(t *testing.T) {
	l := compute("# A\n## B", 800, 600)
	if got := find(t, l, "A").Width; got != RootMinWidth {
		t.Errorf("root width = %v, want %v", got, RootMinWidth)
	}
	if got := find(t, l, "B").Width; got != BoxMinWidth {
		t.Errorf("child width = %v, want %v", got, BoxMinWidth)
	}
}

func TestComputeFirstTreeOnly(t *testing.T) {
	l := compute("# A\n## A1\n# B\n## B1", 800, 600)
	if len(l.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(l.Nodes))
	}
	if l.Nodes[0].Text != "A" || !l.Nodes[0].IsRoot() {
		t.Errorf("root = %+v, want A", l.Nodes[0])
	}
}

func TestComputeCoversEveryTitle(t *testing.T) {
	doc := "# R\n## A\n### A1\n### A2\n#### A2x\n## B\n## C\n### C1"
	forest := outline.Parse(doc)
	l := Compute(forest, 800, 600, tenPerRune)
	if len(l.Nodes) != forest[0].Count() {
		t.Errorf("got %d nodes, want %d", len(l.Nodes), forest[0].Count())
	}
	if err := l.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	for i, n := range l.Nodes {
		for _, c := range n.Children {
			if l.Nodes[c].Depth != n.Depth+1 {
				t.Errorf("node %d child %d depth = %d, want %d", i, c, l.Nodes[c].Depth, n.Depth+1)
			}
		}
	}
}

func TestComputeNoOverlap(t *testing.T) {
	doc := "# R\n## A\n### A1\n### A2\n#### A2x\n#### A2y\n## B\n## C\n### C1\n### C2\n### C3"
	l := compute(doc, 800, 600)
	for i := range l.Nodes {
		for j := i + 1; j < len(l.Nodes); j++ {
			a, b := l.Nodes[i], l.Nodes[j]
			if a.X < b.Right() && b.X < a.Right() && a.Y < b.Bottom() && b.Y < a.Bottom() {
				t.Errorf("%q overlaps %q", a.Text, b.Text)
			}
		}
	}
}

func TestComputeChildrenCenteredOnParent(t *testing.T) {
	l := compute("# R\n## A\n### A1\n### A2\n### A3\n## B", 800, 600)
	for _, n := range l.Nodes {
		if len(n.Children) == 0 {
			continue
		}
		var total float64
		for _, c := range n.Children {
			total += l.Nodes[c].SubtreeHeight
		}
		first := l.Nodes[n.Children[0]]
		want := n.CenterY() - total/2 + first.SubtreeHeight/2
		if math.Abs(first.CenterY()-want) > 1e-9 {
			t.Errorf("%q first child centre = %v, want %v", n.Text, first.CenterY(), want)
		}
	}
}

func TestRecenteringIsPureTranslation(t *testing.T) {
	doc := "# R\n## A\n### A1\n### A2\n## B\n### B1"
	a := compute(doc, 800, 600)
	b := compute(doc, 1300, 450)

	dx := b.Nodes[0].X - a.Nodes[0].X
	dy := b.Nodes[0].Y - a.Nodes[0].Y
	for i := range a.Nodes {
		if got := b.Nodes[i].X - a.Nodes[i].X; math.Abs(got-dx) > 1e-9 {
			t.Errorf("node %d dx = %v, want %v", i, got, dx)
		}
		if got := b.Nodes[i].Y - a.Nodes[i].Y; math.Abs(got-dy) > 1e-9 {
			t.Errorf("node %d dy = %v, want %v", i, got, dy)
		}
	}
}

func TestRecenteringCentersContent(t *testing.T) {
	l := compute("# R\n## A\n## B\n### B1", 900, 700)
	b := l.Bounds()
	left, right := b.MinX, l.Width-b.MaxX
	top, bottom := b.MinY, l.Height-b.MaxY
	if math.Abs(left-right) > 1e-9 {
		t.Errorf("horizontal margins %v and %v differ", left, right)
	}
	if math.Abs(top-bottom) > 1e-9 {
		t.Errorf("vertical margins %v and %v differ", top, bottom)
	}
}

func TestUndersizedViewportOverflows(t *testing.T) {
	doc := "# Root\n## A fairly long child\n### leaf"
	big := compute(doc, 2000, 2000)
	small := compute(doc, 100, 100)

	if small.Nodes[0].X >= RootX {
		t.Errorf("root x = %v, want negative offset from %v", small.Nodes[0].X, RootX)
	}
	if small.Bounds().MinX >= Margin {
		t.Errorf("content min x = %v, want overflow past margin", small.Bounds().MinX)
	}
	if got, want := small.Bounds().Width(), big.Bounds().Width(); got != want {
		t.Errorf("content width = %v, want unscaled %v", got, want)
	}
}

func TestConnectorEndpoints(t *testing.T) {
	l := compute("# R\n## A\n### A1\n### A2\n## B\n### B1\n#### B1x", 800, 600)
	links := l.Connectors()
	if len(links) != len(l.Nodes)-1 {
		t.Fatalf("got %d links, want %d", len(links), len(l.Nodes)-1)
	}
	for _, link := range links {
		p, c := l.Nodes[link.Parent], l.Nodes[link.Child]
		start, end := link.Path.Start(), link.Path.End()
		if start.X != p.Right() || start.Y != p.CenterY() {
			t.Errorf("%q->%q start = %v, want parent right-mid", p.Text, c.Text, start)
		}
		if end.X != c.X || end.Y != c.CenterY() {
			t.Errorf("%q->%q end = %v, want child left-mid", p.Text, c.Text, end)
		}
	}
}

func TestConnectorsFollowTranslation(t *testing.T) {
	l := compute("# R\n## A\n## B", 800, 600)
	l.Translate(13, -7)
	for _, link := range l.Connectors() {
		pb, ok := l.ParentBox(link.Child)
		if !ok {
			t.Fatalf("node %d has no parent", link.Child)
		}
		if got := link.Path.Start(); got != pb.RightMid() {
			t.Errorf("start = %v, want %v", got, pb.RightMid())
		}
	}
	if _, ok := l.ParentBox(0); ok {
		t.Error("root should have no parent box")
	}
}

func TestSubtreeHeight(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want float64
	}{
		{"leaf", "# A", BaseHeight},
		{"one child", "# A\n## B", BaseHeight},
		{"three children", "# A\n## B\n## C\n## D", 3 * BaseHeight},
		{"nested", "# A\n## B\n### B1\n### B2\n## C", 3 * BaseHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := outline.Parse(tt.doc)[0]
			got := SubtreeHeight(root)
			if got != tt.want {
				t.Errorf("SubtreeHeight = %v, want %v", got, tt.want)
			}
			if again := SubtreeHeight(root); again != got {
				t.Errorf("second call = %v, want %v", again, got)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := compute("# R\n## A\n### A1", 800, 600)
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteFile(l, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Nodes) != len(l.Nodes) || got.Width != l.Width {
		t.Fatalf("got %d nodes width %v, want %d width %v", len(got.Nodes), got.Width, len(l.Nodes), l.Width)
	}
	for i := range l.Nodes {
		if got.Nodes[i].Box() != l.Nodes[i].Box() || got.Nodes[i].Parent != l.Nodes[i].Parent {
			t.Errorf("node %d = %+v, want %+v", i, got.Nodes[i], l.Nodes[i])
		}
	}
}

func TestUnmarshalRejectsBrokenLinks(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"root with parent", `{"nodes":[{"text":"a","parent":0}]}`},
		{"parent out of range", `{"nodes":[{"text":"a","parent":-1},{"text":"b","parent":5}]}`},
		{"child mismatch", `{"nodes":[{"text":"a","parent":-1,"children":[1]},{"text":"b","parent":-1}]}`},
		{"bad json", `{"nodes":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
