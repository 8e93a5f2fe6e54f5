package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"

	"github.com/matzehuels/mindmap/pkg/connector"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/render"
)

// inkThreshold is the luminance (0-0xffff) below which a pixel counts as drawn.
const inkThreshold = 0xe666

// Report is the result of [CheckParity].
type Report struct {
	Width, Height int
	// Inked is the number of pixels drawn in either image.
	Inked int
	// Mismatched counts drawn pixels with no drawn pixel within one pixel in
	// the other image.
	Mismatched int
	// Geometry lists differences between emitted SVG coordinates and the
	// layout.
	Geometry []string
}

// Ratio returns Mismatched / Inked.
func (r Report) Ratio() float64 {
	if r.Inked == 0 {
		return 0
	}
	return float64(r.Mismatched) / float64(r.Inked)
}

// OK reports whether the geometry matched exactly and the pixel mismatch
// ratio is within tolerance.
func (r Report) OK(tolerance float64) bool {
	return len(r.Geometry) == 0 && r.Ratio() <= tolerance
}

// CheckParity renders l with both backends (without text) and compares them.
// The SVG is rasterised with [render.Rasterize]; the raster backend draws on
// a white surface of the same size.
func CheckParity(l layout.Layout, opts ...Option) (Report, error) {
	if l.Empty() {
		return Report{}, nil
	}
	opts = append(opts[:len(opts):len(opts)], WithoutText(), WithScale(1))

	svg := RenderSVG(l, opts...)
	geom, err := CompareGeometry(svg, l)
	if err != nil {
		return Report{}, err
	}

	ref, err := render.Rasterize(svg, 0, 0)
	if err != nil {
		return Report{}, fmt.Errorf("rasterize svg: %w", err)
	}
	img, err := RasterImage(l, append(opts, WithBackground(color.White))...)
	if err != nil {
		return Report{}, err
	}

	rep := comparePixels(ref, img)
	rep.Geometry = geom
	return rep, nil
}

type svgDoc struct {
	Rects []svgRect `xml:"g>rect"`
	Paths []svgPath `xml:"g>path"`
}

type svgRect struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type svgPath struct {
	D string `xml:"d,attr"`
}

// boxes returns the emitted rectangles in document order.
func (d svgDoc) boxes() []connector.Box {
	boxes := make([]connector.Box, len(d.Rects))
	for i, r := range d.Rects {
		boxes[i] = connector.Box{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
	}
	return boxes
}

func decodeSVG(svg []byte) (svgDoc, error) {
	var doc svgDoc
	if err := xml.NewDecoder(bytes.NewReader(svg)).Decode(&doc); err != nil {
		return svgDoc{}, fmt.Errorf("decode svg: %w", err)
	}
	return doc, nil
}

// CompareGeometry diffs the boxes and connector paths emitted in svg against
// the layout and returns one message per difference.
func CompareGeometry(svg []byte, l layout.Layout) ([]string, error) {
	doc, err := decodeSVG(svg)
	if err != nil {
		return nil, err
	}

	var diffs []string
	var boxed []layout.Node
	for _, n := range l.Nodes {
		if n.HasBox {
			boxed = append(boxed, n)
		}
	}
	rects := doc.boxes()
	if len(rects) != len(boxed) {
		diffs = append(diffs, fmt.Sprintf("svg has %d boxes, layout has %d", len(rects), len(boxed)))
	}
	for i := 0; i < min(len(rects), len(boxed)); i++ {
		got, n := rects[i], boxed[i]
		if got != n.Box() {
			diffs = append(diffs, fmt.Sprintf("%q: svg box %v, layout box %v", n.Text, got, n.Box()))
		}
	}

	links := l.Connectors()
	if len(doc.Paths) != len(links) {
		diffs = append(diffs, fmt.Sprintf("svg has %d connectors, layout has %d", len(doc.Paths), len(links)))
	}
	for i := 0; i < min(len(doc.Paths), len(links)); i++ {
		p := links[i].Path
		if want := PathData(p); doc.Paths[i].D != want {
			diffs = append(diffs, fmt.Sprintf("connector %d (%v to %v): svg %q, layout %q", i, p.Start(), p.End(), doc.Paths[i].D, want))
		}
	}
	return diffs, nil
}

func comparePixels(a, b image.Image) Report {
	ab, bb := a.Bounds(), b.Bounds()
	w, h := min(ab.Dx(), bb.Dx()), min(ab.Dy(), bb.Dy())
	rep := Report{Width: w, Height: h}

	inkA := inkMask(a, w, h)
	inkB := inkMask(b, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !inkA[i] && !inkB[i] {
				continue
			}
			rep.Inked++
			if (inkA[i] && !near(inkB, w, h, x, y)) || (inkB[i] && !near(inkA, w, h, x, y)) {
				rep.Mismatched++
			}
		}
	}
	return rep
}

func inkMask(img image.Image, w, h int) []bool {
	origin := img.Bounds().Min
	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.Gray16Model.Convert(img.At(origin.X+x, origin.Y+y)).(color.Gray16)
			mask[y*w+x] = g.Y < inkThreshold
		}
	}
	return mask
}

// near reports whether mask has a drawn pixel within one pixel of (x, y).
func near(mask []bool, w, h, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if nx >= 0 && nx < w && ny >= 0 && ny < h && mask[ny*w+nx] {
				return true
			}
		}
	}
	return false
}
