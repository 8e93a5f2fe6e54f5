package sink

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/mindmap/pkg/connector"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/style"
)

// Container describes the element a raster surface is mounted in.
type Container struct {
	Width, Height int
	// Wrapper marks an extra layout element around the surface that has no
	// intrinsic size; the size is then read from Parent.
	Wrapper bool
	Parent  *Container
}

// SurfaceSize returns the drawable size for a surface mounted in c: the
// sizing container's dimensions minus [ExportMargin], never negative.
func SurfaceSize(c Container) (w, h int) {
	src := c
	if c.Wrapper && c.Parent != nil {
		src = *c.Parent
	}
	m := int(ExportMargin)
	return max(0, src.Width-m), max(0, src.Height-m)
}

// RenderRaster lays out forest for a surface sized from c and paints it.
// The surface is always cleared. An empty forest or a zero-area surface is
// returned cleared without any drawing.
func RenderRaster(forest outline.Forest, c Container, m measure.Measurer, opts ...Option) (image.Image, error) {
	o := newOptions(opts)
	w, h := SurfaceSize(c)
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h)), nil
	}

	dc, err := newSurface(scaled(w, o.scale), scaled(h, o.scale))
	if err != nil {
		return nil, err
	}
	clearSurface(dc, o)

	l := layout.Compute(forest, float64(w), float64(h), m)
	if err := DrawRaster(dc, l, opts...); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// DrawRaster paints l onto dc without clearing it.
func DrawRaster(dc *gg.Context, l layout.Layout, opts ...Option) error {
	if l.Empty() {
		return nil
	}
	o := newOptions(opts)
	return drawScene(dc, newScene(l, o.theme), o)
}

// RasterImage paints l on a surface of the vector document size, so the
// image lines up pixel for pixel with [RenderSVG] at scale 1.
func RasterImage(l layout.Layout, opts ...Option) (image.Image, error) {
	o := newOptions(opts)
	w, h := Size(l)
	dc, err := newSurface(max(1, scaled(int(math.Ceil(w)), o.scale)), max(1, scaled(int(math.Ceil(h)), o.scale)))
	if err != nil {
		return nil, err
	}
	clearSurface(dc, o)
	if err := DrawRaster(dc, l, opts...); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func scaled(n int, s float64) int { return int(float64(n)*s + 0.5) }

// newSurface allocates a w×h context, refusing areas above
// [errors.MaxPixels] before any memory is committed.
func newSurface(w, h int) (*gg.Context, error) {
	if err := errors.ValidatePixels(w, h); err != nil {
		return nil, err
	}
	return gg.NewContext(w, h), nil
}

func clearSurface(dc *gg.Context, o options) {
	dc.SetColor(color.Transparent)
	dc.Clear()
	if o.background != nil {
		dc.SetColor(o.background)
		dc.Clear()
	}
}

func drawScene(dc *gg.Context, s scene, o options) error {
	t := o.theme
	k := o.scale

	connColor, err := style.ParseHex(t.Connector)
	if err != nil {
		return fmt.Errorf("connector color: %w", err)
	}
	fill, err := style.ParseHex(t.Fill)
	if err != nil {
		return fmt.Errorf("fill color: %w", err)
	}

	dc.SetLineCap(gg.LineCapRound)
	dc.SetColor(connColor)
	dc.SetLineWidth(t.ConnectorWidth * k)
	for _, p := range s.Links {
		tracePath(dc, p, k)
		dc.Stroke()
	}

	dc.SetLineWidth(t.BorderWidth * k)
	for _, sh := range s.Shapes {
		border, err := style.ParseHex(sh.Stroke)
		if err != nil {
			return fmt.Errorf("border color: %w", err)
		}
		tracePath(dc, connector.RoundedRect(sh.Box, t.CornerRadius), k)
		dc.ClosePath()
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(border)
		dc.Stroke()
	}

	if o.noText || len(s.Labels) == 0 {
		return nil
	}
	faces := o.faces
	if faces == nil {
		f, err := fonts.NewFaces()
		if err != nil {
			return err
		}
		defer f.Close()
		faces = f
	}
	for _, lb := range s.Labels {
		c, err := style.ParseHex(lb.Color)
		if err != nil {
			return fmt.Errorf("text color: %w", err)
		}
		dc.SetFontFace(faces.Face(lb.Size * k))
		dc.SetColor(c)
		ax := 0.0
		if lb.Anchor == anchorMiddle {
			ax = 0.5
		}
		dc.DrawStringAnchored(lb.Text, lb.X*k, lb.Y*k, ax, 0.5)
	}
	return nil
}

// tracePath replays p on dc scaled by k.
func tracePath(dc *gg.Context, p connector.Path, k float64) {
	for _, c := range p {
		switch c.Op {
		case connector.MoveTo:
			dc.MoveTo(c.X*k, c.Y*k)
		case connector.LineTo:
			dc.LineTo(c.X*k, c.Y*k)
		case connector.QuadTo:
			dc.QuadraticTo(c.X1*k, c.Y1*k, c.X*k, c.Y*k)
		}
	}
}
