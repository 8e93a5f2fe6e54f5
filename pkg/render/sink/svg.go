package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/mindmap/pkg/connector"
	"github.com/matzehuels/mindmap/pkg/layout"
)

const emptySVG = "<svg></svg>"

// RenderSVG renders the layout as an SVG document.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	if l.Empty() {
		return []byte(emptySVG)
	}
	o := newOptions(opts)
	t := o.theme
	s := newScene(l, t)

	var buf bytes.Buffer
	w, h := num(s.Width), num(s.Height)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		w, h, w, h)
	buf.WriteString("  <g>\n")

	for _, p := range s.Links {
		fmt.Fprintf(&buf, `    <path d="%s" stroke="%s" fill="none" stroke-width="%s" stroke-linecap="round"/>`+"\n",
			PathData(p), t.Connector, num(t.ConnectorWidth))
	}

	for _, sh := range s.Shapes {
		b := sh.Box
		fmt.Fprintf(&buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(b.X), num(b.Y), num(b.W), num(b.H), num(t.CornerRadius), num(t.CornerRadius),
			sh.Fill, sh.Stroke, num(t.BorderWidth))
	}

	if !o.noText {
		for _, lb := range s.Labels {
			anchor := "start"
			if lb.Anchor == anchorMiddle {
				anchor = "middle"
			}
			fmt.Fprintf(&buf, `    <text x="%s" y="%s" font-family="%s" font-size="%spx" text-anchor="%s" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
				num(lb.X), num(lb.Y), EscapeXML(t.FontFamily), num(lb.Size), anchor, lb.Color, EscapeXML(lb.Text))
		}
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// PathData formats a path as SVG path data.
func PathData(p connector.Path) string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Op.String())
		if c.Op == connector.QuadTo {
			fmt.Fprintf(&sb, " %s %s", num(c.X1), num(c.Y1))
		}
		fmt.Fprintf(&sb, " %s %s", num(c.X), num(c.Y))
	}
	return sb.String()
}

// EscapeXML escapes text for use in element content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// num formats v with the fewest digits that round-trip, so emitted
// coordinates compare exactly with layout values.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
