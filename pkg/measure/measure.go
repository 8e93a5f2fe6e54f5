// Package measure provides text width measurement for the layout engine.
//
// The layout engine sizes every box from the rendered width of its title, so
// it takes a [Measurer] instead of reaching for a shared drawing surface. Two
// implementations are provided:
//
//   - [FaceMeasurer]: exact advance widths from TrueType faces, matching what
//     the raster renderer draws.
//   - [Estimator]: a font-free approximation based on character cell widths,
//     deterministic across platforms and handy for tests.
//
// Both derive the font size from the node depth through a [style.Theme].
package measure

import (
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/style"
)

// Measurer reports the rendered width of text at the font size used for the
// given node depth. Results must be stable within one layout pass.
type Measurer interface {
	Width(text string, depth int) float64
}

// Func adapts a plain function to [Measurer].
type Func func(text string, depth int) float64

// Width calls f.
func (f Func) Width(text string, depth int) float64 { return f(text, depth) }

// FaceMeasurer measures text with real font faces.
type FaceMeasurer struct {
	faces *fonts.Faces
	theme style.Theme
}

// NewFaceMeasurer returns a measurer backed by faces.
// The caller keeps ownership of faces and closes it when done.
func NewFaceMeasurer(faces *fonts.Faces, theme style.Theme) *FaceMeasurer {
	return &FaceMeasurer{faces: faces, theme: theme}
}

// Width implements [Measurer].
func (m *FaceMeasurer) Width(text string, depth int) float64 {
	return m.faces.MeasureString(text, m.theme.FontSize(depth))
}

// charWidth is the average advance of a narrow glyph as a fraction of the font size.
const charWidth = 0.55

// Estimator approximates widths from terminal cell counts: narrow runes take
// one cell, East Asian wide runes take two.
type Estimator struct {
	Theme style.Theme
}

// NewEstimator returns an estimator using theme font sizes.
func NewEstimator(theme style.Theme) Estimator {
	return Estimator{Theme: theme}
}

// Width implements [Measurer].
func (e Estimator) Width(text string, depth int) float64 {
	return float64(runewidth.StringWidth(text)) * e.Theme.FontSize(depth) * charWidth
}
