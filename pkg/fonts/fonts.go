// Package fonts provides the TrueType faces used for text measurement and
// raster text drawing.
//
// The Go Regular font is compiled into the binary (golang.org/x/image/font/gofont),
// so measurement never depends on fonts installed on the host. The parsed font
// is shared and immutable; faces are not, so callers own a [Faces] value for the
// duration of a layout and render pass and close it afterwards.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family written into vector output.
const FontFamily = "Arial, 黑体, sans-serif"

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font.
// The result is cached after first use.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Faces lazily creates and reuses one font.Face per point size.
// A Faces value is not safe for concurrent use.
type Faces struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewFaces creates a face cache backed by [Regular].
func NewFaces() (*Faces, error) {
	f, err := Regular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Faces{font: f, faces: make(map[float64]font.Face)}, nil
}

// Face returns the face for the given size in pixels (72 DPI).
func (f *Faces) Face(size float64) font.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	f.faces[size] = face
	return face
}

// MeasureString returns the advance width of s at the given size.
//
// Runes the font has no glyph for (Go Regular carries no CJK) are measured
// by their terminal cell width, half an em per cell, which is what a
// full-width fallback font such as 黑体 advances.
func (f *Faces) MeasureString(s string, size float64) float64 {
	face := f.Face(size)
	var adv fixed.Int26_6
	prev, havePrev := rune(0), false
	for _, r := range s {
		if f.font.Index(r) == 0 {
			adv += fixed.Int26_6(float64(runewidth.RuneWidth(r)) * size / 2 * 64)
			havePrev = false
			continue
		}
		if havePrev {
			adv += face.Kern(prev, r)
		}
		a, _ := face.GlyphAdvance(r)
		adv += a
		prev, havePrev = r, true
	}
	return float64(adv) / 64
}

// Close releases every cached face.
func (f *Faces) Close() error {
	var firstErr error
	for size, face := range f.faces {
		if err := face.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(f.faces, size)
	}
	return firstErr
}
