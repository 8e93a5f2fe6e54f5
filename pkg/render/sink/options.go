package sink

import (
	"image/color"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/style"
)

// Option configures the SVG and raster renderers.
type Option func(*options)

type options struct {
	theme      style.Theme
	faces      *fonts.Faces
	noText     bool
	scale      float64
	background color.Color
}

// WithTheme sets colors and font sizes. The default is [style.Default].
func WithTheme(t style.Theme) Option { return func(o *options) { o.theme = t } }

// WithFaces sets the font faces used for raster text. Without it the raster
// renderer creates and closes its own.
func WithFaces(f *fonts.Faces) Option { return func(o *options) { o.faces = f } }

// WithoutText omits all labels.
func WithoutText() Option { return func(o *options) { o.noText = true } }

// WithScale scales raster output (default 1).
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }

// WithBackground fills the raster surface after clearing it.
func WithBackground(c color.Color) Option { return func(o *options) { o.background = c } }

func newOptions(opts []Option) options {
	o := options{theme: style.Default(), scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 {
		o.scale = 1
	}
	return o
}
