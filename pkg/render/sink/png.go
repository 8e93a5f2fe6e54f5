package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/matzehuels/mindmap/pkg/layout"
)

// RenderPNG paints the layout with the raster backend and encodes it as PNG.
// Use [WithScale] for high-DPI output.
func RenderPNG(l layout.Layout, opts ...Option) ([]byte, error) {
	img, err := RasterImage(l, opts...)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("encode png: empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
