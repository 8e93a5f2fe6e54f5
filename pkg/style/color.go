package style

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses "#rgb" or "#rrggbb" (the "#" is optional) into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := "#" + strings.TrimPrefix(s, "#")
	if len(h) != 4 && len(h) != 7 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
