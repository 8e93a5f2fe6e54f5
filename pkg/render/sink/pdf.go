package sink

import (
	"context"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/render"
)

// RenderPDF renders the layout as PDF via SVG conversion, stopping the
// converter when ctx is done. Requires librsvg; without it the error wraps
// [render.ErrNoRSVG].
func RenderPDF(ctx context.Context, l layout.Layout, opts ...Option) ([]byte, error) {
	return render.ToPDFContext(ctx, RenderSVG(l, opts...))
}
