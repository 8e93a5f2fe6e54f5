package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/render/sink"
)

// =============================================================================
// Parse
// =============================================================================

// Parse scans doc with the named heading scanner and builds the title forest.
// A document without headings yields an empty forest and no error.
func Parse(doc []byte, parser string) (outline.Forest, error) {
	if err := errors.ValidateDocument(doc); err != nil {
		return nil, err
	}
	switch parser {
	case ParserRegex, "":
		return outline.Parse(string(doc)), nil
	case ParserGoldmark:
		return outline.ParseMarkdown(doc), nil
	default:
		return nil, ValidateParser(parser)
	}
}

// SelectRoot returns the one-tree forest holding forest[root].
// An empty forest selects to an empty forest.
func SelectRoot(forest outline.Forest, root int) (outline.Forest, error) {
	if err := errors.ValidateRoot(root, len(forest)); err != nil {
		return nil, err
	}
	if len(forest) == 0 {
		return outline.Forest{}, nil
	}
	return outline.Forest{forest[root]}, nil
}

// =============================================================================
// Layout
// =============================================================================

// NewMeasurer returns the text measurer selected by opts.Measure.
// With face measurement, faces must be non-nil.
func NewMeasurer(opts Options, faces *fonts.Faces) (measure.Measurer, error) {
	switch opts.Measure {
	case MeasureEstimate:
		return measure.NewEstimator(opts.ThemeOrDefault()), nil
	case MeasureFace, "":
		if faces == nil {
			return nil, fmt.Errorf("face measurement needs font faces")
		}
		return measure.NewFaceMeasurer(faces, opts.ThemeOrDefault()), nil
	default:
		return nil, ValidateMeasure(opts.Measure)
	}
}

// GenerateLayout lays out the first tree of forest on the vector canvas.
func GenerateLayout(forest outline.Forest, m measure.Measurer) layout.Layout {
	return sink.VectorLayout(forest, m)
}

// =============================================================================
// Render
// =============================================================================

// Render generates output artifacts in the requested formats.
//
// Mind-map SVG, PDF and JSON are drawn from l. PNG is painted by the raster
// backend onto an opts.Width×opts.Height container, laying out tree afresh
// for that surface; with a nil tree the PNG rasterizes l at its own size
// instead. Node-link outputs are drawn from tree. faces may be nil, in which
// case they are created for the call.
func Render(ctx context.Context, tree outline.Forest, l layout.Layout, opts Options, faces *fonts.Faces) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(ctx, tree, opts)
	}
	if faces == nil {
		var err error
		if faces, err = fonts.NewFaces(); err != nil {
			return nil, err
		}
		defer faces.Close()
	}
	return renderMindmap(ctx, tree, l, opts, faces)
}

func renderMindmap(ctx context.Context, tree outline.Forest, l layout.Layout, opts Options, faces *fonts.Faces) (map[string][]byte, error) {
	sinkOpts := buildSinkOptions(opts, faces)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, sinkOpts...)
		case FormatPNG:
			if tree == nil {
				data, err = sink.RenderPNG(l, sinkOpts...)
			} else {
				data, err = renderContainerPNG(tree, opts, faces, sinkOpts)
			}
		case FormatPDF:
			if err = requireRSVG(format); err == nil {
				data, err = sink.RenderPDF(ctx, l, sinkOpts...)
			}
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, fmt.Errorf("unsupported mindmap format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderContainerPNG paints tree onto a surface sized from the opts container.
func renderContainerPNG(tree outline.Forest, opts Options, faces *fonts.Faces, sinkOpts []sink.Option) ([]byte, error) {
	m, err := NewMeasurer(opts, faces)
	if err != nil {
		return nil, err
	}
	c := sink.Container{Width: int(opts.Width), Height: int(opts.Height)}
	img, err := sink.RenderRaster(tree, c, m, sinkOpts...)
	if err != nil {
		return nil, err
	}
	return sink.EncodePNG(img)
}

func renderNodelink(ctx context.Context, tree outline.Forest, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVGContext(ctx, dot)
		case FormatPNG:
			if err = requireRSVG(format); err == nil {
				data, err = nodelink.RenderPNGContext(ctx, dot, opts.Scale)
			}
		case FormatPDF:
			if err = requireRSVG(format); err == nil {
				data, err = nodelink.RenderPDFContext(ctx, dot)
			}
		case FormatJSON:
			data, err = outline.Marshal(tree)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSinkOptions(opts Options, faces *fonts.Faces) []sink.Option {
	sinkOpts := []sink.Option{
		sink.WithTheme(opts.ThemeOrDefault()),
		sink.WithScale(opts.Scale),
		sink.WithFaces(faces),
	}
	if opts.NoText {
		sinkOpts = append(sinkOpts, sink.WithoutText())
	}
	return sinkOpts
}

func requireRSVG(format string) error {
	if !render.HasRSVG() {
		return errors.New(errors.ErrCodeUnsupported, "%s output requires rsvg-convert (librsvg)", format)
	}
	return nil
}
