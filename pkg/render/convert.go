package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// rsvgBinary is the librsvg command-line converter.
const rsvgBinary = "rsvg-convert"

// ErrNoRSVG is returned when rsvg-convert is not installed.
// Install it with "brew install librsvg" (macOS) or "apt install librsvg2-bin" (Linux).
var ErrNoRSVG = errors.New(rsvgBinary + " not found on PATH")

// HasRSVG reports whether rsvg-convert is on PATH.
func HasRSVG() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

// ToPDFContext converts SVG bytes to PDF using rsvg-convert, killing the
// converter when ctx is done.
func ToPDFContext(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNGContext converts SVG bytes to PNG using rsvg-convert, killing the
// converter when ctx is done. A scale of 2 doubles the resolution.
func ToPNGContext(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(ctx, svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !HasRSVG() {
		return nil, fmt.Errorf("%s export: %w", format, ErrNoRSVG)
	}

	cmd := exec.CommandContext(ctx, rsvgBinary, append([]string{"-f", format}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %v: %s", rsvgBinary, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
