package render

import (
	"testing"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name             string
		intrW, intrH     int
		targetW, targetH int
		wantW, wantH     int
	}{
		{"intrinsic", 200, 100, 0, 0, 200, 100},
		{"width only", 200, 100, 100, 0, 100, 50},
		{"height only", 200, 100, 0, 50, 100, 50},
		{"fit box", 200, 100, 100, 100, 100, 50},
		{"clamped", 20000, 100, 0, 0, MaxRasterDim, 41},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitSize(tt.intrW, tt.intrH, tt.targetW, tt.targetH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fitSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRasterize(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20" viewBox="0 0 40 20">` +
		`<rect x="20" y="0" width="20" height="20" fill="#000000"/>` +
		`<text x="2" y="10">ignored</text>` +
		`</svg>`)

	img, err := Rasterize(svg, 0, 0)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("size = %v, want 40x20", b)
	}
	if r, _, _, _ := img.At(5, 10).RGBA(); r != 0xffff {
		t.Errorf("left pixel red = %#x, want white", r)
	}
	if r, _, _, _ := img.At(30, 10).RGBA(); r != 0 {
		t.Errorf("right pixel red = %#x, want black", r)
	}
}

func TestRasterizeRejectsSizeless(t *testing.T) {
	if _, err := Rasterize([]byte(`<svg></svg>`), 0, 0); err == nil {
		t.Error("expected error for svg without size")
	}
}
