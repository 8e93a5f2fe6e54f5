package measure

import (
	"math"
	"testing"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/style"
)

func TestEstimator(t *testing.T) {
	e := NewEstimator(style.Default())

	tests := []struct {
		name  string
		text  string
		depth int
		want  float64
	}{
		{"empty", "", 0, 0},
		{"root ascii", "abcd", 0, 4 * 16 * charWidth},
		{"secondary ascii", "abcd", 1, 4 * 15 * charWidth},
		{"deep ascii", "ab", 7, 2 * 12 * charWidth},
		{"wide runes count double", "中文", 2, 4 * 12 * charWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Width(tt.text, tt.depth); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Width(%q, %d) = %v, want %v", tt.text, tt.depth, got, tt.want)
			}
		})
	}
}

func TestFaceMeasurerStable(t *testing.T) {
	faces, err := fonts.NewFaces()
	if err != nil {
		t.Fatalf("NewFaces: %v", err)
	}
	defer faces.Close()

	m := NewFaceMeasurer(faces, style.Default())
	a := m.Width("Mind map", 0)
	b := m.Width("Mind map", 0)
	if a != b {
		t.Errorf("repeated measurement differs: %v vs %v", a, b)
	}
	if a <= m.Width("Mind map", 2) {
		t.Error("root text should measure wider than tertiary text")
	}
}

func TestFaceMeasurerWideText(t *testing.T) {
	faces, err := fonts.NewFaces()
	if err != nil {
		t.Fatalf("NewFaces: %v", err)
	}
	defer faces.Close()

	m := NewFaceMeasurer(faces, style.Default())
	tests := []struct {
		depth int
		want  float64
	}{
		{0, 6 * 16},
		{1, 6 * 15},
		{2, 6 * 12},
	}
	for _, tt := range tests {
		if got := m.Width("中文标题测试", tt.depth); got != tt.want {
			t.Errorf("Width(depth %d) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestFunc(t *testing.T) {
	var m Measurer = Func(func(text string, depth int) float64 {
		return float64(len(text) * (depth + 1))
	})
	if got := m.Width("abc", 1); got != 6 {
		t.Errorf("Func.Width = %v, want 6", got)
	}
}
