package style

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestTierIndex(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{0, TierRoot},
		{1, TierSecondary},
		{2, TierTertiary},
		{5, TierTertiary},
		{-1, TierRoot},
	}
	for _, tt := range tests {
		if got := TierIndex(tt.depth); got != tt.want {
			t.Errorf("TierIndex(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestDefaultTheme(t *testing.T) {
	th := Default()
	if err := th.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if th.FontSize(0) != 16 || th.FontSize(1) != 15 || th.FontSize(4) != 12 {
		t.Errorf("font sizes = %v/%v/%v, want 16/15/12", th.FontSize(0), th.FontSize(1), th.FontSize(4))
	}
	if th.Tier(0).BorderColor == th.Tier(1).BorderColor {
		t.Error("root border should be darker than other bordered levels")
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	th, err := Decode([]byte(`
connector = "#000000"

[root]
font_size = 20
text_color = "#111"
border_color = "#222222"
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if th.Connector != "#000000" {
		t.Errorf("Connector = %q, want #000000", th.Connector)
	}
	if th.Root.FontSize != 20 {
		t.Errorf("root font size = %v, want 20", th.Root.FontSize)
	}
	if th.Fill != "#ffffff" {
		t.Errorf("Fill = %q, want default #ffffff", th.Fill)
	}
	if th.Tertiary.FontSize != 12 {
		t.Errorf("tertiary font size = %v, want default 12", th.Tertiary.FontSize)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "fill = "},
		{"bad color", `fill = "white"`},
		{"negative radius", "corner_radius = -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte(`fill = "#fafafa"`), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Fill != "#fafafa" {
		t.Errorf("Fill = %q, want #fafafa", th.Fill)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#746e6a", color.RGBA{0x74, 0x6e, 0x6a, 0xff}, false},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"000000", color.RGBA{0, 0, 0, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"#ABC", color.RGBA{0xaa, 0xbb, 0xcc, 0xff}, false},
		{"#746e6a00", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
