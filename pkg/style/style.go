// Package style holds the visual theme shared by the raster and vector renderers.
//
// Font size and text color depend only on a node's depth, grouped into three
// tiers: the diagram root, its direct children, and everything deeper. Both
// backends and the text measurer read the same [Theme], which keeps measured
// widths and drawn text in agreement.
package style

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindmap/pkg/fonts"
)

// Tier indices.
const (
	TierRoot      = 0
	TierSecondary = 1
	TierTertiary  = 2
)

// Tier describes the text and border appearance of one depth class.
type Tier struct {
	FontSize    float64 `toml:"font_size"`
	TextColor   string  `toml:"text_color"`
	BorderColor string  `toml:"border_color"`
}

// Theme is the complete set of colors and sizes used for drawing.
type Theme struct {
	FontFamily     string  `toml:"font_family"`
	Fill           string  `toml:"fill"`
	Connector      string  `toml:"connector"`
	ConnectorWidth float64 `toml:"connector_width"`
	BorderWidth    float64 `toml:"border_width"`
	CornerRadius   float64 `toml:"corner_radius"`
	TextInset      float64 `toml:"text_inset"`
	Root           Tier    `toml:"root"`
	Secondary      Tier    `toml:"secondary"`
	Tertiary       Tier    `toml:"tertiary"`
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		FontFamily:     fonts.FontFamily,
		Fill:           "#ffffff",
		Connector:      "#746e6a",
		ConnectorWidth: 1,
		BorderWidth:    1,
		CornerRadius:   6,
		TextInset:      5,
		Root:           Tier{FontSize: 16, TextColor: "#4e4e4e", BorderColor: "#b2afad"},
		Secondary:      Tier{FontSize: 15, TextColor: "#595959", BorderColor: "#d1cecd"},
		Tertiary:       Tier{FontSize: 12, TextColor: "#606060", BorderColor: "#d1cecd"},
	}
}

// TierIndex maps a node depth to its tier.
func TierIndex(depth int) int {
	switch {
	case depth <= 0:
		return TierRoot
	case depth == 1:
		return TierSecondary
	default:
		return TierTertiary
	}
}

// Tier returns the tier for a node depth.
func (t Theme) Tier(depth int) Tier {
	switch TierIndex(depth) {
	case TierRoot:
		return t.Root
	case TierSecondary:
		return t.Secondary
	default:
		return t.Tertiary
	}
}

// Tiers returns the root, secondary and tertiary tiers in order.
func (t Theme) Tiers() []Tier { return []Tier{t.Root, t.Secondary, t.Tertiary} }

// FontSize returns the font size for a node depth.
func (t Theme) FontSize(depth int) float64 { return t.Tier(depth).FontSize }

// Validate reports the first unusable value in the theme.
func (t Theme) Validate() error {
	for i, tier := range t.Tiers() {
		if tier.FontSize <= 0 {
			return fmt.Errorf("tier %d: font_size must be positive, got %v", i, tier.FontSize)
		}
		if err := checkColor(tier.TextColor); err != nil {
			return fmt.Errorf("tier %d: text_color: %w", i, err)
		}
		if err := checkColor(tier.BorderColor); err != nil {
			return fmt.Errorf("tier %d: border_color: %w", i, err)
		}
	}
	for name, c := range map[string]string{"fill": t.Fill, "connector": t.Connector} {
		if err := checkColor(c); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if t.CornerRadius < 0 || t.ConnectorWidth < 0 || t.BorderWidth < 0 {
		return fmt.Errorf("widths and radii must not be negative")
	}
	return nil
}

// Load reads a TOML theme file and overlays it on [Default].
// Keys missing from the file keep their default value.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	return Decode(data)
}

// Decode overlays TOML theme data on [Default].
func Decode(data []byte) (Theme, error) {
	t := Default()
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, fmt.Errorf("decode theme: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Theme{}, fmt.Errorf("invalid theme: %w", err)
	}
	return t, nil
}

func checkColor(c string) error {
	if _, err := ParseHex(c); err != nil {
		return err
	}
	return nil
}
