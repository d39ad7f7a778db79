package markup

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named style loaded from configuration. Zero-valued
// fields fall back to the matching DefaultStyle field, so preset files
// only list what they change. Colors are hex strings ("#d32f2f",
// "#ffdd00cc").
type Preset struct {
	Name        string  `yaml:"name"`
	StrokeWidth float64 `yaml:"strokeWidth"`
	Stroke      string  `yaml:"stroke"`
	Fill        string  `yaml:"fill"`
	FontSize    float64 `yaml:"fontSize"`
	Opacity     float64 `yaml:"opacity"`
	BlurRadius  float64 `yaml:"blurRadius"`
	PixelSize   int     `yaml:"pixelSize"`
}

// Style converts the preset into a Style, filling unset fields from
// DefaultStyle.
func (p Preset) Style() Style {
	s := DefaultStyle()
	if p.StrokeWidth > 0 {
		s.StrokeWidth = p.StrokeWidth
	}
	if p.Stroke != "" {
		s.Stroke = Hex(p.Stroke)
	}
	if p.Fill != "" {
		s.Fill = Hex(p.Fill)
	}
	if p.FontSize > 0 {
		s.FontSize = p.FontSize
	}
	if p.Opacity > 0 {
		s.Opacity = p.Opacity
	}
	if p.BlurRadius > 0 {
		s.BlurRadius = p.BlurRadius
	}
	if p.PixelSize > 0 {
		s.PixelSize = p.PixelSize
	}
	return sanitizeStyle(s)
}

// presetFile is the on-disk shape of a preset configuration.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets reads named style presets from a YAML file:
//
//	presets:
//	  - name: marker
//	    stroke: "#d32f2f"
//	    strokeWidth: 4
//	  - name: highlighter
//	    stroke: "#ffdd00"
//	    strokeWidth: 14
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("markup: reading presets: %w", err)
	}
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("markup: parsing presets: %w", err)
	}
	return f.Presets, nil
}

// DefaultPresets returns the built-in presets used when no
// configuration file is present.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "marker", Stroke: "#d32f2f", StrokeWidth: 4},
		{Name: "highlighter", Stroke: "#ffdd00", StrokeWidth: 14},
		{Name: "label", Stroke: "#1a1a1a", FontSize: 18},
		{Name: "redaction", BlurRadius: 10, PixelSize: 14},
		{Name: "counter", Stroke: "#d32f2f", FontSize: 14},
	}
}
