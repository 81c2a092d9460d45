package config

import "sort"

type Preset struct {
	Duration    float64 `yaml:"duration"`
	Bounce      float64 `yaml:"bounce"`
	Description string  `yaml:"description,omitempty"`
}

var Presets = map[string]Preset{
	"smooth":    {Duration: 0.5, Bounce: 0.0, Description: "no bounce, quick settle"},
	"snappy":    {Duration: 0.5, Bounce: 0.15, Description: "small bounce"},
	"bouncy":    {Duration: 0.5, Bounce: 0.3, Description: "noticeable bounce"},
	"default":   {Duration: 0.8, Bounce: 0.3, Description: "library defaults"},
	"demo":      {Duration: 0.8, Bounce: 0.15, Description: "side-by-side demo curve"},
	"flattened": {Duration: 0.8, Bounce: -0.5, Description: "overdamped, slow tail"},
	"wobbly":    {Duration: 1.2, Bounce: 0.6, Description: "long oscillating tail"},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
