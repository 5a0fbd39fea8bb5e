package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Margin is the space between the SVG edge and the plot area, in pixels.
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// ChartSpec describes one chart: where its data lives, which host container
// it draws into and how it looks.
type ChartSpec struct {
	Title     string  `yaml:"title"`
	Subtitle  string  `yaml:"subtitle"`
	Container string  `yaml:"container"`
	DataPath  string  `yaml:"data_path"`
	Height    float64 `yaml:"height"`
	MaxWidth  float64 `yaml:"max_width"`
	Margin    Margin  `yaml:"margin"`
	XLabel    string  `yaml:"x_label"`
	YLabel    string  `yaml:"y_label"`
	// Palette lists hex colors handed to the ordinal color scale.
	Palette []string `yaml:"palette"`
	// Fields maps a logical attribute to its candidate column spellings,
	// tried in order.
	Fields map[string][]string `yaml:"fields"`
}

// ChartsConfig groups the four chart definitions.
type ChartsConfig struct {
	Bar     ChartSpec `yaml:"bar"`
	Donut   ChartSpec `yaml:"donut"`
	Line    ChartSpec `yaml:"line"`
	Scatter ChartSpec `yaml:"scatter"`
}

// Spec returns the chart definition by name.
func (c *ChartsConfig) Spec(name string) (ChartSpec, bool) {
	switch name {
	case "bar":
		return c.Bar, true
	case "donut":
		return c.Donut, true
	case "line":
		return c.Line, true
	case "scatter":
		return c.Scatter, true
	}
	return ChartSpec{}, false
}

var (
	barPalette     = []string{"#667eea", "#764ba2", "#f093fb", "#ff6b6b", "#43e97b", "#f6d365"}
	defaultPalette = []string{"#667eea", "#764ba2", "#f093fb", "#4facfe", "#43e97b", "#f6d365"}
)

// DefaultChartsConfig returns the built-in chart definitions.
func DefaultChartsConfig() ChartsConfig {
	return ChartsConfig{
		Bar: ChartSpec{
			Title:     "55-inch TVs Only",
			Container: "bar-chart",
			DataPath:  "Ex5/Ex5_TV_energy_55inchtv_byScreenType.csv",
			Height:    500,
			Margin:    Margin{Top: 30, Right: 30, Bottom: 80, Left: 70},
			XLabel:    "Screen Technology",
			YLabel:    "Average Power Consumption (W)",
			Palette:   append([]string(nil), barPalette...),
			Fields: map[string][]string{
				"technology":     {"ScreenType", "screenType", "screen_type", "Technology", "technology", "Type", "type"},
				"avgConsumption": {"AverageConsumption", "averageConsumption", "avg_consumption", "AvgPower", "avgPower", "Consumption", "consumption", "Power", "power"},
				"count":          {"Count", "count", "Number", "number", "Units", "units"},
			},
		},
		Donut: ChartSpec{
			Title:     "All TV Sizes",
			Subtitle:  "kWh/year (avg)",
			Container: "donut-chart",
			DataPath:  "data/Ex5_TV_energy_Allsizes_byScreenType.csv",
			Height:    450,
			MaxWidth:  600,
			Margin:    Margin{Top: 40, Right: 40, Bottom: 40, Left: 40},
			Palette:   append([]string(nil), defaultPalette...),
			Fields: map[string][]string{
				"technology":  {"Screen_Tech", "screen_tech", "ScreenType", "screen_type", "Technology", "technology"},
				"consumption": {"Mean(Labelled energy consumption (kWh/year))", "AverageConsumption", "avg_consumption", "Consumption", "consumption"},
			},
		},
		Line: ChartSpec{
			Title:     "Electricity Spot Prices",
			Container: "line-chart",
			DataPath:  "Ex5/Ex5_ARE_Spot_Prices.csv",
			Height:    500,
			Margin:    Margin{Top: 30, Right: 120, Bottom: 60, Left: 70},
			XLabel:    "Year",
			YLabel:    "Spot Price ($/MWh)",
			Palette:   append([]string(nil), defaultPalette...),
			Fields: map[string][]string{
				"year":    {"Year", "year", "Date", "date"},
				"NSW":     {"NSW", "nsw"},
				"VIC":     {"VIC", "vic", "Victoria"},
				"QLD":     {"QLD", "qld", "Queensland"},
				"SA":      {"SA", "sa", "South Australia"},
				"WA":      {"WA", "wa", "Western Australia"},
				"Average": {"Average", "average", "avg"},
			},
		},
		Scatter: ChartSpec{
			Title:     "Energy Consumption vs Star Rating",
			Subtitle:  "Screen Size",
			Container: "scatter-chart",
			DataPath:  "data/Ex5_TV_energy.csv",
			Height:    450,
			Margin:    Margin{Top: 30, Right: 100, Bottom: 60, Left: 70},
			XLabel:    "Energy Star Rating",
			YLabel:    "Energy Consumption (kWh/year)",
			Fields: map[string][]string{
				"brand":      {"brand", "Brand", "Brand_Reg"},
				"screensize": {"screensize", "ScreenSize", "screen_size"},
				"energy":     {"energy_consumpt", "EnergyConsumption", "energy_consumption"},
				"stars":      {"star2", "Star2", "stars", "StarRating"},
				"screenTech": {"screen_tech", "Screen_Tech", "ScreenType", "screen_type"},
			},
		},
	}
}

// LoadChartsConfig overlays the YAML file at path onto the built-in
// definitions. Keys missing from the file keep their defaults; an empty path
// returns the defaults.
func LoadChartsConfig(path string) (ChartsConfig, error) {
	cfg := DefaultChartsConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ChartsConfig{}, fmt.Errorf("error reading charts config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ChartsConfig{}, fmt.Errorf("error parsing charts config: %w", err)
	}
	return cfg, nil
}
