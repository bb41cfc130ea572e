package svg

// Theme holds the colors and sizes of a rendered chart.
type Theme struct {
	Background string
	Axis       string
	Grid       string
	Text       string
	Title      string
	Track      string
	Brush      string
	Highlight  string

	WarningBackground string
	WarningText       string

	// Palette colors series in order, wrapping around.
	Palette []string

	LineWidth   float64
	PointRadius int
}

// DefaultTheme is a light theme with a ten color palette.
var DefaultTheme = Theme{
	Background: "#ffffff",
	Axis:       "#666666",
	Grid:       "#e6e6e6",
	Text:       "#333333",
	Title:      "#111111",
	Track:      "#f0f0f0",
	Brush:      "#b3b3b3",
	Highlight:  "#d62728",

	WarningBackground: "#fff4ce",
	WarningText:       "#7a5a00",

	Palette: []string{
		"#4e79a7", "#f28e2b", "#59a14f", "#e15759", "#76b7b2",
		"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
	},
	LineWidth:   2,
	PointRadius: 3,
}

func (t Theme) color(series int) string {
	if len(t.Palette) == 0 {
		return t.Axis
	}
	return t.Palette[series%len(t.Palette)]
}
