package chartfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chart/layers"
	"github.com/matzehuels/cartesian/pkg/errors"
)

const sample = `
title = "Revenue"
hide_axis_labels = false
scrollable = false
secondary_axis = "show"
ensure_y_domain = [0, 100]

[viewport]
width = 640
height = 360

[padding]
left = 4

[text]
font_size = 12

[value]
title = "EUR"
log = true

[[layers]]
type = "column"
source = "revenue.csv"

[[layers]]
type = "line"
source = "targets.xlsx"
sheet = "2024"
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f.Viewport.Width != 640 || f.Viewport.Height != 360 {
		t.Errorf("Viewport = %+v", f.Viewport)
	}
	if len(f.Layers) != 2 || f.Layers[1].Sheet != "2024" {
		t.Errorf("Layers = %+v", f.Layers)
	}

	in := f.Input(nil)
	if in.Scrollable {
		t.Error("scrollable = false was ignored")
	}
	if !in.TrimOrdinalDataOnOverflow {
		t.Error("trim_overflow should default to true")
	}
	if in.SecondaryAxis != cartesian.SecondaryShow {
		t.Errorf("SecondaryAxis = %q", in.SecondaryAxis)
	}
	if !in.Value.Log || in.Value.Title != "EUR" {
		t.Errorf("Value = %+v", in.Value)
	}
	if in.Padding.Left != 4 || in.Text.FontSize != 12 {
		t.Errorf("Padding = %+v, Text = %+v", in.Padding, in.Text)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("widht = 10\n"))
	if !errors.Is(err, errors.ErrCodeInvalidChartFile) {
		t.Fatalf("err = %v, want INVALID_CHART_FILE", err)
	}
	if !strings.Contains(err.Error(), "widht") {
		t.Errorf("error does not name the key: %v", err)
	}
}

func TestValidate(t *testing.T) {
	layer := []LayerSpec{{Type: "column", Source: "a.csv"}}
	tests := []struct {
		name string
		f    File
		code errors.Code
	}{
		{"valid", File{Layers: layer}, ""},
		{"no layers", File{}, errors.ErrCodeInvalidChartFile},
		{"tiny viewport", File{Viewport: Size{Width: 0.5, Height: 10}, Layers: layer}, errors.ErrCodeInvalidViewport},
		{"bad secondary", File{SecondaryAxis: "twice", Layers: layer}, errors.ErrCodeInvalidChartFile},
		{"merge and show", File{SecondaryAxis: "show", ForceMerge: true, Layers: layer}, errors.ErrCodeInvalidChartFile},
		{"inverted domain", File{EnsureYDomain: []float64{5, 1}, Layers: layer}, errors.ErrCodeInvalidInput},
		{"bad type", File{Layers: []LayerSpec{{Type: "pie", Source: "a.csv"}}}, errors.ErrCodeInvalidChartFile},
		{"traversal", File{Layers: []LayerSpec{{Type: "line", Source: "../a.csv"}}}, errors.ErrCodeInvalidChartFile},
		{"format", File{Layers: []LayerSpec{{Type: "line", Source: "a.parquet"}}}, errors.ErrCodeInvalidChartFile},
		{"sheet on csv", File{Layers: []LayerSpec{{Type: "line", Source: "a.csv", Sheet: "x"}}}, errors.ErrCodeInvalidChartFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestSecondaryMode(t *testing.T) {
	tests := []struct {
		f    File
		want cartesian.SecondaryAxisMode
	}{
		{File{}, cartesian.SecondaryAuto},
		{File{SecondaryAxis: "auto"}, cartesian.SecondaryAuto},
		{File{SecondaryAxis: "show"}, cartesian.SecondaryShow},
		{File{SecondaryAxis: "hide"}, cartesian.SecondaryHide},
		{File{ForceMerge: true}, cartesian.SecondaryHide},
	}
	for _, tt := range tests {
		if got := tt.f.SecondaryMode(); got != tt.want {
			t.Errorf("%+v: got %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestLoadResolvesSources(t *testing.T) {
	dir := t.TempDir()
	csv := "Month,Revenue,Costs\nJan,10,4\nFeb,12,5\nMar,9,\n"
	if err := os.WriteFile(filepath.Join(dir, "data.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	chart := "[viewport]\nwidth = 400\nheight = 300\n\n[[layers]]\ntype = \"combo\"\nsource = \"data.csv\"\n"
	path := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(path, []byte(chart), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Dir() != dir {
		t.Errorf("Dir = %q, want %q", f.Dir(), dir)
	}
	sources, err := f.ReadSources()
	if err != nil {
		t.Fatalf("ReadSources: %v", err)
	}
	if len(sources) != 1 || sources[0].Type != layers.Combo {
		t.Fatalf("sources = %+v", sources)
	}
	ls, err := BuildLayers(sources)
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}
	if len(ls) != 2 {
		t.Fatalf("combo built %d layers, want 2", len(ls))
	}
	l := cartesian.NegotiateAxes(f.Input(ls))
	if l.IsDegenerate() || l.Axes.X == nil || len(l.Axes.X.Keys) != 3 {
		t.Errorf("unexpected layout: %+v", l.Axes.X)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadSourcesMissingData(t *testing.T) {
	f := &File{Layers: []LayerSpec{{Type: "line", Source: "gone.csv"}}}
	f.SetDir(t.TempDir())
	_, err := f.ReadSources()
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestValidateOptionsIgnoresSources(t *testing.T) {
	f := File{Layers: []LayerSpec{{Type: "combo"}}}
	if err := f.ValidateOptions(); err != nil {
		t.Errorf("ValidateOptions: %v", err)
	}
	if err := f.Validate(); err == nil {
		t.Error("Validate should reject a layer without a source")
	}
}
