package pipeline

import (
	"testing"

	"github.com/matzehuels/cartesian/pkg/chartfile"
	"github.com/matzehuels/cartesian/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	err := ValidateFormats([]string{"svg", "pdf"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateForLoad(t *testing.T) {
	chart := &chartfile.File{Layers: []chartfile.LayerSpec{{Type: "line"}}}
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"file", Options{ChartFile: "charts/sales.toml"}, false},
		{"inline", Options{Chart: chart}, false},
		{"none", Options{}, true},
		{"both", Options{ChartFile: "a.toml", Chart: chart}, true},
		{"source count", Options{Chart: chart, Sources: []chartfile.Source{{}, {}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLoad()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyChartAndDefaults(t *testing.T) {
	yes := true
	f := &chartfile.File{
		Title:      "Sales",
		Viewport:   chartfile.Size{Width: 400, Height: 300},
		Scrollable: &yes,
	}

	var o Options
	o.ApplyChart(f)
	if err := o.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if o.Width != 400 || o.Height != 300 || o.Title != "Sales" {
		t.Errorf("chart values not applied: %+v", o)
	}
	if o.FontSize != DefaultFontSize || o.Measurer == nil || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}
	if o.Scrollable == nil || !*o.Scrollable {
		t.Error("scrollable not taken from chart")
	}

	o = Options{Width: 1000, Title: "Override"}
	o.ApplyChart(f)
	o.SetLayoutDefaults()
	if o.Width != 1000 || o.Height != 300 || o.Title != "Override" {
		t.Errorf("options should win over the chart: %+v", o)
	}

	o = Options{}
	o.ApplyChart(&chartfile.File{})
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("viewport = %vx%v, want defaults", o.Width, o.Height)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", o.Formats)
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"tiny", Options{Width: 0.5, Height: 100}, errors.ErrCodeInvalidViewport},
		{"negative font", Options{FontSize: -1}, errors.ErrCodeInvalidInput},
		{"negative start", Options{StartIndex: -3}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestInputOverridesChart(t *testing.T) {
	no := false
	f := &chartfile.File{Viewport: chartfile.Size{Width: 10, Height: 10}, SecondaryAxis: "show"}
	o := Options{Width: 640, Height: 480, FontSize: 14, Scrollable: &no, HideAxisLabels: true}
	o.SetLayoutDefaults()

	in := o.Input(f, nil)
	if in.Viewport.Width != 640 || in.Viewport.Height != 480 {
		t.Errorf("Viewport = %+v", in.Viewport)
	}
	if in.Text.FontSize != 14 || !in.HideAxisLabels || in.Scrollable {
		t.Errorf("options not applied: %+v", in)
	}
	if !in.TrimOrdinalDataOnOverflow {
		t.Error("trim should default to true")
	}
	if in.SecondaryAxis != "show" {
		t.Errorf("SecondaryAxis = %q", in.SecondaryAxis)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	f := &chartfile.File{Layers: []chartfile.LayerSpec{{Type: "line", Source: "a.csv"}}}
	base := Options{Width: 800, Height: 600}
	base.SetLayoutDefaults()
	k := base.LayoutKeyOpts(f)

	changed := base
	changed.HideAxisLabels = true
	if changed.LayoutKeyOpts(f) == k {
		t.Error("HideAxisLabels should change the key")
	}
	moved := base
	moved.StartIndex = 5
	if moved.LayoutKeyOpts(f) == k {
		t.Error("StartIndex should change the key")
	}
	if base.LayoutKeyOpts(f) != k {
		t.Error("key should be deterministic")
	}
}
