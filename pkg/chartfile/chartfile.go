package chartfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/chart/geom"
	"github.com/matzehuels/cartesian/pkg/chart/layers"
	"github.com/matzehuels/cartesian/pkg/errors"
)

// Size is a viewport size in pixels.
type Size struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Insets are paddings in pixels.
type Insets struct {
	Left   float64 `toml:"left" json:"left"`
	Right  float64 `toml:"right" json:"right"`
	Top    float64 `toml:"top" json:"top"`
	Bottom float64 `toml:"bottom" json:"bottom"`
}

// File is a parsed chart definition.
type File struct {
	Title    string              `toml:"title" json:"title,omitempty"`
	Viewport Size                `toml:"viewport" json:"viewport"`
	Padding  Insets              `toml:"padding" json:"padding"`
	PlayAxis Size                `toml:"play_axis" json:"play_axis"`
	Text     axis.TextProperties `toml:"text" json:"text"`

	HideAxisLabels bool `toml:"hide_axis_labels" json:"hide_axis_labels,omitempty"`
	// Scrollable and TrimOverflow default to true when unset.
	Scrollable    *bool `toml:"scrollable" json:"scrollable,omitempty"`
	TrimOverflow  *bool `toml:"trim_overflow" json:"trim_overflow,omitempty"`
	ShowY1OnRight bool  `toml:"show_y1_on_right" json:"show_y1_on_right,omitempty"`

	// SecondaryAxis is "auto", "show" or "hide". ForceMerge is shorthand
	// for "hide".
	SecondaryAxis string `toml:"secondary_axis" json:"secondary_axis,omitempty"`
	ForceMerge    bool   `toml:"force_merge" json:"force_merge,omitempty"`

	InteractivityRightMargin float64   `toml:"interactivity_right_margin" json:"interactivity_right_margin,omitempty"`
	EnsureXDomain            []float64 `toml:"ensure_x_domain" json:"ensure_x_domain,omitempty"`
	EnsureYDomain            []float64 `toml:"ensure_y_domain" json:"ensure_y_domain,omitempty"`

	Category  cartesian.AxisConfig `toml:"category" json:"category"`
	Value     cartesian.AxisConfig `toml:"value" json:"value"`
	Secondary cartesian.AxisConfig `toml:"secondary" json:"secondary"`

	Layers []LayerSpec `toml:"layers" json:"layers"`

	// dir is the directory sources are resolved against.
	dir string
}

// LayerSpec is one [[layers]] table.
type LayerSpec struct {
	Type   string `toml:"type" json:"type"`
	Source string `toml:"source" json:"source"`
	// Sheet selects the worksheet of an XLSX source. The first sheet is
	// used when empty.
	Sheet string `toml:"sheet" json:"sheet,omitempty"`
	// Scalar places categories by their numeric value.
	Scalar bool `toml:"scalar" json:"scalar,omitempty"`
}

// Parse decodes a chart definition. Unknown keys are rejected. Relative
// sources resolve against the working directory.
func Parse(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChartFile, err, "decode chart file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidChartFile, "unknown keys: %s", strings.Join(keys, ", "))
	}
	f.dir = "."
	return &f, nil
}

// Load reads and validates the chart file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "chart file %s not found", path)
		}
		return nil, err
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, err
	}
	f.dir = filepath.Dir(path)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Dir returns the directory sources are resolved against.
func (f *File) Dir() string { return f.dir }

// SetDir changes the directory sources are resolved against.
func (f *File) SetDir(dir string) { f.dir = dir }

// Validate checks options and layer specs without reading any data. A zero
// viewport is accepted and left for the caller to default.
func (f *File) Validate() error {
	if err := f.ValidateOptions(); err != nil {
		return err
	}
	for i, l := range f.Layers {
		if err := l.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidChartFile, err, "layer %d", i+1)
		}
	}
	return nil
}

// ValidateOptions checks everything but layer sources. Charts whose data is
// supplied inline use it in place of Validate.
func (f *File) ValidateOptions() error {
	if f.Viewport != (Size{}) {
		if err := errors.ValidateViewport(f.Viewport.Width, f.Viewport.Height); err != nil {
			return err
		}
	}
	switch f.SecondaryAxis {
	case "", "auto", "hide":
	case "show":
		if f.ForceMerge {
			return errors.New(errors.ErrCodeInvalidChartFile, "force_merge conflicts with secondary_axis = \"show\"")
		}
	default:
		return errors.New(errors.ErrCodeInvalidChartFile, "secondary_axis must be auto, show or hide, got %q", f.SecondaryAxis)
	}
	if err := errors.ValidateDomain("ensure_x_domain", f.EnsureXDomain); err != nil {
		return err
	}
	if err := errors.ValidateDomain("ensure_y_domain", f.EnsureYDomain); err != nil {
		return err
	}
	if f.Text.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidChartFile, "font_size cannot be negative")
	}

	if len(f.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidChartFile, "chart needs at least one [[layers]] entry")
	}
	for i, l := range f.Layers {
		if _, err := layers.ParseChartType(l.Type); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidChartFile, err, "layer %d", i+1)
		}
	}
	return nil
}

func (l LayerSpec) validate() error {
	if _, err := layers.ParseChartType(l.Type); err != nil {
		return err
	}
	if err := errors.ValidatePath(l.Source); err != nil {
		return err
	}
	if err := errors.ValidateDataFilename(l.Source); err != nil {
		return err
	}
	if l.Sheet != "" {
		if !strings.EqualFold(filepath.Ext(l.Source), ".xlsx") {
			return errors.New(errors.ErrCodeInvalidInput, "sheet is only valid for .xlsx sources")
		}
		return errors.ValidateSheetName(l.Sheet)
	}
	return nil
}

// SecondaryMode returns the secondary axis mode.
func (f *File) SecondaryMode() cartesian.SecondaryAxisMode {
	if f.ForceMerge {
		return cartesian.SecondaryHide
	}
	switch f.SecondaryAxis {
	case "show":
		return cartesian.SecondaryShow
	case "hide":
		return cartesian.SecondaryHide
	}
	return cartesian.SecondaryAuto
}

// Source is a layer spec with its data loaded.
type Source struct {
	Type layers.ChartType
	Data *data.CartesianData
}

// ReadSources loads the data of every layer.
func (f *File) ReadSources() ([]Source, error) {
	out := make([]Source, 0, len(f.Layers))
	for i, l := range f.Layers {
		t, err := layers.ParseChartType(l.Type)
		if err != nil {
			return nil, err
		}
		d, err := LoadData(filepath.Join(f.dir, l.Source), l.Sheet, l.Scalar)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInvalidData
			}
			return nil, errors.Wrap(code, err, "layer %d (%s)", i+1, l.Source)
		}
		out = append(out, Source{Type: t, Data: d})
	}
	return out, nil
}

// BuildLayers turns loaded sources into chart layers. A combo source
// yields two layers.
func BuildLayers(sources []Source) ([]cartesian.Layer, error) {
	var out []cartesian.Layer
	for _, s := range sources {
		ls, err := layers.Build(s.Type, s.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, ls...)
	}
	return out, nil
}

// Input builds the negotiation input for ls from the file's options.
func (f *File) Input(ls []cartesian.Layer) cartesian.NegotiateInput {
	return cartesian.NegotiateInput{
		Layers:                    ls,
		Viewport:                  geom.Viewport{Width: f.Viewport.Width, Height: f.Viewport.Height},
		Padding:                   geom.Margin(f.Padding),
		PlayAxis:                  geom.Viewport{Width: f.PlayAxis.Width, Height: f.PlayAxis.Height},
		HideAxisLabels:            f.HideAxisLabels,
		Text:                      f.Text,
		InteractivityRightMargin:  f.InteractivityRightMargin,
		EnsureXDomain:             f.EnsureXDomain,
		EnsureYDomain:             f.EnsureYDomain,
		Category:                  f.Category,
		Value:                     f.Value,
		Secondary:                 f.Secondary,
		SecondaryAxis:             f.SecondaryMode(),
		ShowY1OnRight:             f.ShowY1OnRight,
		Scrollable:                f.Scrollable == nil || *f.Scrollable,
		TrimOrdinalDataOnOverflow: f.TrimOverflow == nil || *f.TrimOverflow,
	}
}
