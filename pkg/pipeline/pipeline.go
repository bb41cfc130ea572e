// Package pipeline runs the load → negotiate → render pipeline shared by
// the CLI and the HTTP API.
//
// The pipeline has three stages:
//
//  1. Load: read a chart definition and the data of each layer
//  2. Negotiate: build layers, negotiate axes and open the scroll window
//  3. Render: draw the current frame as SVG or layout JSON
//
// Rendered artifacts are cached by a hash of the data and every option that
// changes the output.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ChartFile: "sales.toml",
//	    Formats:   []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("sales.svg", result.Artifacts["svg"], 0o644)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/cache"
	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chartfile"
	"github.com/matzehuels/cartesian/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the viewport width when neither the options nor the
	// chart file set one.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height.
	DefaultHeight = 600.0

	// DefaultFontSize is the default label font size.
	DefaultFontSize = axis.DefaultFontSize
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. Zero values fall back to the chart
// file, then to the package defaults.
type Options struct {
	// ChartFile is the path of a TOML chart definition.
	ChartFile string `json:"-"`
	// Chart is an already parsed definition, used when ChartFile is empty.
	Chart *chartfile.File `json:"chart,omitempty"`
	// Sources supplies the layer data of Chart directly, one per layer.
	Sources []chartfile.Source `json:"-"`

	// Layout options
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	FontSize       float64 `json:"font_size,omitempty"`
	Scrollable     *bool   `json:"scrollable,omitempty"`
	TrimOverflow   *bool   `json:"trim_overflow,omitempty"`
	HideAxisLabels bool    `json:"hide_axis_labels,omitempty"`
	// StartIndex restores a scroll position.
	StartIndex int `json:"start_index,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`
	// Marks includes per-layer marks in JSON output.
	Marks   bool `json:"marks,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Measurer axis.TextMeasurer `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Chart     *Chart
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Categories int
	Visible    int
	Passes     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the chart source and applies every default.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that exactly one chart source is given.
func (o *Options) ValidateForLoad() error {
	switch {
	case o.ChartFile == "" && o.Chart == nil:
		return errors.New(errors.ErrCodeInvalidInput, "chart file or chart is required")
	case o.ChartFile != "" && o.Chart != nil:
		return errors.New(errors.ErrCodeInvalidInput, "chart file and chart are mutually exclusive")
	case o.Chart != nil && o.Sources != nil && len(o.Sources) != len(o.Chart.Layers):
		return errors.New(errors.ErrCodeInvalidInput, "got data for %d layers, chart has %d", len(o.Sources), len(o.Chart.Layers))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ApplyChart fills options left zero from the chart definition.
func (o *Options) ApplyChart(f *chartfile.File) {
	if o.Width == 0 {
		o.Width = f.Viewport.Width
	}
	if o.Height == 0 {
		o.Height = f.Viewport.Height
	}
	if o.FontSize == 0 {
		o.FontSize = f.Text.FontSize
	}
	if o.Scrollable == nil {
		o.Scrollable = f.Scrollable
	}
	if o.TrimOverflow == nil {
		o.TrimOverflow = f.TrimOverflow
	}
	if o.Title == "" {
		o.Title = f.Title
	}
	o.HideAxisLabels = o.HideAxisLabels || f.HideAxisLabels
}

// SetLayoutDefaults sets default values for negotiation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Measurer == nil {
		o.Measurer = axis.DefaultMeasurer()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for negotiation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	if o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font size cannot be negative")
	}
	if o.StartIndex < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "start index cannot be negative")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Input builds the negotiation input for ls. Options override the chart.
func (o *Options) Input(f *chartfile.File, ls []cartesian.Layer) cartesian.NegotiateInput {
	in := f.Input(ls)
	in.Viewport.Width, in.Viewport.Height = o.Width, o.Height
	in.Text.FontSize = o.FontSize
	in.HideAxisLabels = o.HideAxisLabels
	if o.Scrollable != nil {
		in.Scrollable = *o.Scrollable
	}
	if o.TrimOverflow != nil {
		in.TrimOrdinalDataOnOverflow = *o.TrimOverflow
	}
	in.Measurer = o.Measurer
	in.Logger = o.Logger
	return in
}

// LayoutKeyOpts returns cache key options for a negotiated frame.
func (o *Options) LayoutKeyOpts(f *chartfile.File) cache.LayoutKeyOpts {
	in := o.Input(f, nil)
	canon, err := json.Marshal(struct {
		Chart          *chartfile.File             `json:"chart"`
		Text           axis.TextProperties         `json:"text"`
		HideAxisLabels bool                        `json:"hide_axis_labels"`
		Scrollable     bool                        `json:"scrollable"`
		Trim           bool                        `json:"trim"`
		Secondary      cartesian.SecondaryAxisMode `json:"secondary"`
	}{f, in.Text, in.HideAxisLabels, in.Scrollable, in.TrimOrdinalDataOnOverflow, in.SecondaryAxis})
	if err != nil {
		canon = []byte(fmt.Sprintf("%+v", in))
	}
	return cache.LayoutKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		Options:    string(canon),
		StartIndex: o.StartIndex,
	}
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Title:  o.Title,
		Marks:  o.Marks && format == FormatJSON,
	}
}
