package cartesian

import (
	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/chart/geom"
)

// Layer is one chart type drawn into the shared plot area.
//
// CalculateAxesProperties must be cheap and idempotent: the negotiator calls
// it several times per pass. It returns the horizontal axis first and the
// vertical axis second; exactly one of them is the category axis.
type Layer interface {
	CalculateAxesProperties(opts AxesOptions) []*axis.Properties
	// SetFilteredData restricts the working data to the inclusive category
	// range and returns it. Repeated calls overwrite, never accumulate.
	SetFilteredData(startIndex, endIndex int) *data.CartesianData
	// OverrideXScale makes the layer draw against another layer's
	// category axis.
	OverrideXScale(x *axis.Properties)
}

// PlotAreaPreferrer is implemented by layers that know the plot size they
// need to show every category.
type PlotAreaPreferrer interface {
	PreferredPlotArea(isScalar bool, categoryCount int, categoryThickness float64) geom.Viewport
}

// DataProvider exposes a layer's full, unfiltered data.
type DataProvider interface {
	Data() *data.CartesianData
}

// Marker produces drawable marks positioned inside the plot area.
type Marker interface {
	Marks(x, y *axis.Properties) []Mark
}

// MarkKind identifies the shape of a mark.
type MarkKind string

const (
	MarkRect  MarkKind = "rect"
	MarkPoint MarkKind = "point"
	MarkLine  MarkKind = "line"
)

// Mark is one drawable element in plot-area coordinates.
type Mark struct {
	Kind      MarkKind     `json:"kind"`
	Series    int          `json:"series"`
	Category  int          `json:"category,omitempty"`
	Rect      geom.Rect    `json:"rect,omitzero"`
	Points    []geom.Point `json:"points,omitempty"`
	Highlight bool         `json:"highlight,omitempty"`
}

// AxisConfig is the user configuration of one semantic axis.
type AxisConfig struct {
	Hide      bool   `json:"hide,omitempty" toml:"hide"`
	HideTitle bool   `json:"hide_title,omitempty" toml:"hide_title"`
	Title     string `json:"title,omitempty" toml:"title"`
	// Log requests a logarithmic value scale.
	Log bool `json:"log,omitempty" toml:"log"`
}

// AxesOptions are passed to Layer.CalculateAxesProperties.
type AxesOptions struct {
	// PlotArea is the size available to the plot after margins.
	PlotArea geom.Viewport
	Margin   geom.Margin

	Category AxisConfig
	Value    AxisConfig

	TrimOrdinalDataOnOverflow bool

	// EnsureXDomain widens a scalar category domain; EnsureYDomain widens
	// the value domain.
	EnsureXDomain []float64
	EnsureYDomain []float64

	// ForcedYDomain and ForcedTickCount come from merging value domains.
	ForcedYDomain   []float64
	ForcedTickCount int

	Measurer axis.TextMeasurer
	Text     axis.TextProperties
}
