package cartesian

import (
	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/domain"
	"github.com/matzehuels/cartesian/pkg/chart/geom"
)

const (
	// MaxMarginFactor caps each side's margin at this fraction of the
	// viewport dimension.
	MaxMarginFactor = 0.25
	// ScrollbarWidth is the thickness reserved for a scrollbar.
	ScrollbarWidth = 10.0
	// TitlePadding separates an axis title from its tick labels.
	TitlePadding = 4.0
)

// MinimumMargin is the starting margin of every negotiation.
var MinimumMargin = geom.Margin{Left: 1, Right: 1, Top: 8, Bottom: 25}

// Axes are the negotiated axes. Exactly one of X and Y1 is the category
// axis. Y2 is nil unless a second, unmerged value axis is drawn.
type Axes struct {
	X  *axis.Properties `json:"x"`
	Y1 *axis.Properties `json:"y1"`
	Y2 *axis.Properties `json:"y2,omitempty"`
}

// Category returns the category axis.
func (a Axes) Category() *axis.Properties {
	if a.Y1 != nil && a.Y1.IsCategoryAxis {
		return a.Y1
	}
	return a.X
}

// CategoryOnY reports whether categories run vertically.
func (a Axes) CategoryOnY() bool { return a.Y1 != nil && a.Y1.IsCategoryAxis }

func (a Axes) each(fn func(*axis.Properties)) {
	for _, p := range []*axis.Properties{a.X, a.Y1, a.Y2} {
		if p != nil {
			fn(p)
		}
	}
}

func (a Axes) clone() Axes {
	return Axes{X: a.X.Clone(), Y1: a.Y1.Clone(), Y2: a.Y2.Clone()}
}

// Orientation is the direction a scrollbar slides in.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

type stage int

const (
	stageSeed stage = iota
	stageEstimate
	stageRotate
	stageScroll
	stageDone
)

// CartesianAxesLayout is the result of a negotiation. Each call to
// NegotiateAxes returns a fresh value.
type CartesianAxesLayout struct {
	Axes         Axes          `json:"axes"`
	Margin       geom.Margin   `json:"margin"`
	MarginLimits geom.Margin   `json:"margin_limits"`
	PlotArea     geom.Rect     `json:"plot_area"`
	Viewport     geom.Viewport `json:"viewport"`

	TickLabelMargins    axis.TickLabelMargins `json:"tick_label_margins"`
	RotateXTickLabels90 bool                  `json:"rotate_x_tick_labels_90"`

	// Scrollbar is set when the category axis scrolls.
	ScrollbarVisible bool        `json:"scrollbar_visible"`
	ScrollbarAxis    Orientation `json:"scrollbar_axis,omitempty"`
	Scrollbar        geom.Rect   `json:"scrollbar,omitzero"`

	// Axes hidden by configuration keep their scales but draw nothing.
	HideX     bool `json:"hide_x,omitempty"`
	HideY1    bool `json:"hide_y1,omitempty"`
	HideY2    bool `json:"hide_y2,omitempty"`
	Y1OnRight bool `json:"y1_on_right,omitempty"`

	Merge *domain.Result `json:"merge,omitempty"`
	// PrimaryLayer is the layer whose axes were used, 1 after falling back
	// from a layer without categories.
	PrimaryLayer int       `json:"primary_layer"`
	Warnings     []Warning `json:"warnings,omitempty"`
	// Passes counts axis computations. The scroll decision adds one to the
	// at most three negotiation passes.
	Passes    int  `json:"passes"`
	Converged bool `json:"converged"`

	stage   stage
	padding geom.Margin
}

// Done reports whether negotiation has finished.
func (l CartesianAxesLayout) Done() bool { return l.stage == stageDone }

// IsDegenerate reports whether the layout leaves no room to draw. Callers
// skip rendering in that case.
func (l CartesianAxesLayout) IsDegenerate() bool {
	return l.Viewport.Degenerate() || l.PlotArea.Size().Degenerate()
}
