package cartesian

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/domain"
	"github.com/matzehuels/cartesian/pkg/chart/geom"
)

// SecondaryAxisMode controls the value axis of the second layer.
type SecondaryAxisMode string

const (
	// SecondaryAuto merges the two value domains when they overlap enough.
	SecondaryAuto SecondaryAxisMode = ""
	// SecondaryShow always draws a separate secondary axis.
	SecondaryShow SecondaryAxisMode = "show"
	// SecondaryHide always merges into one axis.
	SecondaryHide SecondaryAxisMode = "hide"
)

// NegotiateInput is everything negotiation reads.
type NegotiateInput struct {
	Layers   []Layer
	Viewport geom.Viewport
	Padding  geom.Margin
	// PlayAxis is the size of a play axis control drawn below the chart.
	PlayAxis geom.Viewport

	// HideAxisLabels drops every axis title.
	HideAxisLabels bool
	Text           axis.TextProperties
	Measurer       axis.TextMeasurer

	InteractivityRightMargin float64
	EnsureXDomain            []float64
	EnsureYDomain            []float64

	Category      AxisConfig
	Value         AxisConfig
	Secondary     AxisConfig
	SecondaryAxis SecondaryAxisMode
	ShowY1OnRight bool

	Scrollable                bool
	TrimOrdinalDataOnOverflow bool

	// Previous seeds the margins from an earlier layout of the same
	// viewport.
	Previous *CartesianAxesLayout
	// Logger receives per-pass debug output. Nil is silent.
	Logger *log.Logger
}

func (in NegotiateInput) debug(msg string, keyvals ...any) {
	if in.Logger != nil {
		in.Logger.Debug(msg, keyvals...)
	}
}

// NegotiateAxes computes axes, margins and the plot area for the layers.
// It runs at most three axis passes plus the scroll decision.
func NegotiateAxes(in NegotiateInput) CartesianAxesLayout {
	var l CartesianAxesLayout
	for !l.Done() {
		l = Step(in, l)
	}
	return l
}

// Step advances a layout by one negotiation stage. The zero layout is the
// starting point; a finished layout is returned unchanged.
func Step(in NegotiateInput, l CartesianAxesLayout) CartesianAxesLayout {
	switch l.stage {
	case stageSeed:
		return seed(in)
	case stageEstimate:
		return estimate(in, l)
	case stageRotate:
		return rotate(in, l)
	case stageScroll:
		return decideScroll(in, l)
	}
	return l
}

// =============================================================================
// Stages
// =============================================================================

func seed(in NegotiateInput) CartesianAxesLayout {
	padding := in.Padding
	padding.Bottom += in.PlayAxis.Height
	l := CartesianAxesLayout{
		Viewport:     in.Viewport,
		Margin:       MinimumMargin,
		MarginLimits: marginLimits(in.Viewport),
		padding:      padding,
	}
	if in.Viewport.Degenerate() || len(in.Layers) == 0 {
		l.PlotArea = plotArea(l)
		l.Converged = true
		l.stage = stageDone
		return l
	}
	if p := in.Previous; p != nil && p.Done() && p.Viewport == in.Viewport {
		l.Margin = p.Margin
	}
	l.Margin = l.Margin.Min(l.MarginLimits)
	l = computeAxes(in, l)
	l.stage = stageEstimate
	return l
}

func estimate(in NegotiateInput, prev CartesianAxesLayout) CartesianAxesLayout {
	next := remargin(in, prev, false, false)
	next = computeAxes(in, next)
	if AxesConverged(prev.Axes, next.Axes) {
		next.Converged = true
		next.stage = stageScroll
		return next
	}
	next.stage = stageRotate
	return next
}

func rotate(in NegotiateInput, prev CartesianAxesLayout) CartesianAxesLayout {
	next := remargin(in, prev, true, false)
	next = computeAxes(in, next)
	next.stage = stageScroll
	return next
}

func decideScroll(in NegotiateInput, l CartesianAxesLayout) CartesianAxesLayout {
	cat := l.Axes.Category()
	if in.Scrollable && in.TrimOrdinalDataOnOverflow && cat != nil && !cat.IsScalar && overflows(in, l) {
		next := remargin(in, l, true, true)
		next.ScrollbarVisible = true
		next.ScrollbarAxis = Horizontal
		if l.Axes.CategoryOnY() {
			next.ScrollbarAxis = Vertical
		}
		next = computeAxes(in, next)
		next.Scrollbar = scrollbarRect(next)
		in.debug("scrollbar reserved", "axis", next.ScrollbarAxis, "plot", next.PlotArea)
		l = next
	}
	return finalize(in, l)
}

func finalize(in NegotiateInput, l CartesianAxesLayout) CartesianAxesLayout {
	l.Warnings = nil
	rejected := false
	l.Axes.each(func(p *axis.Properties) {
		if p.LogRejected {
			rejected = true
		}
	})
	if rejected {
		l.Warnings = append(l.Warnings, ZeroValueWarning())
	}
	invalid := 0
	for _, layer := range in.Layers {
		if dp, ok := layer.(DataProvider); ok {
			invalid += dp.Data().InvalidCount()
		}
	}
	if invalid > 0 {
		l.Warnings = append(l.Warnings, InvalidValuesWarning(invalid))
	}

	xCfg, y1Cfg := axisConfigs(in, l.Axes)
	l.HideX, l.HideY1, l.HideY2 = xCfg.Hide, y1Cfg.Hide, in.Secondary.Hide
	l.Y1OnRight = in.ShowY1OnRight

	if in.HideAxisLabels {
		l.Axes = l.Axes.clone()
		l.Axes.each(func(p *axis.Properties) { p.Title = "" })
	}
	if cat := l.Axes.Category(); cat != nil {
		for i, layer := range in.Layers {
			if i != l.PrimaryLayer {
				layer.OverrideXScale(cat)
			}
		}
	}
	l.stage = stageDone
	return l
}

// =============================================================================
// Axis computation
// =============================================================================

// computeAxes asks every layer for axes against the layout's current plot
// area and assembles the shared axes.
func computeAxes(in NegotiateInput, l CartesianAxesLayout) CartesianAxesLayout {
	l.PlotArea = plotArea(l)
	opts := AxesOptions{
		PlotArea:                  l.PlotArea.Size(),
		Margin:                    l.Margin,
		Category:                  in.Category,
		TrimOrdinalDataOnOverflow: in.TrimOrdinalDataOnOverflow,
		EnsureXDomain:             in.EnsureXDomain,
		EnsureYDomain:             in.EnsureYDomain,
		Measurer:                  in.Measurer,
		Text:                      in.Text,
	}

	primary := 0
	props := calculate(in, opts, primary)
	if len(props) > 1 && lacksCategories(props[0]) && !lacksCategories(props[1]) {
		primary = 1
		props = calculate(in, opts, primary)
	}
	secondary := -1
	if len(props) > 1 {
		secondary = 1 - primary
	}

	var merge *domain.Result
	if len(props) == 2 && in.SecondaryAxis != SecondaryShow && valueOnY(props[0]) && valueOnY(props[1]) {
		r := domain.TryMergeYDomains(
			[]*axis.Properties{props[primary][1], props[secondary][1]},
			domain.Options{ForceMerge: in.SecondaryAxis == SecondaryHide || in.Secondary.Hide},
		)
		merge = &r
		forced := opts
		if r.Merged {
			forced.ForcedYDomain = r.Domain
		} else {
			forced.ForcedTickCount = r.TickCount
		}
		props = calculate(in, forced, primary)
	}

	p := props[primary]
	axes := Axes{X: p[0], Y1: p[1]}
	if secondary >= 0 && (merge == nil || !merge.Merged) && !in.Secondary.Hide && valueOnY(props[secondary]) {
		axes.Y2 = props[secondary][1]
	}
	applyTitleConfig(in, axes)

	l.Axes = axes
	l.Merge = merge
	l.PrimaryLayer = primary
	l.Passes++
	in.debug("axes computed",
		"pass", l.Passes,
		"margin", l.Margin,
		"plot", l.PlotArea.Size(),
		"x_ticks", axes.X.TickCount(),
		"y_ticks", axes.Y1.TickCount(),
	)
	return l
}

func calculate(in NegotiateInput, opts AxesOptions, primary int) [][]*axis.Properties {
	props := make([][]*axis.Properties, len(in.Layers))
	for i, layer := range in.Layers {
		o := opts
		o.Value = in.Value
		if i != primary {
			o.Value = in.Secondary
		}
		props[i] = layer.CalculateAxesProperties(o)
	}
	return props
}

func lacksCategories(p []*axis.Properties) bool {
	if len(p) < 2 {
		return true
	}
	cat := p[0]
	if p[1] != nil && p[1].IsCategoryAxis {
		cat = p[1]
	}
	if cat == nil || !cat.IsCategoryAxis || cat.UsingDefaultDomain {
		return true
	}
	if cat.IsScalar {
		return len(cat.DataDomain) == 0
	}
	return len(cat.Keys) == 0
}

func valueOnY(p []*axis.Properties) bool {
	return len(p) == 2 && p[1] != nil && !p[1].IsCategoryAxis
}

func applyTitleConfig(in NegotiateInput, a Axes) {
	hide := func(p *axis.Properties, cfg AxisConfig) {
		if p != nil && (cfg.Hide || cfg.HideTitle) {
			p.Title = ""
		}
	}
	if a.CategoryOnY() {
		hide(a.Y1, in.Category)
		hide(a.X, in.Value)
	} else {
		hide(a.X, in.Category)
		hide(a.Y1, in.Value)
	}
	hide(a.Y2, in.Secondary)
}

// AxesConverged is the stopping rule between passes: nothing that drives
// margins changed, and every category fits without rotation or scrolling.
func AxesConverged(prev, next Axes) bool {
	pairs := [][2]*axis.Properties{{prev.X, next.X}, {prev.Y1, next.Y1}, {prev.Y2, next.Y2}}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if (a == nil) != (b == nil) {
			return false
		}
		if a == nil {
			continue
		}
		if a.TickCount() != b.TickCount() ||
			a.WillLabelsFit != b.WillLabelsFit ||
			a.WillLabelsWordBreak != b.WillLabelsWordBreak {
			return false
		}
		// Wrapped labels size the bottom margin by their line count.
		if b.WillLabelsWordBreak && a.MaxLabelLines != b.MaxLabelLines {
			return false
		}
	}
	return allCategoriesFit(next)
}

func allCategoriesFit(a Axes) bool {
	cat := a.Category()
	if cat == nil || cat.IsScalar {
		return true
	}
	if cat.WillScroll {
		return false
	}
	return cat.Vertical || cat.WillLabelsFit || cat.WillLabelsWordBreak
}

func overflows(in NegotiateInput, l CartesianAxesLayout) bool {
	cat := l.Axes.Category()
	if len(cat.Keys) < 2 {
		return false
	}
	p, ok := in.Layers[l.PrimaryLayer].(PlotAreaPreferrer)
	if !ok {
		return cat.WillScroll
	}
	pref := p.PreferredPlotArea(cat.IsScalar, len(cat.Keys), cat.CategoryThickness)
	const eps = 1e-6
	if l.Axes.CategoryOnY() {
		return pref.Height > l.PlotArea.Height+eps
	}
	return pref.Width > l.PlotArea.Width+eps
}

// =============================================================================
// Margins
// =============================================================================

// remargin measures tick labels of the layout's axes and derives new
// margins from them.
func remargin(in NegotiateInput, l CartesianAxesLayout, allowRotate, scrollbar bool) CartesianAxesLayout {
	a := l.Axes
	xCfg, y1Cfg := axisConfigs(in, a)
	tm, rot := axis.EstimateTickLabelMargins(axis.MarginEstimate{
		X:                a.X,
		Y1:               a.Y1,
		Y2:               a.Y2,
		RenderX:          !xCfg.Hide,
		RenderY1:         !y1Cfg.Hide,
		RenderY2:         a.Y2 != nil && !in.Secondary.Hide,
		ShowY1OnRight:    in.ShowY1OnRight,
		XMarginLimit:     l.MarginLimits.Bottom,
		YMarginLimit:     l.MarginLimits.Left,
		AllowRotate:      allowRotate,
		ScrollbarVisible: scrollbar && !a.CategoryOnY(),
		Measurer:         in.Measurer,
		Text:             in.Text,
	})

	titleHeight := 0.0
	if !in.HideAxisLabels {
		m := in.Measurer
		if m == nil {
			m = axis.DefaultMeasurer()
		}
		titleHeight = m.Height(in.Text) + TitlePadding
	}
	titled := func(p *axis.Properties) float64 {
		if p == nil || p.Title == "" {
			return 0
		}
		return titleHeight
	}

	m := geom.Margin{
		Left:   tm.YLeft + tm.XOverflowLeft,
		Right:  tm.YRight + tm.XOverflowRight + in.InteractivityRightMargin,
		Top:    MinimumMargin.Top,
		Bottom: tm.XMax + titled(a.X),
	}
	if in.ShowY1OnRight {
		m.Right += titled(a.Y1)
		m.Left += titled(a.Y2)
	} else {
		m.Left += titled(a.Y1)
		m.Right += titled(a.Y2)
	}

	next := l
	next.TickLabelMargins = tm
	next.RotateXTickLabels90 = rot
	next.Margin = m.Max(MinimumMargin).Min(l.MarginLimits)
	return next
}

// axisConfigs returns the configuration of the X and Y1 axes.
func axisConfigs(in NegotiateInput, a Axes) (x, y1 AxisConfig) {
	if a.CategoryOnY() {
		return in.Value, in.Category
	}
	return in.Category, in.Value
}

func marginLimits(vp geom.Viewport) geom.Margin {
	return geom.Margin{
		Left:   vp.Width * MaxMarginFactor,
		Right:  vp.Width * MaxMarginFactor,
		Top:    vp.Height * MaxMarginFactor,
		Bottom: vp.Height * MaxMarginFactor,
	}
}

// plotArea places the plot inside the viewport. A scrollbar takes its
// thickness from the dimension perpendicular to the scroll direction.
func plotArea(l CartesianAxesLayout) geom.Rect {
	inset := l.padding.Add(l.Margin)
	size := l.Viewport.Shrink(inset)
	r := geom.Rect{X: inset.Left, Y: inset.Top, Width: size.Width, Height: size.Height}
	if l.ScrollbarVisible {
		switch l.ScrollbarAxis {
		case Horizontal:
			r.Height = max(0, r.Height-ScrollbarWidth)
		case Vertical:
			r.Width = max(0, r.Width-ScrollbarWidth)
		}
	}
	return r
}

func scrollbarRect(l CartesianAxesLayout) geom.Rect {
	p := l.PlotArea
	if l.ScrollbarAxis == Vertical {
		return geom.Rect{X: l.Viewport.Width - l.padding.Right - ScrollbarWidth, Y: p.Y, Width: ScrollbarWidth, Height: p.Height}
	}
	return geom.Rect{X: p.X, Y: l.Viewport.Height - l.padding.Bottom - ScrollbarWidth, Width: p.Width, Height: ScrollbarWidth}
}
