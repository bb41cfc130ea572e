package axis

import "math"

// TickLabelPadding separates tick labels from the plot edge.
const TickLabelPadding = 5.0

// TickLabelMargins are the pixel insets consumed by tick labels. Overflow
// fields hold the part of the first and last horizontal labels that sticks
// out past the plot edges.
type TickLabelMargins struct {
	XMax           float64 `json:"x_max"`
	YLeft          float64 `json:"y_left"`
	YRight         float64 `json:"y_right"`
	XOverflowLeft  float64 `json:"x_overflow_left"`
	XOverflowRight float64 `json:"x_overflow_right"`
}

// MarginEstimate configures EstimateTickLabelMargins.
type MarginEstimate struct {
	X, Y1, Y2 *Properties

	RenderX, RenderY1, RenderY2 bool
	// ShowY1OnRight swaps the sides of the two value axes.
	ShowY1OnRight bool

	// Caps for the X label band and each Y label band.
	XMarginLimit float64
	YMarginLimit float64

	// AllowRotate lets category labels that neither fit nor wrap turn 90
	// degrees. ScrollbarVisible forces rotation of ordinal labels.
	AllowRotate      bool
	ScrollbarVisible bool

	Measurer TextMeasurer
	Text     TextProperties
}

// EstimateTickLabelMargins measures the label bands around the plot area
// and reports whether X category labels must be rotated.
func EstimateTickLabelMargins(e MarginEstimate) (TickLabelMargins, bool) {
	m := measurerOrDefault(e.Measurer)
	lineHeight := m.Height(e.Text)
	var out TickLabelMargins
	rotate := false

	yWidth := func(p *Properties) float64 {
		if p == nil || len(p.Values) == 0 {
			return 0
		}
		return capped(p.MaxLabelWidth+TickLabelPadding, e.YMarginLimit)
	}
	if e.RenderY1 {
		if e.ShowY1OnRight {
			out.YRight = yWidth(e.Y1)
		} else {
			out.YLeft = yWidth(e.Y1)
		}
	}
	if e.RenderY2 {
		w := yWidth(e.Y2)
		if e.ShowY1OnRight {
			out.YLeft = max(out.YLeft, w)
		} else {
			out.YRight = max(out.YRight, w)
		}
	}

	x := e.X
	if !e.RenderX || x == nil || len(x.Values) == 0 {
		return out, false
	}
	if x.IsCategoryAxis && !x.IsScalar {
		switch {
		case e.ScrollbarVisible:
			rotate = true
		case x.WillLabelsFit:
			out.XMax = lineHeight
		case x.WillLabelsWordBreak:
			out.XMax = lineHeight * float64(max(1, x.MaxLabelLines))
		case e.AllowRotate:
			rotate = true
		default:
			out.XMax = lineHeight
		}
		if rotate {
			out.XMax = x.MaxLabelWidth
		}
	} else {
		out.XMax = lineHeight
		// Continuous ticks sit on the plot edges, so half the end labels
		// hang outside it.
		out.XOverflowLeft = math.Max(0, x.FirstLabelWidth/2-out.YLeft)
		out.XOverflowRight = math.Max(0, x.LastLabelWidth/2-out.YRight)
	}
	out.XMax = capped(out.XMax+TickLabelPadding, e.XMarginLimit)
	return out, rotate
}

func capped(v, limit float64) float64 {
	if limit > 0 {
		return math.Min(v, limit)
	}
	return v
}
