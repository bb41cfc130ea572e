package svg

import (
	"bytes"
	"fmt"
	"math"

	svgo "github.com/ajstarks/svgo"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
)

// Option configures RenderSVG.
type Option func(*renderer)

type renderer struct {
	canvas   *svgo.SVG
	theme    Theme
	measurer axis.TextMeasurer
	text     axis.TextProperties
	title    string
	grid     bool
	notices  bool
}

// WithTheme replaces DefaultTheme.
func WithTheme(t Theme) Option { return func(r *renderer) { r.theme = t } }

// WithMeasurer sets the measurer used for truncation and wrapping. It should
// be the one negotiation used.
func WithMeasurer(m axis.TextMeasurer) Option { return func(r *renderer) { r.measurer = m } }

// WithText sets the tick label font.
func WithText(p axis.TextProperties) Option { return func(r *renderer) { r.text = p } }

// WithTitle adds a document title.
func WithTitle(s string) Option { return func(r *renderer) { r.title = s } }

// WithoutGrid drops the value gridlines.
func WithoutGrid() Option { return func(r *renderer) { r.grid = false } }

// WithoutWarnings drops the visible warnings banner. Warnings are still
// listed in desc elements.
func WithoutWarnings() Option { return func(r *renderer) { r.notices = false } }

// RenderSVG draws one frame. Degenerate layouts produce an empty canvas of
// the viewport size.
func RenderSVG(f cartesian.Frame, layers []cartesian.Layer, opts ...Option) []byte {
	r := renderer{theme: DefaultTheme, grid: true, notices: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.measurer == nil {
		r.measurer = axis.DefaultMeasurer()
	}

	var buf bytes.Buffer
	r.canvas = svgo.New(&buf)
	l := f.Layout
	width, height := px(l.Viewport.Width), px(l.Viewport.Height)
	r.canvas.Startview(width, height, 0, 0, width, height)
	if r.title != "" {
		r.canvas.Title(r.title)
	}
	for _, w := range l.Warnings {
		r.canvas.Desc(w.String())
	}
	r.canvas.Rect(0, 0, width, height, "fill:"+r.theme.Background)

	if !l.IsDegenerate() && l.Axes.X != nil && l.Axes.Y1 != nil {
		r.defs(l)
		if r.grid {
			r.gridlines(l)
		}
		r.marks(l, layers)
		r.axes(l)
		r.titles(l)
		if l.ScrollbarVisible {
			r.scrollbar(l, f.Extent)
		}
	}
	if r.notices && len(l.Warnings) > 0 {
		r.warnings(l)
	}
	r.canvas.End()
	return buf.Bytes()
}

func (r *renderer) defs(l cartesian.CartesianAxesLayout) {
	p := l.PlotArea
	r.canvas.Def()
	fmt.Fprintf(r.canvas.Writer, `<clipPath id="plot-clip"><rect x="%d" y="%d" width="%d" height="%d"/></clipPath>`+"\n",
		px(p.X), px(p.Y), px(p.Width), px(p.Height))
	r.canvas.DefEnd()
}

// gridlines draws one line per value tick across the plot.
func (r *renderer) gridlines(l cartesian.CartesianAxesLayout) {
	p := l.PlotArea
	r.canvas.Gid("grid")
	style := "stroke:" + r.theme.Grid + ";stroke-width:1"
	if v := l.Axes.Y1; !v.IsCategoryAxis {
		for i := range v.TickValues {
			y := px(p.Y + v.TickPosition(i))
			r.canvas.Line(px(p.X), y, px(p.Right()), y, style)
		}
	}
	if v := l.Axes.X; !v.IsCategoryAxis {
		for i := range v.TickValues {
			x := px(p.X + v.TickPosition(i))
			r.canvas.Line(x, px(p.Y), x, px(p.Bottom()), style)
		}
	}
	r.canvas.Gend()
}

func (r *renderer) marks(l cartesian.CartesianAxesLayout, layers []cartesian.Layer) {
	p := l.PlotArea
	r.canvas.Gid("marks")
	r.canvas.Gstyle("clip-path:url(#plot-clip)")
	r.canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", px(p.X), px(p.Y)))
	for i, layer := range layers {
		m, ok := layer.(cartesian.Marker)
		if !ok {
			continue
		}
		x, y := l.Axes.X, l.Axes.Y1
		if i != l.PrimaryLayer && l.Axes.Y2 != nil {
			y = l.Axes.Y2
		}
		for _, mk := range m.Marks(x, y) {
			r.mark(i, mk)
		}
	}
	r.canvas.Gend()
	r.canvas.Gend()
	r.canvas.Gend()
}

func (r *renderer) mark(layer int, m cartesian.Mark) {
	color := r.theme.color(layer + m.Series)
	switch m.Kind {
	case cartesian.MarkRect:
		style := "fill:" + color
		if m.Highlight {
			style += ";stroke:" + r.theme.Highlight + ";stroke-width:2"
		}
		x, y := px(m.Rect.X), px(m.Rect.Y)
		w := max(1, px(m.Rect.X+m.Rect.Width)-x)
		h := px(m.Rect.Y+m.Rect.Height) - y
		r.canvas.Rect(x, y, w, h, style)
	case cartesian.MarkLine:
		xs := make([]int, len(m.Points))
		ys := make([]int, len(m.Points))
		for i, pt := range m.Points {
			xs[i], ys[i] = px(pt.X), px(pt.Y)
		}
		if len(xs) == 1 {
			r.canvas.Circle(xs[0], ys[0], r.theme.PointRadius, "fill:"+color)
			return
		}
		r.canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", color, r.theme.LineWidth))
	case cartesian.MarkPoint:
		if len(m.Points) == 0 {
			return
		}
		fill := color
		if m.Highlight {
			fill = r.theme.Highlight
		}
		r.canvas.Circle(px(m.Points[0].X), px(m.Points[0].Y), r.theme.PointRadius, "fill:"+fill)
	}
}

// scrollbar draws the track and the brush at extent.
func (r *renderer) scrollbar(l cartesian.CartesianAxesLayout, extent [2]float64) {
	s := l.Scrollbar
	r.canvas.Gid("scrollbar")
	r.canvas.Rect(px(s.X), px(s.Y), px(s.Width), px(s.Height), "fill:"+r.theme.Track)
	e0, e1 := extent[0], extent[1]
	if l.ScrollbarAxis == cartesian.Vertical {
		r.canvas.Rect(px(s.X), px(s.Y+e0), px(s.Width), max(1, px(e1-e0)), "class=\"brush\"", "fill:"+r.theme.Brush)
	} else {
		r.canvas.Rect(px(s.X+e0), px(s.Y), max(1, px(e1-e0)), px(s.Height), "class=\"brush\"", "fill:"+r.theme.Brush)
	}
	r.canvas.Gend()
}

// warnings draws one banner line per warning across the top of the chart.
// Hosts can hide the group by its class.
func (r *renderer) warnings(l cartesian.CartesianAxesLayout) {
	lineHeight := r.measurer.Height(r.text) + 4
	width := l.Viewport.Width
	r.canvas.Group(`id="warnings"`, `class="warning"`)
	r.canvas.Rect(0, 0, px(width), px(lineHeight*float64(len(l.Warnings))),
		fmt.Sprintf("fill:%s;fill-opacity:0.9", r.theme.WarningBackground))
	style := fmt.Sprintf("fill:%s;font-size:%gpx", r.theme.WarningText, r.fontSize())
	for i, w := range l.Warnings {
		msg := axis.Truncate(w.Message, width-8, r.measurer, r.text)
		y := lineHeight*float64(i) + lineHeight - 5
		r.canvas.Text(4, px(y), msg, style)
	}
	r.canvas.Gend()
}

func px(v float64) int { return int(math.Round(v)) }
