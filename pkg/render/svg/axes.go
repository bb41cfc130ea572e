package svg

import (
	"fmt"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
)

const tickLength = 4

func (r *renderer) fontSize() float64 {
	if r.text.FontSize > 0 {
		return r.text.FontSize
	}
	return axis.DefaultFontSize
}

func (r *renderer) textStyle(anchor string) string {
	s := fmt.Sprintf("fill:%s;font-size:%gpx;text-anchor:%s", r.theme.Text, r.fontSize(), anchor)
	if r.text.FontFamily != "" {
		s += ";font-family:" + r.text.FontFamily
	}
	return s
}

func (r *renderer) axes(l cartesian.CartesianAxesLayout) {
	if !l.HideX {
		r.xAxis(l)
	}
	left, right := !l.Y1OnRight, l.Y1OnRight
	if !l.HideY1 {
		r.yAxis(l, "y1-axis", l.Axes.Y1, left)
	}
	if l.Axes.Y2 != nil && !l.HideY2 {
		r.yAxis(l, "y2-axis", l.Axes.Y2, right)
	}
}

func (r *renderer) xAxis(l cartesian.CartesianAxesLayout) {
	x, p := l.Axes.X, l.PlotArea
	lineHeight := r.measurer.Height(r.text)
	top := p.Bottom() + axis.TickLabelPadding
	baseline := top + r.fontSize()*0.8
	axisStyle := "stroke:" + r.theme.Axis

	r.canvas.Gid("x-axis")
	r.canvas.Line(px(p.X), px(p.Bottom()), px(p.Right()), px(p.Bottom()), axisStyle)
	for i, label := range x.Values {
		pos := p.X + x.TickPosition(i)
		if pos < p.X-0.5 || pos > p.Right()+0.5 {
			continue
		}
		r.canvas.Line(px(pos), px(p.Bottom()), px(pos), px(p.Bottom())+tickLength, axisStyle)

		switch {
		case !x.IsCategoryAxis || x.IsScalar:
			r.canvas.Text(px(pos), px(baseline), label, r.textStyle("middle"))
		case l.RotateXTickLabels90:
			label = axis.Truncate(label, l.TickLabelMargins.XMax-axis.TickLabelPadding, r.measurer, r.text)
			r.canvas.TranslateRotate(px(pos+r.fontSize()*0.35), px(top), -90)
			r.canvas.Text(0, 0, label, r.textStyle("end"))
			r.canvas.Gend()
		case x.WillLabelsFit:
			r.canvas.Text(px(pos), px(baseline), label, r.textStyle("middle"))
		case x.WillLabelsWordBreak:
			for k, line := range axis.WordBreak(label, x.CategoryThickness, r.measurer, r.text) {
				r.canvas.Text(px(pos), px(baseline+float64(k)*lineHeight), line, r.textStyle("middle"))
			}
		default:
			label = axis.Truncate(label, x.CategoryThickness, r.measurer, r.text)
			r.canvas.Text(px(pos), px(baseline), label, r.textStyle("middle"))
		}
	}
	r.canvas.Gend()
}

func (r *renderer) yAxis(l cartesian.CartesianAxesLayout, id string, y *axis.Properties, left bool) {
	p := l.PlotArea
	edge, dir, anchor := p.X, -1.0, "end"
	room := l.TickLabelMargins.YLeft
	if !left {
		edge, dir, anchor = p.Right(), 1.0, "start"
		room = l.TickLabelMargins.YRight
	}
	axisStyle := "stroke:" + r.theme.Axis

	r.canvas.Gid(id)
	r.canvas.Line(px(edge), px(p.Y), px(edge), px(p.Bottom()), axisStyle)
	for i, label := range y.Values {
		pos := p.Y + y.TickPosition(i)
		if pos < p.Y-0.5 || pos > p.Bottom()+0.5 {
			continue
		}
		r.canvas.Line(px(edge), px(pos), px(edge+dir*tickLength), px(pos), axisStyle)
		if y.IsCategoryAxis {
			label = axis.Truncate(label, room-axis.TickLabelPadding, r.measurer, r.text)
		}
		x := edge + dir*axis.TickLabelPadding
		r.canvas.Text(px(x), px(pos+r.fontSize()*0.35), label, r.textStyle(anchor))
	}
	r.canvas.Gend()
}

// titles draws axis titles outside the tick label bands.
func (r *renderer) titles(l cartesian.CartesianAxesLayout) {
	p := l.PlotArea
	tm := l.TickLabelMargins
	lineHeight := r.measurer.Height(r.text)
	style := fmt.Sprintf("fill:%s;font-size:%gpx;text-anchor:middle;font-weight:bold", r.theme.Title, r.fontSize())

	r.canvas.Gid("titles")
	if t := l.Axes.X.Title; t != "" && !l.HideX {
		y := p.Bottom() + tm.XMax + cartesian.TitlePadding + r.fontSize()*0.8
		r.canvas.Text(px(p.CenterX()), px(y), t, style)
	}
	vertical := func(title string, x float64) {
		r.canvas.TranslateRotate(px(x), px(p.CenterY()), -90)
		r.canvas.Text(0, 0, title, style)
		r.canvas.Gend()
	}
	leftX := p.X - tm.YLeft - cartesian.TitlePadding
	rightX := p.Right() + tm.YRight + cartesian.TitlePadding + lineHeight*0.8
	if t := l.Axes.Y1.Title; t != "" && !l.HideY1 {
		if l.Y1OnRight {
			vertical(t, rightX)
		} else {
			vertical(t, leftX)
		}
	}
	if y2 := l.Axes.Y2; y2 != nil && y2.Title != "" && !l.HideY2 {
		if l.Y1OnRight {
			vertical(y2.Title, leftX)
		} else {
			vertical(y2.Title, rightX)
		}
	}
	r.canvas.Gend()
}
