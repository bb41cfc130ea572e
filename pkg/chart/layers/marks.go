package layers

import (
	"math"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/chart/geom"
)

// slot returns the leading edge and width of category i's band.
func slot(cat *axis.Properties, d *data.CartesianData, i int) (float64, float64) {
	if o := cat.Ordinal(); o != nil {
		return o.Map(float64(i)), o.Bandwidth()
	}
	w := cat.CategoryThickness * (1 - axis.InnerPaddingRatio)
	return cat.Scale.Map(d.Categories[i].Value) - w/2, w
}

// center returns the pixel center of category i.
func center(cat *axis.Properties, d *data.CartesianData, i int) float64 {
	if o := cat.Ordinal(); o != nil {
		return o.Center(i)
	}
	return cat.Scale.Map(d.Categories[i].Value)
}

// bandRect builds a rectangle spanning [start, start+width] on the category
// axis and between two value pixels.
func (l *Layer) bandRect(start, width, v0, v1 float64) geom.Rect {
	lo, hi := math.Min(v0, v1), math.Max(v0, v1)
	if l.v.categoryOnY {
		return geom.Rect{X: lo, Y: start, Width: hi - lo, Height: width}
	}
	return geom.Rect{X: start, Y: lo, Width: width, Height: hi - lo}
}

func (l *Layer) point(c, v float64) geom.Point {
	if l.v.categoryOnY {
		return geom.Point{X: v, Y: c}
	}
	return geom.Point{X: c, Y: v}
}

// baseline is the value pixel bars grow from.
func baseline(val *axis.Properties) float64 {
	lo, hi := val.Domain[0], val.Domain[1]
	return val.Scale.Map(math.Max(lo, math.Min(hi, 0)))
}

func columnMarks(l *Layer, cat, val *axis.Properties) []cartesian.Mark {
	d := l.work
	n := len(d.Series)
	if n == 0 || len(val.Domain) != 2 {
		return nil
	}
	base := baseline(val)
	var marks []cartesian.Mark
	for i := range d.Categories {
		start, width := slot(cat, d, i)
		sub := width / float64(n)
		for k, s := range d.Series {
			v := s.Value(i)
			if !data.Finite(v) {
				continue
			}
			marks = append(marks, cartesian.Mark{
				Kind:      cartesian.MarkRect,
				Series:    k,
				Category:  i,
				Rect:      l.bandRect(start+float64(k)*sub, sub, base, val.Scale.Map(v)),
				Highlight: s.Highlighted(i),
			})
		}
	}
	return marks
}

func stackedMarks(l *Layer, cat, val *axis.Properties) []cartesian.Mark {
	d := l.work
	if len(val.Domain) != 2 {
		return nil
	}
	var marks []cartesian.Mark
	for i := range d.Categories {
		start, width := slot(cat, d, i)
		var pos, neg float64
		for k, s := range d.Series {
			v := s.Value(i)
			if !data.Finite(v) {
				continue
			}
			from := pos
			if v < 0 {
				from = neg
				neg += v
			} else {
				pos += v
			}
			marks = append(marks, cartesian.Mark{
				Kind:      cartesian.MarkRect,
				Series:    k,
				Category:  i,
				Rect:      l.bandRect(start, width, val.Scale.Map(from), val.Scale.Map(from+v)),
				Highlight: s.Highlighted(i),
			})
		}
	}
	return marks
}

// lineMarks draws one polyline per series, broken at missing values.
func lineMarks(l *Layer, cat, val *axis.Properties) []cartesian.Mark {
	d := l.work
	var marks []cartesian.Mark
	for k, s := range d.Series {
		var run []geom.Point
		flush := func() {
			if len(run) > 0 {
				marks = append(marks, cartesian.Mark{Kind: cartesian.MarkLine, Series: k, Points: run})
			}
			run = nil
		}
		for i := range d.Categories {
			v := s.Value(i)
			if !data.Finite(v) {
				flush()
				continue
			}
			run = append(run, l.point(center(cat, d, i), val.Scale.Map(v)))
		}
		flush()
	}
	return marks
}

func pointMarks(l *Layer, cat, val *axis.Properties) []cartesian.Mark {
	d := l.work
	var marks []cartesian.Mark
	for k, s := range d.Series {
		for i := range d.Categories {
			v := s.Value(i)
			if !data.Finite(v) {
				continue
			}
			marks = append(marks, cartesian.Mark{
				Kind:      cartesian.MarkPoint,
				Series:    k,
				Category:  i,
				Points:    []geom.Point{l.point(center(cat, d, i), val.Scale.Map(v))},
				Highlight: s.Highlighted(i),
			})
		}
	}
	return marks
}

// waterfallMarks draws the first series as steps of a running total.
// Windows after the first start from the total of the hidden categories.
func waterfallMarks(l *Layer, cat, val *axis.Properties) []cartesian.Mark {
	d := l.work
	if len(d.Series) == 0 {
		return nil
	}
	total := 0.0
	if full := l.full; len(full.Series) > 0 {
		for i := 0; i < d.Offset-full.Offset && i < len(full.Categories); i++ {
			if v := full.Series[0].Value(i); data.Finite(v) {
				total += v
			}
		}
	}
	s := d.Series[0]
	var marks []cartesian.Mark
	for i := range d.Categories {
		v := s.Value(i)
		if !data.Finite(v) {
			continue
		}
		start, width := slot(cat, d, i)
		marks = append(marks, cartesian.Mark{
			Kind:      cartesian.MarkRect,
			Series:    0,
			Category:  i,
			Rect:      l.bandRect(start, width, val.Scale.Map(total), val.Scale.Map(total+v)),
			Highlight: s.Highlighted(i),
		})
		total += v
	}
	return marks
}
