// Package data holds the in-memory series data consumed by chart layers.
//
// A [CartesianData] is a list of categories plus one or more series with one
// value per category. Missing values are NaN. Source values that cannot be
// plotted (a literal NaN or an infinity) are flagged in [Series.Invalid] so
// they stay distinct from missing ones.
//
// Categories carry a numeric value as well as a key so the same data can
// feed an ordinal axis (by key) or a scalar axis (by value).
package data

import (
	"math"
	"slices"
)

// Category is one slot on the category axis.
type Category struct {
	Key   string  `json:"key"`
	Value float64 `json:"value,omitempty"`
}

// Series is one measure across all categories.
type Series struct {
	Name       string    `json:"name"`
	Values     []float64 `json:"values"`
	Highlights []bool    `json:"highlights,omitempty"`
	// Invalid marks points whose source value was NaN or infinite.
	Invalid []bool `json:"invalid,omitempty"`
}

// Highlighted reports whether point i is a highlight overlay.
func (s Series) Highlighted(i int) bool {
	return i < len(s.Highlights) && s.Highlights[i]
}

// IsInvalid reports whether point i held a value that cannot be plotted.
// Infinite values count even when they were not flagged.
func (s Series) IsInvalid(i int) bool {
	if i < len(s.Invalid) && s.Invalid[i] {
		return true
	}
	return i >= 0 && i < len(s.Values) && math.IsInf(s.Values[i], 0)
}

// MarkInvalid flags point i as invalid and sets it to NaN so it stays out
// of every domain.
func (s *Series) MarkInvalid(i int) {
	if i < 0 || i >= len(s.Values) {
		return
	}
	s.Invalid = padBools(s.Invalid, len(s.Values))
	s.Invalid[i] = true
	s.Values[i] = math.NaN()
}

// Value returns point i or NaN when it is out of range.
func (s Series) Value(i int) float64 {
	if i < 0 || i >= len(s.Values) {
		return math.NaN()
	}
	return s.Values[i]
}

// CartesianData is the working data of one layer.
type CartesianData struct {
	CategoryTitle string     `json:"category_title,omitempty"`
	ValueTitle    string     `json:"value_title,omitempty"`
	Categories    []Category `json:"categories"`
	Series        []Series   `json:"series"`
	IsScalar      bool       `json:"is_scalar,omitempty"`

	// Offset is the index of Categories[0] within the unfiltered data.
	Offset int `json:"offset,omitempty"`
}

// CategoryCount returns the number of categories.
func (d *CartesianData) CategoryCount() int {
	if d == nil {
		return 0
	}
	return len(d.Categories)
}

// Keys returns the category keys in order.
func (d *CartesianData) Keys() []string {
	keys := make([]string, len(d.Categories))
	for i, c := range d.Categories {
		keys[i] = c.Key
	}
	return keys
}

// CategoryValues returns the numeric category values in order.
func (d *CartesianData) CategoryValues() []float64 {
	vals := make([]float64, len(d.Categories))
	for i, c := range d.Categories {
		vals[i] = c.Value
	}
	return vals
}

// Slice returns the categories in [start, end] (inclusive) with every series
// cut to the same window. Bounds are clamped. The receiver is not modified.
func (d *CartesianData) Slice(start, end int) *CartesianData {
	n := len(d.Categories)
	start = max(0, start)
	end = min(n-1, end)
	out := &CartesianData{
		CategoryTitle: d.CategoryTitle,
		ValueTitle:    d.ValueTitle,
		IsScalar:      d.IsScalar,
		Offset:        d.Offset + start,
	}
	if start > end {
		out.Categories = []Category{}
		out.Series = make([]Series, len(d.Series))
		for i, s := range d.Series {
			out.Series[i] = Series{Name: s.Name, Values: []float64{}}
		}
		return out
	}
	out.Categories = slices.Clone(d.Categories[start : end+1])
	out.Series = make([]Series, len(d.Series))
	for i, s := range d.Series {
		cut := Series{Name: s.Name, Values: make([]float64, end-start+1)}
		for j := range cut.Values {
			cut.Values[j] = s.Value(start + j)
		}
		if len(s.Highlights) > 0 {
			cut.Highlights = make([]bool, end-start+1)
			for j := range cut.Highlights {
				cut.Highlights[j] = s.Highlighted(start + j)
			}
		}
		if len(s.Invalid) > 0 {
			cut.Invalid = make([]bool, end-start+1)
			for j := range cut.Invalid {
				cut.Invalid[j] = start+j < len(s.Invalid) && s.Invalid[start+j]
			}
		}
		out.Series[i] = cut
	}
	return out
}

// Append adds the categories and series values of more to the end of d.
// Series are matched by position; more must carry the same number of series.
func (d *CartesianData) Append(more *CartesianData) {
	base := len(d.Categories)
	d.Categories = append(d.Categories, more.Categories...)
	for i := range d.Series {
		s := &d.Series[i]
		for len(s.Values) < base {
			s.Values = append(s.Values, math.NaN())
		}
		if i >= len(more.Series) {
			continue
		}
		m := more.Series[i]
		if len(s.Invalid) > 0 || len(m.Invalid) > 0 {
			s.Invalid = padBools(s.Invalid, base)
			s.Invalid = append(s.Invalid, padBools(m.Invalid, len(m.Values))...)
		}
		s.Values = append(s.Values, m.Values...)
	}
}

// Finite reports whether v can be placed on an axis.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func padBools(b []bool, n int) []bool {
	for len(b) < n {
		b = append(b, false)
	}
	return b[:n]
}

// InvalidCount returns the number of NaN or infinite source values across
// all series. Missing values are not counted.
func (d *CartesianData) InvalidCount() int {
	n := 0
	for _, s := range d.Series {
		for i := range s.Values {
			if s.IsInvalid(i) {
				n++
			}
		}
	}
	return n
}

// Extent is a numeric [Min, Max] range. OK is false when no finite value
// was seen.
type Extent struct {
	Min, Max float64
	OK       bool
}

// Include widens the extent to contain v. Non-finite values are ignored.
func (e Extent) Include(v float64) Extent {
	if !Finite(v) {
		return e
	}
	if !e.OK {
		return Extent{Min: v, Max: v, OK: true}
	}
	return Extent{Min: min(e.Min, v), Max: max(e.Max, v), OK: true}
}

// ValueExtent returns the range of all finite series values.
func (d *CartesianData) ValueExtent() Extent {
	var e Extent
	for _, s := range d.Series {
		for _, v := range s.Values {
			e = e.Include(v)
		}
	}
	return e
}

// StackedExtent returns the range of per-category positive and negative
// stack totals.
func (d *CartesianData) StackedExtent() Extent {
	var e Extent
	for i := range d.Categories {
		var pos, neg float64
		seen := false
		for _, s := range d.Series {
			v := s.Value(i)
			if !Finite(v) {
				continue
			}
			seen = true
			if v >= 0 {
				pos += v
			} else {
				neg += v
			}
		}
		if seen {
			e = e.Include(pos).Include(neg)
		}
	}
	return e
}

// RunningExtent returns the range of the running total of the first series,
// starting from zero. Waterfall charts use it.
func (d *CartesianData) RunningExtent() Extent {
	e := Extent{}.Include(0)
	if len(d.Series) == 0 {
		return e
	}
	var sum float64
	for _, v := range d.Series[0].Values {
		if !Finite(v) {
			continue
		}
		sum += v
		e = e.Include(sum)
	}
	return e
}

// CategoryExtent returns the range of the numeric category values.
func (d *CartesianData) CategoryExtent() Extent {
	var e Extent
	for _, c := range d.Categories {
		e = e.Include(c.Value)
	}
	return e
}

// MinInterval returns the smallest gap between consecutive category values
// that carry a finite, non-highlighted point in the first series. It returns
// 0 when fewer than two such points exist.
func (d *CartesianData) MinInterval() float64 {
	if len(d.Series) == 0 {
		return 0
	}
	s := d.Series[0]
	var xs []float64
	for i, c := range d.Categories {
		if s.Highlighted(i) || !Finite(s.Value(i)) || !Finite(c.Value) {
			continue
		}
		xs = append(xs, c.Value)
	}
	if len(xs) < 2 {
		return 0
	}
	slices.Sort(xs)
	best := math.Inf(1)
	for i := 1; i < len(xs); i++ {
		if gap := xs[i] - xs[i-1]; gap > 0 && gap < best {
			best = gap
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}
