package layers

import (
	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/chart/geom"
)

type variant struct {
	categoryOnY bool
	extent      func(*data.CartesianData) data.Extent
	includeZero bool
	// padScalar keeps bars at the ends of a scalar axis inside the plot.
	padScalar   bool
	forceScalar bool
	marks       func(l *Layer, cat, val *axis.Properties) []cartesian.Mark
}

// Layer is a chart layer of one ChartType.
type Layer struct {
	kind ChartType
	v    variant
	full *data.CartesianData
	work *data.CartesianData
	// category replaces the layer's own category axis when set.
	category *axis.Properties
}

var (
	_ cartesian.Layer             = (*Layer)(nil)
	_ cartesian.PlotAreaPreferrer = (*Layer)(nil)
	_ cartesian.DataProvider      = (*Layer)(nil)
	_ cartesian.Marker            = (*Layer)(nil)
)

// Kind returns the chart type.
func (l *Layer) Kind() ChartType { return l.kind }

// Data returns the full data.
func (l *Layer) Data() *data.CartesianData { return l.full }

// Working returns the data of the current scroll window.
func (l *Layer) Working() *data.CartesianData { return l.work }

// CategoryOnY reports whether the layer draws categories vertically.
func (l *Layer) CategoryOnY() bool { return l.v.categoryOnY }

func (l *Layer) isScalar() bool { return l.full.IsScalar || l.v.forceScalar }

// CalculateAxesProperties computes the category and value axis for the
// full data against the plot area in opts.
func (l *Layer) CalculateAxesProperties(opts cartesian.AxesOptions) []*axis.Properties {
	d := l.full
	catLen, valLen := opts.PlotArea.Width, opts.PlotArea.Height
	if l.v.categoryOnY {
		catLen, valLen = valLen, catLen
	}

	isScalar := l.isScalar()
	var domain []float64
	if isScalar {
		ext := d.CategoryExtent()
		for _, v := range opts.EnsureXDomain {
			ext = ext.Include(v)
		}
		if ext.OK {
			domain = []float64{ext.Min, ext.Max}
		}
	}
	layout := axis.NewCategoryLayout(d, catLen, domain, isScalar, opts.TrimOrdinalDataOnOverflow)

	catTitle := opts.Category.Title
	if catTitle == "" {
		catTitle = d.CategoryTitle
	}
	cat := axis.NewCategoryAxis(axis.CategoryAxisOptions{
		Data:         d,
		Length:       catLen,
		Layout:       layout,
		Vertical:     l.v.categoryOnY,
		Title:        catTitle,
		EnsureDomain: opts.EnsureXDomain,
		PadScalar:    l.v.padScalar,
		Measurer:     opts.Measurer,
		Text:         opts.Text,
	})

	valTitle := opts.Value.Title
	if valTitle == "" {
		valTitle = d.ValueTitle
	}
	val := axis.NewValueAxis(axis.ValueAxisOptions{
		Extent:          l.v.extent(d),
		Length:          valLen,
		IncludeZero:     l.v.includeZero,
		Log:             opts.Value.Log,
		Vertical:        !l.v.categoryOnY,
		Title:           valTitle,
		ForcedDomain:    opts.ForcedYDomain,
		ForcedTickCount: opts.ForcedTickCount,
		EnsureDomain:    opts.EnsureYDomain,
		Measurer:        opts.Measurer,
		Text:            opts.Text,
	})

	if l.v.categoryOnY {
		return []*axis.Properties{val, cat}
	}
	return []*axis.Properties{cat, val}
}

// SetFilteredData restricts the working data to the inclusive range.
func (l *Layer) SetFilteredData(startIndex, endIndex int) *data.CartesianData {
	l.work = l.full.Slice(startIndex, endIndex)
	return l.work
}

// OverrideXScale makes the layer draw against another category axis.
func (l *Layer) OverrideXScale(x *axis.Properties) {
	if x != nil && x.IsCategoryAxis {
		l.category = x
	}
}

// PreferredPlotArea returns the plot size needed to show every category.
// Only the category dimension is set. Scalar axes and single categories
// always fit and report zero.
func (l *Layer) PreferredPlotArea(isScalar bool, categoryCount int, categoryThickness float64) geom.Viewport {
	if isScalar || categoryCount < 2 {
		return geom.Viewport{}
	}
	length := categoryThickness * (float64(categoryCount) + 2*axis.DefaultOuterPaddingRatio)
	if l.v.categoryOnY {
		return geom.Viewport{Height: length}
	}
	return geom.Viewport{Width: length}
}

// Marks places the working data in plot-area coordinates.
func (l *Layer) Marks(x, y *axis.Properties) []cartesian.Mark {
	cat, val := x, y
	if l.v.categoryOnY {
		cat, val = y, x
	}
	if l.category != nil {
		cat = l.category
	}
	if cat == nil || val == nil || cat.Scale == nil || val.Scale == nil {
		return nil
	}
	return l.v.marks(l, cat, val)
}
