package axis

import (
	"math"

	"github.com/matzehuels/cartesian/pkg/chart/data"
)

const (
	// DefaultOuterPaddingRatio is the padding before the first and after the
	// last category, as a fraction of one category thickness.
	DefaultOuterPaddingRatio = 0.4
	// InnerPaddingRatio is the gap between adjacent bands.
	InnerPaddingRatio = 0.2
	// MinOrdinalThickness is the smallest ordinal category slot when
	// overflow is trimmed. Narrower slots switch the axis to scrolling.
	MinOrdinalThickness = 20.0
	// MinScalarThickness is the smallest scalar category slot.
	MinScalarThickness = 2.0

	// Categories never get wider than they would with this many.
	maxThicknessCategories = 3
)

// CategoryThickness returns the pixel width of one category slot.
//
// domain is the scalar category domain [min, max] and is ignored for ordinal
// axes. With trimOverflow set, ordinal thickness never drops below
// MinOrdinalThickness.
func CategoryThickness(d *data.CartesianData, categoryCount int, plotLength float64, domain []float64, isScalar, trimOverflow bool) float64 {
	outer := DefaultOuterPaddingRatio
	if plotLength <= 0 {
		return 0
	}
	if categoryCount < 2 {
		return plotLength * (1 - outer)
	}

	var thickness float64
	if isScalar && len(domain) == 2 && d != nil {
		span := domain[1] - domain[0]
		if interval := d.MinInterval(); interval > 0 && span > 0 {
			ratio := interval / (span + interval*outer*2)
			thickness = max(plotLength*ratio, MinScalarThickness)
		}
	}
	if thickness == 0 {
		thickness = plotLength / (float64(categoryCount) + outer*2)
		if isScalar {
			thickness = max(thickness, MinScalarThickness)
		}
	}

	thickness = min(thickness, plotLength/(maxThicknessCategories+outer*2))
	if !isScalar && trimOverflow {
		thickness = max(thickness, MinOrdinalThickness)
	}
	return thickness
}

// CategoryLayout describes how categories occupy the plot along the category
// axis.
type CategoryLayout struct {
	// Count is the total number of categories.
	Count int `json:"count"`
	// VisibleCount is how many fit without scrolling.
	VisibleCount      int     `json:"visible_count"`
	Thickness         float64 `json:"thickness"`
	OuterPaddingRatio float64 `json:"outer_padding_ratio"`
	IsScalar          bool    `json:"is_scalar"`
	// WillScroll reports that only a window of categories can be shown.
	WillScroll bool `json:"will_scroll"`
}

// NewCategoryLayout computes thickness, visible count and outer padding for
// a category axis of plotLength pixels.
func NewCategoryLayout(d *data.CartesianData, plotLength float64, domain []float64, isScalar, trimOverflow bool) CategoryLayout {
	count := d.CategoryCount()
	l := CategoryLayout{
		Count:             count,
		VisibleCount:      count,
		OuterPaddingRatio: DefaultOuterPaddingRatio,
		IsScalar:          isScalar,
	}
	l.Thickness = CategoryThickness(d, count, plotLength, domain, isScalar, trimOverflow)
	if isScalar || count < 2 || l.Thickness <= 0 {
		return l
	}

	fit := int(math.Floor((plotLength-2*l.OuterPaddingRatio*l.Thickness)/l.Thickness + 1e-9))
	l.VisibleCount = max(0, min(count, fit))
	l.WillScroll = trimOverflow && l.VisibleCount < count
	if !l.WillScroll {
		// Spread a small number of categories across the whole plot.
		l.OuterPaddingRatio = max(DefaultOuterPaddingRatio, (plotLength/l.Thickness-float64(count))/2)
	}
	return l
}

// PreferredLength is the plot length that shows every category at the
// computed thickness.
func (l CategoryLayout) PreferredLength() float64 {
	return l.Thickness * (float64(l.Count) + 2*DefaultOuterPaddingRatio)
}
