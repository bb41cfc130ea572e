package axis

import (
	"math"
	"strings"

	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/chart/scale"
)

// BlankLabel replaces empty category keys in tick labels.
const BlankLabel = "(Blank)"

// MaxWordBreakLines is the most lines a wrapped category label may take.
const MaxWordBreakLines = 3

// Properties describe one axis after a layer has computed it.
type Properties struct {
	Scale scale.Scale `json:"-"`
	Kind  scale.Kind  `json:"kind"`

	// Domain is [min, max] for value and scalar axes. Ordinal axes carry
	// their domain in Keys.
	Domain []float64 `json:"domain,omitempty"`
	// DataDomain is the extent of the data before nicing.
	DataDomain []float64 `json:"data_domain,omitempty"`
	Keys       []string  `json:"keys,omitempty"`

	// TickValues are domain values for continuous axes and category indices
	// for ordinal axes. Values holds the formatted label for each.
	TickValues []float64 `json:"tick_values"`
	Values     []string  `json:"values"`

	Title          string `json:"title,omitempty"`
	IsCategoryAxis bool   `json:"is_category_axis"`
	IsScalar       bool   `json:"is_scalar"`
	// Vertical axes run along the plot height.
	Vertical bool `json:"vertical"`

	CategoryThickness float64 `json:"category_thickness,omitempty"`
	OuterPadding      float64 `json:"outer_padding,omitempty"`
	WillScroll        bool    `json:"will_scroll,omitempty"`
	VisibleCount      int     `json:"visible_count,omitempty"`

	WillLabelsFit       bool `json:"will_labels_fit"`
	WillLabelsWordBreak bool `json:"will_labels_word_break"`
	UsingDefaultDomain  bool `json:"using_default_domain,omitempty"`

	// LogRejected is set when a log scale was requested for a domain that
	// touches zero or below and a linear scale was used instead.
	LogRejected bool              `json:"log_rejected,omitempty"`
	DisplayUnit scale.DisplayUnit `json:"display_unit"`

	// Measured label extents, cached for margin estimation.
	MaxLabelWidth   float64 `json:"-"`
	FirstLabelWidth float64 `json:"-"`
	LastLabelWidth  float64 `json:"-"`
	MaxLabelLines   int     `json:"-"`
}

// TickCount returns the number of ticks.
func (p *Properties) TickCount() int {
	if p == nil {
		return 0
	}
	return len(p.TickValues)
}

// Ordinal returns the scale as an ordinal scale, or nil.
func (p *Properties) Ordinal() *scale.Ordinal {
	if p == nil {
		return nil
	}
	o, _ := p.Scale.(*scale.Ordinal)
	return o
}

// TickPosition returns the pixel position of tick i.
func (p *Properties) TickPosition(i int) float64 {
	if o := p.Ordinal(); o != nil {
		return o.Center(int(p.TickValues[i]))
	}
	return p.Scale.Map(p.TickValues[i])
}

// Clone returns a copy safe to modify.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	c := *p
	c.Domain = append([]float64(nil), p.Domain...)
	c.DataDomain = append([]float64(nil), p.DataDomain...)
	c.Keys = append([]string(nil), p.Keys...)
	c.TickValues = append([]float64(nil), p.TickValues...)
	c.Values = append([]string(nil), p.Values...)
	return &c
}

// RecommendedTickCount returns how many ticks an axis of the given pixel
// length should aim for.
func RecommendedTickCount(length float64, vertical bool) int {
	if vertical {
		switch {
		case length < 150:
			return 3
		case length < 300:
			return 5
		}
		return 8
	}
	switch {
	case length < 300:
		return 3
	case length < 500:
		return 5
	}
	return 8
}

// CategoryAxisOptions configure NewCategoryAxis.
type CategoryAxisOptions struct {
	Data   *data.CartesianData
	Length float64
	// Layout is the result of NewCategoryLayout for Data and Length.
	Layout       CategoryLayout
	Vertical     bool
	Title        string
	EnsureDomain []float64
	// PadScalar widens a scalar domain by half a category on each side so
	// bars at the ends are not clipped.
	PadScalar bool

	Measurer TextMeasurer
	Text     TextProperties
}

// NewCategoryAxis builds the axis that carries a layer's categories.
func NewCategoryAxis(o CategoryAxisOptions) *Properties {
	m := measurerOrDefault(o.Measurer)
	p := &Properties{
		Title:             o.Title,
		IsCategoryAxis:    true,
		IsScalar:          o.Layout.IsScalar,
		Vertical:          o.Vertical,
		CategoryThickness: o.Layout.Thickness,
		OuterPadding:      o.Layout.OuterPaddingRatio,
		WillScroll:        o.Layout.WillScroll,
		VisibleCount:      o.Layout.VisibleCount,
	}
	if o.Data.CategoryCount() == 0 {
		p.UsingDefaultDomain = true
	}
	if p.IsScalar {
		buildScalarCategoryAxis(p, o, m)
	} else {
		buildOrdinalAxis(p, o, m)
	}
	return p
}

func buildOrdinalAxis(p *Properties, o CategoryAxisOptions, m TextMeasurer) {
	p.Kind = scale.KindOrdinal
	p.Keys = o.Data.Keys()
	end := o.Length
	if o.Layout.WillScroll {
		end = o.Layout.Thickness * (float64(len(p.Keys)) + 2*p.OuterPadding)
	}
	p.Scale = scale.NewOrdinal(p.Keys, 0, end, InnerPaddingRatio, p.OuterPadding)

	p.TickValues = make([]float64, len(p.Keys))
	p.Values = make([]string, len(p.Keys))
	for i, k := range p.Keys {
		p.TickValues[i] = float64(i)
		if k == "" {
			k = BlankLabel
		}
		p.Values[i] = k
	}
	measureLabels(p, m, o.Text)

	thickness := o.Layout.Thickness
	if p.Vertical {
		p.WillLabelsFit = m.Height(o.Text) <= thickness
		return
	}
	p.WillLabelsFit = p.MaxLabelWidth <= thickness
	if p.WillLabelsFit || p.WillScroll {
		return
	}
	p.WillLabelsWordBreak, p.MaxLabelLines = wordBreaks(p.Values, thickness, m, o.Text)
}

// wordBreaks reports whether every label can be wrapped at spaces into at
// most MaxWordBreakLines lines no wider than thickness.
func wordBreaks(labels []string, thickness float64, m TextMeasurer, props TextProperties) (bool, int) {
	anySpace := false
	lines := 1
	for _, l := range labels {
		if strings.ContainsAny(l, " \t") {
			anySpace = true
		}
		for _, w := range strings.Fields(l) {
			if m.Width(w, props) > thickness {
				return false, 1
			}
		}
		lines = max(lines, len(WordBreak(l, thickness, m, props)))
	}
	if !anySpace || lines > MaxWordBreakLines {
		return false, 1
	}
	return true, lines
}

func buildScalarCategoryAxis(p *Properties, o CategoryAxisOptions, m TextMeasurer) {
	ext := o.Data.CategoryExtent()
	for _, v := range o.EnsureDomain {
		ext = ext.Include(v)
	}
	lo, hi := 0.0, 10.0
	if ext.OK {
		lo, hi = ext.Min, ext.Max
	} else {
		p.UsingDefaultDomain = true
	}
	p.DataDomain = []float64{lo, hi}
	if o.PadScalar && o.Layout.Thickness > 0 && o.Length > 0 {
		if interval := o.Data.MinInterval(); interval > 0 {
			pad := interval * (0.5 + DefaultOuterPaddingRatio)
			lo, hi = lo-pad, hi+pad
		}
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	count := RecommendedTickCount(o.Length, o.Vertical)
	p.Kind = scale.KindLinear
	p.Domain = []float64{lo, hi}
	if o.Vertical {
		p.Scale = scale.NewLinear(lo, hi, o.Length, 0)
	} else {
		p.Scale = scale.NewLinear(lo, hi, 0, o.Length)
	}
	p.TickValues = scale.Ticks(lo, hi, count)
	formatTicks(p, lo, hi)
	measureLabels(p, m, o.Text)
	p.WillLabelsFit = labelsFitSpacing(p, o.Length, m, o.Text)
}

// ValueAxisOptions configure NewValueAxis.
type ValueAxisOptions struct {
	Extent data.Extent
	Length float64
	// IncludeZero anchors the domain at zero (columns and bars).
	IncludeZero bool
	Log         bool
	Vertical    bool
	Title       string

	// ForcedDomain replaces the computed domain, typically after a merge.
	ForcedDomain []float64
	// ForcedTickCount draws exactly that many ticks.
	ForcedTickCount int
	EnsureDomain    []float64

	Measurer TextMeasurer
	Text     TextProperties
}

// NewValueAxis builds a measure axis.
func NewValueAxis(o ValueAxisOptions) *Properties {
	m := measurerOrDefault(o.Measurer)
	p := &Properties{Title: o.Title, Vertical: o.Vertical}

	ext := o.Extent
	for _, v := range o.EnsureDomain {
		ext = ext.Include(v)
	}
	lo, hi := 0.0, 10.0
	if ext.OK {
		lo, hi = ext.Min, ext.Max
	} else {
		p.UsingDefaultDomain = true
	}
	if o.IncludeZero && !o.Log {
		lo, hi = min(lo, 0), max(hi, 0)
	}
	p.DataDomain = []float64{lo, hi}
	if len(o.ForcedDomain) == 2 {
		lo, hi = o.ForcedDomain[0], o.ForcedDomain[1]
	}

	r0, r1 := 0.0, o.Length
	if o.Vertical {
		r0, r1 = o.Length, 0
	}
	count := RecommendedTickCount(o.Length, o.Vertical)

	if o.Log {
		if lo > 0 && hi > 0 {
			lo, hi = scale.NiceLogDomain(lo, hi)
			if s, ok := scale.NewLog(lo, hi, r0, r1); ok {
				p.Kind = scale.KindLog
				p.Scale = s
				p.Domain = []float64{lo, hi}
				p.TickValues = s.Ticks()
				formatTicks(p, lo, hi)
				measureLabels(p, m, o.Text)
				p.WillLabelsFit = o.Vertical || labelsFitSpacing(p, o.Length, m, o.Text)
				return p
			}
		}
		p.LogRejected = true
		if o.IncludeZero {
			lo, hi = min(lo, 0), max(hi, 0)
		}
	}

	if lo == hi {
		if lo == 0 {
			hi = 1
		} else {
			lo, hi = min(lo, 0), max(hi, 0)
		}
	}
	if o.ForcedTickCount >= 2 {
		lo, hi, p.TickValues = scale.FixedTicks(lo, hi, o.ForcedTickCount)
	} else {
		lo, hi = scale.Nice(lo, hi, count)
		p.TickValues = scale.Ticks(lo, hi, count)
	}
	p.Kind = scale.KindLinear
	p.Scale = scale.NewLinear(lo, hi, r0, r1)
	p.Domain = []float64{lo, hi}
	formatTicks(p, lo, hi)
	measureLabels(p, m, o.Text)
	p.WillLabelsFit = o.Vertical || labelsFitSpacing(p, o.Length, m, o.Text)
	return p
}

func formatTicks(p *Properties, lo, hi float64) {
	p.Values = make([]string, len(p.TickValues))
	if p.Kind == scale.KindLog {
		// Decades differ too much for one shared unit.
		for i, v := range p.TickValues {
			p.Values[i] = scale.FormatTick(v, v, scale.AutoDisplayUnit(v))
		}
		return
	}
	p.DisplayUnit = scale.AutoDisplayUnit(max(math.Abs(lo), math.Abs(hi)))
	step := 0.0
	if len(p.TickValues) > 1 {
		step = p.TickValues[1] - p.TickValues[0]
	}
	for i, v := range p.TickValues {
		p.Values[i] = scale.FormatTick(v, step, p.DisplayUnit)
	}
}

func measureLabels(p *Properties, m TextMeasurer, props TextProperties) {
	p.MaxLabelWidth, p.FirstLabelWidth, p.LastLabelWidth = 0, 0, 0
	p.MaxLabelLines = 1
	for i, v := range p.Values {
		w := m.Width(v, props)
		p.MaxLabelWidth = max(p.MaxLabelWidth, w)
		if i == 0 {
			p.FirstLabelWidth = w
		}
		if i == len(p.Values)-1 {
			p.LastLabelWidth = w
		}
	}
}

// labelsFitSpacing reports whether horizontal labels fit between ticks.
func labelsFitSpacing(p *Properties, length float64, m TextMeasurer, props TextProperties) bool {
	if p.Vertical {
		return m.Height(props)*float64(len(p.Values)) <= length
	}
	if len(p.Values) < 2 {
		return p.MaxLabelWidth <= length
	}
	return p.MaxLabelWidth <= length/float64(len(p.Values)-1)
}

func measurerOrDefault(m TextMeasurer) TextMeasurer {
	if m == nil {
		return DefaultMeasurer()
	}
	return m
}
