package scale

import "math"

// Ordinal is a band scale over category keys.
//
// The step (one category slot) is rangeLength / (n + 2*outerPadding), so the
// step equals the category thickness computed for the same plot length. The
// drawn band is the step minus innerPadding, centered in the slot.
type Ordinal struct {
	keys         []string
	index        map[string]int
	start, end   float64
	innerPadding float64
	outerPadding float64
}

// NewOrdinal creates a band scale. Duplicate keys are allowed; Index returns
// the first occurrence.
func NewOrdinal(keys []string, start, end, innerPadding, outerPadding float64) *Ordinal {
	idx := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, ok := idx[k]; !ok {
			idx[k] = i
		}
	}
	return &Ordinal{
		keys:         append([]string(nil), keys...),
		index:        idx,
		start:        start,
		end:          end,
		innerPadding: innerPadding,
		outerPadding: outerPadding,
	}
}

func (o *Ordinal) Kind() Kind { return KindOrdinal }

// Range returns the pixel interval the scale was created with.
func (o *Ordinal) Range() (float64, float64) { return o.start, o.end }

// Keys returns a copy of the category keys.
func (o *Ordinal) Keys() []string { return append([]string(nil), o.keys...) }

// Len returns the number of categories.
func (o *Ordinal) Len() int { return len(o.keys) }

// Index returns the position of key in the domain.
func (o *Ordinal) Index(key string) (int, bool) {
	i, ok := o.index[key]
	return i, ok
}

// OuterPadding returns the outer padding ratio.
func (o *Ordinal) OuterPadding() float64 { return o.outerPadding }

// Step returns the width of one category slot.
func (o *Ordinal) Step() float64 {
	n := float64(len(o.keys))
	if n == 0 {
		return 0
	}
	return (o.end - o.start) / (n + 2*o.outerPadding)
}

// Bandwidth returns the drawn width of one category.
func (o *Ordinal) Bandwidth() float64 { return o.Step() * (1 - o.innerPadding) }

// Map returns the leading edge of the band for category index v.
func (o *Ordinal) Map(v float64) float64 {
	step := o.Step()
	return o.start + step*(o.outerPadding+v) + step*o.innerPadding/2
}

// Center returns the pixel center of category i.
func (o *Ordinal) Center(i int) float64 {
	step := o.Step()
	return o.start + step*(o.outerPadding+float64(i)+0.5)
}

// Invert returns the category index under pixel position px, clamped to the
// domain. It returns -1 for an empty domain.
func (o *Ordinal) Invert(px float64) int {
	if len(o.keys) == 0 {
		return -1
	}
	step := o.Step()
	if step == 0 {
		return 0
	}
	i := int(math.Floor((px-o.start)/step - o.outerPadding))
	return max(0, min(len(o.keys)-1, i))
}

// WithKeys returns a scale over the same pixel range and padding but a new
// domain. Used to rebind the axis to the visible category window.
func (o *Ordinal) WithKeys(keys []string) *Ordinal {
	return NewOrdinal(keys, o.start, o.end, o.innerPadding, o.outerPadding)
}

// WithRange returns a copy of the scale spanning a new pixel range.
func (o *Ordinal) WithRange(start, end float64) *Ordinal {
	return NewOrdinal(o.keys, start, end, o.innerPadding, o.outerPadding)
}
