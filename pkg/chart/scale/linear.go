package scale

import "math"

// Linear is a continuous scale mapping [d0, d1] onto [r0, r1].
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale.
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

func (l *Linear) Kind() Kind { return KindLinear }

// Domain returns the domain bounds.
func (l *Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the pixel range.
func (l *Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Map projects v onto the pixel range. A zero-width domain maps everything to
// the middle of the range.
func (l *Linear) Map(v float64) float64 {
	if l.d1 == l.d0 {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + (v-l.d0)/(l.d1-l.d0)*(l.r1-l.r0)
}

// Invert maps a pixel back to a domain value.
func (l *Linear) Invert(px float64) float64 {
	if l.r1 == l.r0 {
		return l.d0
	}
	return l.d0 + (px-l.r0)/(l.r1-l.r0)*(l.d1-l.d0)
}

// Ticks returns approximately count nice tick values inside the domain.
func (l *Linear) Ticks(count int) []float64 { return Ticks(l.d0, l.d1, count) }

// Log is a base-10 logarithmic scale. Domains must be strictly positive.
type Log struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLog creates a log scale. It reports false when the domain touches zero
// or negative values, in which case the caller must fall back to linear.
func NewLog(d0, d1, r0, r1 float64) (*Log, bool) {
	if d0 <= 0 || d1 <= 0 {
		return nil, false
	}
	return &Log{d0: d0, d1: d1, r0: r0, r1: r1}, true
}

func (l *Log) Kind() Kind { return KindLog }

// Domain returns the domain bounds.
func (l *Log) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the pixel range.
func (l *Log) Range() (float64, float64) { return l.r0, l.r1 }

// Map projects v onto the pixel range.
func (l *Log) Map(v float64) float64 {
	a, b := math.Log10(l.d0), math.Log10(l.d1)
	if a == b {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + (math.Log10(v)-a)/(b-a)*(l.r1-l.r0)
}

// Ticks returns the powers of ten inside the domain. When the domain spans
// less than two decades the 2x and 5x multiples are included.
func (l *Log) Ticks() []float64 {
	lo := math.Floor(math.Log10(l.d0))
	hi := math.Ceil(math.Log10(l.d1))
	mults := []float64{1}
	if hi-lo < 2 {
		mults = []float64{1, 2, 5}
	}
	var ticks []float64
	for e := lo; e <= hi; e++ {
		p := math.Pow(10, e)
		for _, m := range mults {
			v := m * p
			if v >= l.d0-1e-12 && v <= l.d1+1e-12 {
				ticks = append(ticks, v)
			}
		}
	}
	return ticks
}

// NiceLogDomain expands [d0, d1] outward to powers of ten.
func NiceLogDomain(d0, d1 float64) (float64, float64) {
	return math.Pow(10, math.Floor(math.Log10(d0))), math.Pow(10, math.Ceil(math.Log10(d1)))
}
