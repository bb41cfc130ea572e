package scale

import (
	"math"
	"strconv"
)

const tickEps = 1e-9

// niceMultiples are the mantissas accepted for forced tick steps.
var niceMultiples = []float64{1, 2, 2.5, 5, 10}

// TickStep returns a nice step that divides [start, stop] into roughly count
// intervals. It returns 0 for an empty or non-finite span.
func TickStep(start, stop float64, count int) float64 {
	count = max(1, count)
	span := math.Abs(stop - start)
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}
	raw := span / float64(count)
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	switch ratio := raw / power; {
	case ratio >= math.Sqrt(50):
		return power * 10
	case ratio >= math.Sqrt(10):
		return power * 5
	case ratio >= math.Sqrt2:
		return power * 2
	}
	return power
}

// Ticks returns nice tick values inside [start, stop].
func Ticks(start, stop float64, count int) []float64 {
	if start > stop {
		start, stop = stop, start
	}
	step := TickStep(start, stop, count)
	if step == 0 {
		if start == stop && !math.IsNaN(start) {
			return []float64{start}
		}
		return nil
	}
	lo := math.Ceil(start/step - tickEps)
	hi := math.Floor(stop/step + tickEps)
	ticks := make([]float64, 0, int(hi-lo)+1)
	for i := lo; i <= hi; i++ {
		ticks = append(ticks, clean(i*step, step))
	}
	return ticks
}

// Nice expands [d0, d1] outward so both ends fall on tick steps.
func Nice(d0, d1 float64, count int) (float64, float64) {
	if d0 > d1 {
		d0, d1 = d1, d0
	}
	var prev float64
	for range 10 {
		step := TickStep(d0, d1, count)
		if step == 0 || step == prev {
			break
		}
		d0 = clean(math.Floor(d0/step+tickEps)*step, step)
		d1 = clean(math.Ceil(d1/step-tickEps)*step, step)
		prev = step
	}
	return d0, d1
}

// FixedTicks returns exactly n evenly spaced nice ticks covering [d0, d1],
// together with the expanded domain. n below 2 falls back to [Nice] and
// [Ticks] with a default count.
func FixedTicks(d0, d1 float64, n int) (lo, hi float64, ticks []float64) {
	if d0 > d1 {
		d0, d1 = d1, d0
	}
	if n < 2 {
		lo, hi = Nice(d0, d1, 5)
		return lo, hi, Ticks(lo, hi, 5)
	}
	if d0 == d1 {
		d0, d1 = d0-1, d1+1
	}
	step := niceCeil((d1 - d0) / float64(n-1))
	for range 64 {
		start := clean(math.Floor(d0/step+tickEps)*step, step)
		if start+step*float64(n-1) >= d1-tickEps*step {
			ticks = make([]float64, n)
			for i := range ticks {
				ticks[i] = clean(start+float64(i)*step, step)
			}
			return ticks[0], ticks[n-1], ticks
		}
		step = nextNice(step)
	}
	lo, hi = Nice(d0, d1, n)
	return lo, hi, Ticks(lo, hi, n)
}

// niceCeil returns the smallest nice number not below x.
func niceCeil(x float64) float64 {
	p := math.Pow(10, math.Floor(math.Log10(x)))
	for _, m := range niceMultiples {
		if m*p >= x*(1-tickEps) {
			return m * p
		}
	}
	return 10 * p
}

// nextNice returns the nice number following step.
func nextNice(step float64) float64 {
	p := math.Pow(10, math.Floor(math.Log10(step)+tickEps))
	m := step / p
	for _, c := range niceMultiples {
		if c > m*(1+tickEps) {
			return c * p
		}
	}
	return 20 * p
}

// clean removes floating point noise below the step's precision.
func clean(v, step float64) float64 {
	d := Decimals(step) + 2
	p := math.Pow(10, float64(d))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}

// Decimals returns the number of fractional digits needed to print multiples
// of step exactly.
func Decimals(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	for d := 0; d < 12; d++ {
		s := step * math.Pow(10, float64(d))
		if math.Abs(s-math.Round(s)) < 1e-6*max(1, s) {
			return d
		}
	}
	return 12
}

// DisplayUnit scales tick labels for large magnitudes.
type DisplayUnit struct {
	Suffix  string
	Divisor float64
}

var displayUnits = []DisplayUnit{
	{Suffix: "T", Divisor: 1e12},
	{Suffix: "bn", Divisor: 1e9},
	{Suffix: "M", Divisor: 1e6},
	{Suffix: "K", Divisor: 1e3},
}

// AutoDisplayUnit chooses a unit from the largest absolute value on the axis.
func AutoDisplayUnit(maxAbs float64) DisplayUnit {
	for _, u := range displayUnits {
		if maxAbs >= u.Divisor {
			return u
		}
	}
	return DisplayUnit{Divisor: 1}
}

// FormatTick formats a tick value with the precision implied by step.
func FormatTick(v, step float64, unit DisplayUnit) string {
	div := unit.Divisor
	if div == 0 {
		div = 1
	}
	s := v / div
	if math.Abs(s) < 1e-12 {
		s = 0
	}
	return strconv.FormatFloat(s, 'f', Decimals(step/div), 64) + unit.Suffix
}
