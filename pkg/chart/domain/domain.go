// Package domain decides whether two value axes can share one scale.
//
// Two layers drawn on the same plot (columns plus a line, say) each compute
// their own value domain. When the domains overlap by at least
// [MinOverlapFraction] of their combined span they are merged into a single
// axis. Otherwise both axes are drawn and forced to the same number of ticks
// so their gridlines line up.
package domain

import (
	"math"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
)

// MinOverlapFraction is the smallest intersection/union ratio that merges.
const MinOverlapFraction = 0.1

// Options control merging.
type Options struct {
	// ForceMerge always merges, regardless of overlap. Set when the
	// secondary axis is hidden.
	ForceMerge bool
}

// Result is the outcome of TryMergeYDomains.
type Result struct {
	// Domain is the merged [min, max], nil when not merged.
	Domain []float64 `json:"domain,omitempty"`
	Merged bool      `json:"merged"`
	// TickCount is the tick count both axes should draw when not merged.
	TickCount int `json:"tick_count,omitempty"`
}

// TryMergeYDomains merges the value axes of exactly two layers. Passing any
// other number of axes is a programming error.
func TryMergeYDomains(axes []*axis.Properties, opts Options) Result {
	if len(axes) != 2 {
		panic("domain: merging supports exactly two value axes")
	}
	a, b := rawDomain(axes[0]), rawDomain(axes[1])
	if a == nil || b == nil {
		return Result{TickCount: max(axes[0].TickCount(), axes[1].TickCount())}
	}
	if opts.ForceMerge || ShouldMerge(a, b) {
		return Result{
			Domain: []float64{math.Min(a[0], b[0]), math.Max(a[1], b[1])},
			Merged: true,
		}
	}
	return Result{TickCount: max(axes[0].TickCount(), axes[1].TickCount())}
}

// ShouldMerge reports whether [a0, a1] and [b0, b1] overlap enough to share
// a scale. Disjoint domains never merge; identical points always do.
func ShouldMerge(a, b []float64) bool {
	union := math.Max(a[1], b[1]) - math.Min(a[0], b[0])
	overlap := math.Min(a[1], b[1]) - math.Max(a[0], b[0])
	if overlap < 0 {
		return false
	}
	if union == 0 {
		return true
	}
	return overlap/union >= MinOverlapFraction
}

// OverlapFraction returns the intersection of a and b relative to their
// union, or 0 when they are disjoint.
func OverlapFraction(a, b []float64) float64 {
	union := math.Max(a[1], b[1]) - math.Min(a[0], b[0])
	overlap := math.Min(a[1], b[1]) - math.Max(a[0], b[0])
	if overlap < 0 {
		return 0
	}
	if union == 0 {
		return 1
	}
	return overlap / union
}

func rawDomain(p *axis.Properties) []float64 {
	if p == nil {
		return nil
	}
	d := p.DataDomain
	if len(d) != 2 {
		d = p.Domain
	}
	if len(d) != 2 || math.IsNaN(d[0]) || math.IsNaN(d[1]) {
		return nil
	}
	return []float64{math.Min(d[0], d[1]), math.Max(d[0], d[1])}
}
