// Package layers provides reference chart layers for axis negotiation.
//
// Every chart type is one [Layer] parameterized by a variant: where the
// category axis runs, how the value extent is computed, and how marks are
// placed. [New] maps a [ChartType] to its variant; [Build] expands the
// combo type into a column layer and a line layer over the same categories.
package layers

import (
	"slices"
	"strings"

	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/errors"
)

// ChartType identifies a layer variant.
type ChartType string

const (
	Column        ChartType = "column"
	StackedColumn ChartType = "stacked_column"
	Bar           ChartType = "bar"
	StackedBar    ChartType = "stacked_bar"
	Line          ChartType = "line"
	Scatter       ChartType = "scatter"
	Waterfall     ChartType = "waterfall"
	// Combo draws all but the last series as columns and the last as a
	// line. It is built from two layers.
	Combo ChartType = "combo"
)

var variants = map[ChartType]variant{
	Column: {
		extent:      (*data.CartesianData).ValueExtent,
		includeZero: true,
		padScalar:   true,
		marks:       columnMarks,
	},
	StackedColumn: {
		extent:      (*data.CartesianData).StackedExtent,
		includeZero: true,
		padScalar:   true,
		marks:       stackedMarks,
	},
	Bar: {
		categoryOnY: true,
		extent:      (*data.CartesianData).ValueExtent,
		includeZero: true,
		padScalar:   true,
		marks:       columnMarks,
	},
	StackedBar: {
		categoryOnY: true,
		extent:      (*data.CartesianData).StackedExtent,
		includeZero: true,
		padScalar:   true,
		marks:       stackedMarks,
	},
	Line: {
		extent: (*data.CartesianData).ValueExtent,
		marks:  lineMarks,
	},
	Scatter: {
		extent:      (*data.CartesianData).ValueExtent,
		forceScalar: true,
		marks:       pointMarks,
	},
	Waterfall: {
		extent:      (*data.CartesianData).RunningExtent,
		includeZero: true,
		marks:       waterfallMarks,
	},
}

// Types returns every chart type, combo included, in a stable order.
func Types() []ChartType {
	types := make([]ChartType, 0, len(variants)+1)
	for t := range variants {
		types = append(types, t)
	}
	types = append(types, Combo)
	slices.Sort(types)
	return types
}

// ParseChartType parses a chart type name. Dashes and case are ignored.
func ParseChartType(s string) (ChartType, error) {
	t := ChartType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := variants[t]; ok || t == Combo {
		return t, nil
	}
	return "", errors.New(errors.ErrCodeInvalidChartType, "unknown chart type %q", s)
}

// New creates a single layer. Combo is not a single layer; use Build.
func New(t ChartType, d *data.CartesianData) (*Layer, error) {
	v, ok := variants[t]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidChartType, "chart type %q has no single-layer form", t)
	}
	if d == nil {
		d = &data.CartesianData{}
	}
	return &Layer{kind: t, v: v, full: d, work: d}, nil
}

// Build creates the layers for a chart type.
func Build(t ChartType, d *data.CartesianData) ([]cartesian.Layer, error) {
	if t != Combo {
		l, err := New(t, d)
		if err != nil {
			return nil, err
		}
		return []cartesian.Layer{l}, nil
	}
	if d == nil || len(d.Series) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidData, "combo charts need at least two series")
	}
	columns, line := splitSeries(d, len(d.Series)-1)
	cl, _ := New(Column, columns)
	ll, _ := New(Line, line)
	return []cartesian.Layer{cl, ll}, nil
}

// splitSeries divides d into the first n series and the rest, sharing
// categories.
func splitSeries(d *data.CartesianData, n int) (*data.CartesianData, *data.CartesianData) {
	a, b := *d, *d
	a.Series = slices.Clone(d.Series[:n])
	b.Series = slices.Clone(d.Series[n:])
	if len(b.Series) == 1 && b.Series[0].Name != "" {
		b.ValueTitle = b.Series[0].Name
	}
	return &a, &b
}
