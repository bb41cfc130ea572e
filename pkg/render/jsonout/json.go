// Package jsonout exports negotiated layouts as JSON for hosts that draw
// charts themselves.
package jsonout

import (
	"encoding/json"

	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
)

// Option configures RenderJSON.
type Option func(*jsonRenderer)

type jsonRenderer struct {
	layers []cartesian.Layer
	title  string
}

// WithMarks includes the layers' marks for the frame's window.
func WithMarks(layers []cartesian.Layer) Option {
	return func(r *jsonRenderer) { r.layers = layers }
}

// WithTitle records the chart title.
func WithTitle(s string) Option { return func(r *jsonRenderer) { r.title = s } }

type jsonOutput struct {
	Title  string                        `json:"title,omitempty"`
	Layout cartesian.CartesianAxesLayout `json:"layout"`
	Range  cartesian.ViewportDataRange   `json:"range"`
	Extent *[2]float64                   `json:"extent,omitempty"`
	Layers []jsonLayer                   `json:"layers,omitempty"`
}

type jsonLayer struct {
	Index int              `json:"index"`
	Axis  string           `json:"value_axis"`
	Marks []cartesian.Mark `json:"marks"`
}

// RenderJSON exports one frame as pretty-printed JSON: the layout with its
// axes, margins, plot area, scrollbar and warnings, plus the visible range.
// Series data is not included; hosts already hold it.
func RenderJSON(f cartesian.Frame, opts ...Option) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:  r.title,
		Layout: f.Layout,
		Range:  f.Range,
	}
	if f.Layout.ScrollbarVisible {
		out.Extent = &f.Extent
	}
	if !f.Layout.IsDegenerate() && f.Layout.Axes.X != nil {
		out.Layers = buildLayers(f.Layout, r.layers)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildLayers(l cartesian.CartesianAxesLayout, layers []cartesian.Layer) []jsonLayer {
	var out []jsonLayer
	for i, layer := range layers {
		m, ok := layer.(cartesian.Marker)
		if !ok {
			continue
		}
		jl := jsonLayer{Index: i, Axis: "y1"}
		y := l.Axes.Y1
		if i != l.PrimaryLayer && l.Axes.Y2 != nil {
			y, jl.Axis = l.Axes.Y2, "y2"
		}
		jl.Marks = m.Marks(l.Axes.X, y)
		if jl.Marks == nil {
			jl.Marks = []cartesian.Mark{}
		}
		out = append(out, jl)
	}
	return out
}
