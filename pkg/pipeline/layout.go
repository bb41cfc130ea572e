package pipeline

import (
	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chartfile"
	"github.com/matzehuels/cartesian/pkg/errors"
)

// Chart is a negotiated chart ready to render frames.
type Chart struct {
	File   *chartfile.File
	Layers []cartesian.Layer
	Layout cartesian.CartesianAxesLayout
	// Scroll owns the scroll window. It renders the full data when every
	// category fits.
	Scroll *cartesian.ScrollableAxes

	DataHash  string
	LayoutKey string

	frame cartesian.Frame
}

// Negotiate builds the layers, negotiates their axes and opens the scroll
// window at opts.StartIndex. opts must have its layout defaults applied.
func Negotiate(f *chartfile.File, sources []chartfile.Source, opts Options, scroll cartesian.ScrollOptions) (*Chart, error) {
	ls, err := chartfile.BuildLayers(sources)
	if err != nil {
		return nil, err
	}
	if len(ls) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidData, "chart has no layers")
	}

	l := cartesian.NegotiateAxes(opts.Input(f, ls))
	for _, w := range l.Warnings {
		opts.Logger.Warn("layout warning", "code", w.Code, "message", w.Message)
	}
	if l.IsDegenerate() {
		opts.Logger.Warn("viewport leaves no room for the plot area",
			"width", opts.Width, "height", opts.Height)
	}

	if scroll.StartIndex == 0 {
		scroll.StartIndex = opts.StartIndex
	}
	if scroll.Logger == nil {
		scroll.Logger = opts.Logger
	}
	c := &Chart{File: f, Layers: ls, Layout: l}
	render := scroll.Render
	scroll.Render = func(fr cartesian.Frame) {
		c.frame = fr
		if render != nil {
			render(fr)
		}
	}
	c.Scroll = cartesian.NewScrollableAxes(l, ls, scroll)
	return c, nil
}

// Frame returns the most recently rendered frame.
func (c *Chart) Frame() cartesian.Frame { return c.frame }

// Text returns the label font of the chart with opts applied.
func (c *Chart) Text(opts Options) axis.TextProperties {
	t := c.File.Text
	t.FontSize = opts.FontSize
	return t
}
