package pipeline

import (
	"fmt"

	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/render/jsonout"
	"github.com/matzehuels/cartesian/pkg/render/svg"
)

// CurrentFrame renders the chart's scroll window and returns the frame. It
// fails when the window is too small to show one category.
func CurrentFrame(c *Chart) (cartesian.Frame, error) {
	if !c.Scroll.Render() {
		return cartesian.Frame{}, errors.New(errors.ErrCodeInvalidViewport,
			"viewport too small to show a single category")
	}
	return c.frame, nil
}

// RenderFrame draws one frame of c in each requested format.
func RenderFrame(c *Chart, f cartesian.Frame, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = svg.RenderSVG(f, c.Layers,
				svg.WithTitle(opts.Title),
				svg.WithMeasurer(opts.Measurer),
				svg.WithText(c.Text(opts)))
		case FormatJSON:
			jopts := []jsonout.Option{jsonout.WithTitle(opts.Title)}
			if opts.Marks {
				jopts = append(jopts, jsonout.WithMarks(c.Layers))
			}
			data, err := jsonout.RenderJSON(f, jopts...)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
	}
	return artifacts, nil
}
