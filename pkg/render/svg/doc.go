// Package svg draws a negotiated chart frame as SVG.
//
// [RenderSVG] takes a [cartesian.Frame] (the negotiated layout rebound to
// the visible window) plus the layers that produced it, and writes the plot
// background, gridlines, layer marks, tick labels, axis titles and, for
// scrolling charts, the scrollbar track with its brush.
//
// Tick label placement follows the layout: rotated X labels are drawn
// vertically, word-broken labels wrap onto at most [axis.MaxWordBreakLines]
// lines, and anything else that does not fit its category slot is
// truncated with an ellipsis.
package svg
