// Package cartesian negotiates the axes shared by a set of chart layers and
// manages the scroll window of an overflowing category axis.
//
// # Negotiation
//
// Margins depend on tick labels, and tick labels depend on the plot size
// left over after margins. [NegotiateAxes] resolves that cycle as a bounded
// fixed-point iteration over [CartesianAxesLayout]:
//
//  1. Seed: minimum margins, axis properties from every [Layer], value
//     domains merged when two layers are present.
//  2. Estimate: tick label margins without rotation, axes recomputed.
//  3. If tick counts and label fit flags are unchanged and all categories
//     fit, stop. Otherwise estimate again with 90 degree category label
//     rotation allowed and recompute once more.
//  4. Scroll: if an ordinal category axis still overflows and the chart is
//     scrollable, reserve scrollbar space and recompute a final time.
//
// Each stage is available on its own as [Step], which returns its input
// unchanged once the layout is final.
//
// # Scrolling
//
// [ScrollableAxes] maps a [Brush] extent in scrollbar pixels onto a
// [ViewportDataRange], filters every layer to that range and rebinds the
// category scale to the visible keys. Continuous drags are coalesced through
// a [FrameScheduler] that the host flushes once per frame; brush end,
// [ScrollableAxes.ScrollTo] and [ScrollableAxes.ScrollDelta] render
// immediately.
//
// Nothing in this package is safe for concurrent use. Each chart instance
// owns its own negotiation results and scroll window.
package cartesian
