// Package axis builds the properties of one chart axis and estimates the
// space its tick labels need.
//
// # Category thickness
//
// [CategoryThickness] decides how many pixels one category slot gets:
//
//   - a single category fills the plot minus outer padding
//   - scalar axes size slots from the smallest gap between data points
//   - ordinal axes divide the plot by count + 2*outer padding, floored at
//     [MinOrdinalThickness] when overflow is trimmed
//
// Multi-category results are capped at the thickness three categories would
// get. [NewCategoryLayout] adds the number of categories that fit before the
// axis has to scroll.
//
// # Axis properties
//
// [NewCategoryAxis] and [NewValueAxis] produce a [Properties] value holding
// the scale, tick values, formatted labels and label fit flags. Label widths
// are measured once at creation through a [TextMeasurer] so margin
// estimation can be repeated cheaply.
//
// # Tick label margins
//
// [EstimateTickLabelMargins] turns a set of axis properties into the pixel
// insets their labels consume, optionally rotating category labels by 90
// degrees when they do not fit side by side.
package axis
