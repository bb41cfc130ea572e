// Package render groups the output formats for negotiated chart frames.
//
// Each subpackage turns a [cartesian.Frame] into bytes:
//
//   - [svg]: the drawn chart, including the scrollbar of scrolling charts
//   - [jsonout]: the frame as JSON, for clients that draw themselves
//
// Both are pure functions of the frame and their options.
package render
