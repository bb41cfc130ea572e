// Package scale maps axis domains onto pixel ranges.
//
// Three kinds are provided:
//
//   - [Ordinal]: a band scale over an ordered list of category keys. Each key
//     occupies one step of equal width, with outer padding expressed as a
//     fraction of a step on both ends.
//   - [Linear]: a continuous numeric scale.
//   - [Log]: a base-10 logarithmic scale for strictly positive domains.
//
// Tick selection uses "nice" steps (1, 2, 5 and 2.5 times a power of ten).
// [Ticks] returns ticks for an approximate count, [Nice] expands a domain to
// step boundaries, and [FixedTicks] returns exactly n evenly spaced ticks so
// that two independently scaled axes can draw the same number of gridlines.
package scale

// Kind identifies the type of a scale.
type Kind string

const (
	KindOrdinal Kind = "ordinal"
	KindLinear  Kind = "linear"
	KindLog     Kind = "log"
)

// Scale maps domain values to pixel positions.
//
// For ordinal scales the domain value is a category index and Map returns the
// leading edge of the category's band.
type Scale interface {
	Kind() Kind
	Map(v float64) float64
	Range() (lo, hi float64)
}
