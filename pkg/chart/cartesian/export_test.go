package cartesian

// Reestimate runs margin estimation and axis computation once more over a
// finished layout, with the rotation and scrollbar allowances of the stage
// that produced it.
func Reestimate(in NegotiateInput, l CartesianAxesLayout) CartesianAxesLayout {
	allowRotate := !l.Converged || l.ScrollbarVisible
	next := remargin(in, l, allowRotate, l.ScrollbarVisible)
	return computeAxes(in, next)
}
