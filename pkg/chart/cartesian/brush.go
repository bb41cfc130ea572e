package cartesian

import "math"

// ClampExtent forces the window [e0, e1] to exactly minExtent pixels,
// resizing around its center, then slides it into [0, length] without
// resizing. Clamping a clamped extent returns it unchanged.
func ClampExtent(e0, e1, minExtent, length float64) (float64, float64) {
	if e1 < e0 {
		e0, e1 = e1, e0
	}
	m := math.Max(0, math.Min(minExtent, length))
	if math.Abs((e1-e0)-m) > 1e-9*math.Max(1, m) {
		e0 = (e0+e1)/2 - m/2
	}
	e0 = math.Max(0, math.Min(e0, length-m))
	return e0, e0 + m
}

// Brush is the drag handle of a scrollbar. Its extent is always clamped.
type Brush struct {
	length    float64
	minExtent float64
	e0, e1    float64

	snapshot [2]float64
	dragging bool
}

// NewBrush creates a brush over a scrollbar of the given length with its
// extent at the start.
func NewBrush(length, minExtent float64) *Brush {
	b := &Brush{length: length, minExtent: minExtent}
	b.SetExtent(0, minExtent)
	return b
}

// Length returns the scrollbar length.
func (b *Brush) Length() float64 { return b.length }

// MinExtent returns the handle width.
func (b *Brush) MinExtent() float64 { return b.minExtent }

// Extent returns the current window in scrollbar pixels.
func (b *Brush) Extent() (float64, float64) { return b.e0, b.e1 }

// SetExtent clamps and stores a new extent.
func (b *Brush) SetExtent(e0, e1 float64) {
	b.e0, b.e1 = ClampExtent(e0, e1, b.minExtent, b.length)
}

// Start snapshots the extent at the beginning of a drag.
func (b *Brush) Start() {
	b.snapshot = [2]float64{b.e0, b.e1}
	b.dragging = true
}

// DragBy moves the extent by delta pixels relative to the drag snapshot.
func (b *Brush) DragBy(delta float64) {
	b.SetExtent(b.snapshot[0]+delta, b.snapshot[1]+delta)
}

// End finishes a drag.
func (b *Brush) End() {
	b.SetExtent(b.e0, b.e1)
	b.dragging = false
}

// Dragging reports whether a drag is in progress.
func (b *Brush) Dragging() bool { return b.dragging }
