package cartesian

import (
	"fmt"
	"math"
	"testing"
)

func TestClampExtent(t *testing.T) {
	tests := []struct {
		name           string
		e0, e1         float64
		minExtent, len float64
		want0, want1   float64
	}{
		{"already valid", 10, 30, 20, 100, 10, 30},
		{"too wide shrinks around center", 10, 50, 20, 100, 20, 40},
		{"too narrow grows around center", 25, 35, 20, 100, 20, 40},
		{"past the end slides back", 90, 110, 20, 100, 80, 100},
		{"before the start slides forward", -15, 5, 20, 100, 0, 20},
		{"reversed", 30, 10, 20, 100, 10, 30},
		{"handle wider than bar", 0, 10, 150, 100, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g0, g1 := ClampExtent(tt.e0, tt.e1, tt.minExtent, tt.len)
			if math.Abs(g0-tt.want0) > 1e-9 || math.Abs(g1-tt.want1) > 1e-9 {
				t.Errorf("ClampExtent(%v, %v) = (%v, %v), want (%v, %v)", tt.e0, tt.e1, g0, g1, tt.want0, tt.want1)
			}
		})
	}
}

func TestClampExtentIdempotent(t *testing.T) {
	const length = 368.0
	minExtent := length / 50 * 17
	for e0 := -100.0; e0 <= 500; e0 += 7.3 {
		for _, width := range []float64{0, 1, minExtent / 3, minExtent, minExtent * 2.5} {
			a0, a1 := ClampExtent(e0, e0+width, minExtent, length)
			b0, b1 := ClampExtent(a0, a1, minExtent, length)
			if a0 != b0 || a1 != b1 {
				t.Fatalf("clamp not idempotent for e0=%v width=%v: (%v,%v) then (%v,%v)", e0, width, a0, a1, b0, b1)
			}
			if math.Abs((a1-a0)-minExtent) > 1e-9 {
				t.Fatalf("width %v, want %v", a1-a0, minExtent)
			}
			if a0 < 0 || a1 > length+1e-9 {
				t.Fatalf("extent (%v,%v) outside [0,%v]", a0, a1, length)
			}
		}
	}
}

func TestBrushDrag(t *testing.T) {
	b := NewBrush(100, 20)
	if e0, e1 := b.Extent(); e0 != 0 || e1 != 20 {
		t.Fatalf("initial extent = (%v, %v)", e0, e1)
	}
	b.Start()
	if !b.Dragging() {
		t.Error("expected dragging after Start")
	}
	b.DragBy(30)
	b.DragBy(50)
	if e0, _ := b.Extent(); e0 != 50 {
		t.Errorf("drag is relative to the snapshot: e0 = %v, want 50", e0)
	}
	b.DragBy(500)
	if e0, e1 := b.Extent(); e0 != 80 || e1 != 100 {
		t.Errorf("drag past end = (%v, %v), want (80, 100)", e0, e1)
	}
	b.End()
	if b.Dragging() {
		t.Error("still dragging after End")
	}
}

func ExampleClampExtent() {
	e0, e1 := ClampExtent(90, 130, 20, 100)
	fmt.Println(e0, e1)
	// Output: 80 100
}
