package geom

import "testing"

func TestViewportDegenerate(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want bool
	}{
		{name: "normal", vp: Viewport{Width: 400, Height: 300}, want: false},
		{name: "exactly one pixel", vp: Viewport{Width: 1, Height: 1}, want: false},
		{name: "too narrow", vp: Viewport{Width: 0.5, Height: 300}, want: true},
		{name: "too short", vp: Viewport{Width: 400, Height: 0}, want: true},
		{name: "negative", vp: Viewport{Width: -10, Height: -10}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vp.Degenerate(); got != tt.want {
				t.Errorf("Degenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewportShrink(t *testing.T) {
	vp := Viewport{Width: 400, Height: 300}
	got := vp.Shrink(Margin{Left: 40, Right: 10, Top: 8, Bottom: 30})
	if got.Width != 350 || got.Height != 262 {
		t.Errorf("Shrink() = %+v, want {350 262}", got)
	}

	got = vp.Shrink(Margin{Left: 500})
	if got.Width != 0 {
		t.Errorf("Shrink() width = %v, want 0", got.Width)
	}
}

func TestMarginMinMax(t *testing.T) {
	a := Margin{Left: 1, Right: 20, Top: 3, Bottom: 40}
	b := Margin{Left: 10, Right: 2, Top: 30, Bottom: 4}

	if got := a.Max(b); got != (Margin{Left: 10, Right: 20, Top: 30, Bottom: 40}) {
		t.Errorf("Max() = %+v", got)
	}
	if got := a.Min(b); got != (Margin{Left: 1, Right: 2, Top: 3, Bottom: 4}) {
		t.Errorf("Min() = %+v", got)
	}
	if got := a.Add(b); got != (Margin{Left: 11, Right: 22, Top: 33, Bottom: 44}) {
		t.Errorf("Add() = %+v", got)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 50, Height: 50}
	if r.Right() != 60 {
		t.Errorf("Right() = %v, want 60", r.Right())
	}
	if r.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", r.Bottom())
	}
	if r.CenterX() != 35 {
		t.Errorf("CenterX() = %v, want 35", r.CenterX())
	}
	if r.CenterY() != 45 {
		t.Errorf("CenterY() = %v, want 45", r.CenterY())
	}
}
