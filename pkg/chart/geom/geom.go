// Package geom holds the pixel-space value types shared by axis negotiation,
// scrolling and rendering.
package geom

// Viewport is a pixel size.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Degenerate reports whether the viewport is too small to draw anything.
// Anything narrower or shorter than one pixel counts.
func (v Viewport) Degenerate() bool { return v.Width < 1 || v.Height < 1 }

// Shrink returns the viewport reduced by the given margin. Dimensions never
// go below zero.
func (v Viewport) Shrink(m Margin) Viewport {
	return Viewport{
		Width:  max(0, v.Width-m.Left-m.Right),
		Height: max(0, v.Height-m.Top-m.Bottom),
	}
}

// Margin is a set of pixel insets.
type Margin struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Add returns the component-wise sum of two margins.
func (m Margin) Add(o Margin) Margin {
	return Margin{Left: m.Left + o.Left, Right: m.Right + o.Right, Top: m.Top + o.Top, Bottom: m.Bottom + o.Bottom}
}

// Max returns the component-wise maximum of two margins.
func (m Margin) Max(o Margin) Margin {
	return Margin{Left: max(m.Left, o.Left), Right: max(m.Right, o.Right), Top: max(m.Top, o.Top), Bottom: max(m.Bottom, o.Bottom)}
}

// Min returns the component-wise minimum of two margins.
func (m Margin) Min(o Margin) Margin {
	return Margin{Left: min(m.Left, o.Left), Right: min(m.Right, o.Right), Top: min(m.Top, o.Top), Bottom: min(m.Bottom, o.Bottom)}
}

// Rect is an axis-aligned rectangle. Y grows downward as in SVG.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Size returns the rectangle's dimensions as a viewport.
func (r Rect) Size() Viewport { return Viewport{Width: r.Width, Height: r.Height} }

// Point is a pixel position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
