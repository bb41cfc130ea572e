package cartesian

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/chart/scale"
)

// ViewportDataRange is the inclusive window of visible category indices.
type ViewportDataRange struct {
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`
}

// Len returns the number of categories in the range.
func (r ViewportDataRange) Len() int { return r.EndIndex - r.StartIndex + 1 }

// Frame is what one render of the scroll window draws.
type Frame struct {
	// Layout is the negotiated layout with the category axis rebound to
	// the visible categories.
	Layout CartesianAxesLayout `json:"layout"`
	Range  ViewportDataRange   `json:"range"`
	// Data holds each layer's filtered data.
	Data []*data.CartesianData `json:"data"`
	// Extent is the brush window in scrollbar pixels. Zero when static.
	Extent [2]float64 `json:"extent"`
}

// ScrollOptions configure a ScrollableAxes.
type ScrollOptions struct {
	Render   func(Frame)
	LoadMore LoadMoreHandler
	// StartIndex restores an earlier scroll position.
	StartIndex int
	Logger     *log.Logger
}

// ScrollableAxes owns the scroll window of one chart.
//
// In the static state every category fits and Render draws the full data.
// In the scrolling state a Brush selects NumVisible categories at a time.
type ScrollableAxes struct {
	layout CartesianAxesLayout
	layers []Layer
	opts   ScrollOptions

	// axisScale spans every category; scrollScale maps category indices
	// onto scrollbar pixels.
	axisScale   *scale.Ordinal
	scrollScale *scale.Linear

	brush      *Brush
	scheduler  *FrameScheduler
	count      int
	numVisible int
	declined   bool
	last       ViewportDataRange
}

// NewScrollableAxes prepares the scroll window for a negotiated layout.
func NewScrollableAxes(layout CartesianAxesLayout, layers []Layer, opts ScrollOptions) *ScrollableAxes {
	s := &ScrollableAxes{layout: layout, layers: layers, opts: opts}
	s.scheduler = NewFrameScheduler(func() { s.Render() })

	cat := layout.Axes.Category()
	if cat == nil {
		return s
	}
	s.axisScale = cat.Ordinal()
	s.count = len(cat.Keys)
	s.numVisible = s.count
	if !layout.ScrollbarVisible || s.axisScale == nil {
		return s
	}

	s.numVisible = min(cat.VisibleCount, s.count)
	if s.numVisible < 1 {
		s.declined = true
		return s
	}
	length := layout.Scrollbar.Width
	if layout.ScrollbarAxis == Vertical {
		length = layout.Scrollbar.Height
	}
	s.scrollScale = scale.NewLinear(0, float64(s.count), 0, length)
	s.brush = NewBrush(length, length/float64(s.count)*float64(s.numVisible))
	if opts.StartIndex > 0 {
		e0 := s.scrollScale.Map(float64(opts.StartIndex))
		s.brush.SetExtent(e0, e0+s.brush.MinExtent())
	}
	return s
}

// Active reports whether the axis is in the scrolling state.
func (s *ScrollableAxes) Active() bool { return s.brush != nil }

// NumVisible returns how many categories each frame shows.
func (s *ScrollableAxes) NumVisible() int { return s.numVisible }

// Count returns the total number of categories.
func (s *ScrollableAxes) Count() int { return s.count }

// Layout returns the layout the window was built for.
func (s *ScrollableAxes) Layout() CartesianAxesLayout { return s.layout }

// Scheduler exposes the frame scheduler so the host can flush it.
func (s *ScrollableAxes) Scheduler() *FrameScheduler { return s.scheduler }

// Extent returns the brush extent, or zeros when static.
func (s *ScrollableAxes) Extent() (float64, float64) {
	if s.brush == nil {
		return 0, 0
	}
	return s.brush.Extent()
}

// BrushMinExtent returns the brush handle width.
func (s *ScrollableAxes) BrushMinExtent() float64 {
	if s.brush == nil {
		return 0
	}
	return s.brush.MinExtent()
}

// Range returns the visible category window.
func (s *ScrollableAxes) Range() ViewportDataRange {
	if s.brush == nil {
		return ViewportDataRange{StartIndex: 0, EndIndex: s.count - 1}
	}
	e0, _ := s.brush.Extent()
	start := int(math.Round(s.scrollScale.Invert(e0)))
	start = max(0, min(start, s.count-s.numVisible))
	return ViewportDataRange{StartIndex: start, EndIndex: start + s.numVisible - 1}
}

// =============================================================================
// Brush events
// =============================================================================

// BrushStart begins a drag.
func (s *ScrollableAxes) BrushStart() {
	if s.brush != nil {
		s.brush.Start()
	}
}

// Brush moves the extent during a drag. The render waits for the next
// Flush; several moves in one frame render once.
func (s *ScrollableAxes) Brush(e0, e1 float64) {
	if s.brush == nil {
		return
	}
	s.brush.SetExtent(e0, e1)
	s.scheduler.Schedule()
}

// DragBy moves the extent by delta pixels from where the drag started.
func (s *ScrollableAxes) DragBy(delta float64) {
	if s.brush == nil {
		return
	}
	s.brush.DragBy(delta)
	s.scheduler.Schedule()
}

// BrushEnd finishes a drag and renders immediately.
func (s *ScrollableAxes) BrushEnd() bool {
	if s.brush == nil {
		return false
	}
	s.brush.End()
	s.scheduler.Cancel()
	return s.Render()
}

// ScrollTo moves the window so it starts at category index and renders.
func (s *ScrollableAxes) ScrollTo(index int) bool {
	if s.brush == nil {
		return false
	}
	e0 := s.scrollScale.Map(float64(index))
	s.brush.SetExtent(e0, e0+s.brush.MinExtent())
	s.scheduler.Cancel()
	return s.Render()
}

// ScrollDelta slides the window by delta scrollbar pixels and renders.
func (s *ScrollableAxes) ScrollDelta(delta float64) bool {
	if s.brush == nil {
		return false
	}
	e0, e1 := s.brush.Extent()
	s.brush.SetExtent(e0+delta, e1+delta)
	s.scheduler.Cancel()
	return s.Render()
}

// Flush renders if a drag is waiting. Hosts call it once per frame.
func (s *ScrollableAxes) Flush() bool { return s.scheduler.Flush() }

// =============================================================================
// Rendering
// =============================================================================

// Render filters the layers to the visible window and hands the frame to
// the render callback. It declines when not even one category fits.
func (s *ScrollableAxes) Render() bool {
	if s.declined {
		if s.opts.Logger != nil {
			s.opts.Logger.Debug("scroll window too small to render", "visible", s.numVisible)
		}
		return false
	}
	f := s.Frame()
	s.last = f.Range
	if s.opts.Render != nil {
		s.opts.Render(f)
	}
	if s.opts.LoadMore != nil {
		s.opts.LoadMore.ViewportChanged(f.Range, s.count)
	}
	return true
}

// LastRange returns the range of the most recent render.
func (s *ScrollableAxes) LastRange() ViewportDataRange { return s.last }

// Frame builds the current frame. In the scrolling state it filters every
// layer to the window and rebinds the category axis to the visible keys.
func (s *ScrollableAxes) Frame() Frame {
	r := s.Range()
	f := Frame{Layout: s.layout, Range: r}
	if s.brush == nil {
		for _, layer := range s.layers {
			if dp, ok := layer.(DataProvider); ok {
				f.Data = append(f.Data, dp.Data())
			}
		}
		return f
	}
	f.Extent[0], f.Extent[1] = s.brush.Extent()

	window := s.windowAxis(r)
	f.Layout.Axes = s.layout.Axes
	if f.Layout.Axes.CategoryOnY() {
		f.Layout.Axes.Y1 = window
	} else {
		f.Layout.Axes.X = window
	}
	for _, layer := range s.layers {
		f.Data = append(f.Data, layer.SetFilteredData(r.StartIndex, r.EndIndex))
		layer.OverrideXScale(window)
	}
	if s.opts.Logger != nil {
		s.opts.Logger.Debug("scroll window", "start", r.StartIndex, "end", r.EndIndex)
	}
	return f
}

// windowAxis is the category axis restricted to r and stretched over the
// plot length.
func (s *ScrollableAxes) windowAxis(r ViewportDataRange) *axis.Properties {
	full := s.layout.Axes.Category()
	w := full.Clone()
	length := s.layout.PlotArea.Width
	if s.layout.ScrollbarAxis == Vertical {
		length = s.layout.PlotArea.Height
	}
	w.Keys = append([]string(nil), full.Keys[r.StartIndex:r.EndIndex+1]...)
	w.Values = append([]string(nil), full.Values[r.StartIndex:r.EndIndex+1]...)
	w.TickValues = make([]float64, len(w.Keys))
	for i := range w.TickValues {
		w.TickValues[i] = float64(i)
	}
	w.Scale = s.axisScale.WithKeys(w.Keys).WithRange(0, length)
	w.WillScroll = false
	return w
}
