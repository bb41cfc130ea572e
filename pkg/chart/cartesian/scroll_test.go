package cartesian_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chart/layers"
)

func scrolling(t *testing.T, opts cartesian.ScrollOptions) (*cartesian.ScrollableAxes, *layers.Layer) {
	t.Helper()
	l, err := layers.New(layers.Column, labeled(keys(50), ramp(50, 1, 50)))
	if err != nil {
		t.Fatal(err)
	}
	in := input(400, 300, l)
	layout := cartesian.NegotiateAxes(in)
	s := cartesian.NewScrollableAxes(layout, in.Layers, opts)
	if !s.Active() {
		t.Fatal("expected an active scroll window")
	}
	return s, l
}

func TestScrollableAxesDragToEnd(t *testing.T) {
	var frames []cartesian.Frame
	s, l := scrolling(t, cartesian.ScrollOptions{Render: func(f cartesian.Frame) { frames = append(frames, f) }})

	n := s.NumVisible()
	length := s.Layout().Scrollbar.Width
	if want := length / 50 * float64(n); math.Abs(s.BrushMinExtent()-want) > 1e-9 {
		t.Errorf("BrushMinExtent = %v, want %v", s.BrushMinExtent(), want)
	}

	s.BrushStart()
	s.Brush(length+100, length+100+s.BrushMinExtent())
	if len(frames) != 0 {
		t.Fatal("drag rendered before the frame was flushed")
	}
	if !s.BrushEnd() {
		t.Fatal("BrushEnd did not render")
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	f := frames[0]
	if f.Range.EndIndex != 49 || f.Range.Len() != n {
		t.Errorf("Range = %+v, want %d categories ending at 49", f.Range, n)
	}
	if got := f.Layout.Axes.X.Keys[0]; got != fmt.Sprintf("c%02d", f.Range.StartIndex) {
		t.Errorf("window starts at %q, range starts at %d", got, f.Range.StartIndex)
	}
	if got := len(f.Layout.Axes.X.Keys); got != n {
		t.Errorf("window axis has %d keys, want %d", got, n)
	}
	if f.Layout.Axes.X.WillScroll {
		t.Error("window axis should not scroll")
	}
	if got := l.Working().CategoryCount(); got != n {
		t.Errorf("layer working data has %d categories, want %d", got, n)
	}
	if math.Abs(f.Extent[1]-length) > 1e-9 {
		t.Errorf("extent %v does not end at the scrollbar end %v", f.Extent, length)
	}
}

func TestScrollableAxesScrollToKeepsWidth(t *testing.T) {
	s, _ := scrolling(t, cartesian.ScrollOptions{})
	s.ScrollTo(1000)
	if r := s.LastRange(); r.EndIndex != 49 {
		t.Fatalf("ScrollTo past the end gave %+v", r)
	}
	e0, e1 := s.Extent()
	width := e1 - e0

	s.ScrollTo(0)
	if r := s.LastRange(); r.StartIndex != 0 || r.Len() != s.NumVisible() {
		t.Errorf("ScrollTo(0) gave %+v", r)
	}
	e0, e1 = s.Extent()
	if e0 != 0 || math.Abs(e1-e0-width) > 1e-9 {
		t.Errorf("extent [%v %v] changed width from %v", e0, e1, width)
	}
}

func TestScrollableAxesScrollDelta(t *testing.T) {
	s, _ := scrolling(t, cartesian.ScrollOptions{})
	step := s.Layout().Scrollbar.Width / float64(s.Count())

	s.ScrollDelta(3 * step)
	if r := s.LastRange(); r.StartIndex != 3 {
		t.Errorf("StartIndex = %d, want 3", r.StartIndex)
	}
	s.ScrollDelta(-100 * step)
	if r := s.LastRange(); r.StartIndex != 0 {
		t.Errorf("StartIndex = %d, want 0", r.StartIndex)
	}
}

func TestScrollableAxesRestoresStartIndex(t *testing.T) {
	s, _ := scrolling(t, cartesian.ScrollOptions{StartIndex: 10})
	if r := s.Range(); r.StartIndex != 10 || r.EndIndex != 10+s.NumVisible()-1 {
		t.Errorf("Range = %+v, want start 10", r)
	}
}

func TestScrollableAxesCoalescesFrames(t *testing.T) {
	renders := 0
	s, _ := scrolling(t, cartesian.ScrollOptions{Render: func(cartesian.Frame) { renders++ }})

	s.BrushStart()
	for i := 1; i <= 5; i++ {
		s.DragBy(float64(i) * 4)
	}
	if !s.Scheduler().Pending() {
		t.Fatal("expected a pending frame")
	}
	if !s.Flush() || renders != 1 {
		t.Errorf("renders = %d after flush, want 1", renders)
	}
	if s.Flush() {
		t.Error("second flush rendered without new input")
	}

	s.DragBy(40)
	s.BrushEnd()
	if s.Scheduler().Pending() {
		t.Error("BrushEnd left a frame pending")
	}
	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
}

func TestScrollableAxesLoadMore(t *testing.T) {
	var requested []int
	loader := &cartesian.ThresholdLoader{Threshold: 5, Request: func(n int) { requested = append(requested, n) }}
	s, _ := scrolling(t, cartesian.ScrollOptions{LoadMore: loader})

	s.Render()
	if len(requested) != 0 {
		t.Fatalf("requested at the start: %v", requested)
	}
	s.ScrollTo(s.Count())
	if len(requested) != 1 || requested[0] != 50 {
		t.Errorf("requested = %v, want [50]", requested)
	}
}

func TestScrollableAxesStatic(t *testing.T) {
	var frames []cartesian.Frame
	in := input(600, 400, layer(t, layers.Column, labeled(keys(5), ramp(5, 1, 5))))
	layout := cartesian.NegotiateAxes(in)
	s := cartesian.NewScrollableAxes(layout, in.Layers, cartesian.ScrollOptions{Render: func(f cartesian.Frame) { frames = append(frames, f) }})

	if s.Active() {
		t.Fatal("five categories should not scroll")
	}
	if s.ScrollTo(2) || s.BrushEnd() {
		t.Error("static axes reacted to scroll input")
	}
	if !s.Render() || len(frames) != 1 {
		t.Fatal("static render failed")
	}
	if r := frames[0].Range; r.StartIndex != 0 || r.EndIndex != 4 {
		t.Errorf("Range = %+v", r)
	}
	if got := frames[0].Data[0].CategoryCount(); got != 5 {
		t.Errorf("frame data has %d categories", got)
	}
}

func TestScrollableAxesDeclinesEmptyWindow(t *testing.T) {
	in := input(400, 300, layer(t, layers.Column, labeled(keys(50), ramp(50, 1, 50))))
	layout := cartesian.NegotiateAxes(in)
	layout.Axes.X = layout.Axes.X.Clone()
	layout.Axes.X.VisibleCount = 0

	rendered := false
	s := cartesian.NewScrollableAxes(layout, in.Layers, cartesian.ScrollOptions{Render: func(cartesian.Frame) { rendered = true }})
	if s.Render() || rendered {
		t.Error("rendered a window without room for a category")
	}
}
