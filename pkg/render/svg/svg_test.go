package svg

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/chart/geom"
	"github.com/matzehuels/cartesian/pkg/chart/layers"
)

var measurer = axis.FixedMeasurer{AdvanceRatio: 0.5, LineRatio: 1.2}

func chartData(n int, label string) *data.CartesianData {
	d := &data.CartesianData{CategoryTitle: "Region", ValueTitle: "Sales"}
	s := data.Series{Name: "Sales"}
	for i := range n {
		d.Categories = append(d.Categories, data.Category{Key: fmt.Sprintf("%s%d", label, i), Value: float64(i)})
		s.Values = append(s.Values, float64(i+1))
	}
	d.Series = []data.Series{s}
	return d
}

func frame(t *testing.T, w, h float64, ls ...cartesian.Layer) (cartesian.Frame, []cartesian.Layer) {
	t.Helper()
	in := cartesian.NegotiateInput{
		Layers:                    ls,
		Viewport:                  geom.Viewport{Width: w, Height: h},
		Text:                      axis.TextProperties{FontSize: 10},
		Measurer:                  measurer,
		Scrollable:                true,
		TrimOrdinalDataOnOverflow: true,
	}
	layout := cartesian.NegotiateAxes(in)
	s := cartesian.NewScrollableAxes(layout, ls, cartesian.ScrollOptions{})
	return s.Frame(), ls
}

func mustLayer(t *testing.T, kind layers.ChartType, d *data.CartesianData) cartesian.Layer {
	t.Helper()
	l, err := layers.New(kind, d)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func render(t *testing.T, f cartesian.Frame, ls []cartesian.Layer, opts ...Option) string {
	t.Helper()
	opts = append([]Option{WithMeasurer(measurer), WithText(axis.TextProperties{FontSize: 10})}, opts...)
	return string(RenderSVG(f, ls, opts...))
}

func TestRenderSVGColumns(t *testing.T) {
	f, ls := frame(t, 600, 400, mustLayer(t, layers.Column, chartData(5, "r")))
	out := render(t, f, ls, WithTitle("Sales by region"))

	for _, want := range []string{`<svg`, `id="marks"`, `id="x-axis"`, `id="y1-axis"`, `id="grid"`, `>Region<`, `>Sales<`, `Sales by region`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, `id="scrollbar"`) {
		t.Error("static chart drew a scrollbar")
	}
	if strings.Count(out, "rotate(-90)") != 1 {
		t.Error("only the Y title should be rotated")
	}
	// One bar per category plus background.
	if got := strings.Count(out, "<rect"); got < 6 {
		t.Errorf("found %d rects, want at least 6", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("document not closed")
	}
}

func TestRenderSVGScrolling(t *testing.T) {
	f, ls := frame(t, 400, 300, mustLayer(t, layers.Column, chartData(50, "c")))
	if !f.Layout.ScrollbarVisible {
		t.Fatal("expected a scrolling layout")
	}
	out := render(t, f, ls)
	if !strings.Contains(out, `id="scrollbar"`) || !strings.Contains(out, `class="brush"`) {
		t.Error("scrollbar or brush missing")
	}
	// Rotated category labels plus the Y title.
	if got := strings.Count(out, "rotate(-90)"); got != f.Range.Len()+1 {
		t.Errorf("found %d rotated elements, want %d", got, f.Range.Len()+1)
	}
	if strings.Contains(out, ">c49<") {
		t.Error("label outside the window was drawn")
	}
	if !strings.Contains(out, ">c0<") {
		t.Error("first visible label missing")
	}
}

func TestRenderSVGWordBreak(t *testing.T) {
	d := chartData(10, "x")
	for i := range d.Categories {
		d.Categories[i].Key = "North America"
	}
	f, ls := frame(t, 600, 300, mustLayer(t, layers.Column, d))
	if !f.Layout.Axes.X.WillLabelsWordBreak {
		t.Skip("labels fit without wrapping at this size")
	}
	out := render(t, f, ls)
	if !strings.Contains(out, ">North<") || !strings.Contains(out, ">America<") {
		t.Error("wrapped label lines missing")
	}
}

func TestRenderSVGSecondaryAxis(t *testing.T) {
	low := mustLayer(t, layers.Column, chartData(4, "q"))
	hi := chartData(4, "q")
	for i := range hi.Series[0].Values {
		hi.Series[0].Values[i] += 1000
	}
	hi.ValueTitle = "Target"
	f, ls := frame(t, 600, 400, low, mustLayer(t, layers.Line, hi))
	if f.Layout.Axes.Y2 == nil {
		t.Fatal("expected a secondary axis")
	}
	out := render(t, f, ls)
	if !strings.Contains(out, `id="y2-axis"`) || !strings.Contains(out, ">Target<") {
		t.Error("secondary axis not drawn")
	}
	if !strings.Contains(out, "<polyline") {
		t.Error("line layer not drawn")
	}
}

func TestRenderSVGDegenerate(t *testing.T) {
	f, ls := frame(t, 0.5, 100, mustLayer(t, layers.Column, chartData(3, "a")))
	out := render(t, f, ls)
	if strings.Contains(out, `id="marks"`) {
		t.Error("degenerate layout drew marks")
	}
	if !strings.Contains(out, "</svg>") {
		t.Error("expected an empty document")
	}
}

func TestRenderSVGWarnings(t *testing.T) {
	d := chartData(3, "w")
	d.Series[0].Values[1] = math.Inf(1)
	f, ls := frame(t, 400, 300, mustLayer(t, layers.Line, d))
	out := render(t, f, ls)
	if !strings.Contains(out, "<desc>") || !strings.Contains(out, string(cartesian.WarningInvalidValues)) {
		t.Error("warning not recorded")
	}
	if !strings.Contains(out, `id="warnings"`) || !strings.Contains(out, "not plotted</text>") {
		t.Error("warning banner not drawn")
	}

	quiet := render(t, f, ls, WithoutWarnings())
	if strings.Contains(quiet, `id="warnings"`) {
		t.Error("WithoutWarnings still drew the banner")
	}
	if !strings.Contains(quiet, string(cartesian.WarningInvalidValues)) {
		t.Error("WithoutWarnings dropped the desc entry")
	}
}

func TestRenderSVGNoBannerWithoutWarnings(t *testing.T) {
	f, ls := frame(t, 400, 300, mustLayer(t, layers.Line, chartData(3, "w")))
	if out := render(t, f, ls); strings.Contains(out, `id="warnings"`) {
		t.Error("banner drawn for clean data")
	}
}

func TestThemeColorWraps(t *testing.T) {
	th := DefaultTheme
	if th.color(0) != th.color(len(th.Palette)) {
		t.Error("palette does not wrap")
	}
	if (Theme{Axis: "#000"}).color(3) != "#000" {
		t.Error("empty palette should fall back to the axis color")
	}
}
