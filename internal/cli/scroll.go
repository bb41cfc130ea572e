package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chartfile"
	"github.com/matzehuels/cartesian/pkg/pipeline"
)

const (
	frameInterval = time.Second / 60
	loadThreshold = 5
	dragStep      = 4 // categories per drag keypress
)

var (
	trackStyle   = lipgloss.NewStyle().Foreground(colorDim)
	brushStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// scrollCommand opens an interactive scroll window for a chart.
func (c *CLI) scrollCommand() *cobra.Command {
	var (
		flags  layoutFlags
		page   int
		output string
	)
	cmd := &cobra.Command{
		Use:   "scroll <chart.toml>",
		Short: "Browse a scrolling chart in the terminal",
		Long: `Open the chart's scroll window in the terminal.

Arrow keys and the mouse wheel move one category, shift+arrows drag the
brush (rendered once per frame), enter drops it, and w writes the current
frame as SVG. With --page the data is revealed page by page as the window
nears the end, the way a lazy data source would load it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			opts := flags.options(cmd, args[0])
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}
			f, sources, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}
			opts.ApplyChart(f)
			// The TUI owns the terminal.
			opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], ".toml") + ".svg"
			}

			m, err := newScrollModel(ctx, runner, f, sources, opts, page, output)
			if err != nil {
				return err
			}
			if !m.chart.Scroll.Active() {
				printInfo("All %d categories fit, nothing to scroll", m.chart.Scroll.Count())
				return nil
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return err
			}
			return m.err
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&page, "page", 0, "reveal the data this many categories at a time (0 loads everything)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file written by the w key (default: <chart>.svg)")
	return cmd
}

// =============================================================================
// Paging
// =============================================================================

// pager reveals sources a page at a time.
type pager struct {
	full   []chartfile.Source
	page   int
	loaded int
	total  int
}

func newPager(full []chartfile.Source, page int) *pager {
	total := 0
	for _, s := range full {
		total = max(total, s.Data.CategoryCount())
	}
	p := &pager{full: full, page: page, total: total, loaded: total}
	if page > 0 {
		p.loaded = min(page, total)
	}
	return p
}

func (p *pager) more() bool { return p.loaded < p.total }

// grow appends the next page.
func (p *pager) grow() { p.loaded = min(p.loaded+p.page, p.total) }

func (p *pager) sources() []chartfile.Source {
	if p.loaded == p.total {
		return p.full
	}
	out := make([]chartfile.Source, len(p.full))
	for i, s := range p.full {
		out[i] = chartfile.Source{Type: s.Type, Data: s.Data.Slice(0, p.loaded-1)}
	}
	return out
}

// =============================================================================
// Model
// =============================================================================

type frameMsg time.Time

type loadMoreMsg struct{}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// scrollModel drives a ScrollableAxes from terminal input. Drags only
// schedule renders; the frame tick flushes them.
type scrollModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	file   *chartfile.File
	opts   pipeline.Options
	pager  *pager
	output string

	chart   *pipeline.Chart
	frame   cartesian.Frame
	renders int

	loadWanted bool
	loadQueued bool
	dragging   bool
	drag       float64

	width  int
	status string
	err    error
}

func newScrollModel(ctx context.Context, r *pipeline.Runner, f *chartfile.File, sources []chartfile.Source, opts pipeline.Options, page int, output string) (*scrollModel, error) {
	m := &scrollModel{
		ctx:    ctx,
		runner: r,
		file:   f,
		opts:   opts,
		pager:  newPager(sources, page),
		output: output,
		width:  80,
	}
	if err := m.negotiate(opts.StartIndex); err != nil {
		return nil, err
	}
	return m, nil
}

// negotiate lays the chart out for the loaded data and renders the window
// starting at start.
func (m *scrollModel) negotiate(start int) error {
	opts := m.opts
	opts.StartIndex = start
	chart, err := m.runner.Negotiate(m.ctx, m.file, m.pager.sources(), opts, cartesian.ScrollOptions{
		Render: func(f cartesian.Frame) {
			m.frame = f
			m.renders++
		},
		LoadMore: &cartesian.ThresholdLoader{
			Threshold: loadThreshold,
			Request: func(int) {
				if m.pager.more() {
					m.loadWanted = true
				}
			},
		},
	})
	if err != nil {
		return err
	}
	m.chart = chart
	if !chart.Scroll.Render() {
		m.status = "viewport too small to show a category"
	}
	return nil
}

func (m *scrollModel) Init() tea.Cmd { return frameTick() }

func (m *scrollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.chart.Scroll
	switch msg := msg.(type) {
	case frameMsg:
		s.Flush()
		return m, m.next(frameTick())

	case loadMoreMsg:
		m.loadWanted, m.loadQueued = false, false
		m.pager.grow()
		if err := m.negotiate(s.Range().StartIndex); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.status = fmt.Sprintf("loaded %d of %d categories", m.pager.loaded, m.pager.total)
		return m, m.next(nil)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
				s.ScrollDelta(m.step())
			case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
				s.ScrollDelta(-m.step())
			}
		}

	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, m.next(nil)
}

func (m *scrollModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.chart.Scroll
	start := s.Range().StartIndex
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l":
		s.ScrollDelta(m.step())
	case "left", "h":
		s.ScrollDelta(-m.step())
	case "pgdown", " ":
		s.ScrollTo(start + s.NumVisible())
	case "pgup":
		s.ScrollTo(start - s.NumVisible())
	case "home", "g":
		s.ScrollTo(0)
	case "end", "G":
		s.ScrollTo(s.Count())
	case "shift+right", "L":
		m.dragBy(dragStep * m.step())
	case "shift+left", "H":
		m.dragBy(-dragStep * m.step())
	case "enter":
		if m.dragging {
			m.dragging = false
			s.BrushEnd()
		}
	case "w":
		m.writeSVG()
	}
	return m, m.next(nil)
}

func (m *scrollModel) dragBy(delta float64) {
	s := m.chart.Scroll
	if !m.dragging {
		m.dragging, m.drag = true, 0
		s.BrushStart()
	}
	m.drag += delta
	s.DragBy(m.drag)
}

// step is one category in scrollbar pixels.
func (m *scrollModel) step() float64 {
	s := m.chart.Scroll
	if s.NumVisible() == 0 {
		return 0
	}
	return s.BrushMinExtent() / float64(s.NumVisible())
}

// next queues a load when the threshold loader asked for one.
func (m *scrollModel) next(cmd tea.Cmd) tea.Cmd {
	if !m.loadWanted || m.loadQueued {
		return cmd
	}
	m.loadQueued = true
	load := func() tea.Msg { return loadMoreMsg{} }
	if cmd == nil {
		return load
	}
	return tea.Batch(cmd, load)
}

func (m *scrollModel) writeSVG() {
	opts := m.opts
	opts.Formats = []string{pipeline.FormatSVG}
	artifacts, err := pipeline.RenderFrame(m.chart, m.frame, opts)
	if err == nil {
		err = os.WriteFile(m.output, artifacts[pipeline.FormatSVG], 0o644)
	}
	if err != nil {
		m.status = "write failed: " + err.Error()
		return
	}
	m.status = "wrote " + m.output
}

func (m *scrollModel) View() string {
	var b strings.Builder
	s := m.chart.Scroll
	r := m.frame.Range
	width := max(m.width-2, 10)

	title := m.opts.Title
	if title == "" {
		title = "Scroll window"
	}
	b.WriteString(StyleTitle.Render(title) + "\n\n")

	if cat := m.frame.Layout.Axes.Category(); cat != nil {
		b.WriteString(truncate(strings.Join(cat.Values, "  "), width) + "\n")
	}
	b.WriteString(m.scrollbar(width) + "\n\n")

	info := fmt.Sprintf("categories %d–%d of %d", r.StartIndex, r.EndIndex, s.Count())
	if m.pager.more() {
		info += fmt.Sprintf(" (%d more to load)", m.pager.total-m.pager.loaded)
	}
	info += fmt.Sprintf(" · %d renders", m.renders)
	if m.dragging {
		info += " · dragging"
	}
	b.WriteString(StyleDim.Render(info) + "\n")
	if m.status != "" {
		b.WriteString(StyleHighlight.Render(m.status) + "\n")
	}
	b.WriteString("\n" + help(
		"←/→", "scroll", "shift+←/→", "drag", "⏎", "drop",
		"pgup/pgdn", "page", "home/end", "jump", "w", "write svg", "q", "quit",
	))
	return b.String()
}

// scrollbar draws the brush over a track of width cells.
func (m *scrollModel) scrollbar(width int) string {
	l := m.chart.Layout
	length := l.Scrollbar.Width
	if l.ScrollbarAxis == cartesian.Vertical {
		length = l.Scrollbar.Height
	}
	if length <= 0 {
		return trackStyle.Render(strings.Repeat("─", width))
	}
	e0, e1 := m.frame.Extent[0], m.frame.Extent[1]
	a := int(math.Floor(e0 / length * float64(width)))
	z := int(math.Ceil(e1 / length * float64(width)))
	a = max(0, min(a, width-1))
	z = max(a+1, min(z, width))
	return trackStyle.Render(strings.Repeat("─", a)) +
		brushStyle.Render(strings.Repeat("█", z-a)) +
		trackStyle.Render(strings.Repeat("─", width-z))
}

func help(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpKeyStyle.Render(pairs[i])+" "+StyleDim.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
