package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/pipeline"
)

// layoutCommand negotiates a chart and prints the resulting layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		asJSON bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "layout <chart.toml>",
		Short: "Negotiate axes and print the layout",
		Long: `Negotiate axis margins, label rotation and scrolling for a chart file.

By default a summary is printed. With --json the full layout document is
written to stdout or to --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, args[0])
			opts.Logger = c.Logger
			if asJSON {
				return c.writeLayoutJSON(cmd, opts, output)
			}
			return c.printLayout(cmd, opts)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file instead of stdout")
	return cmd
}

func (c *CLI) writeLayoutJSON(cmd *cobra.Command, opts pipeline.Options, output string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Marks = true
	res, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}
	data := res.Artifacts[pipeline.FormatJSON]
	if output == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Layout written")
	printFile(output)
	return nil
}

func (c *CLI) printLayout(cmd *cobra.Command, opts pipeline.Options) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	ctx := cmd.Context()
	if err := opts.ValidateForLoad(); err != nil {
		return err
	}
	f, sources, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	opts.ApplyChart(f)
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	chart, err := runner.Negotiate(ctx, f, sources, opts, cartesian.ScrollOptions{})
	if err != nil {
		return err
	}
	describeLayout(cmd.OutOrStdout(), chart)
	return nil
}

// describeLayout prints a human-readable layout summary.
func describeLayout(w io.Writer, chart *pipeline.Chart) {
	l := chart.Layout
	s := chart.Scroll
	fmt.Fprintln(w, StyleTitle.Render("Layout"))
	kv := func(k, v string) { fmt.Fprintf(w, "  %-14s %s\n", k, StyleValue.Render(v)) }

	kv("viewport", fmt.Sprintf("%g × %g", l.Viewport.Width, l.Viewport.Height))
	kv("plot area", fmt.Sprintf("%.1f × %.1f at (%.1f, %.1f)", l.PlotArea.Width, l.PlotArea.Height, l.PlotArea.X, l.PlotArea.Y))
	kv("margin", fmt.Sprintf("top %.1f  right %.1f  bottom %.1f  left %.1f", l.Margin.Top, l.Margin.Right, l.Margin.Bottom, l.Margin.Left))
	kv("passes", fmt.Sprintf("%d (converged: %t)", l.Passes, l.Converged))
	if l.IsDegenerate() {
		fmt.Fprintln(w, "  "+StyleWarning.Render("viewport too small, nothing will be drawn"))
		return
	}
	fmt.Fprintln(w, axisTable(l.Axes))
	switch {
	case l.Merge != nil && l.Merge.Merged:
		kv("value axes", fmt.Sprintf("merged to [%g, %g]", l.Merge.Domain[0], l.Merge.Domain[1]))
	case l.Merge != nil:
		kv("value axes", fmt.Sprintf("separate, %d aligned ticks", l.Merge.TickCount))
	}
	if l.RotateXTickLabels90 {
		kv("labels", "rotated 90°")
	}
	if l.ScrollbarVisible {
		r := s.Range()
		kv("scrolling", fmt.Sprintf("%s, %d of %d visible, showing %d–%d",
			l.ScrollbarAxis, s.NumVisible(), s.Count(), r.StartIndex, r.EndIndex))
	}
	for _, warn := range l.Warnings {
		fmt.Fprintln(w, "  "+StyleWarning.Render(warn.String()))
	}
}

// axisTable renders one row per axis.
func axisTable(a cartesian.Axes) string {
	rows := [][]string{axisRow("x", a.X), axisRow("y1", a.Y1)}
	if a.Y2 != nil {
		rows = append(rows, axisRow("y2", a.Y2))
	}
	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Axis", "Kind", "Domain", "Ticks", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return header
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

func axisRow(name string, p *axis.Properties) []string {
	if p == nil {
		return []string{name, "none", "—", "—", "—"}
	}
	if p.IsCategoryAxis {
		return []string{name, "category", fmt.Sprintf("%d keys", len(p.Keys)), fmt.Sprint(len(p.TickValues)),
			fmt.Sprintf("%.1f per key", p.CategoryThickness)}
	}
	domain := "—"
	if len(p.Domain) == 2 {
		domain = fmt.Sprintf("[%g, %g]", p.Domain[0], p.Domain[1])
	}
	return []string{name, string(p.Kind), domain, fmt.Sprint(len(p.TickValues)), fmt.Sprintf("labels %.1fpx", p.MaxLabelWidth)}
}
