package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/pipeline"
)

// renderCommand writes one file per requested format.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      layoutFlags
		cacheOpts  cacheFlags
		formatsStr string
		output     string
		title      string
		refresh    bool
	)
	cmd := &cobra.Command{
		Use:   "render <chart.toml>",
		Short: "Render a chart to SVG or layout JSON",
		Long: `Render a chart file. Scrolling charts render the window starting at
--start, with the scrollbar drawn below (or beside) the plot.

Outputs are cached by content; --refresh re-renders and replaces the cached
copy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), cacheOpts)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := flags.options(cmd, args[0])
			opts.Formats = formats
			opts.Title = title
			opts.Refresh = refresh
			opts.Logger = c.Logger

			prog := newProgress(c.Logger)
			spin := newSpinner(cmd.Context(), os.Stderr, "Rendering "+filepath.Base(args[0]))
			spin.Start()
			res, err := runner.Execute(cmd.Context(), opts)
			spin.Stop()
			if err != nil {
				return err
			}

			paths := outputPaths(args[0], output, formats)
			for _, format := range formats {
				if err := os.WriteFile(paths[format], res.Artifacts[format], 0o644); err != nil {
					return fmt.Errorf("write %s: %w", paths[format], err)
				}
			}
			prog.done("Rendered "+filepath.Base(args[0]), res.Stats)

			printSuccess("Rendered %s", strings.Join(formats, ", "))
			fmt.Println(statsLine(res.Stats.Categories, res.Stats.Visible, res.Stats.Passes, res.CacheInfo.RenderHit))
			for _, w := range res.Chart.Layout.Warnings {
				printWarning("%s", w.Message)
			}
			for _, format := range formats {
				printFile(paths[format])
			}
			return nil
		},
	}
	flags.register(cmd)
	cacheOpts.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&title, "title", "", "chart title (default: chart file title)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached output")
	return cmd
}

// outputPaths maps each format to a file. A single format writes to output
// as given; several formats replace its extension.
func outputPaths(input, output string, formats []string) map[string]string {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if len(formats) > 1 || filepath.Ext(output) == "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		if output != "" && len(formats) == 1 && filepath.Ext(output) != "" {
			paths[f] = output
			continue
		}
		paths[f] = base + "." + f
	}
	return paths
}
