// Package cli implements the cartesian command-line interface.
//
// # Commands
//
//   - layout: negotiate a chart's axes and print the result
//   - render: write SVG or layout JSON for a chart
//   - scroll: browse a scrolling chart in the terminal
//   - serve: run the HTTP API
//   - cache: inspect and clear the render cache
//
// All commands accept --verbose (-v) for debug logging, which includes one
// line per negotiation pass.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/buildinfo"
	"github.com/matzehuels/cartesian/pkg/cache"
	"github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "cartesian"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Cartesian lays out and renders category charts",
		Long:          `Cartesian negotiates axis margins, label rotation and virtual scrolling for column, bar, line and combo charts, and renders them as SVG.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.scrollCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend of a command.
type cacheFlags struct {
	noCache bool
	url     string // redis:// URL; empty uses the file cache
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&f.url, "cache-url", "", "Redis URL for the render cache (default: file cache)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.url != "" {
		if err := errors.ValidateCacheURL(f.url); err != nil {
			return nil, err
		}
		return cache.NewRedisCache(ctx, cache.RedisConfig{URL: f.url, Prefix: appName + ":"})
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the negotiation flags shared by layout, render and scroll.
type layoutFlags struct {
	width, height  float64
	fontSize       float64
	scrollable     bool
	trimOverflow   bool
	hideAxisLabels bool
	startIndex     int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width (default: chart file, then 800)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height (default: chart file, then 600)")
	cmd.Flags().Float64Var(&f.fontSize, "font-size", 0, "label font size in pixels (default 11)")
	cmd.Flags().BoolVar(&f.scrollable, "scrollable", true, "let the category axis scroll when labels do not fit")
	cmd.Flags().BoolVar(&f.trimOverflow, "trim-overflow", true, "trim ordinal categories that overflow the plot area")
	cmd.Flags().BoolVar(&f.hideAxisLabels, "hide-axis-labels", false, "hide all axis titles")
	cmd.Flags().IntVar(&f.startIndex, "start", 0, "first visible category when scrolling")
}

// options builds pipeline options. Boolean flags only override the chart
// file when given explicitly.
func (f *layoutFlags) options(cmd *cobra.Command, chartFile string) pipeline.Options {
	opts := pipeline.Options{
		ChartFile:      chartFile,
		Width:          f.width,
		Height:         f.height,
		FontSize:       f.fontSize,
		HideAxisLabels: f.hideAxisLabels,
		StartIndex:     f.startIndex,
	}
	if cmd.Flags().Changed("scrollable") {
		opts.Scrollable = &f.scrollable
	}
	if cmd.Flags().Changed("trim-overflow") {
		opts.TrimOverflow = &f.trimOverflow
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
