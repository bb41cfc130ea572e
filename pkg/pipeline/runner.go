package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/cache"
	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/chartfile"
	"github.com/matzehuels/cartesian/pkg/observability"
)

// Runner executes the pipeline with caching. It keeps no per-run state, so
// one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// uses the default keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load → negotiate → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	loadStart := time.Now()
	f, sources, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)

	opts.ApplyChart(f)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	layoutStart := time.Now()
	c, err := r.Negotiate(ctx, f, sources, opts, cartesian.ScrollOptions{})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Chart = c
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Categories = c.Scroll.Count()
	result.Stats.Visible = c.Scroll.NumVisible()
	result.Stats.Passes = c.Layout.Passes

	r.Logger.Info("negotiated axes",
		"categories", result.Stats.Categories,
		"visible", result.Stats.Visible,
		"passes", c.Layout.Passes,
		"scrolling", c.Layout.ScrollbarVisible)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Load reads the chart and its data.
func (r *Runner) Load(ctx context.Context, opts Options) (*chartfile.File, []chartfile.Source, error) {
	source := opts.ChartFile
	if source == "" {
		source = "inline"
	}
	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()
	f, sources, err := Load(opts)
	observability.Pipeline().OnLoadComplete(ctx, source, categoryCount(sources), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	r.Logger.Debug("loaded chart", "source", source, "layers", len(sources))
	return f, sources, nil
}

// Negotiate negotiates the chart's axes and computes its cache keys. opts
// must be validated.
func (r *Runner) Negotiate(ctx context.Context, f *chartfile.File, sources []chartfile.Source, opts Options, scroll cartesian.ScrollOptions) (*Chart, error) {
	r.applyLogger(&opts)
	observability.Pipeline().OnLayoutStart(ctx, len(sources), categoryCount(sources))
	start := time.Now()
	c, err := Negotiate(f, sources, opts, scroll)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, 0, false, time.Since(start), err)
		return nil, err
	}
	observability.Pipeline().OnLayoutComplete(ctx, c.Layout.Passes, c.Layout.ScrollbarVisible, time.Since(start), nil)

	c.DataHash = HashSources(sources)
	c.LayoutKey = r.Keyer.LayoutKey(c.DataHash, opts.LayoutKeyOpts(f))
	return c, nil
}

// RenderWithCacheInfo renders the chart's current frame in every format,
// serving from cache when every format is present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *Chart, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(c.LayoutKey, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "error", err)
			}
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, "artifact")
				break
			}
			hooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := r.render(c, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(c.LayoutKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, c *Chart, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

func (r *Runner) render(c *Chart, opts Options) (map[string][]byte, error) {
	f, err := CurrentFrame(c)
	if err != nil {
		return nil, err
	}
	return RenderFrame(c, f, opts)
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
