package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venn/pkg/cache"
	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/observability"
	"github.com/matzehuels/venn/pkg/render/sink"
)

// Runner executes the pipeline with caching. It keeps no per-run state, so a
// single Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// means cache.DefaultKeyer.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs layout and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	layoutStart := time.Now()
	d, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.LayoutHash = layoutHash(d)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Sets = d.Arity()
	result.Stats.Regions = len(d.Regions)
	result.Stats.Iterations = d.Layout.Iterations
	result.Stats.FitError = d.FitError()
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"sets", d.Arity(),
		"fit_error", fmt.Sprintf("%.2e", result.Stats.FitError),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, handles, renderHit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Labels = handles
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo builds the diagram for opts.Sizes and reports whether
// it came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (*diagram.Diagram, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.LayoutKey(opts.Sizes.String(), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		} else if hit {
			var d diagram.Diagram
			if err := json.Unmarshal(data, &d); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &d, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached layout", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Sizes.Arity())
	start := time.Now()
	d, err := diagram.Build(opts.Sizes, opts.Diagram)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Sizes.Arity(), 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLayoutComplete(ctx, d.Arity(), d.FitError(), time.Since(start), nil)

	if data, err := json.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLLayout)); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return d, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit flag.
func (r *Runner) Layout(ctx context.Context, opts Options) (*diagram.Diagram, error) {
	d, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return d, err
}

// RenderWithCacheInfo renders every requested format of d. The hit flag is
// true only when all formats came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *diagram.Diagram, opts Options) (map[string][]byte, sink.LabelHandles, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, false, err
	}

	hash := layoutHash(d)
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			handles, err := sink.Labels(d, opts.Style)
			if err != nil {
				return nil, nil, false, err
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, handles, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, handles, err := Render(d, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, handles, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, d *diagram.Diagram, opts Options) (map[string][]byte, sink.LabelHandles, error) {
	artifacts, handles, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, handles, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func layoutHash(d *diagram.Diagram) string {
	data, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
