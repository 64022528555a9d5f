package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stemloop/pkg/cache"
	"github.com/matzehuels/stemloop/pkg/drawing"
	"github.com/matzehuels/stemloop/pkg/observability"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	tree, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Tree = tree
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Length = tree.Len()
	result.Stats.Pairs = tree.Pairs.Count()
	result.Stats.NodeCount = len(tree.Nodes())

	r.Logger.Info("parsed structure",
		"input", opts.String(),
		"pairs", result.Stats.Pairs,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	d, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Drawing = d
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Warnings = len(d.Warnings)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"loops", len(d.Loops),
		"helices", len(d.Helices),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse validates the input and builds its structure tree.
func (r *Runner) Parse(ctx context.Context, opts Options) (*structure.Tree, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	return Parse(ctx, opts)
}

// ComputeLayoutWithCacheInfo lays out tree with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, tree *structure.Tree, opts Options) (drawing.Drawing, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return drawing.Drawing{}, false, err
	}

	inputHash := cache.InputHash(tree.Name, tree.Sequence, tree.DotBracket())
	cacheKey := r.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if d, err := drawing.Unmarshal(data); err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return d, true, nil
			}
			// Corrupt entry: fall through and recompute.
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	d, err := GenerateDrawing(ctx, tree, opts)
	if err != nil {
		return drawing.Drawing{}, false, err
	}

	if data, err := drawing.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	return d, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, tree *structure.Tree, opts Options) (drawing.Drawing, error) {
	d, _, err := r.ComputeLayoutWithCacheInfo(ctx, tree, opts)
	return d, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d drawing.Drawing, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	drawingData, err := drawing.Marshal(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize drawing for cache key: %w", err)
	}
	drawingHash := cache.Hash(drawingData)
	hooks := observability.Cache()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(drawingHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
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

	rendered, err := Render(ctx, d, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(drawingHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d drawing.Drawing, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
