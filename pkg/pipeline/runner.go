package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner is stateless except for the cache, engine and logger; it does
// not store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Engine *layout.Engine
	Logger *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If engine is nil, an engine with the default configuration is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, engine *layout.Engine, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if engine == nil {
		engine = layout.New(layout.DefaultConfig())
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Engine: engine,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		GraphHash: graph.Hash(g),
		Stats: Stats{
			NodeCount:     len(g.Nodes),
			EdgeCount:     len(g.Edges),
			DanglingEdges: len(g.DanglingEdges()),
		},
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RankCount = l.RankCount()
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"strategy", l.Strategy,
		"nodes", result.Stats.NodeCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and reports
// whether it came from the cache. With opts.Refresh the cache is not read
// but the fresh layout is still stored.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	if !r.Engine.Has(layout.Strategy(opts.Strategy)) {
		return graph.Layout{}, false, errors.New(errors.ErrCodeInvalidStrategy,
			"unknown strategy: %q (must be one of: %s)", opts.Strategy, r.strategyList())
	}
	if err := ctx.Err(); err != nil {
		return graph.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(graph.Hash(g), opts.LayoutKeyOpts(r.configHash()))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graph.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l := GenerateLayout(ctx, r.Engine, g, opts)

	if data, err := graph.MarshalLayout(l); err == nil {
		r.store(ctx, opts.Logger, "layout", cacheKey, data, cache.TTLLayout)
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// ComputeAll lays out g once per strategy, concurrently. opts.Strategy is
// ignored. The first failure cancels the remaining layouts.
func (r *Runner) ComputeAll(ctx context.Context, g graph.Graph, strategies []layout.Strategy, opts Options) (map[layout.Strategy]graph.Layout, error) {
	var (
		mu      sync.Mutex
		layouts = make(map[layout.Strategy]graph.Layout, len(strategies))
	)

	eg, ctx := errgroup.WithContext(ctx)
	for _, s := range strategies {
		o := opts
		o.Strategy = string(s)
		eg.Go(func() error {
			l, err := r.ComputeLayout(ctx, g, o)
			if err != nil {
				return fmt.Errorf("%s: %w", s, err)
			}
			mu.Lock()
			layouts[s] = l
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return layouts, nil
}

// RenderWithCacheInfo renders artifacts with caching and reports whether all
// of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
			continue
		}
		allCached = false
		break
	}
	if allCached {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := RenderLayout(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, opts.Logger, "artifact", cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// store writes to the cache. Failures are logged and otherwise ignored: a
// result that could not be cached is still a result.
func (r *Runner) store(ctx context.Context, logger *log.Logger, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// configHash identifies the engine configuration in layout cache keys.
func (r *Runner) configHash() string {
	data, _ := json.Marshal(r.Engine.Config())
	return cache.Hash(data)
}

func (r *Runner) strategyList() string {
	var names []string
	for _, s := range r.Engine.Strategies() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
