package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Font faces are created per call, so multiple
// goroutines can safely use the same Runner with different options.
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
func (r *Runner) Execute(ctx context.Context, doc []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	forest, parseHit, err := r.ParseWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	tree, err := SelectRoot(forest, opts.Root)
	if err != nil {
		return nil, err
	}
	result.Forest = forest
	result.OutlineHash = outlineHash(tree)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.HeadingCount = forest.Count()
	result.Stats.RootCount = len(forest)
	result.Stats.NodeCount = tree.Count()
	result.Stats.EdgeCount = max(0, tree.Count()-1)
	result.CacheInfo.ParseHit = parseHit

	r.Logger.Info("parsed outline",
		"titles", result.Stats.HeadingCount,
		"roots", result.Stats.RootCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, tree, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses doc with caching and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, doc []byte, opts Options) (outline.Forest, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.OutlineKey(cache.Hash(doc), opts.OutlineKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit := r.get(ctx, cacheKey); hit {
			if forest, err := outline.Unmarshal(data); err == nil {
				return forest, true, nil // Cache hit
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Parser, len(doc))
	start := time.Now()
	forest, err := Parse(doc, opts.Parser)
	hooks.OnParseComplete(ctx, opts.Parser, forest.Count(), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := outline.Marshal(forest); err == nil {
		r.set(ctx, cacheKey, data, cache.TTLOutline)
	}

	return forest, false, nil // Cache miss
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, doc []byte, opts Options) (outline.Forest, error) {
	forest, _, err := r.ParseWithCacheInfo(ctx, doc, opts)
	return forest, err
}

// GenerateLayoutWithCacheInfo lays out the first tree of tree with caching
// and returns cache hit info. Node-link diagrams are laid out by Graphviz
// at render time, so they get an empty layout here.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, tree outline.Forest, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}
	r.applyLogger(&opts)

	if opts.IsNodelink() {
		return layout.Layout{}, false, nil
	}

	cacheKey := r.Keyer.LayoutKey(outlineHash(tree), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit := r.get(ctx, cacheKey); hit {
			if cached, err := layout.Unmarshal(data); err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.VizType, tree.Count())
	start := time.Now()
	l, err := r.computeLayout(tree, opts)
	hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := layout.Marshal(l); err == nil {
		r.set(ctx, cacheKey, data, cache.TTLLayout)
	}

	return l, false, nil // Cache miss
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, tree outline.Forest, opts Options) (layout.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, tree, opts)
	return l, err
}

func (r *Runner) computeLayout(tree outline.Forest, opts Options) (layout.Layout, error) {
	var faces *fonts.Faces
	if opts.Measure != MeasureEstimate {
		var err error
		if faces, err = fonts.NewFaces(); err != nil {
			return layout.Layout{}, err
		}
		defer faces.Close()
	}
	m, err := NewMeasurer(opts, faces)
	if err != nil {
		return layout.Layout{}, err
	}
	return GenerateLayout(tree, m), nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tree outline.Forest, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Mind maps are keyed by their geometry, node-link diagrams by the tree.
	var sourceHash string
	if opts.IsNodelink() {
		sourceHash = outlineHash(tree)
	} else {
		layoutData, err := layout.Marshal(l)
		if err != nil {
			return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
		}
		sourceHash = cache.Hash(layoutData)
	}
	keyFor := func(format string) string {
		ko := opts.ArtifactKeyOpts(format)
		if tree == nil {
			ko.Width, ko.Height = 0, 0 // stored layouts rasterize at their own size
		}
		return r.Keyer.ArtifactKey(sourceHash, ko)
	}

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			data, hit := r.get(ctx, keyFor(format))
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, tree, l, opts, nil)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.set(ctx, keyFor(format), data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, tree outline.Forest, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tree, l, opts)
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

// get reads key from the cache and reports the outcome to the cache hooks.
// Backend errors count as misses.
func (r *Runner) get(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cache.KeyType(key))
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KeyType(key))
	return data, true
}

// set writes key to the cache. Failures are logged and otherwise ignored.
func (r *Runner) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cache.KeyType(key), len(data))
}

// outlineHash returns the content hash of a forest's JSON encoding.
func outlineHash(f outline.Forest) string {
	data, _ := outline.Marshal(f)
	return cache.Hash(data)
}
