// Package observability lets a process watch the mindmap pipeline, its caches
// and the API server without the libraries importing a metrics backend.
//
// Libraries report events through the hooks returned by [Pipeline], [Cache]
// and [HTTP]. Nothing is recorded until a program installs an implementation
// at startup:
//
//	observability.Set(observability.Hooks{
//	    Pipeline: myMetrics,
//	    Cache:    myMetrics,
//	})
//	defer observability.Reset()
//
// Categories left nil keep their no-op default. [LogHooks] implements every
// category by writing debug lines to a charm logger; `mindmap serve --verbose`
// installs it.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives the start and end of each pipeline stage.
// The parser and viz type arguments carry the option values in effect.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, parser string, size int)
	OnParseComplete(ctx context.Context, parser string, nodeCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, vizType string, nodeCount int)
	OnLayoutComplete(ctx context.Context, vizType string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes made by the pipeline runner.
// keyType is the key's stage prefix: outline, layout or artifact.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives API server traffic.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	// OnError fires when a handler answers with an error body.
	OnError(ctx context.Context, method, path string, err error)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// Hooks bundles one implementation per category.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

func (h Hooks) withDefaults() *Hooks {
	if h.Pipeline == nil {
		h.Pipeline = NoopPipelineHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	if h.HTTP == nil {
		h.HTTP = NoopHTTPHooks{}
	}
	return &h
}

// current is replaced wholesale on every change, so readers never see a
// half-updated set.
var current atomic.Pointer[Hooks]

func init() { Reset() }

func load() *Hooks { return current.Load() }

// Set installs h, replacing every category. Nil fields fall back to no-ops.
func Set(h Hooks) { current.Store(h.withDefaults()) }

func update(fn func(*Hooks)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, next.withDefaults()) {
			return
		}
	}
}

// SetPipelineHooks replaces the pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(hs *Hooks) { hs.Pipeline = h })
	}
}

// SetCacheHooks replaces the cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(hs *Hooks) { hs.Cache = h })
	}
}

// SetHTTPHooks replaces the HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(hs *Hooks) { hs.HTTP = h })
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return load().Pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return load().Cache }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return load().HTTP }

// Reset puts the no-op hooks back in every category.
func Reset() { Set(Hooks{}) }
