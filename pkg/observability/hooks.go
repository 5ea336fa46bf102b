// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let a binary attach instrumentation without the libraries importing
// any backend. Each event category is an interface with a no-op default;
// main registers real implementations once at startup.
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries emit events through the registry:
//
//	observability.Pipeline().OnRenderStart(ctx, "bar", len(ds.Points))
//	// ... render ...
//	observability.Pipeline().OnRenderComplete(ctx, "bar", lines, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from dataset loading and chart rendering.
type PipelineHooks interface {
	// Load events. source is a file path, "-" for stdin, or "request".
	OnLoadStart(ctx context.Context, source, format string)
	OnLoadComplete(ctx context.Context, source string, points int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, graphType string, points int)
	OnRenderComplete(ctx context.Context, graphType string, lines int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for it.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
