package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciigraph/pkg/observability"
)

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, source, format string) {
	h.logger.Debug("loading dataset", "source", source, "format", format)
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, points int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("loaded dataset", "source", source, "points", points, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, graphType string, points int) {
	h.logger.Debug("rendering", "type", graphType, "points", points)
}

func (h *logHooks) OnRenderComplete(_ context.Context, graphType string, lines int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "type", graphType, "error", err)
		return
	}
	h.logger.Debug("rendered", "type", graphType, "lines", lines, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache store", "key", keyType, "bytes", size)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
