package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events at debug level.
type LogPipelineHooks struct{ Logger *log.Logger }

// NewLogPipelineHooks returns pipeline hooks that log to l.
func NewLogPipelineHooks(l *log.Logger) *LogPipelineHooks {
	return &LogPipelineHooks{Logger: l.WithPrefix("pipeline")}
}

func (h *LogPipelineHooks) OnLayoutStart(_ context.Context, arity int) {
	h.Logger.Debug("layout start", "sets", arity)
}

func (h *LogPipelineHooks) OnLayoutComplete(_ context.Context, arity int, fitError float64, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "sets", arity, "took", d, "err", err)
		return
	}
	h.Logger.Debug("layout done", "sets", arity, "fit_error", fitError, "took", d)
}

func (h *LogPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "took", d, "err", err)
		return
	}
	h.Logger.Debug("render done", "formats", formats, "took", d)
}

// LogCacheHooks writes cache events at debug level.
type LogCacheHooks struct{ Logger *log.Logger }

// NewLogCacheHooks returns cache hooks that log to l.
func NewLogCacheHooks(l *log.Logger) *LogCacheHooks {
	return &LogCacheHooks{Logger: l.WithPrefix("cache")}
}

func (h *LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("hit", "type", keyType)
}

func (h *LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("miss", "type", keyType)
}

func (h *LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("set", "type", keyType, "bytes", size)
}

// LogHTTPHooks writes one info line per response.
type LogHTTPHooks struct{ Logger *log.Logger }

// NewLogHTTPHooks returns HTTP hooks that log to l.
func NewLogHTTPHooks(l *log.Logger) *LogHTTPHooks {
	return &LogHTTPHooks{Logger: l.WithPrefix("http")}
}

func (h *LogHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *LogHTTPHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("request", "method", method, "route", route, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogPipelineHooks)(nil)
	_ CacheHooks    = (*LogCacheHooks)(nil)
	_ HTTPHooks     = (*LogHTTPHooks)(nil)
)
