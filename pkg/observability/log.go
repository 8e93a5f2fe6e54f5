package observability

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline, cache and HTTP events to a logger. Failed
// requests are logged as warnings, everything else at debug level. Install it with [SetLogHooks] to trace a process without a
// metrics backend.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to a discard logger if nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LogHooks{Logger: logger}
}

// SetLogHooks installs h for every hook category.
func SetLogHooks(h *LogHooks) {
	Set(Hooks{Pipeline: h, Cache: h, HTTP: h})
}

func (h *LogHooks) OnParseStart(_ context.Context, parser string, size int) {
	h.Logger.Debug("parse start", "parser", parser, "bytes", size)
}

func (h *LogHooks) OnParseComplete(_ context.Context, parser string, nodeCount int, d time.Duration, err error) {
	h.Logger.Debug("parse done", "parser", parser, "nodes", nodeCount, "took", d, "err", err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, vizType string, nodeCount int) {
	h.Logger.Debug("layout start", "viz", vizType, "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	h.Logger.Debug("layout done", "viz", vizType, "took", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.Logger.Debug("render done", "formats", formats, "took", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Warn("request failed", "method", method, "path", path, "err", err)
}
