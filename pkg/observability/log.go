package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger: successes at debug level,
// failures at error level. It implements all three hook interfaces.
//
//	h := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(h)
//	observability.SetHTTPHooks(h)
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates hooks that log to l, or to the default logger when l
// is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) done(msg string, err error, keyvals ...any) {
	if err != nil {
		h.Logger.Error(msg+" failed", append(keyvals, "err", err)...)
		return
	}
	h.Logger.Debug(msg, keyvals...)
}

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.Logger.Debug("load start", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, categories int, d time.Duration, err error) {
	h.done("load", err, "source", source, "categories", categories, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, layers, categories int) {
	h.Logger.Debug("layout start", "layers", layers, "categories", categories)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, passes int, scrolling bool, d time.Duration, err error) {
	h.done("layout", err, "passes", passes, "scrolling", scrolling, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", err, "formats", formats, "duration", d)
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

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.Logger.Debug("request", "id", requestID, "method", method, "path", path)
}

// OnResponse logs at info level so a server shows one line per request.
func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}

func (h *LogHooks) OnError(_ context.Context, requestID, method, path string, err error) {
	h.Logger.Warn("request error", "id", requestID, "method", method, "path", path, "err", err)
}
