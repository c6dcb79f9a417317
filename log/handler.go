// Package log bridges log/slog and the host tracing service: TraceHandler
// writes slog records into the plug-in trace log, and SlogTracer mirrors host
// trace lines into an *slog.Logger.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// TraceHandler implements slog.Handler on top of a host TracingService.
type TraceHandler struct {
	tracer ports.TracingService
	opts   handlerConfig
	attrs  []slog.Attr
	group  string
}

// HandlerOption configures the TraceHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum level written to the trace log.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource appends the source file and line to each trace line.
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a TraceHandler writing to tracer.
func NewHandler(tracer ports.TracingService, opts ...HandlerOption) *TraceHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TraceHandler{tracer: tracer, opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TraceHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.tracer != nil && level >= h.opts.level
}

// Handle formats the record as one trace line.
func (h *TraceHandler) Handle(_ context.Context, record slog.Record) error {
	if h.tracer == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString(record.Level.String())
	b.WriteByte(' ')
	b.WriteString(record.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	record.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})

	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := frames.Next()
		fmt.Fprintf(&b, " source=%s:%d", f.File, f.Line)
	}

	h.tracer.Trace("%s", b.String())
	return nil
}

// WithAttrs returns a handler that includes attrs on every line.
func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *TraceHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if nh.group != "" {
		nh.group = nh.group + "." + name
	} else {
		nh.group = name
	}
	return &nh
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	for _, kv := range flattenAttr(group, a) {
		b.WriteByte(' ')
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(quoteIfNeeded(kv.Value))
	}
}
