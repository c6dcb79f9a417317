package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// SlogTracer forwards trace lines to the host tracer and mirrors them to an
// *slog.Logger at debug level.
type SlogTracer struct {
	inner  ports.TracingService
	logger *slog.Logger
}

// NewSlogTracer decorates inner. A nil logger uses slog.Default().
func NewSlogTracer(inner ports.TracingService, logger *slog.Logger) *SlogTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTracer{inner: inner, logger: logger}
}

// Decorator returns a TracerDecorator that installs a SlogTracer.
func Decorator(logger *slog.Logger) ports.TracerDecorator {
	return func(inner ports.TracingService) ports.TracingService {
		return NewSlogTracer(inner, logger)
	}
}

// Trace implements ports.TracingService.
func (t *SlogTracer) Trace(format string, args ...any) {
	if t.inner != nil {
		t.inner.Trace(format, args...)
	}

	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	t.logger.Log(context.Background(), slog.LevelDebug, line, slog.String("source", "trace"))
}
