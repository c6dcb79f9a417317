package ports

// TracingService is the host trace sink. Lines written here end up in the
// plug-in trace log.
type TracingService interface {
	Trace(format string, args ...any)
}

// TracerDecorator wraps the host tracer with a custom implementation. A
// decorator returning nil ends the invocation with a host-contract error.
type TracerDecorator func(TracingService) TracingService
