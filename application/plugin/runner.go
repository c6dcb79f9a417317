package plugin

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/emerbrito/XrmUtils-PluginExtensions/application/config"
	"github.com/emerbrito/XrmUtils-PluginExtensions/application/registration"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// Plugin is implemented by plugin types. Registration declares what the plugin
// supports and is checked before Execute runs.
type Plugin interface {
	registration.Registrant

	Execute(ctx context.Context, local *LocalPluginContext) error
}

// Activity is implemented by custom workflow activities.
type Activity interface {
	Execute(ctx context.Context, local *LocalWorkflowContext) error
}

// Option configures Run and RunActivity.
type Option func(*runConfig)

type runConfig struct {
	options  config.Options
	decorate ports.TracerDecorator
}

// WithOptions replaces the runner options.
func WithOptions(o config.Options) Option {
	return func(c *runConfig) {
		c.options = o
	}
}

// WithTracerDecorator wraps the host tracer with a custom tracing service.
func WithTracerDecorator(d ports.TracerDecorator) Option {
	return func(c *runConfig) {
		c.decorate = d
	}
}

// WithoutRegistrationValidation skips ValidatePluginRegistration.
func WithoutRegistrationValidation() Option {
	return func(c *runConfig) {
		c.options.ValidateRegistration = false
	}
}

func newRunConfig(opts []Option) (runConfig, error) {
	c := runConfig{options: config.DefaultOptions()}
	for _, opt := range opts {
		opt(&c)
	}
	if err := config.Validate(c.options); err != nil {
		return runConfig{}, err
	}
	return c, nil
}

// Run executes p for one invocation: it extracts the host services from sp,
// builds the local context, validates the registration and calls p.Execute.
// Every failure ends the invocation and matches errors.ErrInvalidPluginExecution.
func Run(ctx context.Context, sp ports.ServiceProvider, p Plugin, opts ...Option) error {
	if p == nil {
		return errors.InvalidExecution(&errors.ArgumentError{Argument: "plugin"})
	}

	cfg, err := newRunConfig(opts)
	if err != nil {
		return errors.InvalidExecution(err)
	}

	internals, err := NewPluginInternals(sp, p, cfg.decorate)
	if err != nil {
		return errors.InvalidExecution(err)
	}
	tracer := internals.Tracer

	tracer.Trace("Instantiating local context.")
	local, err := newLocalPluginContext(internals, cfg.options.UserFlagPrefix)
	if err != nil {
		return abort(tracer, err)
	}

	if cfg.options.ValidateRegistration {
		if err := invoke(cfg.options.RecoverPanics, local.ValidatePluginRegistration); err != nil {
			tracer.Trace("Registration validation failed: %v", err)
			return abort(tracer, err)
		}
	}

	tracer.Trace("Calling execute method from derived class.")
	tracer.Trace("Entering %T.Execute()", p)

	start := time.Now()
	err = invoke(cfg.options.RecoverPanics, func() error { return p.Execute(ctx, local) })
	if cfg.options.TraceTimings {
		tracer.Trace("%T.Execute() took %s", p, time.Since(start))
	}
	if err != nil {
		tracer.Trace("%T.Execute() failed: %v", p, err)
		return abort(tracer, err)
	}

	tracer.Trace("Done with derived class.")
	return nil
}

// RunActivity executes a for one workflow activity invocation. Activities have
// no registration to validate.
func RunActivity(ctx context.Context, ac ports.ActivityContext, a Activity, opts ...Option) error {
	if a == nil {
		return errors.InvalidExecution(&errors.ArgumentError{Argument: "activity"})
	}

	cfg, err := newRunConfig(opts)
	if err != nil {
		return errors.InvalidExecution(err)
	}

	name := fmt.Sprintf("%T", a)
	internals, err := NewWorkflowInternals(ac, name, cfg.decorate)
	if err != nil {
		return errors.InvalidExecution(err)
	}
	tracer := internals.Tracer

	tracer.Trace("Instantiating local context.")
	local, err := newLocalWorkflowContext(internals, cfg.options.UserFlagPrefix)
	if err != nil {
		return abort(tracer, err)
	}

	tracer.Trace("Calling Execute() method from derived class.")

	start := time.Now()
	err = invoke(cfg.options.RecoverPanics, func() error { return a.Execute(ctx, local) })
	if cfg.options.TraceTimings {
		tracer.Trace("%s.Execute() took %s", name, time.Since(start))
	}
	if err != nil {
		tracer.Trace("%s.Execute() failed: %v", name, err)
		return abort(tracer, err)
	}

	tracer.Trace("Done with derived class.")
	return nil
}

// abort traces the structured form of err and marks it as ending the invocation.
func abort(tracer ports.TracingService, err error) error {
	tracer.Trace("Error detail: %s", errors.ToErrorDetail(err))
	return errors.InvalidExecution(err)
}

func invoke(recoverPanics bool, fn func() error) (err error) {
	if recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				err = &errors.PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
	}
	return fn()
}
