package plugin

import (
	"github.com/emerbrito/XrmUtils-PluginExtensions/application/registration"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// PluginInternals are the host services extracted for one plugin invocation.
type PluginInternals struct {
	Internals

	Registrant          registration.Registrant
	NotificationService ports.NotificationService
}

// NewPluginInternals extracts the host services from sp. decorate, when not
// nil, wraps the host tracer.
func NewPluginInternals(sp ports.ServiceProvider, reg registration.Registrant, decorate ports.TracerDecorator) (*PluginInternals, error) {
	if sp == nil {
		return nil, &errors.ArgumentError{Argument: "serviceProvider"}
	}

	tracer, err := resolveTracer(sp.TracingService(), decorate)
	if err != nil {
		return nil, err
	}

	tracer.Trace("Obtaining execution context from service provider.")
	exec := sp.PluginExecutionContext()
	if exec == nil {
		return nil, &errors.HostContractError{Service: "execution context"}
	}

	tracer.Trace("Correlation Id: %s, User Id: %s", exec.CorrelationID, exec.UserID)

	tracer.Trace("Obtaining service factory reference.")
	factory := sp.OrganizationServiceFactory()
	if factory == nil {
		return nil, &errors.HostContractError{Service: "organization service factory"}
	}

	tracer.Trace("Obtaining organization service reference.")
	userID := exec.UserID
	org := factory.CreateOrganizationService(&userID)

	tracer.Trace("Obtaining elevated organization service reference.")
	systemOrg := factory.CreateOrganizationService(nil)

	return &PluginInternals{
		Internals: Internals{
			Execution:                 exec,
			OrganizationService:       org,
			SystemOrganizationService: systemOrg,
			Tracer:                    tracer,
		},
		Registrant:          reg,
		NotificationService: sp.NotificationService(),
	}, nil
}

// WorkflowInternals are the host services extracted for one activity invocation.
type WorkflowInternals struct {
	Internals

	Activity ports.ActivityContext
	Workflow *entities.WorkflowContext
}

// NewWorkflowInternals extracts the host services from ac. activityName is
// only used for tracing.
func NewWorkflowInternals(ac ports.ActivityContext, activityName string, decorate ports.TracerDecorator) (*WorkflowInternals, error) {
	if ac == nil {
		return nil, &errors.ArgumentError{Argument: "executionContext"}
	}

	tracer, err := resolveTracer(ac.TracingService(), decorate)
	if err != nil {
		return nil, err
	}

	tracer.Trace("Entered %s.Execute(), Activity Instance Id: %s, Workflow Instance Id: %s",
		activityName, ac.ActivityInstanceID(), ac.WorkflowInstanceID())

	wf := ac.WorkflowContext()
	if wf == nil {
		return nil, &errors.HostContractError{Service: "workflow context"}
	}

	tracer.Trace("%s.Execute(), Correlation Id: %s, Initiating User: %s",
		activityName, wf.CorrelationID, wf.InitiatingUserID)

	factory := ac.OrganizationServiceFactory()
	if factory == nil {
		return nil, &errors.HostContractError{Service: "organization service factory"}
	}
	userID := wf.UserID

	return &WorkflowInternals{
		Internals: Internals{
			Execution:           &wf.ExecutionContext,
			OrganizationService: factory.CreateOrganizationService(&userID),
			Tracer:              tracer,
		},
		Activity: ac,
		Workflow: wf,
	}, nil
}

func resolveTracer(host ports.TracingService, decorate ports.TracerDecorator) (ports.TracingService, error) {
	if host == nil {
		return nil, &errors.HostContractError{Service: "tracing service"}
	}
	if decorate == nil {
		return host, nil
	}

	host.Trace("Attempting to create custom tracing service.")
	custom := decorate(host)
	if custom == nil {
		return nil, &errors.HostContractError{Service: "custom tracing service"}
	}
	return custom, nil
}
