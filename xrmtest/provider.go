package xrmtest

import (
	"github.com/google/uuid"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// ServiceProvider is a ports.ServiceProvider over in-memory services. Leave a
// field nil to simulate a host that cannot supply that service.
type ServiceProvider struct {
	Tracer       *Tracer
	Execution    *entities.ExecutionContext
	Factory      *ServiceFactory
	Notification *NotificationService
}

// NewServiceProvider wires every service around exec.
func NewServiceProvider(exec *entities.ExecutionContext) *ServiceProvider {
	return &ServiceProvider{
		Tracer:       NewTracer(),
		Execution:    exec,
		Factory:      &ServiceFactory{Store: NewOrganizationService()},
		Notification: &NotificationService{},
	}
}

// Store returns the organization service shared by every user.
func (p *ServiceProvider) Store() *OrganizationService {
	if p.Factory == nil {
		return nil
	}
	return p.Factory.Store
}

// TracingService implements ports.ServiceProvider.
func (p *ServiceProvider) TracingService() ports.TracingService {
	if p.Tracer == nil {
		return nil
	}
	return p.Tracer
}

// PluginExecutionContext implements ports.ServiceProvider.
func (p *ServiceProvider) PluginExecutionContext() *entities.ExecutionContext {
	return p.Execution
}

// OrganizationServiceFactory implements ports.ServiceProvider.
func (p *ServiceProvider) OrganizationServiceFactory() ports.OrganizationServiceFactory {
	if p.Factory == nil {
		return nil
	}
	return p.Factory
}

// NotificationService implements ports.ServiceProvider.
func (p *ServiceProvider) NotificationService() ports.NotificationService {
	if p.Notification == nil {
		return nil
	}
	return p.Notification
}

// ActivityContext is a ports.ActivityContext over in-memory services.
type ActivityContext struct {
	Tracer     *Tracer
	Workflow   *entities.WorkflowContext
	Factory    *ServiceFactory
	InstanceID string
	WorkflowID uuid.UUID
}

// NewActivityContext wires every service around wf.
func NewActivityContext(wf *entities.WorkflowContext) *ActivityContext {
	return &ActivityContext{
		Tracer:     NewTracer(),
		Workflow:   wf,
		Factory:    &ServiceFactory{Store: NewOrganizationService()},
		InstanceID: "1",
		WorkflowID: uuid.New(),
	}
}

// Store returns the organization service shared by every user.
func (a *ActivityContext) Store() *OrganizationService {
	if a.Factory == nil {
		return nil
	}
	return a.Factory.Store
}

// ActivityInstanceID implements ports.ActivityContext.
func (a *ActivityContext) ActivityInstanceID() string { return a.InstanceID }

// WorkflowInstanceID implements ports.ActivityContext.
func (a *ActivityContext) WorkflowInstanceID() uuid.UUID { return a.WorkflowID }

// TracingService implements ports.ActivityContext.
func (a *ActivityContext) TracingService() ports.TracingService {
	if a.Tracer == nil {
		return nil
	}
	return a.Tracer
}

// WorkflowContext implements ports.ActivityContext.
func (a *ActivityContext) WorkflowContext() *entities.WorkflowContext { return a.Workflow }

// OrganizationServiceFactory implements ports.ActivityContext.
func (a *ActivityContext) OrganizationServiceFactory() ports.OrganizationServiceFactory {
	if a.Factory == nil {
		return nil
	}
	return a.Factory
}
