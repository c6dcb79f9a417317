package ports

import (
	"github.com/google/uuid"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

// ServiceProvider is what the host hands to a plugin entry point. Any accessor
// may return nil when the host cannot supply the service.
type ServiceProvider interface {
	TracingService() TracingService
	PluginExecutionContext() *entities.ExecutionContext
	OrganizationServiceFactory() OrganizationServiceFactory

	// NotificationService is optional.
	NotificationService() NotificationService
}

// ActivityContext is what the host hands to a custom workflow activity.
type ActivityContext interface {
	ActivityInstanceID() string
	WorkflowInstanceID() uuid.UUID

	TracingService() TracingService
	WorkflowContext() *entities.WorkflowContext
	OrganizationServiceFactory() OrganizationServiceFactory
}
