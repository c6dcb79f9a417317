package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

// OrganizationService provides data access to the organization.
type OrganizationService interface {
	// Retrieve reads a record. An empty column list retrieves all columns.
	Retrieve(ctx context.Context, entityName string, id uuid.UUID, columns ...string) (*entities.Entity, error)

	// Create creates a record and returns its id.
	Create(ctx context.Context, entity *entities.Entity) (uuid.UUID, error)

	// Update writes the attributes present on entity.
	Update(ctx context.Context, entity *entities.Entity) error

	// Delete removes a record.
	Delete(ctx context.Context, entityName string, id uuid.UUID) error
}

// OrganizationServiceFactory creates organization services bound to a user.
type OrganizationServiceFactory interface {
	// CreateOrganizationService returns a service acting as userID. A nil
	// userID yields a service running with SYSTEM privileges.
	CreateOrganizationService(userID *uuid.UUID) OrganizationService
}

// NotificationService posts the execution context to a service endpoint
// (e.g. a service bus queue) from a synchronous step.
type NotificationService interface {
	Execute(ctx context.Context, endpoint *entities.EntityReference, execution *entities.ExecutionContext) (string, error)
}
