// Package xrmtest provides an in-memory CRM host for testing plugins and
// workflow activities: a service provider, an activity context, an
// organization service backed by a map, and a tracer that records lines.
package xrmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// Tracer records every formatted trace line.
type Tracer struct {
	mu    sync.Mutex
	lines []string
}

// NewTracer creates an empty Tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Trace implements ports.TracingService.
func (t *Tracer) Trace(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	t.mu.Lock()
	t.lines = append(t.lines, line)
	t.mu.Unlock()
}

// Lines returns a copy of the recorded lines.
func (t *Tracer) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// NotFoundError is returned by OrganizationService for unknown records.
type NotFoundError struct {
	EntityName string
	ID         uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s does not exist", e.EntityName, e.ID)
}

// OrganizationService is an in-memory ports.OrganizationService. It counts
// calls per operation so tests can assert how often the host was hit.
type OrganizationService struct {
	mu      sync.RWMutex
	records map[string]map[uuid.UUID]*entities.Entity
	calls   map[string]int

	// CallerID is the user the service acts as; nil for SYSTEM.
	CallerID *uuid.UUID
}

// NewOrganizationService creates an empty store.
func NewOrganizationService() *OrganizationService {
	return &OrganizationService{
		records: make(map[string]map[uuid.UUID]*entities.Entity),
		calls:   make(map[string]int),
	}
}

// Seed stores records without counting a call.
func (s *OrganizationService) Seed(records ...*entities.Entity) *OrganizationService {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.put(clone(r))
	}
	return s
}

// Calls returns how many times op ("Retrieve", "Create", "Update", "Delete")
// was called.
func (s *OrganizationService) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

// Retrieve implements ports.OrganizationService.
func (s *OrganizationService) Retrieve(_ context.Context, entityName string, id uuid.UUID, columns ...string) (*entities.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Retrieve"]++

	rec, ok := s.records[entityName][id]
	if !ok {
		return nil, &NotFoundError{EntityName: entityName, ID: id}
	}

	out := entities.NewEntity(rec.LogicalName, rec.ID)
	if len(columns) == 0 {
		for k, v := range rec.Attributes {
			out.Attributes[k] = v
		}
		return out, nil
	}
	for _, c := range columns {
		if v, ok := rec.Attributes[c]; ok {
			out.Attributes[c] = v
		}
	}
	return out, nil
}

// Create implements ports.OrganizationService.
func (s *OrganizationService) Create(_ context.Context, entity *entities.Entity) (uuid.UUID, error) {
	if entity == nil {
		return uuid.Nil, fmt.Errorf("entity cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Create"]++

	rec := clone(entity)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if _, exists := s.records[rec.LogicalName][rec.ID]; exists {
		return uuid.Nil, fmt.Errorf("%s with id %s already exists", rec.LogicalName, rec.ID)
	}
	s.put(rec)
	return rec.ID, nil
}

// Update implements ports.OrganizationService.
func (s *OrganizationService) Update(_ context.Context, entity *entities.Entity) error {
	if entity == nil {
		return fmt.Errorf("entity cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Update"]++

	rec, ok := s.records[entity.LogicalName][entity.ID]
	if !ok {
		return &NotFoundError{EntityName: entity.LogicalName, ID: entity.ID}
	}
	for k, v := range entity.Attributes {
		rec.Attributes[k] = v
	}
	return nil
}

// Delete implements ports.OrganizationService.
func (s *OrganizationService) Delete(_ context.Context, entityName string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Delete"]++

	if _, ok := s.records[entityName][id]; !ok {
		return &NotFoundError{EntityName: entityName, ID: id}
	}
	delete(s.records[entityName], id)
	return nil
}

func (s *OrganizationService) put(rec *entities.Entity) {
	byID, ok := s.records[rec.LogicalName]
	if !ok {
		byID = make(map[uuid.UUID]*entities.Entity)
		s.records[rec.LogicalName] = byID
	}
	byID[rec.ID] = rec
}

func clone(e *entities.Entity) *entities.Entity {
	out := entities.NewEntity(e.LogicalName, e.ID)
	for k, v := range e.Attributes {
		out.Attributes[k] = v
	}
	return out
}

// ServiceFactory hands out the same store for every user and records which
// users services were created for.
type ServiceFactory struct {
	Store *OrganizationService

	mu    sync.Mutex
	users []*uuid.UUID
}

// CreateOrganizationService implements ports.OrganizationServiceFactory.
func (f *ServiceFactory) CreateOrganizationService(userID *uuid.UUID) ports.OrganizationService {
	f.mu.Lock()
	f.users = append(f.users, userID)
	f.mu.Unlock()
	return f.Store
}

// Users returns the user ids services were requested for, in order. A nil
// entry is a SYSTEM service.
func (f *ServiceFactory) Users() []*uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*uuid.UUID, len(f.users))
	copy(out, f.users)
	return out
}

// NotificationService records every context posted to an endpoint.
type NotificationService struct {
	mu     sync.Mutex
	Posted []*entities.ExecutionContext
}

// Execute implements ports.NotificationService.
func (n *NotificationService) Execute(_ context.Context, endpoint *entities.EntityReference, execution *entities.ExecutionContext) (string, error) {
	if endpoint == nil {
		return "", fmt.Errorf("service endpoint cannot be nil")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Posted = append(n.Posted, execution)
	return fmt.Sprintf("%s/%d", endpoint.ID, len(n.Posted)), nil
}
