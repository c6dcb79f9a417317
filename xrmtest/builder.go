package xrmtest

import (
	"github.com/google/uuid"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

// ContextBuilder assembles an ExecutionContext for a test invocation.
type ContextBuilder struct {
	exec *entities.ExecutionContext
}

// NewContext starts a synchronous, depth 1 context with fresh user and
// correlation ids and empty parameter bags.
func NewContext() *ContextBuilder {
	user := uuid.New()
	return &ContextBuilder{exec: &entities.ExecutionContext{
		InputParameters:  make(entities.ParameterCollection),
		OutputParameters: make(entities.ParameterCollection),
		SharedVariables:  make(entities.ParameterCollection),
		PreEntityImages:  make(entities.ImageCollection),
		PostEntityImages: make(entities.ImageCollection),
		Mode:             entities.Synchronous,
		Depth:            1,
		UserID:           user,
		InitiatingUserID: user,
		CorrelationID:    uuid.New(),
		OperationID:      uuid.New(),
		OrganizationID:   uuid.New(),
	}}
}

// Message sets the message name.
func (b *ContextBuilder) Message(name string) *ContextBuilder {
	b.exec.MessageName = name
	return b
}

// Entity sets the primary entity name and id.
func (b *ContextBuilder) Entity(name string, id uuid.UUID) *ContextBuilder {
	b.exec.PrimaryEntityName = name
	b.exec.PrimaryEntityID = id
	return b
}

// Stage sets the pipeline stage.
func (b *ContextBuilder) Stage(s entities.PipelineStage) *ContextBuilder {
	b.exec.Stage = s
	return b
}

// Mode sets the execution mode.
func (b *ContextBuilder) Mode(m entities.ExecutionMode) *ContextBuilder {
	b.exec.Mode = m
	return b
}

// User sets the user the invocation runs as.
func (b *ContextBuilder) User(id uuid.UUID) *ContextBuilder {
	b.exec.UserID = id
	return b
}

// Target sets the "Target" input parameter.
func (b *ContextBuilder) Target(v any) *ContextBuilder {
	b.exec.InputParameters[entities.TargetParameter] = v
	return b
}

// Input sets an input parameter. A nil value models a host null.
func (b *ContextBuilder) Input(key string, v any) *ContextBuilder {
	b.exec.InputParameters[key] = v
	return b
}

// Shared sets a shared variable.
func (b *ContextBuilder) Shared(key string, v any) *ContextBuilder {
	b.exec.SharedVariables[key] = v
	return b
}

// PreImage adds a named pre image.
func (b *ContextBuilder) PreImage(name string, e *entities.Entity) *ContextBuilder {
	b.exec.PreEntityImages[name] = e
	return b
}

// PostImage adds a named post image.
func (b *ContextBuilder) PostImage(name string, e *entities.Entity) *ContextBuilder {
	b.exec.PostEntityImages[name] = e
	return b
}

// Parent links the context that triggered this one and bumps the depth.
func (b *ContextBuilder) Parent(p *entities.ExecutionContext) *ContextBuilder {
	b.exec.Parent = p
	if p != nil {
		b.exec.Depth = p.Depth + 1
	}
	return b
}

// Build returns the assembled context.
func (b *ContextBuilder) Build() *entities.ExecutionContext {
	return b.exec
}

// BuildWorkflow returns the assembled context as a workflow context.
func (b *ContextBuilder) BuildWorkflow(stageName string) *entities.WorkflowContext {
	return &entities.WorkflowContext{
		ExecutionContext: *b.exec,
		StageName:        stageName,
	}
}

// SystemUser returns a systemuser record with the given access mode.
func SystemUser(id uuid.UUID, accessMode int, disabled bool) *entities.Entity {
	u := entities.NewEntity("systemuser", id)
	u.Set("accessmode", entities.NewOptionSetValue(accessMode))
	u.Set("isdisabled", disabled)
	return u
}
