package entities

import (
	"github.com/google/uuid"
)

// TargetParameter is the input parameter holding the record an invocation
// operates on.
const TargetParameter = "Target"

// ParameterCollection is a key/value bag (input, output or shared variables).
// A key mapped to nil means the host supplied an explicit null.
type ParameterCollection map[string]any

// Contains reports whether key is present, even if its value is nil.
func (p ParameterCollection) Contains(key string) bool {
	_, ok := p[key]
	return ok
}

// Get returns the value stored under key.
func (p ParameterCollection) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// ImageCollection holds named entity snapshots registered on a step.
type ImageCollection map[string]*Entity

// Contains reports whether an image with that name was supplied.
func (c ImageCollection) Contains(name string) bool {
	_, ok := c[name]
	return ok
}

// ExecutionContext is the host state for one invocation. It is valid only
// for the invocation it was handed to and must not be retained afterwards.
//
// Parent links the context that triggered this one, forming a chain that ends
// at the outermost invocation.
type ExecutionContext struct {
	InputParameters  ParameterCollection
	OutputParameters ParameterCollection
	SharedVariables  ParameterCollection
	PreEntityImages  ImageCollection
	PostEntityImages ImageCollection
	Parent           *ExecutionContext

	MessageName       string
	PrimaryEntityName string
	OrganizationName  string

	Mode  ExecutionMode
	Stage PipelineStage
	Depth int

	PrimaryEntityID  uuid.UUID
	UserID           uuid.UUID
	InitiatingUserID uuid.UUID
	OrganizationID   uuid.UUID
	BusinessUnitID   uuid.UUID
	CorrelationID    uuid.UUID
	OperationID      uuid.UUID

	IsInTransaction bool
}

// Chain returns the context followed by each of its ancestors.
func (c *ExecutionContext) Chain() []*ExecutionContext {
	var chain []*ExecutionContext
	for cur := c; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}

// WorkflowContext is the execution context handed to custom workflow activities.
type WorkflowContext struct {
	ExecutionContext

	StageName        string
	WorkflowCategory int
	WorkflowMode     int
}
