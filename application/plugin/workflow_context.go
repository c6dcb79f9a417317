package plugin

import (
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// LocalWorkflowContext is the context handed to a custom workflow activity.
type LocalWorkflowContext struct {
	Context

	internals *WorkflowInternals
}

// NewLocalWorkflowContext wraps the internals of one activity invocation.
func NewLocalWorkflowContext(internals *WorkflowInternals) (*LocalWorkflowContext, error) {
	return newLocalWorkflowContext(internals, "")
}

func newLocalWorkflowContext(internals *WorkflowInternals, userFlagPrefix string) (*LocalWorkflowContext, error) {
	if internals == nil {
		return nil, &errors.ArgumentError{Argument: "internals"}
	}
	if internals.Tracer == nil {
		return nil, &errors.HostContractError{Service: "tracing service"}
	}
	if internals.Workflow == nil {
		return nil, &errors.HostContractError{Service: "workflow context"}
	}
	return &LocalWorkflowContext{
		Context:   newContext(internals.Internals, userFlagPrefix),
		internals: internals,
	}, nil
}

// WorkflowContext returns the workflow execution context.
func (lc *LocalWorkflowContext) WorkflowContext() *entities.WorkflowContext {
	return lc.internals.Workflow
}

// ActivityContext returns the host activity context.
func (lc *LocalWorkflowContext) ActivityContext() ports.ActivityContext {
	return lc.internals.Activity
}

// StageName returns the workflow stage the activity runs in.
func (lc *LocalWorkflowContext) StageName() string {
	return lc.internals.Workflow.StageName
}
