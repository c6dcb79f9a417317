package plugin

import (
	"slices"

	"github.com/emerbrito/XrmUtils-PluginExtensions/application/registration"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// LocalPluginContext is the context handed to a plugin's Execute. It adds
// pipeline stage awareness and registration validation to Context.
type LocalPluginContext struct {
	Context

	internals  *PluginInternals
	collection *registration.Collection
}

// NewLocalPluginContext wraps the internals of one plugin invocation.
func NewLocalPluginContext(internals *PluginInternals) (*LocalPluginContext, error) {
	return newLocalPluginContext(internals, "")
}

func newLocalPluginContext(internals *PluginInternals, userFlagPrefix string) (*LocalPluginContext, error) {
	if err := checkInternals(internals); err != nil {
		return nil, err
	}
	return &LocalPluginContext{
		Context:   newContext(internals.Internals, userFlagPrefix),
		internals: internals,
	}, nil
}

func checkInternals(internals *PluginInternals) error {
	if internals == nil {
		return &errors.ArgumentError{Argument: "internals"}
	}
	if internals.Tracer == nil {
		return &errors.HostContractError{Service: "tracing service"}
	}
	if internals.Execution == nil {
		return &errors.HostContractError{Service: "execution context"}
	}
	return nil
}

// Stage returns the pipeline stage of the invocation.
func (lc *LocalPluginContext) Stage() entities.PipelineStage { return lc.exec.Stage }

// NotificationService returns the service endpoint notification service, or
// nil when the host did not supply one.
func (lc *LocalPluginContext) NotificationService() ports.NotificationService {
	return lc.internals.NotificationService
}

// IsSupportedPipelineStage reports whether the current stage is one of supported.
func (lc *LocalPluginContext) IsSupportedPipelineStage(supported ...entities.PipelineStage) (bool, error) {
	if len(supported) == 0 {
		return false, &errors.ArgumentError{Argument: "supportedStages"}
	}
	return slices.Contains(supported, lc.exec.Stage), nil
}

// AssertSupportedPipelineStage fails with an UnsupportedError when the current
// stage is not one of supported.
func (lc *LocalPluginContext) AssertSupportedPipelineStage(supported ...entities.PipelineStage) error {
	ok, err := lc.IsSupportedPipelineStage(supported...)
	if err != nil {
		return err
	}
	if !ok {
		return &errors.UnsupportedError{
			Dimension: errors.DimensionStage,
			Actual:    lc.exec.Stage.String(),
			Allowed:   stringsOf(supported),
		}
	}
	return nil
}

// DeclaredRegistration returns the registration declared by the plugin type. It is
// collected on first use and cached for the lifetime of the context.
func (lc *LocalPluginContext) DeclaredRegistration() (*registration.Collection, error) {
	if lc.collection == nil {
		c, err := registration.Collect(lc.internals.Registrant)
		if err != nil {
			return nil, err
		}
		lc.collection = c
	}
	return lc.collection, nil
}

// ValidatePluginRegistration checks the invocation against the registration
// declared by the plugin type. Nothing is checked when nothing is declared;
// otherwise execution mode, message, primary entity and stage are checked in
// that order, each only when declared, and the first mismatch is returned.
func (lc *LocalPluginContext) ValidatePluginRegistration() error {
	c, err := lc.DeclaredRegistration()
	if err != nil {
		return err
	}
	if c.Empty() {
		return nil
	}

	if modes := c.Modes(); len(modes) > 0 {
		if err := lc.AssertSupportedExecutionMode(modes...); err != nil {
			return err
		}
	}
	if msgs := c.Messages(); len(msgs) > 0 {
		if err := lc.AssertSupportedMessage(msgs...); err != nil {
			return err
		}
	}
	if ents := c.Entities(); len(ents) > 0 {
		if err := lc.AssertSupportedEntity(ents...); err != nil {
			return err
		}
	}
	if stages := c.Stages(); len(stages) > 0 {
		if err := lc.AssertSupportedPipelineStage(stages...); err != nil {
			return err
		}
	}
	return nil
}

// SetOutputParameter sets a value returned to the caller of a custom action.
func (lc *LocalPluginContext) SetOutputParameter(name string, value any) {
	if lc.exec.OutputParameters == nil {
		lc.exec.OutputParameters = make(entities.ParameterCollection)
	}
	lc.exec.OutputParameters[name] = value
}

// OutputParameter returns an output parameter set earlier in the pipeline.
func (lc *LocalPluginContext) OutputParameter(name string) (any, bool) {
	return lc.exec.OutputParameters.Get(name)
}
