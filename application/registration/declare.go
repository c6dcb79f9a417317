package registration

import (
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
)

// NewMessages declares the messages a plugin supports. The input is copied.
func NewMessages(messages ...string) ([]string, error) {
	return declare("messages", messages)
}

// NewEntities declares the primary entities a plugin supports. The input is copied.
func NewEntities(entityNames ...string) ([]string, error) {
	return declare("entities", entityNames)
}

// NewStages declares the pipeline stages a plugin supports. The input is copied.
func NewStages(stages ...entities.PipelineStage) ([]entities.PipelineStage, error) {
	return declare("stages", stages)
}

// NewModes declares the execution modes a plugin supports. The input is copied.
func NewModes(modes ...entities.ExecutionMode) ([]entities.ExecutionMode, error) {
	return declare("modes", modes)
}

// MustDeclare panics if err is not nil. It is meant for package level
// declarations built from literals.
func MustDeclare[T any](values []T, err error) []T {
	if err != nil {
		panic(err)
	}
	return values
}

func declare[T any](argument string, values []T) ([]T, error) {
	if len(values) == 0 {
		return nil, &errors.ArgumentError{Argument: argument}
	}
	out := make([]T, len(values))
	copy(out, values)
	return out, nil
}
