package registration_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerbrito/XrmUtils-PluginExtensions/application/registration"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	sdkerrors "github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
)

type accountPlugin struct{}

func (accountPlugin) Registration() entities.Registration {
	return entities.Registration{
		Messages: []string{"Create", "Update"},
		Entities: []string{"account", "contact"},
		Stages:   []entities.PipelineStage{entities.PreOperation},
		Modes:    []entities.ExecutionMode{entities.Synchronous},
	}
}

type undeclaredPlugin struct{}

func (undeclaredPlugin) Registration() entities.Registration { return entities.Registration{} }

func TestCollect_AllKinds(t *testing.T) {
	c, err := registration.Collect(accountPlugin{})
	require.NoError(t, err)

	assert.False(t, c.Empty())
	assert.Equal(t, "registration_test.accountPlugin", c.TypeName())
	assert.Equal(t, []string{"Create", "Update"}, c.Messages())
	assert.Equal(t, []string{"account", "contact"}, c.Entities())
	assert.Equal(t, []entities.PipelineStage{entities.PreOperation}, c.Stages())
	assert.Equal(t, []entities.ExecutionMode{entities.Synchronous}, c.Modes())

	all := c.All()
	require.Len(t, all, 4)
	assert.Equal(t, registration.KindMessage, all[0].Kind)
	assert.Equal(t, registration.KindExecutionMode, all[1].Kind)
	assert.Equal(t, []string{"Synchronous"}, all[1].Values)
	assert.Equal(t, registration.KindStage, all[2].Kind)
	assert.Equal(t, []string{"PreOperation"}, all[2].Values)
	assert.Equal(t, registration.KindPrimaryEntity, all[3].Kind)
}

func TestCollect_Undeclared(t *testing.T) {
	c, err := registration.Collect(undeclaredPlugin{})
	require.NoError(t, err)

	assert.True(t, c.Empty())
	assert.Empty(t, c.All())
	assert.Nil(t, c.Messages())
	assert.Nil(t, c.Stages())
}

func TestCollect_Nil(t *testing.T) {
	_, err := registration.Collect(nil)

	var argErr *sdkerrors.ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "pluginType", argErr.Argument)
}

func TestCollect_Immutable(t *testing.T) {
	c, err := registration.Collect(accountPlugin{})
	require.NoError(t, err)

	msgs := c.Messages()
	msgs[0] = "Delete"

	assert.Equal(t, []string{"Create", "Update"}, c.Messages())
}

func TestCollect_InvalidRegistration(t *testing.T) {
	tests := []struct {
		name string
		reg  entities.Registration
	}{
		{name: "empty messages", reg: entities.Registration{Messages: []string{}}},
		{name: "blank entity", reg: entities.Registration{Entities: []string{""}}},
		{name: "unknown stage", reg: entities.Registration{Stages: []entities.PipelineStage{15}}},
		{name: "unknown mode", reg: entities.Registration{Modes: []entities.ExecutionMode{7}}},
		{name: "empty stages", reg: entities.Registration{Stages: []entities.PipelineStage{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registration.Collect(registration.StaticRegistrant{Reg: tt.reg})

			var regErr *sdkerrors.RegistrationError
			require.True(t, errors.As(err, &regErr), "got %v", err)
		})
	}
}

func TestValidateFile(t *testing.T) {
	file := &entities.RegistrationFile{Steps: []entities.RegistrationStep{
		{Plugin: "accounts", Registration: entities.Registration{Messages: []string{"Create"}}},
	}}
	require.NoError(t, registration.ValidateFile(file))

	file.Steps = append(file.Steps, entities.RegistrationStep{Registration: entities.Registration{}})
	assert.Error(t, registration.ValidateFile(file))

	assert.Error(t, registration.ValidateFile(nil))
}

func TestSchema(t *testing.T) {
	raw, err := registration.Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, string(raw), "PreOperation")
	assert.Contains(t, string(raw), "Asynchronous")
	assert.Contains(t, doc, "properties")
}
