package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerbrito/XrmUtils-PluginExtensions/application/registration"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

const registrationYAML = `
steps:
  - plugin: accounts
    description: Normalizes account names
    registration:
      messages: [Create, Update]
      entities: [account]
      stages: [PreOperation, 40]
      modes: [synchronous]
  - plugin: contacts
    registration:
      messages: [Delete]
`

func TestYamlRegistrationParser_Parse(t *testing.T) {
	file, err := NewYamlRegistrationParser().Parse([]byte(registrationYAML))
	require.NoError(t, err)
	require.Len(t, file.Steps, 2)

	reg, ok := file.Lookup("accounts")
	require.True(t, ok)
	assert.Equal(t, []string{"Create", "Update"}, reg.Messages)
	assert.Equal(t, []string{"account"}, reg.Entities)
	assert.Equal(t, []entities.PipelineStage{entities.PreOperation, entities.PostOperation}, reg.Stages)
	assert.Equal(t, []entities.ExecutionMode{entities.Synchronous}, reg.Modes)

	contacts, ok := file.Lookup("contacts")
	require.True(t, ok)
	assert.Nil(t, contacts.Stages)

	_, ok = file.Lookup("missing")
	assert.False(t, ok)

	require.NoError(t, registration.ValidateFile(file))
}

func TestYamlRegistrationParser_UnknownStage(t *testing.T) {
	_, err := NewYamlRegistrationParser().Parse([]byte("steps:\n  - plugin: x\n    registration:\n      stages: [Later]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pipeline stage")
}

func TestYamlRegistrationParser_EmptyListFailsValidation(t *testing.T) {
	file, err := NewYamlRegistrationParser().Parse([]byte("steps:\n  - plugin: x\n    registration:\n      messages: []\n"))
	require.NoError(t, err)

	assert.Error(t, registration.ValidateFile(file))
}

func TestYamlRegistrationParser_Invalid(t *testing.T) {
	_, err := NewYamlRegistrationParser().Parse([]byte("steps: {"))
	assert.Error(t, err)
}
