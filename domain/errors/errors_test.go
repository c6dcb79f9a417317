package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

func TestArgumentError(t *testing.T) {
	err := &ArgumentError{Argument: "supportedMessages"}

	assert.Equal(t, "value cannot be null or empty. Parameter name: supportedMessages", err.Error())

	detail := err.ToErrorDetail()
	assert.Equal(t, "argument", detail.Type)
	assert.Equal(t, "supportedMessages", detail.Code)
}

func TestHostContractError(t *testing.T) {
	err := &HostContractError{Service: "tracing service"}
	assert.Equal(t, "failed to retrieve tracing service", err.Error())

	cause := fmt.Errorf("factory offline")
	wrapped := &HostContractError{Service: "organization service factory", Err: cause}
	assert.Equal(t, "failed to retrieve organization service factory: factory offline", wrapped.Error())
	assert.True(t, errors.Is(wrapped, cause))

	detail := wrapped.ToErrorDetail()
	assert.Equal(t, "host", detail.Type)
	assert.Equal(t, "failed to retrieve organization service factory", detail.Message)
	require.NotNil(t, detail.Cause)
	assert.Equal(t, "factory offline", detail.Cause.Message)
	assert.Equal(t, "host: failed to retrieve organization service factory [organization service factory]: factory offline", detail.Error())

	assert.Nil(t, err.ToErrorDetail().Cause)
}

func TestUnsupportedError(t *testing.T) {
	err := &UnsupportedError{
		Dimension: DimensionStage,
		Actual:    "PostOperation",
		Allowed:   []string{"PreOperation"},
	}

	assert.Equal(t, "pipeline stage 'PostOperation' is not supported. Supported values: PreOperation", err.Error())

	detail := err.ToErrorDetail()
	assert.Equal(t, "validation", detail.Type)
	assert.Equal(t, DimensionStage, detail.Code)
	assert.Equal(t, "PostOperation", detail.Details["actual"])
	assert.Equal(t, []string{"PreOperation"}, detail.Details["allowed"])
}

func TestImageNotFoundError(t *testing.T) {
	err := &ImageNotFoundError{Name: "preimage", ImageType: entities.PreImage}

	assert.Equal(t, "PreImage 'preimage' not found", err.Error())
	detail := err.ToErrorDetail()
	assert.True(t, detail.NotFound)
	assert.Equal(t, "preimage", detail.Details["name"])
}

func TestTypeCoercionError(t *testing.T) {
	err := &TypeCoercionError{Key: "count", Target: "int", Actual: "string"}

	assert.Equal(t, "unable to cast 'count' to int (value is string)", err.Error())
	detail := err.ToErrorDetail()
	assert.Equal(t, "type", detail.Type)
	assert.Equal(t, "int", detail.Details["target"])
}

func TestRegistrationError(t *testing.T) {
	cause := fmt.Errorf("messages must not be empty")
	err := &RegistrationError{Type: "*main.AccountPlugin", Err: cause}

	assert.Equal(t, "invalid registration for *main.AccountPlugin: messages must not be empty", err.Error())
	assert.True(t, errors.Is(err, cause))

	detail := err.ToErrorDetail()
	assert.Equal(t, "config", detail.Type)
	assert.Equal(t, "*main.AccountPlugin", detail.Code)
	require.NotNil(t, detail.Cause)
	assert.Equal(t, "internal", detail.Cause.Type)
	assert.Equal(t, "config: invalid registration [*main.AccountPlugin]: messages must not be empty", detail.Error())
}

func TestInvalidExecution(t *testing.T) {
	cause := &UnsupportedError{Dimension: DimensionMessage, Actual: "Delete", Allowed: []string{"Create"}}
	err := InvalidExecution(cause)

	assert.True(t, errors.Is(err, ErrInvalidPluginExecution))

	var unsupported *UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "Delete", unsupported.Actual)

	// Wrapping twice does not nest.
	assert.Same(t, err, InvalidExecution(err))
	assert.Nil(t, InvalidExecution(nil))
}

func TestToErrorDetail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
	}{
		{name: "nil", err: nil},
		{name: "argument", err: &ArgumentError{Argument: "x"}, wantType: "argument"},
		{name: "host", err: &HostContractError{Service: "workflow context"}, wantType: "host"},
		{name: "panic", err: &PanicError{Value: "boom"}, wantType: "panic"},
		{name: "invalid execution", err: InvalidExecution(&ArgumentError{Argument: "plugin"}), wantType: "argument"},
		{name: "wrapped", err: fmt.Errorf("outer: %w", &TypeCoercionError{Key: "k"}), wantType: "type"},
		{name: "detail passthrough", err: entities.NewErrorDetail("custom", "msg"), wantType: "custom"},
		{name: "generic", err: errors.New("plain"), wantType: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := ToErrorDetail(tt.err)
			if tt.err == nil {
				assert.Nil(t, detail)
				return
			}
			require.NotNil(t, detail)
			assert.Equal(t, tt.wantType, detail.Type)
		})
	}
}
