package plugin

import (
	"reflect"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
)

// InputParameter returns the named input parameter as T. def is returned when
// the key is absent, the host sent null, or the value is not a T.
func InputParameter[T any](c ContextReader, name string, def T) T {
	v, ok := c.ExecutionContext().InputParameters[name]
	if !ok || v == nil {
		return def
	}
	t, ok := v.(T)
	if !ok {
		return def
	}
	return t
}

// InputParameterAs returns the named input parameter as T. A missing or null
// parameter yields the zero value and found=false; a value of another type
// yields a TypeCoercionError.
func InputParameterAs[T any](c ContextReader, name string) (value T, found bool, err error) {
	v, ok := c.ExecutionContext().InputParameters[name]
	if !ok || v == nil {
		return value, false, nil
	}
	value, err = coerce[T](name, v)
	return value, err == nil, err
}

// SharedVariable returns the shared variable stored under key in the current
// context. A missing variable and a variable holding nil both yield the zero
// value of T and a nil error, so callers that must tell them apart read
// ExecutionContext().SharedVariables directly.
func SharedVariable[T any](c ContextReader, key string) (T, error) {
	var zero T
	v, ok := c.ExecutionContext().SharedVariables[key]
	if !ok || v == nil {
		return zero, nil
	}
	return coerce[T](key, v)
}

// SharedVariableRecursive walks the context and its parents and returns the
// first variable stored under key. The first hit decides: if it is not a T a
// TypeCoercionError is returned without looking further, and if it holds nil
// the zero value of T is returned with a nil error even when a parent has a
// value.
func SharedVariableRecursive[T any](c ContextReader, key string) (T, error) {
	var zero T
	for _, cur := range c.ExecutionContext().Chain() {
		v, ok := cur.SharedVariables[key]
		if !ok {
			continue
		}
		if v == nil {
			return zero, nil
		}
		return coerce[T](key, v)
	}
	return zero, nil
}

// SetSharedVariable stores a value visible to later steps of the same
// invocation chain.
func SetSharedVariable(c ContextReader, key string, value any) {
	exec := c.ExecutionContext()
	if exec.SharedVariables == nil {
		exec.SharedVariables = make(entities.ParameterCollection)
	}
	exec.SharedVariables[key] = value
}

func coerce[T any](key string, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, &errors.TypeCoercionError{
			Key:    key,
			Target: reflect.TypeFor[T]().String(),
			Actual: reflect.TypeOf(v).String(),
		}
	}
	return t, nil
}
