package xrmtest

import (
	"context"
	"reflect"
	"testing"

	"github.com/emerbrito/XrmUtils-PluginExtensions/application/plugin"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

// TestCase defines one invocation of a plugin.
type TestCase struct {
	Name string
	// Context builds the invocation. NewContext() is used when nil.
	Context *ContextBuilder
	// Seed is stored in the organization service before the plugin runs.
	Seed     []*entities.Entity
	Options  []plugin.Option
	Validate func(t *testing.T, r *Result)
}

// Result is what an invocation left behind.
type Result struct {
	Err       error
	Execution *entities.ExecutionContext
	Provider  *ServiceProvider
}

// RunPluginTests runs each test case against p on a fresh in-memory host.
func RunPluginTests(t *testing.T, p plugin.Plugin, tests []TestCase) {
	t.Helper()

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			b := tc.Context
			if b == nil {
				b = NewContext()
			}
			exec := b.Build()

			sp := NewServiceProvider(exec)
			sp.Store().Seed(tc.Seed...)

			err := plugin.Run(context.Background(), sp, p, tc.Options...)

			if tc.Validate != nil {
				tc.Validate(t, &Result{Err: err, Execution: exec, Provider: sp})
			}
		})
	}
}

// AssertSuccess asserts the invocation succeeded.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if r.Err != nil {
		t.Errorf("expected success, got: %v", r.Err)
	}
}

// AssertFailure asserts the invocation failed.
func AssertFailure(t *testing.T, r *Result) {
	t.Helper()
	if r.Err == nil {
		t.Errorf("expected failure, got success")
	}
}

// AssertOutputParameter asserts an output parameter matches expected.
func AssertOutputParameter(t *testing.T, r *Result, key string, expected any) {
	t.Helper()
	assertParameter(t, "output parameter", r.Execution.OutputParameters, key, expected)
}

// AssertSharedVariable asserts a shared variable matches expected.
func AssertSharedVariable(t *testing.T, r *Result, key string, expected any) {
	t.Helper()
	assertParameter(t, "shared variable", r.Execution.SharedVariables, key, expected)
}

func assertParameter(t *testing.T, kind string, params entities.ParameterCollection, key string, expected any) {
	t.Helper()
	val, ok := params[key]
	if !ok {
		t.Errorf("missing %s %q", kind, key)
		return
	}

	// Numbers compare by value so int and float64 literals both work.
	if expectedNum, ok := toFloat64(expected); ok {
		if actualNum, ok := toFloat64(val); ok {
			if expectedNum != actualNum {
				t.Errorf("%s %q: expected %v, got %v", kind, key, expected, val)
			}
			return
		}
	}

	if !reflect.DeepEqual(val, expected) {
		t.Errorf("%s %q: expected %v, got %v", kind, key, expected, val)
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
