// Package testutil provides common assertions for plugin and activity tests
package testutil

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
)

// AssertInvalidExecution asserts that err ends the invocation and wraps a
// cause of type T, which is returned for further checks.
func AssertInvalidExecution[T error](t *testing.T, err error) T {
	t.Helper()

	require.Error(t, err)
	require.ErrorIs(t, err, errors.ErrInvalidPluginExecution)

	var target T
	require.True(t, stderrors.As(err, &target), "expected %T in chain, got: %v", target, err)
	return target
}

// AssertErrorDetail asserts the structured form of err.
func AssertErrorDetail(t *testing.T, err error, wantType, wantCode string) {
	t.Helper()

	detail := errors.ToErrorDetail(err)
	require.NotNil(t, detail)
	assert.Equal(t, wantType, detail.Type)
	if wantCode != "" {
		assert.Equal(t, wantCode, detail.Code)
	}
}

// AssertTraced asserts that some traced line contains substr.
func AssertTraced(t *testing.T, lines []string, substr string, msgAndArgs ...interface{}) {
	t.Helper()

	for _, l := range lines {
		if strings.Contains(l, substr) {
			return
		}
	}
	assert.Fail(t, "no trace line contains "+substr, msgAndArgs...)
}

// AssertTracedInOrder asserts that the given substrings appear in lines in
// that order, not necessarily adjacent.
func AssertTracedInOrder(t *testing.T, lines []string, substrs ...string) {
	t.Helper()

	next := 0
	for _, l := range lines {
		if next < len(substrs) && strings.Contains(l, substrs[next]) {
			next++
		}
	}
	assert.Equal(t, len(substrs), next, "trace lines out of order, matched %d of %v in:\n%s",
		next, substrs, strings.Join(lines, "\n"))
}

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// AssertMapContains asserts that a map contains all expected key-value pairs
func AssertMapContains(t *testing.T, expectedMap, actualMap map[string]interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	for key, expectedValue := range expectedMap {
		actualValue, ok := actualMap[key]
		assert.True(t, ok, "map should contain key %q", key)
		assert.Equal(t, expectedValue, actualValue, msgAndArgs...)
	}
}
