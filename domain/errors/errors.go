// Package errors provides the error taxonomy used by plugin and workflow contexts.
// All error types support unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

// ErrInvalidPluginExecution marks a failure that ends the invocation. The host
// surfaces it to the user and rolls back the transaction.
var ErrInvalidPluginExecution = stdErrors.New("invalid plugin execution")

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can describe themselves as
// a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return entities.NewErrorDetail("internal", err.Error())
}

// ArgumentError reports a required argument that was empty or missing.
type ArgumentError struct {
	Argument string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("value cannot be null or empty. Parameter name: %s", e.Argument)
}

// ToErrorDetail implements DetailedError.
func (e *ArgumentError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("argument", e.Error()).WithCode(e.Argument)
}

// HostContractError reports a host service that could not be obtained.
type HostContractError struct {
	Err     error
	Service string
}

func (e *HostContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to retrieve %s: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("failed to retrieve %s", e.Service)
}

func (e *HostContractError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *HostContractError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("host", "failed to retrieve "+e.Service).
		WithCode(e.Service).
		WithCause(ToErrorDetail(e.Err))
}

// Dimensions checked by registration validation.
const (
	DimensionMessage       = "message"
	DimensionPrimaryEntity = "primary entity"
	DimensionStage         = "pipeline stage"
	DimensionExecutionMode = "execution mode"
)

// UnsupportedError reports a current invocation value outside the allowed set.
type UnsupportedError struct {
	Dimension string
	Actual    string
	Allowed   []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s '%s' is not supported. Supported values: %s",
		e.Dimension, e.Actual, strings.Join(e.Allowed, ", "))
}

// ToErrorDetail implements DetailedError.
func (e *UnsupportedError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("validation", e.Error()).
		WithCode(e.Dimension).
		WithDetail("actual", e.Actual).
		WithDetail("allowed", e.Allowed)
}

// ImageNotFoundError reports a missing pre or post image.
type ImageNotFoundError struct {
	Name      string
	ImageType entities.ImageType
}

func (e *ImageNotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.ImageType, e.Name)
}

// ToErrorDetail implements DetailedError.
func (e *ImageNotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("validation", e.Error()).
		WithCode("image").
		WithDetail("name", e.Name).
		MarkNotFound()
}

// TypeCoercionError reports a parameter whose value is not of the requested type.
type TypeCoercionError struct {
	Key    string
	Target string
	Actual string
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("unable to cast '%s' to %s (value is %s)", e.Key, e.Target, e.Actual)
}

// ToErrorDetail implements DetailedError.
func (e *TypeCoercionError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("type", e.Error()).
		WithCode(e.Key).
		WithDetail("target", e.Target).
		WithDetail("actual", e.Actual)
}

// RegistrationError reports a registration descriptor that is itself invalid.
type RegistrationError struct {
	Err  error
	Type string
}

func (e *RegistrationError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("invalid registration for %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("invalid registration: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *RegistrationError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("config", "invalid registration").
		WithCode(e.Type).
		WithCause(ToErrorDetail(e.Err))
}

// PanicError carries a panic recovered from plugin code.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("plugin panicked: %v", e.Value)
}

// ToErrorDetail implements DetailedError.
func (e *PanicError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("panic", e.Error()).WithStack(e.Stack)
}

// InvalidExecution wraps err so that it matches ErrInvalidPluginExecution
// while keeping the original error reachable through errors.As.
func InvalidExecution(err error) error {
	if err == nil || stdErrors.Is(err, ErrInvalidPluginExecution) {
		return err
	}
	return &invalidExecution{err: err}
}

type invalidExecution struct {
	err error
}

func (e *invalidExecution) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidPluginExecution, e.err)
}

func (e *invalidExecution) Unwrap() []error {
	return []error{ErrInvalidPluginExecution, e.err}
}
