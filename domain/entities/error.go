package entities

import "strings"

// ErrorDetail describes a failed invocation step in a form that can be traced
// or handed back to the host. Type is one of "argument", "host", "validation",
// "type", "config", "panic" or "internal".
type ErrorDetail struct {
	Type    string         `json:"type"`
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	// Cause is the detail of the error this one wraps.
	Cause *ErrorDetail `json:"cause,omitempty"`

	// Stack is only set for recovered panics.
	Stack []byte `json:"stack,omitempty"`

	// NotFound marks a missing image or record.
	NotFound bool `json:"not_found,omitempty"`
}

// NewErrorDetail starts a detail of the given type.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{Type: errorType, Message: message}
}

// WithCode sets Code.
func (e *ErrorDetail) WithCode(code string) *ErrorDetail {
	e.Code = code
	return e
}

// WithDetail adds one entry to Details.
func (e *ErrorDetail) WithDetail(key string, value any) *ErrorDetail {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets Cause. A nil cause is ignored.
func (e *ErrorDetail) WithCause(cause *ErrorDetail) *ErrorDetail {
	if cause != nil {
		e.Cause = cause
	}
	return e
}

// WithStack sets Stack.
func (e *ErrorDetail) WithStack(stack []byte) *ErrorDetail {
	e.Stack = stack
	return e
}

// MarkNotFound sets NotFound.
func (e *ErrorDetail) MarkNotFound() *ErrorDetail {
	e.NotFound = true
	return e
}

// Error renders "type: message [code]: cause". The "internal" type is omitted.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	if e.Type != "" && e.Type != "internal" {
		b.WriteString(e.Type)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Code != "" {
		b.WriteString(" [")
		b.WriteString(e.Code)
		b.WriteByte(']')
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}
