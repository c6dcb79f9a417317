package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// ExecutionMode is the synchronous/asynchronous mode a step runs in.
type ExecutionMode int

const (
	// Synchronous steps run inside the host pipeline.
	Synchronous ExecutionMode = 0
	// Asynchronous steps run later through the async service.
	Asynchronous ExecutionMode = 1
)

var executionModeNames = map[ExecutionMode]string{
	Synchronous:  "Synchronous",
	Asynchronous: "Asynchronous",
}

func (m ExecutionMode) String() string {
	if name, ok := executionModeNames[m]; ok {
		return name
	}
	return strconv.Itoa(int(m))
}

// Valid reports whether m is a known execution mode.
func (m ExecutionMode) Valid() bool {
	_, ok := executionModeNames[m]
	return ok
}

// MarshalText encodes the mode by name.
func (m ExecutionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts a mode name (case-insensitive) or its numeric value.
func (m *ExecutionMode) UnmarshalText(text []byte) error {
	parsed, err := ParseExecutionMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseExecutionMode parses a mode name or number.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	s = strings.TrimSpace(s)
	for mode, name := range executionModeNames {
		if strings.EqualFold(name, s) {
			return mode, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && ExecutionMode(n).Valid() {
		return ExecutionMode(n), nil
	}
	return 0, fmt.Errorf("unknown execution mode %q", s)
}

// PipelineStage is the point of the message pipeline a step is registered on.
type PipelineStage int

const (
	PreValidation PipelineStage = 10
	PreOperation  PipelineStage = 20
	MainOperation PipelineStage = 30
	PostOperation PipelineStage = 40
)

var pipelineStageNames = map[PipelineStage]string{
	PreValidation: "PreValidation",
	PreOperation:  "PreOperation",
	MainOperation: "MainOperation",
	PostOperation: "PostOperation",
}

func (s PipelineStage) String() string {
	if name, ok := pipelineStageNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// Valid reports whether s is a known pipeline stage.
func (s PipelineStage) Valid() bool {
	_, ok := pipelineStageNames[s]
	return ok
}

// MarshalText encodes the stage by name.
func (s PipelineStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts a stage name (case-insensitive) or its numeric value.
func (s *PipelineStage) UnmarshalText(text []byte) error {
	parsed, err := ParsePipelineStage(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParsePipelineStage parses a stage name or number.
func ParsePipelineStage(v string) (PipelineStage, error) {
	v = strings.TrimSpace(v)
	for stage, name := range pipelineStageNames {
		if strings.EqualFold(name, v) {
			return stage, nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil && PipelineStage(n).Valid() {
		return PipelineStage(n), nil
	}
	return 0, fmt.Errorf("unknown pipeline stage %q", v)
}

// TargetType classifies the "Target" input parameter of an invocation.
type TargetType int

const (
	TargetNone            TargetType = 0
	TargetEntity          TargetType = 1
	TargetEntityReference TargetType = 2
	TargetUnknown         TargetType = 4
)

func (t TargetType) String() string {
	switch t {
	case TargetNone:
		return "None"
	case TargetEntity:
		return "Entity"
	case TargetEntityReference:
		return "EntityReference"
	default:
		return "Unknown"
	}
}

// ImageType distinguishes pre and post entity images.
type ImageType int

const (
	PreImage ImageType = iota
	PostImage
)

func (t ImageType) String() string {
	if t == PostImage {
		return "PostImage"
	}
	return "PreImage"
}
