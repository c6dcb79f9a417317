// Package registration reads the registration a plugin or activity type
// declares and checks it before it is used to validate an invocation.
package registration

import (
	"fmt"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
)

// Registrant is implemented by plugin types that declare what they support.
// Only the registration returned by the concrete type is considered.
type Registrant interface {
	Registration() entities.Registration
}

// AttributeKind identifies one of the four declarable kinds.
type AttributeKind string

const (
	KindMessage       AttributeKind = "message"
	KindExecutionMode AttributeKind = "execution_mode"
	KindStage         AttributeKind = "stage"
	KindPrimaryEntity AttributeKind = "primary_entity"
)

// Attribute is one declared kind and its allow-list rendered as strings.
type Attribute struct {
	Kind   AttributeKind
	Values []string
}

// Collection holds the registration read off a type. It never changes after
// Collect returns.
type Collection struct {
	typeName     string
	registration entities.Registration
	all          []Attribute
}

// Collect reads and validates the registration declared by r.
func Collect(r Registrant) (*Collection, error) {
	if r == nil {
		return nil, &errors.ArgumentError{Argument: "pluginType"}
	}

	typeName := fmt.Sprintf("%T", r)
	reg := r.Registration().Clone()

	if err := Validate(reg); err != nil {
		return nil, &errors.RegistrationError{Type: typeName, Err: err}
	}

	c := &Collection{typeName: typeName, registration: reg}

	if reg.Messages != nil {
		c.all = append(c.all, Attribute{Kind: KindMessage, Values: reg.Messages})
	}
	if reg.Modes != nil {
		c.all = append(c.all, Attribute{Kind: KindExecutionMode, Values: stringsOf(reg.Modes)})
	}
	if reg.Stages != nil {
		c.all = append(c.all, Attribute{Kind: KindStage, Values: stringsOf(reg.Stages)})
	}
	if reg.Entities != nil {
		c.all = append(c.all, Attribute{Kind: KindPrimaryEntity, Values: reg.Entities})
	}

	return c, nil
}

// TypeName is the Go type the registration was collected from.
func (c *Collection) TypeName() string { return c.typeName }

// All returns every declared kind.
func (c *Collection) All() []Attribute {
	out := make([]Attribute, len(c.all))
	copy(out, c.all)
	return out
}

// Empty reports whether nothing is declared.
func (c *Collection) Empty() bool { return len(c.all) == 0 }

// Messages returns the declared messages, nil if undeclared.
func (c *Collection) Messages() []string { return c.registration.Clone().Messages }

// Entities returns the declared primary entities, nil if undeclared.
func (c *Collection) Entities() []string { return c.registration.Clone().Entities }

// Stages returns the declared pipeline stages, nil if undeclared.
func (c *Collection) Stages() []entities.PipelineStage { return c.registration.Clone().Stages }

// Modes returns the declared execution modes, nil if undeclared.
func (c *Collection) Modes() []entities.ExecutionMode { return c.registration.Clone().Modes }

func stringsOf[T fmt.Stringer](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = v.String()
	}
	return out
}

// StaticRegistrant adapts a registration loaded at runtime (e.g. from a
// registration file) into a Registrant.
type StaticRegistrant struct {
	Name string
	Reg  entities.Registration
}

// Registration implements Registrant.
func (s StaticRegistrant) Registration() entities.Registration { return s.Reg }
