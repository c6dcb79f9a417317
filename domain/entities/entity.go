package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// Entity is a CRM record: a logical name, an id and a bag of attribute values.
type Entity struct {
	// Attributes holds the field values keyed by attribute logical name.
	// A nil value represents an attribute explicitly set to null by the host.
	Attributes map[string]any `json:"attributes,omitempty"`

	// LogicalName is the entity logical name (e.g. "account").
	LogicalName string `json:"logical_name"`

	// ID is the record id. uuid.Nil for records not yet created.
	ID uuid.UUID `json:"id"`
}

// NewEntity creates an empty record of the given logical name.
func NewEntity(logicalName string, id uuid.UUID) *Entity {
	return &Entity{
		LogicalName: logicalName,
		ID:          id,
		Attributes:  make(map[string]any),
	}
}

// Contains reports whether the attribute is present, even if null.
func (e *Entity) Contains(attribute string) bool {
	if e == nil || e.Attributes == nil {
		return false
	}
	_, ok := e.Attributes[attribute]
	return ok
}

// Get returns the raw attribute value.
func (e *Entity) Get(attribute string) (any, bool) {
	if e == nil || e.Attributes == nil {
		return nil, false
	}
	v, ok := e.Attributes[attribute]
	return v, ok
}

// Set stores an attribute value, allocating the attribute bag on first use.
func (e *Entity) Set(attribute string, value any) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[attribute] = value
}

// ToEntityReference derives a reference pointing at this record.
func (e *Entity) ToEntityReference() *EntityReference {
	if e == nil {
		return nil
	}
	return &EntityReference{LogicalName: e.LogicalName, ID: e.ID}
}

func (e *Entity) String() string {
	if e == nil {
		return "<nil entity>"
	}
	return fmt.Sprintf("%s(%s)", e.LogicalName, e.ID)
}

// AttributeValue returns the attribute converted to T, or the zero value of T
// when the attribute is missing, null or of another type.
func AttributeValue[T any](e *Entity, attribute string) T {
	var zero T
	v, ok := e.Get(attribute)
	if !ok || v == nil {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		return zero
	}
	return t
}

// EntityReference identifies a record without carrying its attributes.
type EntityReference struct {
	LogicalName string    `json:"logical_name"`
	Name        string    `json:"name,omitempty"`
	ID          uuid.UUID `json:"id"`
}

// NewEntityReference creates a reference to the record.
func NewEntityReference(logicalName string, id uuid.UUID) *EntityReference {
	return &EntityReference{LogicalName: logicalName, ID: id}
}

func (r *EntityReference) String() string {
	if r == nil {
		return "<nil reference>"
	}
	return fmt.Sprintf("%s(%s)", r.LogicalName, r.ID)
}

// OptionSetValue is the value of a picklist attribute.
type OptionSetValue struct {
	Value int `json:"value"`
}

// NewOptionSetValue wraps an option value.
func NewOptionSetValue(v int) *OptionSetValue {
	return &OptionSetValue{Value: v}
}
