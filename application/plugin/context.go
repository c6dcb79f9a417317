// Package plugin wraps the execution context the CRM host hands to plugins and
// custom workflow activities. LocalPluginContext and LocalWorkflowContext expose
// typed accessors for targets, images and parameters, and validate that an
// invocation matches the registration a plugin declares.
package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
	sdklog "github.com/emerbrito/XrmUtils-PluginExtensions/log"
)

// Known systemuser access modes:
//
//	0 : Read-Write
//	1 : Administrative
//	2 : Read
//	3 : Support User
//	4 : Non-interactive
//	5 : Delegated Admin
const (
	AccessModeReadWrite      = 0
	AccessModeAdministrative = 1
	AccessModeRead           = 2
	AccessModeSupportUser    = 3
	AccessModeNonInteractive = 4
	AccessModeDelegatedAdmin = 5
)

// Internals is the bundle of host services a context is built from.
type Internals struct {
	Execution                 *entities.ExecutionContext
	OrganizationService       ports.OrganizationService
	SystemOrganizationService ports.OrganizationService
	Tracer                    ports.TracingService
}

// ContextReader is implemented by both local contexts. Generic accessors such
// as InputParameter and SharedVariable accept it.
type ContextReader interface {
	ExecutionContext() *entities.ExecutionContext
}

// Context holds the accessors shared by plugin and workflow contexts.
type Context struct {
	exec      *entities.ExecutionContext
	org       ports.OrganizationService
	systemOrg ports.OrganizationService
	tracer    ports.TracingService
	logger    *slog.Logger

	userFlagPrefix string
}

func newContext(in Internals, userFlagPrefix string) Context {
	in.Tracer.Trace("Entering Context")

	c := Context{
		exec:           in.Execution,
		org:            in.OrganizationService,
		systemOrg:      in.SystemOrganizationService,
		tracer:         in.Tracer,
		logger:         slog.New(sdklog.NewHandler(in.Tracer, sdklog.WithLevel(slog.LevelDebug))),
		userFlagPrefix: userFlagPrefix,
	}

	in.Tracer.Trace("Initialization complete Context")
	return c
}

// ExecutionContext returns the raw execution context of the invocation.
func (c *Context) ExecutionContext() *entities.ExecutionContext { return c.exec }

// OrganizationService acts on behalf of the calling user.
func (c *Context) OrganizationService() ports.OrganizationService { return c.org }

// SystemOrganizationService acts with SYSTEM privileges. Nil on the workflow path.
func (c *Context) SystemOrganizationService() ports.OrganizationService { return c.systemOrg }

// Tracer returns the (possibly decorated) tracing service.
func (c *Context) Tracer() ports.TracingService { return c.tracer }

// Logger returns a structured logger writing to the tracing service.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Message returns the current pipeline message, or "" if the host sent none.
func (c *Context) Message() string {
	if strings.TrimSpace(c.exec.MessageName) == "" {
		return ""
	}
	return c.exec.MessageName
}

// Mode returns the current execution mode.
func (c *Context) Mode() entities.ExecutionMode { return c.exec.Mode }

// PrimaryEntityName returns the logical name of the entity being processed.
func (c *Context) PrimaryEntityName() string { return c.exec.PrimaryEntityName }

// PrimaryEntityID returns the id of the record being processed.
func (c *Context) PrimaryEntityID() uuid.UUID { return c.exec.PrimaryEntityID }

// TargetType classifies the "Target" input parameter.
func (c *Context) TargetType() entities.TargetType {
	v, ok := c.exec.InputParameters[entities.TargetParameter]
	if !ok {
		return entities.TargetNone
	}
	switch v.(type) {
	case *entities.Entity, entities.Entity:
		return entities.TargetEntity
	case *entities.EntityReference, entities.EntityReference:
		return entities.TargetEntityReference
	default:
		return entities.TargetUnknown
	}
}

// TargetEntity returns the target record, or nil unless the target is an entity.
// A target held by value is replaced with a pointer in the input parameters so
// changes made through the result reach the host.
func (c *Context) TargetEntity() *entities.Entity {
	switch v := c.exec.InputParameters[entities.TargetParameter].(type) {
	case *entities.Entity:
		return v
	case entities.Entity:
		target := &v
		c.exec.InputParameters[entities.TargetParameter] = target
		return target
	}
	return nil
}

// TargetReference returns the target reference. An entity target is converted;
// with no usable target a reference is built from the primary entity name and
// id. Returns nil when none of these are available.
func (c *Context) TargetReference() *entities.EntityReference {
	switch v := c.exec.InputParameters[entities.TargetParameter].(type) {
	case *entities.EntityReference:
		return v
	case entities.EntityReference:
		return &v
	case *entities.Entity:
		return v.ToEntityReference()
	case entities.Entity:
		return v.ToEntityReference()
	}
	if strings.TrimSpace(c.exec.PrimaryEntityName) != "" {
		return entities.NewEntityReference(c.exec.PrimaryEntityName, c.exec.PrimaryEntityID)
	}
	return nil
}

// PreImage returns the named pre image. When the image is missing it returns
// nil, or an ImageNotFoundError if throwIfNull is set.
func (c *Context) PreImage(name string, throwIfNull bool) (*entities.Entity, error) {
	return c.image(name, entities.PreImage, throwIfNull)
}

// PostImage returns the named post image. When the image is missing it returns
// nil, or an ImageNotFoundError if throwIfNull is set.
func (c *Context) PostImage(name string, throwIfNull bool) (*entities.Entity, error) {
	return c.image(name, entities.PostImage, throwIfNull)
}

func (c *Context) image(name string, imageType entities.ImageType, throwIfNull bool) (*entities.Entity, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &errors.ArgumentError{Argument: "imageName"}
	}

	images := c.exec.PreEntityImages
	if imageType == entities.PostImage {
		images = c.exec.PostEntityImages
	}

	if images.Contains(name) {
		return images[name], nil
	}
	if throwIfNull {
		return nil, &errors.ImageNotFoundError{Name: name, ImageType: imageType}
	}
	return nil, nil
}

// Trace writes to the tracing service. Blank formats are ignored.
func (c *Context) Trace(format string, args ...any) {
	if strings.TrimSpace(format) == "" || c.tracer == nil {
		return
	}
	c.tracer.Trace(format, args...)
}

// IsSupportedEntity reports whether the primary entity is one of supported
// (case-insensitive).
func (c *Context) IsSupportedEntity(supported ...string) (bool, error) {
	if len(supported) == 0 {
		return false, &errors.ArgumentError{Argument: "supportedEntities"}
	}
	return containsFold(supported, c.exec.PrimaryEntityName), nil
}

// AssertSupportedEntity fails with an UnsupportedError when the primary entity
// is not one of supported.
func (c *Context) AssertSupportedEntity(supported ...string) error {
	ok, err := c.IsSupportedEntity(supported...)
	if err != nil {
		return err
	}
	if !ok {
		return &errors.UnsupportedError{
			Dimension: errors.DimensionPrimaryEntity,
			Actual:    c.exec.PrimaryEntityName,
			Allowed:   supported,
		}
	}
	return nil
}

// IsSupportedMessage reports whether the current message is one of supported
// (case-insensitive).
func (c *Context) IsSupportedMessage(supported ...string) (bool, error) {
	if len(supported) == 0 {
		return false, &errors.ArgumentError{Argument: "supportedMessages"}
	}
	return containsFold(supported, c.exec.MessageName), nil
}

// AssertSupportedMessage fails with an UnsupportedError when the current
// message is not one of supported.
func (c *Context) AssertSupportedMessage(supported ...string) error {
	ok, err := c.IsSupportedMessage(supported...)
	if err != nil {
		return err
	}
	if !ok {
		return &errors.UnsupportedError{
			Dimension: errors.DimensionMessage,
			Actual:    c.exec.MessageName,
			Allowed:   supported,
		}
	}
	return nil
}

// IsSupportedExecutionMode reports whether the current mode is one of supported.
func (c *Context) IsSupportedExecutionMode(supported ...entities.ExecutionMode) (bool, error) {
	if len(supported) == 0 {
		return false, &errors.ArgumentError{Argument: "supportedModes"}
	}
	return slices.Contains(supported, c.exec.Mode), nil
}

// AssertSupportedExecutionMode fails with an UnsupportedError when the current
// mode is not one of supported.
func (c *Context) AssertSupportedExecutionMode(supported ...entities.ExecutionMode) error {
	ok, err := c.IsSupportedExecutionMode(supported...)
	if err != nil {
		return err
	}
	if !ok {
		return &errors.UnsupportedError{
			Dimension: errors.DimensionExecutionMode,
			Actual:    c.exec.Mode.String(),
			Allowed:   stringsOf(supported),
		}
	}
	return nil
}

// IsSystemOrNonInteractiveUser reports whether the user the invocation runs as
// is a non-interactive, delegated admin or disabled user (SYSTEM and
// INTEGRATION are disabled reserved users).
//
// The answer is cached in the shared variables under the user id, so the
// systemuser record is read at most once per invocation chain.
func (c *Context) IsSystemOrNonInteractiveUser(ctx context.Context) (bool, error) {
	uid := c.exec.UserID
	key := c.userFlagPrefix + uid.String()

	for _, cur := range c.exec.Chain() {
		if v, ok := cur.SharedVariables[key]; ok {
			if flag, ok := v.(bool); ok {
				return flag, nil
			}
		}
	}

	if c.org == nil {
		return false, &errors.HostContractError{Service: "organization service"}
	}

	user, err := c.org.Retrieve(ctx, "systemuser", uid, "accessmode", "isdisabled")
	if err != nil {
		return false, fmt.Errorf("failed to retrieve systemuser %s: %w", uid, err)
	}

	accessMode := optionValue(user, "accessmode")
	disabled := entities.AttributeValue[bool](user, "isdisabled")

	flag := accessMode == AccessModeNonInteractive || accessMode == AccessModeDelegatedAdmin || disabled

	if c.exec.SharedVariables == nil {
		c.exec.SharedVariables = make(entities.ParameterCollection)
	}
	c.exec.SharedVariables[key] = flag

	return flag, nil
}

// ParentContext searches the parent chain for the first context whose primary
// entity is entityName. Only the direct parent is inspected unless recursive.
func (c *Context) ParentContext(entityName string, recursive bool) *entities.ExecutionContext {
	for parent := c.exec.Parent; parent != nil; parent = parent.Parent {
		if parent.PrimaryEntityName == entityName {
			return parent
		}
		if !recursive {
			return nil
		}
	}
	return nil
}

func optionValue(e *entities.Entity, attribute string) int {
	v, _ := e.Get(attribute)
	switch o := v.(type) {
	case *entities.OptionSetValue:
		if o != nil {
			return o.Value
		}
	case entities.OptionSetValue:
		return o.Value
	case int:
		return o
	}
	return AccessModeReadWrite
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func stringsOf[T fmt.Stringer](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = v.String()
	}
	return out
}
