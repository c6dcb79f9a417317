// Package entities provides the core domain types shared by plugins and workflow
// activities: records and references, the per-invocation execution context
// snapshot, pipeline enums and the registration descriptor a plugin declares.
//
// Types in this package carry no behaviour that depends on the CRM host. They
// are plain values handed over by the host (or by the xrmtest fakes).
package entities
