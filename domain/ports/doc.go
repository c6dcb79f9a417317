// Package ports defines the capabilities the CRM host hands to a plugin or a
// workflow activity. The host implements them; this module only calls through.
// The xrmtest package provides in-memory implementations for tests.
package ports
