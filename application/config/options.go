// Package config provides runner options and decoding of parameter bags into
// typed structs.
package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Options tunes how plugin and activity entry points run.
type Options struct {
	// ValidateRegistration runs ValidatePluginRegistration before Execute.
	ValidateRegistration bool `default:"true" yaml:"validate_registration" json:"validate_registration"`

	// TraceTimings traces how long the derived Execute took.
	TraceTimings bool `default:"true" yaml:"trace_timings" json:"trace_timings"`

	// RecoverPanics converts a panic in derived code into an error.
	RecoverPanics bool `default:"true" yaml:"recover_panics" json:"recover_panics"`

	// UserFlagPrefix is prepended to the user id when caching the
	// system/non-interactive user check in shared variables.
	UserFlagPrefix string `default:"" yaml:"user_flag_prefix" json:"user_flag_prefix" validate:"max=64"`
}

// DefaultOptions returns Options with every default applied.
func DefaultOptions() Options {
	var o Options
	// defaults.Set only fails for non-pointer or malformed tags.
	if err := defaults.Set(&o); err != nil {
		panic(fmt.Sprintf("config: invalid option defaults: %v", err))
	}
	return o
}

// Validate checks option values.
func Validate(o Options) error {
	if err := validate.Struct(o); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed validation (rule: %s)", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("options validation failed: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("options validation failed: %w", err)
	}
	return nil
}

// LoadOptions reads options from YAML. Keys absent from data keep their
// default value.
func LoadOptions(data []byte) (Options, error) {
	o := DefaultOptions()
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := Validate(o); err != nil {
		return Options{}, err
	}
	return o, nil
}
