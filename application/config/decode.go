package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

// Decode copies a parameter bag (typically the input parameters of a custom
// action) into target, a pointer to struct. Fields map through their json
// tags; numeric and string values are coerced where possible.
func Decode(params entities.ParameterCollection, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(map[string]any(params)); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	return nil
}
