// Package parser reads registration files.
package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
)

// YamlRegistrationParser implements RegistrationParser for YAML.
type YamlRegistrationParser struct{}

// NewYamlRegistrationParser creates a new YamlRegistrationParser.
func NewYamlRegistrationParser() ports.RegistrationParser {
	return &YamlRegistrationParser{}
}

// Parse unmarshals YAML bytes into a RegistrationFile. Stages and modes may be
// written by name ("PreOperation") or by value (20).
func (p *YamlRegistrationParser) Parse(data []byte) (*entities.RegistrationFile, error) {
	var file entities.RegistrationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse registration file: %w", err)
	}
	return &file, nil
}
