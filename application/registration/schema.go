package registration

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

var (
	stageType = reflect.TypeOf(entities.PipelineStage(0))
	modeType  = reflect.TypeOf(entities.ExecutionMode(0))
)

// GenerateSchema renders the JSON schema (Draft 2020-12) of v. Pipeline stages
// and execution modes are described by name, the way they are written in
// registration files.
func GenerateSchema(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		Mapper:         enumMapper,
	}
	schema := reflector.Reflect(v)

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return out, nil
}

// Schema returns the JSON schema of a registration file.
func Schema() ([]byte, error) {
	return GenerateSchema(&entities.RegistrationFile{})
}

func enumMapper(t reflect.Type) *jsonschema.Schema {
	switch t {
	case stageType:
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{
				entities.PreValidation.String(),
				entities.PreOperation.String(),
				entities.MainOperation.String(),
				entities.PostOperation.String(),
			},
		}
	case modeType:
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{entities.Synchronous.String(), entities.Asynchronous.String()},
		}
	}
	return nil
}
