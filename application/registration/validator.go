package registration

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

// validate is a package-level singleton; building a validator is expensive.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a registration: declared lists must be non-empty, messages
// and entities non-blank, stages and modes known values.
func Validate(reg entities.Registration) error {
	return formatValidation(validate.Struct(reg))
}

// ValidateFile checks every step of a registration file.
func ValidateFile(file *entities.RegistrationFile) error {
	if file == nil {
		return fmt.Errorf("registration file is nil")
	}
	return formatValidation(validate.Struct(file))
}

func formatValidation(err error) error {
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("registration validation failed: %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed validation (rule: %s)",
			fieldErr.Namespace(), fieldErr.Tag()))
	}
	return fmt.Errorf("registration validation failed: %s", strings.Join(msgs, "; "))
}
