package ports

import "github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"

// RegistrationParser parses raw registration file bytes.
type RegistrationParser interface {
	Parse(data []byte) (*entities.RegistrationFile, error)
}

// RegistrationStore provides persistence for registration files.
type RegistrationStore interface {
	// Load reads the registration file.
	// Returns an empty file (not error) if none exists.
	Load() (*entities.RegistrationFile, error)

	// Save writes the registration file.
	Save(file *entities.RegistrationFile) error

	// Path returns the location of the backing file (for user messaging).
	Path() string
}
