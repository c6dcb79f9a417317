// Package store persists registration files on disk.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/ports"
	"github.com/emerbrito/XrmUtils-PluginExtensions/infrastructure/parser"
)

// DefaultPath is the registration file read when no path is configured.
const DefaultPath = "registration.yaml"

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	path     string      // Path to the registration file
	dirPerm  os.FileMode // Permission for created directories
	filePerm os.FileMode // Permission for the registration file
	parser   ports.RegistrationParser
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		path:     DefaultPath,
		dirPerm:  0o755,
		filePerm: 0o644,
		parser:   parser.NewYamlRegistrationParser(),
	}
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithPath sets the path to the registration file.
func WithPath(path string) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.path = path
	}
}

// WithFilePermissions sets the file permissions for the registration file.
// Default is 0o644.
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions sets the permissions of directories created by Save.
// Default is 0o755.
func WithDirPermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.dirPerm = perm
	}
}

// WithParser replaces the YAML parser used by Load.
func WithParser(p ports.RegistrationParser) FileStoreOption {
	return func(c *fileStoreConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// FileStore provides file-based persistence for registration files.
type FileStore struct {
	config fileStoreConfig
}

// NewFileStore creates a new FileStore with the given options.
func NewFileStore(opts ...FileStoreOption) ports.RegistrationStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// Load reads and parses the registration file.
func (s *FileStore) Load() (*entities.RegistrationFile, error) {
	data, err := os.ReadFile(s.config.path)
	if os.IsNotExist(err) {
		return &entities.RegistrationFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registration file: %w", err)
	}
	return s.config.parser.Parse(data)
}

// Save writes the registration file. Stages and modes are written by name.
func (s *FileStore) Save(file *entities.RegistrationFile) error {
	if file == nil {
		return fmt.Errorf("registration file cannot be nil")
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal registration file: %w", err)
	}

	dir := filepath.Dir(s.config.path)
	if err := os.MkdirAll(dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("failed to create registration directory: %w", err)
	}

	if err := os.WriteFile(s.config.path, data, s.config.filePerm); err != nil {
		return fmt.Errorf("failed to write registration file: %w", err)
	}
	return nil
}

// Path returns the path to the backing file.
func (s *FileStore) Path() string {
	return s.config.path
}
