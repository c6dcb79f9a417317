package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
)

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registration.yaml")
	s := NewFileStore(WithPath(path))

	file := &entities.RegistrationFile{Steps: []entities.RegistrationStep{
		{
			Plugin:      "AccountNumberPlugin",
			Description: "Assigns account numbers.",
			Registration: entities.Registration{
				Messages: []string{"Create"},
				Entities: []string{"account"},
				Stages:   []entities.PipelineStage{entities.PreOperation},
				Modes:    []entities.ExecutionMode{entities.Synchronous},
			},
		},
	}}

	require.NoError(t, s.Save(file))
	assert.Equal(t, path, s.Path())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "PreOperation")
	assert.Contains(t, string(raw), "Synchronous")

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, file, loaded)
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(WithPath(filepath.Join(t.TempDir(), "absent.yaml")))

	file, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, file.Steps)
}

func TestFileStore_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registration.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: [\n"), 0o644))

	_, err := NewFileStore(WithPath(path)).Load()
	assert.ErrorContains(t, err, "failed to parse registration file")
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registration.yaml")
	s := NewFileStore(WithPath(path), WithFilePermissions(0o600), WithDirPermissions(0o700))

	require.NoError(t, s.Save(&entities.RegistrationFile{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Error(t, s.Save(nil))
}

func TestFileStore_Defaults(t *testing.T) {
	assert.Equal(t, DefaultPath, NewFileStore().Path())
}
