package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	names := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig(t).ValidateDeep(""))
}

func TestValidateDeep_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"url without scheme", func(c *Config) { c.Server.URL = "localhost:5001" }, "server.url"},
		{"url without host", func(c *Config) { c.Server.URL = "http://" }, "server.url"},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "solarized-neon" }, "tui.theme"},
		{"bad glob", func(c *Config) { c.Upload.Patterns = []string{"**/*.xlsx", "[bad"} }, "upload.patterns[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			assert.Contains(t, fieldNames(t, cfg.ValidateDeep("")), tt.field)
		})
	}
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "notadir")
	require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))

	cfg := validConfig(t)
	cfg.DataDir = tmpFile

	assert.Contains(t, fieldNames(t, cfg.ValidateDeep("")), "data_dir")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)
	assert.Contains(t, fieldNames(t, cfg.ValidateDeep(t.TempDir())), "config_file")
}

func TestAllowsUpload(t *testing.T) {
	cfg := validConfig(t)

	assert.True(t, cfg.AllowsUpload("questions.xlsx"))
	assert.True(t, cfg.AllowsUpload("/home/op/exports/questions.xlsx"))
	assert.False(t, cfg.AllowsUpload("questions.csv"))

	cfg.Upload.Patterns = []string{"uploads/*.xlsx"}
	assert.True(t, cfg.AllowsUpload("uploads/q.xlsx"))
	assert.False(t, cfg.AllowsUpload("other/q.xlsx"))
}
