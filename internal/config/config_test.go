package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "strompris/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 8081, config.API.Port)
	assert.Equal(t, "strompriser.xlsx", config.Data.File)
	assert.Equal(t, 2014, config.Data.MinYear)
	assert.Equal(t, 2024, config.Data.MaxYear)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "other.csv")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "other.csv", config.Data.File)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.API.AllowedOrigins)
}

func TestLoadYAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 7000\ndata:\n  file: from-yaml.xlsx\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100") // env wins over file

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7100, config.Server.Port)
	assert.Equal(t, "from-yaml.xlsx", config.Data.File)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"inverted year bounds", map[string]string{"DATA_MIN_YEAR": "2025", "DATA_MAX_YEAR": "2014"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
		})
	}
}
