package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFileJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "openapi-to-joi.json")
	data := `{
		"source": "./openapi.json",
		"output": "./schemas.ts",
		"prettierConfig": "./.prettierrc",
		"skipDescriptions": true
	}`
	require.NoError(t, os.WriteFile(tmpFile, []byte(data), 0644))

	cfg, err := LoadFromFile(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "./openapi.json", cfg.Source)
	assert.Equal(t, "./schemas.ts", cfg.Output)
	assert.Equal(t, "./.prettierrc", cfg.PrettierConfigPath)
	assert.True(t, cfg.SkipDescriptions)
	assert.False(t, cfg.SkipUnknowns)
	assert.Equal(t, DefaultTimeout.String(), cfg.Timeout)
}

func TestLoadFromFileYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "openapi-to-joi.yaml")
	data := `source: https://example.com/openapi.yaml
output: out/schemas.ts
skipUnknowns: true
stripHtml: true
timeout: 5s
`
	require.NoError(t, os.WriteFile(tmpFile, []byte(data), 0644))

	cfg, err := LoadFromFile(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/openapi.yaml", cfg.Source)
	assert.True(t, cfg.SkipUnknowns)
	assert.True(t, cfg.StripHTML)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte("{"), 0644))

	_, err := LoadFromFile(tmpFile)
	assert.Error(t, err)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected error
	}{
		{"missing source", Config{Output: "out.ts"}, ErrSourceRequired},
		{"missing output", Config{Source: "openapi.json"}, ErrOutputRequired},
		{"bad timeout", Config{Source: "openapi.json", Output: "out.ts", Timeout: "soon"}, ErrInvalidTimeout},
		{"negative timeout", Config{Source: "openapi.json", Output: "out.ts", Timeout: "-1s"}, ErrInvalidTimeout},
		{"valid", Config{Source: "openapi.json", Output: "out.ts"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
