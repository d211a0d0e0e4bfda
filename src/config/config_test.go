package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	loader := NewLoaderWithFs(afero.NewMemMapFs())
	loader.ConfigPath = "/nonexistent/config.json"

	config, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", config.API.Model)
	assert.Equal(t, "info", config.Log.Level)
	assert.NotEmpty(t, config.Storage.ChatDBPath)
}

func TestLoadFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/graphpilot/config.json", []byte(`{
		"api": {"openai_key": "sk-test", "model": "gpt-4o-mini"},
		"graph": {"default_list_id": "list-1"}
	}`), 0o600))

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")

	loader := NewLoaderWithFs(fs)
	loader.ConfigPath = "/etc/graphpilot/config.json"

	config, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", config.API.OpenAIKey)
	assert.Equal(t, "gpt-4o-mini", config.API.Model)
	assert.Equal(t, "list-1", config.Graph.DefaultListID)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/graphpilot/config.json",
		[]byte(`{"api": {"openai_key": "sk-file"}}`), 0o600))

	t.Setenv("OPENAI_API_KEY", "sk-env")

	loader := NewLoaderWithFs(fs)
	loader.ConfigPath = "/etc/graphpilot/config.json"

	config, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", config.API.OpenAIKey)
}

func TestMissingKeys(t *testing.T) {
	config := defaultConfig()
	missing := MissingKeys(config)
	assert.Contains(t, missing, "OPENAI_API_KEY")
	assert.Contains(t, missing, "GRAPH_TOKEN")

	config.API.OpenAIKey = "sk-test"
	missing = MissingKeys(config)
	assert.NotContains(t, missing, "OPENAI_API_KEY")
	assert.Contains(t, missing, "GRAPH_TOKEN")

	config.Graph.Token = "token"
	assert.Empty(t, MissingKeys(config))
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	config := defaultConfig()
	config.API.OpenAIKey = "sk-test"
	assert.NoError(t, v.Validate(config))

	config.Log.Level = "loud"
	err := v.Validate(config)
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Field, "Log.Level")
}

func TestValidateRequiresKey(t *testing.T) {
	v := NewValidator()
	config := defaultConfig()
	assert.Error(t, v.Validate(config))
}
