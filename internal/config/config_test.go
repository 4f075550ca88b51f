package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ADVISOR_PORT", "ADVISOR_PROVIDER", "ADVISOR_API_KEY", "ADVISOR_OLLAMA_URL",
		"ADVISOR_TEMPERATURE", "ADVISOR_RATE_LIMIT", "ADVISOR_REQUEST_TIMEOUT",
		"ADVISOR_OPENAI_MODEL", "ADVISOR_CREDENTIAL_NAME",
	} {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.InDelta(t, 0.4, cfg.Temperature, 1e-6)
	assert.Equal(t, "OPENAI_API_KEY", cfg.CredentialName)
	assert.Empty(t, cfg.Secrets)
	assert.Empty(t, cfg.OllamaURL)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, 65*time.Second, cfg.RequestTimeout)
}

func TestLoadFromYAML(t *testing.T) {
	clearEnv(t)

	path := writeYAML(t, `port: 9999
provider: gemini
temperature: 0.2
credential_name: MY_OPENAI_KEY
secrets:
  MY_OPENAI_KEY: "~/.secret/openai.json|blowfish://default"
openai_model: gpt-4o
gemini_model: gemini-2.5-flash
ollama_url: "http://jetson.local:11434"
llamacpp_url: "http://localhost:8080"
llamacpp_model: "qwen2.5-1.5b"
api_key: "my-secret-key"
rate_limit: 30
request_timeout: 2m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-6)
	assert.Equal(t, "MY_OPENAI_KEY", cfg.CredentialName)
	assert.Equal(t, "~/.secret/openai.json|blowfish://default", cfg.Secrets["MY_OPENAI_KEY"])
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "http://jetson.local:11434", cfg.OllamaURL)
	assert.Equal(t, "http://localhost:8080", cfg.LlamaCppURL)
	assert.Equal(t, "qwen2.5-1.5b", cfg.LlamaCppModel)
	assert.Equal(t, "my-secret-key", cfg.APIKey)
	assert.Equal(t, 30, cfg.RateLimit)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, "port: 9999\nollama_url: \"http://from-yaml:11434\"\n")

	t.Setenv("ADVISOR_PORT", "7777")
	t.Setenv("ADVISOR_OLLAMA_URL", "http://from-env:11434")
	t.Setenv("ADVISOR_PROVIDER", "ollama")
	t.Setenv("ADVISOR_TEMPERATURE", "0.9")
	t.Setenv("ADVISOR_API_KEY", "env-api-key")
	t.Setenv("ADVISOR_REQUEST_TIMEOUT", "30s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Port)
	assert.Equal(t, "http://from-env:11434", cfg.OllamaURL)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.InDelta(t, 0.9, cfg.Temperature, 1e-6)
	assert.Equal(t, "env-api-key", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "{{invalid"},
		{name: "unknown provider", yaml: "provider: watson\n"},
		{name: "ollama without url", yaml: "provider: ollama\n"},
		{name: "llamacpp without url", yaml: "provider: llamacpp\n"},
		{name: "temperature out of range", yaml: "temperature: 3\n"},
		{name: "zero rate limit", yaml: "rate_limit: 0\n"},
		{name: "bad port env", yaml: "port: 1\n", env: map[string]string{"ADVISOR_PORT": "abc"}},
		{name: "bad temperature env", yaml: "port: 1\n", env: map[string]string{"ADVISOR_TEMPERATURE": "warm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeYAML(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("ADVISOR_DOTENV_NEW", "")
	os.Unsetenv("ADVISOR_DOTENV_NEW")
	t.Setenv("ADVISOR_DOTENV_SET", "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ADVISOR_DOTENV_NEW=from-file\nADVISOR_DOTENV_SET=from-file\n"), 0644))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("ADVISOR_DOTENV_NEW"))
	assert.Equal(t, "from-process", os.Getenv("ADVISOR_DOTENV_SET"), ".env must not override the process environment")
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
