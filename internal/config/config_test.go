package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the environment variables Load reads and points HOME at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, alias := range envAliases {
		t.Setenv(alias, "")
	}
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, llm.ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, llm.DefaultOpenRouterModel, cfg.LLM.Model)
	assert.Equal(t, 1500, cfg.LLM.MaxTokens)
	assert.Equal(t, 3000, cfg.LLM.MarkdownMaxTokens)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, ".resume-builder"), cfg.Session.StoreDir)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, DefaultJWTExpirationHours, cfg.Auth.ExpirationHours)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `{
		"server": {"port": "9090", "shutdown_timeout": "5s"},
		"llm": {"provider": "gemini", "model": "gemini-2.5-pro", "temperature": 0.2},
		"log": {"level": "debug", "format": "json"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 1500, cfg.LLM.MaxTokens)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-alias")
	t.Setenv("PORT", "7000")
	t.Setenv("RESUME_BUILDER_LLM_MODEL", "openai/gpt-4o-mini")
	t.Setenv("RESUME_BUILDER_AUTH_JWT_SECRET", "0123456789abcdef0123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-alias", cfg.OpenRouterAPIKey)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.LLM.Model)
	assert.True(t, cfg.Auth.Enabled())

	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-alias", key)
}

func TestLoad_PrefixedEnvWinsOverAlias(t *testing.T) {
	isolate(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-alias")
	t.Setenv("RESUME_BUILDER_OPENROUTER_API_KEY", "sk-prefixed")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-prefixed", cfg.OpenRouterAPIKey)
}

func TestLoad_InvalidJSON(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `{ invalid json }`)

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_FileNotFound(t *testing.T) {
	isolate(t)

	cfg, err := Load("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }, "server.port"},
		{"bad provider", func(c *Config) { c.LLM.Provider = "bogus" }, "unsupported llm provider"},
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "at least 16 characters"},
		{"zero expiration", func(c *Config) {
			c.Auth.JWTSecret = "0123456789abcdef"
			c.Auth.ExpirationHours = 0
		}, "at least 1 hour"},
		{"missing template", func(c *Config) { c.Render.TemplatePath = "/nonexistent.tmpl" }, "template file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestAPIKey_Missing(t *testing.T) {
	cfg := &Config{LLM: *llm.DefaultConfig()}
	_, err := cfg.APIKey()
	assert.ErrorContains(t, err, "OPENROUTER_API_KEY")

	cfg.LLM.Provider = llm.ProviderGemini
	_, err = cfg.APIKey()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	cfg.GeminiAPIKey = "g-key"
	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "g-key", key)
}
