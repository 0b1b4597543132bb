// Package config loads the service and CLI configuration from a config file,
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment
const EnvPrefix = "RESUME_BUILDER"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig            `mapstructure:"server"`
	LLM     llm.Config              `mapstructure:"llm"`
	Auth    AuthConfig              `mapstructure:"auth"`
	Log     observability.LogConfig `mapstructure:"log"`
	Session SessionConfig           `mapstructure:"session"`
	Render  RenderConfig            `mapstructure:"render"`

	OpenRouterAPIKey string `mapstructure:"openrouter_api_key"`
	GeminiAPIKey     string `mapstructure:"gemini_api_key"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SessionConfig configures the terminal client session
type SessionConfig struct {
	// StoreDir holds the persisted transcript and résumé.
	StoreDir string `mapstructure:"store_dir"`
	// ServerURL, when set, makes the chat client call a running API server
	// instead of the model provider directly.
	ServerURL string `mapstructure:"server_url"`
	// Token is sent as a bearer token to ServerURL.
	Token string `mapstructure:"token"`
}

// RenderConfig configures document rendering
type RenderConfig struct {
	ChromePath   string        `mapstructure:"chrome_path"`
	TemplatePath string        `mapstructure:"template_path"`
	PDFTimeout   time.Duration `mapstructure:"pdf_timeout"`
}

// envAliases binds well-known environment names in addition to the prefixed ones.
var envAliases = map[string]string{
	"openrouter_api_key": "OPENROUTER_API_KEY",
	"gemini_api_key":     "GEMINI_API_KEY",
	"llm.site_url":       "SITE_URL",
	"auth.jwt_secret":    "JWT_SECRET",
	"server.port":        "PORT",
	"render.chrome_path": "CHROME_PATH",
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	logDefaults := observability.DefaultLogConfig()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 300*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("llm.provider", string(llmDefaults.Provider))
	v.SetDefault("llm.model", llmDefaults.Model)
	v.SetDefault("llm.base_url", llmDefaults.BaseURL)
	v.SetDefault("llm.max_tokens", llmDefaults.MaxTokens)
	v.SetDefault("llm.markdown_max_tokens", llmDefaults.MarkdownMaxTokens)
	v.SetDefault("llm.temperature", llmDefaults.Temperature)
	v.SetDefault("llm.site_url", llmDefaults.SiteURL)
	v.SetDefault("llm.app_title", llmDefaults.AppTitle)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiration_hours", DefaultJWTExpirationHours)

	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.format", logDefaults.Format)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", logDefaults.MaxSizeMB)
	v.SetDefault("log.max_backups", logDefaults.MaxBackups)
	v.SetDefault("log.max_age_days", logDefaults.MaxAgeDays)

	v.SetDefault("session.store_dir", defaultStoreDir())
	v.SetDefault("session.server_url", "")
	v.SetDefault("session.token", "")

	v.SetDefault("render.chrome_path", "")
	v.SetDefault("render.template_path", "")
	v.SetDefault("render.pdf_timeout", 60*time.Second)

	v.SetDefault("openrouter_api_key", "")
	v.SetDefault("gemini_api_key", "")
}

func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".resume-builder"
	}
	return filepath.Join(home, ".resume-builder")
}

// Load reads configuration from path (JSON) when given, otherwise from an
// optional resume-builder.json in the working directory or ~/.resume-builder.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, alias); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("resume-builder")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultStoreDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// API keys are not required here; commands that call the model check them.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("config error: 'server.port' is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config error: 'server.shutdown_timeout' must be non-negative")
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.Auth.normalize(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Session.StoreDir == "" {
		return fmt.Errorf("config error: 'session.store_dir' is required")
	}
	if c.Render.TemplatePath != "" {
		if _, err := os.Stat(c.Render.TemplatePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Render.TemplatePath)
		}
	}
	return nil
}

// APIKey returns the key for the configured model provider.
func (c *Config) APIKey() (string, error) {
	switch c.LLM.Provider {
	case llm.ProviderGemini:
		if c.GeminiAPIKey == "" {
			return "", fmt.Errorf("GEMINI_API_KEY is required for provider %s", c.LLM.Provider)
		}
		return c.GeminiAPIKey, nil
	default:
		if c.OpenRouterAPIKey == "" {
			return "", fmt.Errorf("OPENROUTER_API_KEY is required for provider %s", c.LLM.Provider)
		}
		return c.OpenRouterAPIKey, nil
	}
}
