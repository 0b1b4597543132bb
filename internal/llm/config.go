// Package llm provides chat-completion clients for the hosted models the résumé assistant talks to.
package llm

import "fmt"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenRouter is the OpenRouter chat-completions API (default)
	ProviderOpenRouter Provider = "openrouter"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Default model settings
const (
	DefaultOpenRouterURL     = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "allenai/olmo-3-32b-think:free"
	DefaultGeminiModel       = "gemini-2.5-flash"
	DefaultMaxTokens         = 1500
	DefaultMarkdownMaxTokens = 3000
	DefaultTemperature       = 0.7
	DefaultSiteURL           = "http://localhost:3000"
	DefaultAppTitle          = "AI Resume Generator"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider `mapstructure:"provider"`
	Model    string   `mapstructure:"model"`
	// BaseURL is the OpenAI-compatible API root; /chat/completions is appended.
	BaseURL           string  `mapstructure:"base_url"`
	MaxTokens         int     `mapstructure:"max_tokens"`
	MarkdownMaxTokens int     `mapstructure:"markdown_max_tokens"`
	Temperature       float64 `mapstructure:"temperature"`
	// SiteURL and AppTitle are sent as the HTTP-Referer and X-Title attribution headers.
	SiteURL  string `mapstructure:"site_url"`
	AppTitle string `mapstructure:"app_title"`
}

// DefaultConfig returns the default configuration (OpenRouter)
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenRouter,
		Model:             DefaultOpenRouterModel,
		BaseURL:           DefaultOpenRouterURL,
		MaxTokens:         DefaultMaxTokens,
		MarkdownMaxTokens: DefaultMarkdownMaxTokens,
		Temperature:       DefaultTemperature,
		SiteURL:           DefaultSiteURL,
		AppTitle:          DefaultAppTitle,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg.Model = DefaultGeminiModel
	cfg.BaseURL = ""
	return cfg
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenRouter:
		if c.BaseURL == "" {
			return fmt.Errorf("llm.base_url is required for provider %s", c.Provider)
		}
	case ProviderGemini:
	default:
		return fmt.Errorf("unsupported llm provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.MaxTokens <= 0 || c.MarkdownMaxTokens <= 0 {
		return fmt.Errorf("llm max tokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %v", c.Temperature)
	}
	return nil
}

// ChatRequest builds a completion request for a résumé chat turn.
func (c *Config) ChatRequest(messages []ChatMessage, reasoning bool) CompletionRequest {
	return CompletionRequest{
		Messages:    messages,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Reasoning:   reasoning,
	}
}

// MarkdownRequest builds a completion request for AI Markdown generation.
func (c *Config) MarkdownRequest(messages []ChatMessage) CompletionRequest {
	return CompletionRequest{
		Messages:    messages,
		MaxTokens:   c.MarkdownMaxTokens,
		Temperature: c.Temperature,
		Title:       c.AppTitle + " - Markdown",
	}
}
