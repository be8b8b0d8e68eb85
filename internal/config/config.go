package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	LlmProvider string `env:"LLM_PROVIDER" envDefault:"gemini"`
	// LlmModel empty means the provider default (gemini-2.5-flash for gemini).
	LlmModel string `env:"LLM_MODEL"`
	// LlmBaseURL overrides the provider endpoint, e.g. an OpenAI-compatible proxy.
	LlmBaseURL string `env:"LLM_BASE_URL"`

	SecretsPath  string `env:"SECRETS_PATH" envDefault:"secrets.toml"`
	SheetName    string `env:"SHEET_NAME" envDefault:"Powerbuilder Data"`
	CatalogPath  string `env:"CATALOG_PATH"`
	HistoryLimit int    `env:"HISTORY_LIMIT" envDefault:"5"`

	// Keys set in the environment win over the secrets file.
	GeminiKey string `env:"GEMINI_API_KEY"`
	OpenaiKey string `env:"OPENAI_API_KEY"`

	Debug   bool   `env:"DEBUG" envDefault:"false"`
	LogFile string `env:"LOG_FILE"`
	Addr    string `env:"ADDR" envDefault:":8080"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.LlmProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LlmProvider)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	return nil
}

// APIKey returns the completion service key for the configured provider.
func (c *Config) APIKey(s *Secrets) (string, error) {
	var fromEnv, fromFile string
	switch c.LlmProvider {
	case ProviderOpenAI:
		fromEnv = c.OpenaiKey
		if s != nil {
			fromFile = s.OpenAIAPIKey
		}
	default:
		fromEnv = c.GeminiKey
		if s != nil {
			fromFile = s.GeminiAPIKey
		}
	}
	if fromEnv != "" {
		return fromEnv, nil
	}
	if fromFile != "" {
		return fromFile, nil
	}
	return "", ErrMissingAPIKey
}
