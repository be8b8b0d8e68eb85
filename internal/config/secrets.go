package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// MissingAPIKeyMessage is shown instead of the form when no key is configured.
const MissingAPIKeyMessage = "No API Key found in secrets.toml"

var (
	ErrMissingAPIKey         = errors.New("api key not configured")
	ErrMissingServiceAccount = errors.New("service_account not found in secrets")
)

type Secrets struct {
	GeminiAPIKey   string         `toml:"GEMINI_API_KEY"`
	OpenAIAPIKey   string         `toml:"OPENAI_API_KEY"`
	ServiceAccount map[string]any `toml:"service_account"`
}

// LoadSecrets decodes the TOML secrets file. A missing file yields empty
// secrets so keys can still come from the environment.
func LoadSecrets(path string) (*Secrets, error) {
	var s Secrets
	if path == "" {
		return &s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode secrets %s: %w", path, err)
	}
	return &s, nil
}

// ServiceAccountJSON re-encodes the [service_account] table in the JSON key
// file layout the Google client libraries expect.
func (s *Secrets) ServiceAccountJSON() ([]byte, error) {
	if s == nil || len(s.ServiceAccount) == 0 {
		return nil, ErrMissingServiceAccount
	}
	b, err := json.Marshal(s.ServiceAccount)
	if err != nil {
		return nil, fmt.Errorf("marshal service_account: %w", err)
	}
	return b, nil
}
