package provider

import (
	"context"
	"fmt"
	"net/http"
)

const (
	Gemini = "gemini"
	OpenAI = "openai"

	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4.1-mini"
)

// Provider defines the minimal interface for LLM completion.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	Validate() error
}

// Request is a single system + user exchange.
type Request struct {
	SystemPrompt string
	UserPrompt   string
}

type settings struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type Option func(*settings)

func WithAPIKey(apiKey string) Option {
	return func(s *settings) {
		s.apiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(s *settings) {
		s.model = model
	}
}

// WithBaseURL points the client at a different endpoint, e.g. a proxy or a
// test server.
func WithBaseURL(u string) Option {
	return func(s *settings) {
		s.baseURL = u
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		s.httpClient = c
	}
}

// New builds the provider registered under name.
func New(ctx context.Context, name string, opts ...Option) (Provider, error) {
	switch name {
	case Gemini:
		return NewGeminiProvider(ctx, opts...)
	case OpenAI:
		return NewOpenAIProvider(opts...)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", name)
	}
}

func apply(model string, opts []Option) settings {
	s := settings{model: model}
	for _, opt := range opts {
		opt(&s)
	}
	if s.model == "" {
		s.model = model
	}
	return s
}
