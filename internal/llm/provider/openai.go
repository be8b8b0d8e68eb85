package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIProvider implements Provider using the official openai-go client.
type OpenAIProvider struct {
	apiKey string
	model  string

	Client openai.Client
}

func NewOpenAIProvider(opts ...Option) (*OpenAIProvider, error) {
	s := apply(DefaultOpenAIModel, opts)
	p := &OpenAIProvider{apiKey: s.apiKey, model: s.model}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(s.apiKey),
		option.WithMaxRetries(0),
	}
	if s.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(s.baseURL))
	}
	if s.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(s.httpClient))
	}
	p.Client = openai.NewClient(clientOpts...)

	return p, nil
}

func (p *OpenAIProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("api key not set")
	}
	return nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		Model: openai.ChatModel(p.model),
	}

	chat, err := p.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	var s string
	if len(chat.Choices) > 0 {
		s = strings.TrimSpace(chat.Choices[0].Message.Content)
	}
	if s == "" {
		return "", fmt.Errorf("no message content")
	}
	return s, nil
}
