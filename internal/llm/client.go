package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aaronromeo/powerbuilder/internal/llm/provider"
)

type Client struct {
	provider provider.Provider
	system   string
	logger   *slog.Logger
}

type LLMClientOption func(*Client)

func WithProvider(p provider.Provider) LLMClientOption {
	return func(c *Client) {
		c.provider = p
	}
}

// WithSystemInstruction replaces the embedded coaching instruction.
func WithSystemInstruction(s string) LLMClientOption {
	return func(c *Client) {
		c.system = s
	}
}

func WithLogger(l *slog.Logger) LLMClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

func New(opts ...LLMClientOption) (*Client, error) {
	c := &Client{system: CoachSystem, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil {
		return nil, errors.New("llm provider not configured")
	}
	if err := c.provider.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Plan assembles the user prompt and returns the model's markdown answer.
func (c *Client) Plan(ctx context.Context, req PlanRequest, history string) (string, error) {
	user := BuildUserPrompt(req, history)

	start := time.Now()
	out, err := c.provider.Complete(ctx, provider.Request{
		SystemPrompt: c.system,
		UserPrompt:   user,
	})
	if err != nil {
		c.logger.Error("completion failed", "workout", req.Workout, "err", err)
		return "", err
	}
	c.logger.Debug("completion done",
		"workout", req.Workout,
		"prompt_bytes", len(user),
		"reply_bytes", len(out),
		"duration", time.Since(start),
	)
	return out, nil
}
