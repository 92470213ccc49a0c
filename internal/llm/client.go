// Package llm is the completion service boundary: a rendered prompt goes in,
// raw model text comes out. Provider choice, credentials and temperature are
// configuration concerns kept behind the Completer interface.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/mistral"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer issues a single blocking completion call. Implementations hold
// no conversation state; every call is independent. Cancellation and
// deadlines are the caller's responsibility via ctx.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ServiceError wraps a transport or provider failure, keeping it
// distinguishable from a decode failure downstream.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Options carries the provider configuration a Client needs.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

// Client is a Completer backed by a langchaingo chat model.
type Client struct {
	model       llms.Model
	provider    string
	temperature float64
}

// NewClient builds a Client for the named provider. "openai" and
// "openrouter" share the OpenAI-compatible backend; "mistral" uses the
// native Mistral API.
func NewClient(provider string, opts Options) (*Client, error) {
	var (
		model llms.Model
		err   error
	)
	switch provider {
	case "openai", "openrouter":
		llmOpts := []openai.Option{
			openai.WithToken(opts.APIKey),
			openai.WithModel(opts.Model),
		}
		if opts.BaseURL != "" {
			llmOpts = append(llmOpts, openai.WithBaseURL(opts.BaseURL))
		}
		model, err = openai.New(llmOpts...)
	case "mistral":
		if opts.BaseURL != "" {
			model, err = mistral.New(
				mistral.WithAPIKey(opts.APIKey),
				mistral.WithModel(opts.Model),
				mistral.WithEndpoint(opts.BaseURL),
			)
		} else {
			model, err = mistral.New(
				mistral.WithAPIKey(opts.APIKey),
				mistral.WithModel(opts.Model),
			)
		}
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s client: %w", provider, err)
	}

	return &Client{
		model:       model,
		provider:    provider,
		temperature: opts.Temperature,
	}, nil
}

// Complete sends the prompt and returns the raw model text. Failures are
// wrapped as *ServiceError and passed through unchanged by the pipelines.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature))
	if err != nil {
		return "", &ServiceError{Provider: c.provider, Err: err}
	}
	return out, nil
}
