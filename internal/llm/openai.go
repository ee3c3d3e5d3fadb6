package llm

import (
	"context"
	"errors"
	"fmt"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

// OpenAIBackend talks to any OpenAI-compatible chat completion server
// (OpenAI, llama.cpp server, vLLM, Ollama).
type OpenAIBackend struct {
	client oai.Client
	model  string
}

// NewOpenAIBackend builds a backend for model served at baseURL. An empty
// apiKey falls back to OPENAI_API_KEY, which local servers ignore anyway.
func NewOpenAIBackend(baseURL, apiKey, model string, opts ...option.RequestOption) (*OpenAIBackend, error) {
	if model == "" {
		return nil, errors.New("openai: model must not be empty")
	}

	reqOpts := []option.RequestOption{
		// the pipeline never retries; a failed call becomes a placeholder
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if apiKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(apiKey))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAIBackend{client: oai.NewClient(reqOpts...), model: model}, nil
}

// Model returns the configured model name.
func (b *OpenAIBackend) Model() string {
	return b.model
}

// Probe checks that the server knows the model.
func (b *OpenAIBackend) Probe(ctx context.Context) error {
	if _, err := b.client.Models.Get(ctx, b.model); err != nil {
		return fmt.Errorf("openai: probe model %q: %w", b.model, err)
	}
	return nil
}

// Complete implements Backend with greedy decoding so identical prompts give
// comparable output.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	params := oai.ChatCompletionNewParams{
		Model:       shared.ChatModel(b.model),
		Messages:    []oai.ChatCompletionMessageParamUnion{oai.UserMessage(prompt)},
		Temperature: param.NewOpt(0.0),
		Seed:        param.NewOpt(int64(0)),
	}
	if maxTokens > 0 {
		// local servers understand max_tokens, not max_completion_tokens
		params.MaxTokens = param.NewOpt(int64(maxTokens))
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// OpenAILoader returns a Loader that builds an OpenAIBackend and probes the
// model before handing it out.
func OpenAILoader(baseURL, apiKey, model string, opts ...option.RequestOption) Loader {
	return Loader{
		Name: model,
		Load: func(ctx context.Context) (Backend, error) {
			b, err := NewOpenAIBackend(baseURL, apiKey, model, opts...)
			if err != nil {
				return nil, err
			}
			if err := b.Probe(ctx); err != nil {
				return nil, err
			}
			return b, nil
		},
	}
}
