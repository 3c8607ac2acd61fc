// Package gateway is the single point of contact with the generative-model
// backend. It issues one completion call per Generate, isolates any embedded
// JSON payload in the reply, and degrades to a synthetic fallback payload on
// transport failure instead of raising.
package gateway

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/storewise/recommender/agent/contract"
	ollamax "github.com/storewise/recommender/pkg/ollama"
)

// Backend issues a single completion call against a concrete model server.
type Backend interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

type Gateway struct {
	backend Backend
	model   string
}

var _ contractx.TextGenerator = (*Gateway)(nil)

func New(backend Backend, model string) (*Gateway, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: gateway backend is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: gateway model is required", contractx.ErrValidation)
	}
	return &Gateway{
		backend: backend,
		model:   strings.TrimSpace(model),
	}, nil
}

// Generate sends the prompt to the backend. On success it returns the first
// embedded JSON span if one is found, otherwise the full reply text. On
// transport or model failure it returns a fallback payload keyed off the
// prompt; no retries are attempted. The only errors surfaced are an empty
// prompt and context cancellation, so a cancelled run never fabricates output.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is empty", contractx.ErrValidation)
	}

	text, err := g.backend.Complete(ctx, g.model, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Warn().Err(err).Str("model", g.model).Msg("model call failed, using fallback payload")
		return fallbackPayload(prompt), nil
	}

	if span, ok := extractJSON(text); ok {
		return span, nil
	}
	return text, nil
}

// OpenRouterBackend runs completions through the OpenAI SDK pointed at
// OpenRouter.
type OpenRouterBackend struct {
	client      *openaisdk.Client
	temperature float64
	maxTokens   int64
}

func NewOpenRouterBackend(client *openaisdk.Client, temperature float64, maxTokens int64) (*OpenRouterBackend, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openrouter client is required", contractx.ErrValidation)
	}
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	return &OpenRouterBackend{
		client:      client,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (b *OpenRouterBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Temperature: openaisdk.Float(b.temperature),
		MaxTokens:   openaisdk.Int(b.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// OllamaBackend runs completions against a local Ollama server.
type OllamaBackend struct {
	client *ollamax.Client
}

func NewOllamaBackend(client *ollamax.Client) (*OllamaBackend, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: ollama client is required", contractx.ErrValidation)
	}
	return &OllamaBackend{client: client}, nil
}

func (b *OllamaBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	return b.client.Generate(ctx, model, prompt)
}
