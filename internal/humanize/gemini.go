package humanize

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// TextGenerator is the external LLM collaborator. Implementations must treat
// the prompt as the full instruction; the gate handles parsing and fallback.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

type GeminiClientOption = func(client *GeminiClient) error

func NewGeminiClient(opts ...GeminiClientOption) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	gemini := GeminiClient{
		client: client,
		model:  "gemini-3-flash-preview",
	}
	if err := applyFuncOptions(&gemini, opts...); err != nil {
		return nil, fmt.Errorf("failed to apply options: %w", err)
	}
	return &gemini, nil
}

func WithModel(model string) GeminiClientOption {
	return func(client *GeminiClient) error {
		client.model = model
		return nil
	}
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return result.Text(), nil
}

func applyFuncOptions[T any](entity T, opts ...func(entity T) error) error {
	for _, opt := range opts {
		if err := opt(entity); err != nil {
			return err
		}
	}
	return nil
}
