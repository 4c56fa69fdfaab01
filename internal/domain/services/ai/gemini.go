package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider generates replies through the Gemini API. It is the second
// link in the chain, used when OpenAI is unavailable.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates the secondary reply provider. The client is
// constructed per call because genai.NewClient requires a context.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, persona, message string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}

	temp := float32(0.6)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(persona, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   int32(256),
	}

	contents := []*genai.Content{genai.NewContentFromText(message, genai.RoleUser)}

	res, err := client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}
