package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/kent242/moneychat/internal/config"
	"github.com/kent242/moneychat/internal/domain"
)

// Gemini implements Parser and Classifier with a shared genai client.
// Create it once at startup; the client is safe for concurrent use.
type Gemini struct {
	client *genai.Client
	cfg    config.AIConfig
}

// NewGemini creates a Gemini client. Credentials come from the
// environment (GEMINI_API_KEY or application default credentials).
func NewGemini(ctx context.Context, cfg config.AIConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: create genai client: %w", err)
	}
	return &Gemini{client: client, cfg: cfg}, nil
}

// ParseMessage implements Parser. The model may return a single draft
// object or a multi-draft envelope; both decode to the same slice.
func (g *Gemini) ParseMessage(ctx context.Context, message string, names domain.CategoryNames) ([]Draft, error) {
	raw, err := g.generate(ctx, parsePrompt(message, names))
	if err != nil {
		return nil, fmt.Errorf("ai: parse message: %w", err)
	}

	drafts, err := decodeDrafts(raw, message, g.cfg.DefaultConfidence)
	if err != nil {
		return nil, fmt.Errorf("ai: parse message: %w\nraw response: %s", err, raw)
	}
	return drafts, nil
}

// Classify implements Classifier.
func (g *Gemini) Classify(ctx context.Context, description string, categories []string) (Classification, error) {
	raw, err := g.generate(ctx, classifyPrompt(description, categories))
	if err != nil {
		return Classification{}, fmt.Errorf("ai: classify: %w", err)
	}

	cls, err := decodeClassification(raw, g.cfg.DefaultConfidence)
	if err != nil {
		return Classification{}, fmt.Errorf("ai: classify: %w\nraw response: %s", err, raw)
	}
	return cls, nil
}

// generate sends one prompt and returns the cleaned response text. A
// per-call deadline keeps a slow model from stalling the request.
func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return cleanModelJSON(text), nil
}

var (
	_ Parser     = (*Gemini)(nil)
	_ Classifier = (*Gemini)(nil)
)
