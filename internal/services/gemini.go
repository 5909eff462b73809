package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// GeminiService is the hosted text generation API. Calls are single shot;
// a failed request is returned to the caller as is.
type GeminiService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiService(apiKey, modelName string, temperature float32) (GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("GOOGLE_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", fmt.Errorf("%w: %v", ErrLLM, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrLLM)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", ErrLLM)
	}

	return text, nil
}
