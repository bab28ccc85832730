package imagegen

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNoImage is returned when the model answers without an image part.
var ErrNoImage = errors.New("model returned no image")

// Generator turns a prompt into image bytes.
type Generator interface {
	Generate(ctx context.Context, prompt string, size Size) ([]byte, error)
}

// GeminiGenerator produces square images with a Gemini image model.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{client: client, model: model}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, size Size) ([]byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: "1:1",
			ImageSize:   string(size),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	return firstImage(resp)
}

func firstImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, ErrNoImage
}
