package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator answers with a Gemini chat model.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for model.
func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{client: client, model: model}
}

// Generate sends message after history and returns the reply text.
func (g *GeminiGenerator) Generate(ctx context.Context, history []Turn, message string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, Contents(history, message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// Contents converts a conversation into genai contents, ending with message.
func Contents(history []Turn, message string) []*genai.Content {
	out := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(t.Text, role))
	}
	return append(out, genai.NewContentFromText(message, genai.RoleUser))
}
