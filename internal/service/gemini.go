package service

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GenerationResult is the text of an AI response plus the web pages it was grounded on
type GenerationResult struct {
	Text   string
	Chunks []WebChunk
}

// ContentGenerator sends a prompt to a generative AI service
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string) (*GenerationResult, error)
}

// GeminiGenerator calls the Gemini API with the Google Search tool enabled
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini client for the given model
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements ContentGenerator
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*GenerationResult, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini request failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("Gemini returned no candidates")
	}

	return &GenerationResult{
		Text:   resp.Text(),
		Chunks: groundingChunks(resp.Candidates[0]),
	}, nil
}

func groundingChunks(c *genai.Candidate) []WebChunk {
	if c == nil || c.GroundingMetadata == nil {
		return nil
	}
	chunks := make([]WebChunk, 0, len(c.GroundingMetadata.GroundingChunks))
	for _, gc := range c.GroundingMetadata.GroundingChunks {
		if gc == nil || gc.Web == nil {
			continue
		}
		chunks = append(chunks, WebChunk{URI: gc.Web.URI, Title: gc.Web.Title})
	}
	return chunks
}
