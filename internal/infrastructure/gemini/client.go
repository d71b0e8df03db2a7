package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Request is one GenerateContent call against a named model.
type Request struct {
	Model             string
	SystemInstruction string
	// Schema, when set, switches the call to JSON output constrained by it.
	Schema *genai.Schema
	// History makes the call a chat turn on top of the given prior turns.
	History []*genai.Content
	Parts   []genai.Part
}

// Backend performs raw requests. GeminiClient is the production implementation.
type Backend interface {
	Generate(ctx context.Context, req Request) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	client      *genai.Client
	temperature float32
}

func NewGeminiClient(ctx context.Context, apiKey string, temperature float32) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		temperature: temperature,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (*genai.GenerateContentResponse, error) {
	model := c.client.GenerativeModel(req.Model)
	model.SetTemperature(c.temperature)
	if req.Schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = req.Schema
	}
	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
	}

	if req.History != nil {
		cs := model.StartChat()
		cs.History = req.History
		return cs.SendMessage(ctx, req.Parts...)
	}
	return model.GenerateContent(ctx, req.Parts...)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}

// responseImage returns the first inline image of the first candidate.
func responseImage(resp *genai.GenerateContentResponse) (genai.Blob, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return genai.Blob{}, false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			return blob, true
		}
	}
	return genai.Blob{}, false
}

// stripCodeFence removes one markdown fence the model sometimes wraps JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
