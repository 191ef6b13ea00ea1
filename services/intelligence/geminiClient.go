package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"trailmate/utils"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrMalformedReply is returned when the model response carries no text.
var ErrMalformedReply = errors.New("generation response had no text content")

// GeminiClient generates replies with the caller's own API key. One SDK
// client is kept per distinct key.
type GeminiClient struct {
	modelName string

	mu      sync.Mutex
	clients map[string]*genai.Client
}

func NewGeminiClient(modelName string) *GeminiClient {
	return &GeminiClient{
		modelName: modelName,
		clients:   make(map[string]*genai.Client),
	}
}

func (g *GeminiClient) client(credential string) (*genai.Client, error) {
	key := utils.HashToken(credential)

	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.clients[key]; ok {
		return c, nil
	}
	// Clients outlive the request that created them.
	c, err := genai.NewClient(context.Background(), option.WithAPIKey(credential))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.clients[key] = c
	return c, nil
}

func (g *GeminiClient) Generate(ctx context.Context, credential, prompt string) (string, error) {
	if credential == "" {
		return "", ErrMissingCredential
	}
	client, err := g.client(credential)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(g.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrMalformedReply
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrMalformedReply
	}
	return sb.String(), nil
}

// Close releases every cached SDK client.
func (g *GeminiClient) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var errs []error
	for k, c := range g.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(g.clients, k)
	}
	return errors.Join(errs...)
}
