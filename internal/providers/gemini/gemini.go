package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// Options configures the Gemini provider
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string // Overrides the API endpoint, mostly for tests
	HTTPClient *http.Client
}

// Provider generates text with the Gemini API
type Provider struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// New creates a Gemini provider
func New(ctx context.Context, opts Options) (*Provider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.7),
			TopK:             genai.Ptr[float32](40),
			TopP:             genai.Ptr[float32](0.95),
			MaxOutputTokens:  800,
			ResponseMIMEType: "application/json",
		},
	}, nil
}

// Model returns the configured model name
func (p *Provider) Model() string {
	return p.model
}

// Generate sends the prompt as a single user turn and returns the response text
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), p.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	return resp.Text(), nil
}
