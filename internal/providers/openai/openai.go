package openai

import (
	"context"
	"fmt"
	"net/http"

	oai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4o-mini"

// Options configures the OpenAI provider
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string // Any OpenAI compatible endpoint
	HTTPClient *http.Client
}

// Provider generates text with the OpenAI chat completions API
type Provider struct {
	client oai.Client
	model  string
}

// New creates an OpenAI provider
func New(opts Options) (*Provider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	// Failed runs are never retried
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &Provider{
		client: oai.NewClient(reqOpts...),
		model:  model,
	}, nil
}

// Model returns the configured model name
func (p *Provider) Model() string {
	return p.model
}

// Generate sends the prompt as a single user message and returns the first choice
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := p.client.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model: oai.ChatModel(p.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.UserMessage(prompt),
		},
		Temperature:         oai.Float(0.7),
		TopP:                oai.Float(0.95),
		MaxCompletionTokens: oai.Int(800),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}

	return completion.Choices[0].Message.Content, nil
}
