// Package openai implements caption.Provider using an OpenAI-compatible
// vision chat completion endpoint.
package openai

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kumalab/kuma/caption"
)

// ProviderName is the registered name for the OpenAI captioning provider.
const ProviderName = "openai-vision"

const (
	defaultModel    = "gpt-4o-mini"
	defaultMIMEType = "image/png"
	defaultPrompt   = "Describe this image in one or two short sentences. " +
		"Mention text visible in the image if any. Answer in the language of that text when present."
)

// Config holds configuration for the OpenAI captioning provider.
type Config struct {
	APIKey    string `json:"api_key" yaml:"api_key"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url"`
	Model     string `json:"model" yaml:"model"`
	MaxTokens int    `json:"max_tokens" yaml:"max_tokens"`
}

// Provider implements caption.Provider using go-openai.
type Provider struct {
	cfg    Config
	client *openai.Client
}

// NewProvider creates a new OpenAI captioning provider.
func NewProvider(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 120
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider is configured with credentials.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// Caption describes the given image in natural language.
func (p *Provider) Caption(ctx context.Context, req caption.Request) (*caption.Response, error) {
	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	prompt := req.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(req.Image))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai caption: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai caption: empty response")
	}

	return &caption.Response{Text: resp.Choices[0].Message.Content}, nil
}
