// Package openai implements transcription.Provider using the OpenAI audio
// transcription API (or any compatible endpoint).
package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kumalab/kuma/transcription"
)

// ProviderName is the registered name for the OpenAI transcription provider.
const ProviderName = "openai-whisper"

const defaultModel = openai.Whisper1

// Config holds configuration for the OpenAI transcription provider.
type Config struct {
	APIKey   string `json:"api_key" yaml:"api_key"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url"`
	Model    string `json:"model" yaml:"model"`
	Language string `json:"language,omitempty" yaml:"language"`
}

// Provider implements transcription.Provider using go-openai.
type Provider struct {
	cfg    Config
	client *openai.Client
}

// NewProvider creates a new OpenAI transcription provider.
func NewProvider(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = defaultModel
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

// Transcribe sends the audio file for transcription.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		FilePath: req.AudioPath,
		Language: lang,
	})
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	return &transcription.Response{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}
