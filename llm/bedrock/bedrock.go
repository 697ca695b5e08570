// Package bedrock implements llm.Provider using Amazon Bedrock's
// streaming model invocation API.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/kumalab/kuma/llm"
)

const (
	// ProviderName is the registered name for the Bedrock provider.
	ProviderName = "bedrock"

	defaultModelID = "eu.amazon.nova-micro-v1:0"

	messagesSchemaVersion = "messages-v1"
)

var defaultParams = llm.InferenceParams{
	MaxNewTokens: 128,
	TopP:         0.9,
	TopK:         20,
	Temperature:  0.7,
}

// Config holds the AWS settings for the Bedrock provider.
type Config struct {
	Region    string `json:"region" yaml:"region"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	// ModelID selects the model; empty means the Nova Micro default.
	ModelID string `json:"model_id" yaml:"model_id"`
	// Params are the default inference parameters for every request.
	Params llm.InferenceParams `json:"params" yaml:"params"`
}

// Provider implements llm.Provider backed by Amazon Bedrock.
type Provider struct {
	cfg    Config
	client *bedrockruntime.Client
}

// NewProvider creates a Bedrock provider from the given config.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ModelID == "" {
		cfg.ModelID = defaultModelID
	}
	if cfg.Params == (llm.InferenceParams{}) {
		cfg.Params = defaultParams
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("bedrock: load aws config: %w", err)
	}

	return &Provider{cfg: cfg, client: bedrockruntime.NewFromConfig(awsCfg)}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider can be called. Bedrock has no
// cheap health endpoint, so a constructed client is considered available.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.client != nil }

// Stream invokes the model with response streaming and forwards text deltas
// as they arrive. The returned channel is closed after the final chunk.
func (p *Provider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	body, err := json.Marshal(buildInvokeBody(p.cfg.Params, req))
	if err != nil {
		return nil, fmt.Errorf("bedrock stream: marshal request: %w", err)
	}

	modelID := p.cfg.ModelID
	if req.Model != "" {
		modelID = req.Model
	}

	out, err := p.client.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock stream: invoke model: %w", err)
	}

	ch := make(chan llm.StreamChunk)
	go func() {
		defer close(ch)
		stream := out.GetStream()
		defer stream.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

		for event := range stream.Events() {
			part, ok := event.(*brtypes.ResponseStreamMemberChunk)
			if !ok {
				continue
			}

			content, done, err := parseEventPayload(part.Value.Bytes)
			if err != nil {
				ch <- llm.StreamChunk{Err: err}
				return
			}
			if content == "" && !done {
				continue
			}

			chunk := llm.StreamChunk{Content: content, Done: done}
			select {
			case ch <- chunk:
			case <-ctx.Done():
				ch <- llm.StreamChunk{Err: ctx.Err()}
				return
			}

			if done {
				return
			}
		}

		if err := stream.Err(); err != nil {
			ch <- llm.StreamChunk{Err: fmt.Errorf("bedrock stream: read response: %w", err)}
		}
	}()

	return ch, nil
}

// --- internal Bedrock API types ---

type invokeMessage struct {
	Role    string          `json:"role"`
	Content []invokeContent `json:"content"`
}

type invokeContent struct {
	Text string `json:"text"`
}

type inferenceConfig struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	TopP         float64 `json:"top_p,omitempty"`
	TopK         int     `json:"top_k,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

type invokeRequest struct {
	SchemaVersion   string          `json:"schemaVersion"`
	Messages        []invokeMessage `json:"messages"`
	System          []invokeContent `json:"system,omitempty"`
	InferenceConfig inferenceConfig `json:"inferenceConfig"`
}

type eventPayload struct {
	ContentBlockDelta *struct {
		Delta struct {
			Text string `json:"text"`
		} `json:"delta"`
	} `json:"contentBlockDelta"`
	MessageStop *struct {
		StopReason string `json:"stopReason"`
	} `json:"messageStop"`
}

// buildInvokeBody creates a messages-v1 invocation body from a
// llm.CompletionRequest, falling back to the provider defaults for any
// inference parameter the request leaves zero.
func buildInvokeBody(defaults llm.InferenceParams, req llm.CompletionRequest) invokeRequest {
	params := req.Params
	if params.MaxNewTokens == 0 {
		params.MaxNewTokens = defaults.MaxNewTokens
	}
	if params.TopP == 0 {
		params.TopP = defaults.TopP
	}
	if params.TopK == 0 {
		params.TopK = defaults.TopK
	}
	if params.Temperature == 0 {
		params.Temperature = defaults.Temperature
	}

	body := invokeRequest{
		SchemaVersion: messagesSchemaVersion,
		Messages: []invokeMessage{
			{Role: "user", Content: []invokeContent{{Text: req.Prompt}}},
		},
		InferenceConfig: inferenceConfig{
			MaxNewTokens: params.MaxNewTokens,
			TopP:         params.TopP,
			TopK:         params.TopK,
			Temperature:  params.Temperature,
		},
	}
	if req.SystemPrompt != "" {
		body.System = []invokeContent{{Text: req.SystemPrompt}}
	}
	return body
}

// parseEventPayload extracts the text delta from one streamed event. Events
// that carry neither a delta nor a stop marker yield empty content.
func parseEventPayload(data []byte) (content string, done bool, err error) {
	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false, fmt.Errorf("bedrock stream: unmarshal chunk: %w", err)
	}
	if payload.MessageStop != nil {
		return "", true, nil
	}
	if payload.ContentBlockDelta != nil {
		return payload.ContentBlockDelta.Delta.Text, false, nil
	}
	return "", false, nil
}
