// Package textract implements ocr.Extractor using Amazon Textract's
// document text detection API.
package textract

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awstextract "github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/kumalab/kuma/ocr"
)

// ProviderName is the registered name for the Textract provider.
const ProviderName = "textract"

// Config holds the AWS settings for the Textract extractor.
type Config struct {
	Region    string `json:"region" yaml:"region"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

// Extractor implements ocr.Extractor backed by Amazon Textract.
type Extractor struct {
	client *awstextract.Client
}

// NewExtractor creates a Textract extractor from the given config.
func NewExtractor(ctx context.Context, cfg Config) (*Extractor, error) {
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
		return nil, fmt.Errorf("textract: load aws config: %w", err)
	}

	return &Extractor{client: awstextract.NewFromConfig(awsCfg)}, nil
}

// Name returns the provider name.
func (e *Extractor) Name() string { return ProviderName }

// IsAvailable reports whether the extractor can be called. Textract has no
// cheap health endpoint, so a constructed client is considered available.
func (e *Extractor) IsAvailable(_ context.Context) bool { return e.client != nil }

// Extract runs DetectDocumentText on the image bytes and maps the response
// blocks into the pipeline's document shape.
func (e *Extractor) Extract(ctx context.Context, image []byte) (*ocr.Document, error) {
	out, err := e.client.DetectDocumentText(ctx, &awstextract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: image},
	})
	if err != nil {
		return nil, fmt.Errorf("textract: detect document text: %w", err)
	}

	return &ocr.Document{Blocks: toBlocks(out.Blocks)}, nil
}

func toBlocks(in []types.Block) []ocr.Block {
	blocks := make([]ocr.Block, 0, len(in))
	for _, b := range in {
		block := ocr.Block{BlockType: string(b.BlockType)}
		if b.Text != nil {
			block.Text = *b.Text
		}
		if b.Geometry != nil && b.Geometry.BoundingBox != nil {
			block.Geometry.BoundingBox = ocr.BoundingBox{
				Left:   float64(b.Geometry.BoundingBox.Left),
				Top:    float64(b.Geometry.BoundingBox.Top),
				Width:  float64(b.Geometry.BoundingBox.Width),
				Height: float64(b.Geometry.BoundingBox.Height),
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}
