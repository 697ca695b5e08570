package ocr

import (
	"context"

	"github.com/kumalab/kuma/provider"
)

// Extractor is the interface that text extraction backends must implement.
type Extractor interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Extract runs text detection on raw image bytes.
	Extract(ctx context.Context, image []byte) (*Document, error)
}
