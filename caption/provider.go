// Package caption defines the image captioning provider interface and
// common types for interacting with vision backends.
package caption

import (
	"context"

	"github.com/kumalab/kuma/provider"
)

// Provider is the interface that captioning backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Caption describes the given image in natural language.
	Caption(ctx context.Context, req Request) (*Response, error)
}
