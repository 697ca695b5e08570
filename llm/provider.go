package llm

import (
	"context"
	"strings"

	"github.com/kumalab/kuma/provider"
)

// Provider is the interface that generation backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Stream sends a completion request and returns a channel of streamed
	// chunks. The channel is closed after the final chunk or on error.
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}

// Collect drains a chunk stream and concatenates the fragments in arrival
// order, with no separators. It returns the first streaming error
// encountered; text received before the error is returned alongside it.
func Collect(ch <-chan StreamChunk) (string, error) {
	var sb strings.Builder
	for chunk := range ch {
		if chunk.Err != nil {
			return sb.String(), chunk.Err
		}
		sb.WriteString(chunk.Content)
		if chunk.Done {
			break
		}
	}
	return sb.String(), nil
}
