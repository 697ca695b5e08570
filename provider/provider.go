// Package provider defines the base abstractions shared by kuma's backend
// providers (extraction, captioning, transcription, generation).
package provider

import "context"

// Provider is the base interface all backends must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory constructs a provider instance. Factories registered with a
// Registry run lazily, on the first Get of the resolved handle.
type Factory[T Provider] func() (T, error)
