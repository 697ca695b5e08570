// Package llm defines the text-generation provider contract used by the
// reply pipeline.
//
// The package provides:
//   - Universal types: [CompletionRequest], [StreamChunk], [InferenceParams]
//   - [Provider] interface: streaming text generation backends
//   - [Collect]: drains a chunk stream into the full generated text
//
// Backend implementations live in subpackages (see llm/bedrock) and are
// wired at startup, typically behind a provider.Lazy so the client is only
// constructed on first use.
package llm
