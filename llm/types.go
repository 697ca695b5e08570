package llm

// InferenceParams tune the sampling behavior of a generation request.
// Zero values mean "use the provider default".
type InferenceParams struct {
	// MaxNewTokens limits the response length.
	MaxNewTokens int `json:"max_new_tokens,omitempty"`
	// TopP is the nucleus sampling cutoff.
	TopP float64 `json:"top_p,omitempty"`
	// TopK limits sampling to the K most likely tokens.
	TopK int `json:"top_k,omitempty"`
	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64 `json:"temperature,omitempty"`
}

// CompletionRequest is the universal input for generation providers.
type CompletionRequest struct {
	// Model overrides the provider's default model.
	Model string `json:"model,omitempty"`
	// Prompt is the user-turn content.
	Prompt string `json:"prompt"`
	// SystemPrompt carries the task instruction, sent as a system turn.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// Params override the provider's default inference parameters.
	Params InferenceParams `json:"params,omitempty"`
}

// StreamChunk is a single piece of a streamed response.
type StreamChunk struct {
	// Content is the text fragment.
	Content string `json:"content"`
	// Done indicates this is the final chunk.
	Done bool `json:"done"`
	// Err is set when a streaming error occurs.
	Err error `json:"-"`
}
