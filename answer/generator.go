package answer

import (
	"context"
	"fmt"

	"github.com/kumalab/kuma/errors"
	"github.com/kumalab/kuma/llm"
	"github.com/kumalab/kuma/logger"
	"github.com/kumalab/kuma/provider"
)

// instructionTemplate is the fixed system instruction, parameterized only by
// the requested emotion. The metadata warning matters: screenshot
// transcripts carry application chrome (timestamps, delivery receipts,
// contact names) interleaved with the actual messages.
const instructionTemplate = `You will be given a conversation between two people: the user and the other person. You must provide three different messages that the user can choose from as an answer to the last messages from the other person, and those three messages must be based on the following emotion: %s. The messages you generate must be based on the conversation and its sentiments. Be careful: there can be metadata such as timestamps, dates, names, and other information. Those are not messages from either person, but from the application they use (iMessage, WhatsApp, Signal, Messenger, etc.). Only provide the three messages in your answer, nothing else, not even bullet points: the three messages must be separated by a newline. Finally, the messages you generate must be in the same language as the conversation.`

// Generator orchestrates reply generation: it builds the request, streams
// the model response, and reassembles the fragments into one raw string.
type Generator struct {
	gen *provider.Lazy[llm.Provider]
	log *logger.Logger
}

// NewGenerator creates a generator on a lazily constructed backend.
func NewGenerator(gen *provider.Lazy[llm.Provider]) *Generator {
	return &Generator{
		gen: gen,
		log: logger.WithComponent("generator"),
	}
}

// Instruction renders the system instruction for the given emotion. An empty
// emotion falls back to the default tone.
func Instruction(emotion Emotion) string {
	if emotion == "" {
		emotion = EmotionDefault
	}
	return fmt.Sprintf(instructionTemplate, emotion)
}

// Generate produces the raw generation output for one transcript. Fragments
// are concatenated in delivery order with no separator; embedded newlines
// are preserved. An empty stream yields an empty string, which the caller
// must treat as a degenerate generation, not an error.
func (g *Generator) Generate(ctx context.Context, transcript string, emotion Emotion) (string, error) {
	backend, err := g.gen.Get()
	if err != nil {
		return "", errors.ExternalServiceError("generation", err)
	}

	ch, err := backend.Stream(ctx, llm.CompletionRequest{
		Prompt:       transcript,
		SystemPrompt: Instruction(emotion),
	})
	if err != nil {
		return "", errors.ExternalServiceError("generation", err)
	}

	raw, err := llm.Collect(ch)
	if err != nil {
		return "", errors.ExternalServiceError("generation", err)
	}

	g.log.Debug("generation complete", map[string]any{
		logger.FieldEmotion:  emotion.String(),
		logger.FieldProvider: backend.Name(),
		"raw_len":            len(raw),
	})
	return raw, nil
}
