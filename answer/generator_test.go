package answer

import (
	"context"
	"strings"
	"testing"

	kerrors "github.com/kumalab/kuma/errors"
	"github.com/kumalab/kuma/llm"
	"github.com/kumalab/kuma/provider"
)

type stubBackend struct {
	chunks []llm.StreamChunk
	gotReq llm.CompletionRequest
}

func (s *stubBackend) Name() string                        { return "stub" }
func (s *stubBackend) IsAvailable(_ context.Context) bool  { return true }
func (s *stubBackend) Stream(_ context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	s.gotReq = req
	ch := make(chan llm.StreamChunk, len(s.chunks))
	for _, c := range s.chunks {
		ch <- c
	}
	close(ch)
	return ch, nil
}

func lazyBackend(b llm.Provider) *provider.Lazy[llm.Provider] {
	return provider.NewLazy(func() (llm.Provider, error) { return b, nil })
}

func TestGenerate_ConcatenatesStream(t *testing.T) {
	backend := &stubBackend{chunks: []llm.StreamChunk{
		{Content: "Hello\nHow"},
		{Content: " are you\n"},
		{Content: "Bye", Done: true},
	}}
	g := NewGenerator(lazyBackend(backend))

	got, err := g.Generate(context.Background(), "alice: hi", EmotionFunny)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello\nHow are you\nBye" {
		t.Errorf("expected fragments joined without separators, got %q", got)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	backend := &stubBackend{}
	g := NewGenerator(lazyBackend(backend))

	if _, err := g.Generate(context.Background(), "alice: hi", EmotionAggressive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := backend.gotReq
	if req.Prompt != "alice: hi" {
		t.Errorf("expected transcript as sole user content, got %q", req.Prompt)
	}
	if !strings.Contains(req.SystemPrompt, "aggressive") {
		t.Errorf("expected emotion embedded in instruction, got %q", req.SystemPrompt)
	}
	if !strings.Contains(req.SystemPrompt, "metadata") {
		t.Errorf("expected metadata warning in instruction, got %q", req.SystemPrompt)
	}
	if !strings.Contains(req.SystemPrompt, "same language") {
		t.Errorf("expected language constraint in instruction, got %q", req.SystemPrompt)
	}
}

func TestGenerate_EmptyStream(t *testing.T) {
	g := NewGenerator(lazyBackend(&stubBackend{}))

	got, err := g.Generate(context.Background(), "alice: hi", EmotionDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string for empty stream, got %q", got)
	}
}

func TestGenerate_BackendConstructionError(t *testing.T) {
	lazy := provider.NewLazy(func() (llm.Provider, error) {
		return nil, kerrors.MissingConfig("AWS_REGION_NAME")
	})
	g := NewGenerator(lazy)

	_, err := g.Generate(context.Background(), "alice: hi", EmotionDefault)
	if !kerrors.HasCode(err, kerrors.ErrCodeExternalService) {
		t.Errorf("expected external-service error, got %v", err)
	}
}

func TestInstruction_DefaultEmotionFallback(t *testing.T) {
	got := Instruction("")
	if !strings.Contains(got, "default") {
		t.Errorf("expected empty emotion to fall back to default, got %q", got)
	}
}
