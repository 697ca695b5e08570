package llm

import (
	"errors"
	"testing"
)

func chunkStream(chunks ...StreamChunk) <-chan StreamChunk {
	ch := make(chan StreamChunk, len(chunks))
	for _, c := range chunks {
		ch <- c
	}
	close(ch)
	return ch
}

func TestCollect_ConcatenatesInOrder(t *testing.T) {
	got, err := Collect(chunkStream(
		StreamChunk{Content: "Hel"},
		StreamChunk{Content: "lo"},
		StreamChunk{Content: "!", Done: true},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello!" {
		t.Errorf("expected 'Hello!', got %q", got)
	}
}

func TestCollect_EmptyStream(t *testing.T) {
	got, err := Collect(chunkStream())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestCollect_ErrorKeepsPartialText(t *testing.T) {
	wantErr := errors.New("stream broke")
	got, err := Collect(chunkStream(
		StreamChunk{Content: "partial"},
		StreamChunk{Err: wantErr},
	))
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected stream error, got %v", err)
	}
	if got != "partial" {
		t.Errorf("expected partial text preserved, got %q", got)
	}
}
